// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package addmessage

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/journaldb"
)

type Request struct {
	ConversationID string   `json:"conversationId"`
	Content        string   `json:"content"`
	Role           string   `json:"role"`
	Sentiment      string   `json:"sentiment"`
	Emotions       []string `json:"emotions"`
}

type Response struct {
	Message *journaldb.Message `json:"message"`
}

// NewHandler returns a Handler.
func NewHandler(store *journaldb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler appends a message, optionally annotated with sentiment and
// emotion tags, and tracks it against the monthly quota.
type Handler struct {
	store *journaldb.Store
}

func (h *Handler) AddMessage(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("addmessage: no authenticated user"))
	}
	msg, err := h.store.AddMessage(ctx, userID, req.ConversationID, req.Content, journaldb.Role(req.Role), req.Sentiment, req.Emotions)
	if err != nil {
		switch {
		case errors.Is(err, journaldb.ErrConversationNotFound):
			return nil, connect.NewError(connect.CodeNotFound, err)
		case errors.Is(err, journaldb.ErrEmptyContent), errors.Is(err, journaldb.ErrInvalidRole):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, fmt.Errorf("addmessage: adding message: %w", err)
	}
	if _, err := h.store.TrackMessage(ctx, userID); err != nil {
		return nil, fmt.Errorf("addmessage: tracking usage: %w", err)
	}
	return &Response{Message: msg}, nil
}
