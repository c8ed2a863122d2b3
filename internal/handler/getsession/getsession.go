// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package getsession

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/journaldb"
)

type Request struct {
	ConversationID string `json:"conversationId"`
}

type Response struct {
	// Conversation carries the full ascending message sequence, the
	// context a generation call needs.
	Conversation *journaldb.Conversation `json:"conversation"`
}

// NewHandler returns a Handler.
func NewHandler(store *journaldb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler fetches one session with its full history.
type Handler struct {
	store *journaldb.Store
}

func (h *Handler) GetSession(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("getsession: no authenticated user"))
	}
	if req.ConversationID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("getsession: conversationId is required"))
	}
	conv, err := h.store.GetConversation(ctx, userID, req.ConversationID)
	if err != nil {
		if errors.Is(err, journaldb.ErrConversationNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, fmt.Errorf("getsession: getting conversation: %w", err)
	}
	return &Response{Conversation: conv}, nil
}
