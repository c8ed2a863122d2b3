// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package latestmessages

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

	// Take caps the window size. Zero means the default.
	Take int `json:"take"`
}

type Response struct {
	// Messages are the most recent ones, newest first.
	Messages []journaldb.Message `json:"messages"`
}

// NewHandler returns a Handler.
func NewHandler(store *journaldb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler returns a recent window of a session's messages, for previews
// that don't need the full history.
type Handler struct {
	store *journaldb.Store
}

func (h *Handler) LatestMessages(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("latestmessages: no authenticated user"))
	}
	if req.ConversationID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("latestmessages: conversationId is required"))
	}
	msgs, err := h.store.LatestMessages(ctx, userID, req.ConversationID, req.Take)
	if err != nil {
		if errors.Is(err, journaldb.ErrConversationNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, fmt.Errorf("latestmessages: fetching messages: %w", err)
	}
	return &Response{Messages: msgs}, nil
}
