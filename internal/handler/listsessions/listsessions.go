// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package listsessions

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/journaldb"
)

type Request struct {
	// Limit caps the number of returned sessions. Zero means the default.
	Limit int `json:"limit"`
}

type Response struct {
	// Conversations are ordered by recency, each with a one-message
	// preview rather than full history.
	Conversations []journaldb.Conversation `json:"conversations"`
}

// NewHandler returns a Handler.
func NewHandler(store *journaldb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler lists the user's recent sessions.
type Handler struct {
	store *journaldb.Store
}

func (h *Handler) ListSessions(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("listsessions: no authenticated user"))
	}
	convs, err := h.store.UserConversations(ctx, userID, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("listsessions: listing conversations: %w", err)
	}
	return &Response{Conversations: convs}, nil
}
