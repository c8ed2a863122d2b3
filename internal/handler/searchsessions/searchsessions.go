// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package searchsessions

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/journaldb"
)

type Request struct {
	Query string `json:"query"`
}

type Response struct {
	// Conversations contain only the messages matching the query. An
	// empty query returns all sessions with no messages attached.
	Conversations []journaldb.Conversation `json:"conversations"`
}

// NewHandler returns a Handler.
func NewHandler(store *journaldb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler searches session titles and message content.
type Handler struct {
	store *journaldb.Store
}

func (h *Handler) SearchSessions(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("searchsessions: no authenticated user"))
	}
	convs, err := h.store.SearchConversations(ctx, userID, req.Query)
	if err != nil {
		return nil, fmt.Errorf("searchsessions: searching conversations: %w", err)
	}
	return &Response{Conversations: convs}, nil
}
