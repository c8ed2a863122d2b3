// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package startsession

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/journaldb"
)

type Request struct {
	// InitialMessage optionally seeds the session with one user message,
	// e.g. the transcript that triggered "Start a session".
	InitialMessage string `json:"initialMessage"`
}

type Response struct {
	Conversation *journaldb.Conversation `json:"conversation"`
}

// NewHandler returns a Handler.
func NewHandler(store *journaldb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler starts a new journaling session.
type Handler struct {
	store *journaldb.Store
}

func (h *Handler) StartSession(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("startsession: no authenticated user"))
	}
	conv, err := h.store.CreateConversation(ctx, userID, req.InitialMessage)
	if err != nil {
		return nil, fmt.Errorf("startsession: creating conversation: %w", err)
	}
	return &Response{Conversation: conv}, nil
}
