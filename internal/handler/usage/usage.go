// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package usage

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/journaldb"
)

type Request struct{}

type Response struct {
	Usage *journaldb.UsageMetrics `json:"usage"`
}

// NewHandler returns a Handler.
func NewHandler(store *journaldb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler reads the user's message count for the current month.
type Handler struct {
	store *journaldb.Store
}

func (h *Handler) CurrentMonth(ctx context.Context, _ *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("usage: no authenticated user"))
	}
	metrics, err := h.store.CurrentMonthUsage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usage: getting current month usage: %w", err)
	}
	return &Response{Usage: metrics}, nil
}
