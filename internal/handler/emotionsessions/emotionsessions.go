// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package emotionsessions

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/journaldb"
)

type Request struct {
	Emotion string `json:"emotion"`
}

type Response struct {
	// Conversations contain only the messages tagged with the emotion.
	Conversations []journaldb.Conversation `json:"conversations"`
}

// NewHandler returns a Handler.
func NewHandler(store *journaldb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Handler filters sessions by emotion tag.
type Handler struct {
	store *journaldb.Store
}

func (h *Handler) EmotionSessions(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("emotionsessions: no authenticated user"))
	}
	if req.Emotion == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("emotionsessions: emotion is required"))
	}
	convs, err := h.store.ConversationsByEmotion(ctx, userID, req.Emotion)
	if err != nil {
		return nil, fmt.Errorf("emotionsessions: filtering conversations: %w", err)
	}
	return &Response{Conversations: convs}, nil
}
