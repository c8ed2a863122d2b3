// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package reply

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/journaldb"
	"github.com/innervoice/server/internal/llm"
)

const maxGenerateTries = 3

type Request struct {
	ConversationID string `json:"conversationId"`
}

type Response struct {
	Message *journaldb.Message `json:"message"`
}

// NewHandler returns a Handler.
func NewHandler(genAI *genai.Client, store *journaldb.Store, model string) *Handler {
	return &Handler{
		genAI: genAI,
		store: store,
		model: model,
	}
}

// Handler generates the coach's reply to a session. It feeds the full
// message history to the model and appends the generated message.
type Handler struct {
	genAI *genai.Client
	store *journaldb.Store
	model string
}

func (h *Handler) Reply(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("reply: no authenticated user"))
	}
	conv, err := h.store.GetConversation(ctx, userID, req.ConversationID)
	if err != nil {
		if errors.Is(err, journaldb.ErrConversationNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, fmt.Errorf("reply: getting conversation: %w", err)
	}
	if len(conv.Messages) == 0 {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("reply: conversation has no messages"))
	}

	content := contents(conv.Messages)
	res, err := backoff.Retry(ctx, func() (*genai.GenerateContentResponse, error) {
		return h.genAI.Models.GenerateContent(ctx, h.model, content, &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(llm.CoachPrompt(ctx), genai.RoleModel),
		})
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxGenerateTries))
	if err != nil {
		return nil, fmt.Errorf("reply: calling GenerateContent: %w", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 || res.Candidates[0].Content.Parts[0].Text == "" {
		return nil, fmt.Errorf("reply: unexpected response from generate ai: %v", res)
	}
	text := res.Candidates[0].Content.Parts[0].Text

	// The append and the usage bump are independent writes.
	var msg *journaldb.Message
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		m, err := h.store.AddMessage(gctx, userID, req.ConversationID, text, journaldb.RoleAssistant, "", nil)
		if err != nil {
			return fmt.Errorf("reply: saving assistant message: %w", err)
		}
		msg = m
		return nil
	})
	grp.Go(func() error {
		if _, err := h.store.TrackMessage(gctx, userID); err != nil {
			return fmt.Errorf("reply: tracking usage: %w", err)
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return &Response{Message: msg}, nil
}

// contents maps the stored history to model input, stripping sentiment,
// emotion tags, and timestamps.
func contents(msgs []journaldb.Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, msg := range msgs {
		role := genai.Role(genai.RoleUser)
		if msg.Role == journaldb.RoleAssistant {
			role = genai.RoleModel
		}
		out[i] = genai.NewContentFromText(msg.Content, role)
	}
	return out
}
