// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package speech

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/openai/openai-go/v3"

	"github.com/innervoice/server/internal/httpapi"
)

type Request struct {
	Text string `json:"text"`
}

// NewHandler returns a Handler.
func NewHandler(openAI *openai.Client, model string, voice string) *Handler {
	return &Handler{
		openAI: openAI,
		model:  model,
		voice:  voice,
	}
}

// Handler synthesizes coach replies into speech. The store is not
// involved; the text to speak is whatever the client asks for.
type Handler struct {
	openAI *openai.Client
	model  string
	voice  string
}

// Speak streams synthesized mp3 audio rather than JSON, so it bypasses
// the unary adapter.
func (h *Handler) Speak(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(ctx, w, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("speech: decoding request: %w", err)))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		httpapi.WriteError(ctx, w, connect.NewError(connect.CodeInvalidArgument, errors.New("speech: text is required")))
		return
	}

	res, err := h.openAI.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(h.model),
		Voice:          openai.AudioSpeechNewParamsVoice(h.voice),
		Input:          req.Text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		httpapi.WriteError(ctx, w, fmt.Errorf("speech: synthesizing speech: %w", err))
		return
	}
	defer func() {
		_ = res.Body.Close()
	}()

	w.Header().Set("Content-Type", "audio/mpeg")
	if _, err := io.Copy(w, res.Body); err != nil {
		slog.ErrorContext(ctx, "speech: streaming audio", "error", err)
	}
}
