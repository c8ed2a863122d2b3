// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package transcribe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/openai/openai-go/v3"

	"github.com/innervoice/server/internal/audioarchive"
	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/httpapi"
	"github.com/innervoice/server/internal/journaldb"
)

type Response struct {
	Transcript string             `json:"transcript"`
	Message    *journaldb.Message `json:"message"`
	AudioURL   string             `json:"audioUrl,omitempty"`
}

// NewHandler returns a Handler.
func NewHandler(openAI *openai.Client, store *journaldb.Store, archive *audioarchive.Archive, model string) *Handler {
	return &Handler{
		openAI:  openAI,
		store:   store,
		archive: archive,
		model:   model,
	}
}

// Handler transcribes one recorded utterance and appends it as a user
// message. The raw clip is archived after the transcript is persisted.
type Handler struct {
	openAI  *openai.Client
	store   *journaldb.Store
	archive *audioarchive.Archive
	model   string
}

// Transcribe handles POST bodies of raw audio. The target conversation
// comes from the "conversation" query parameter since the body is the
// recording itself.
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := auth.UserID(ctx)
	if userID == "" {
		httpapi.WriteError(ctx, w, connect.NewError(connect.CodeUnauthenticated, errors.New("transcribe: no authenticated user")))
		return
	}
	conversationID := r.URL.Query().Get("conversation")
	if conversationID == "" {
		httpapi.WriteError(ctx, w, connect.NewError(connect.CodeInvalidArgument, errors.New("transcribe: conversation query parameter is required")))
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		httpapi.WriteError(ctx, w, fmt.Errorf("transcribe: reading audio body: %w", err))
		return
	}
	if len(data) == 0 {
		httpapi.WriteError(ctx, w, connect.NewError(connect.CodeInvalidArgument, errors.New("transcribe: empty audio body")))
		return
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/webm"
	}

	transcription, err := h.openAI.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(data), "recording"+audioarchive.ExtensionFor(contentType), contentType),
		Model: openai.AudioModel(h.model),
	})
	if err != nil {
		httpapi.WriteError(ctx, w, fmt.Errorf("transcribe: transcribing audio: %w", err))
		return
	}
	transcript := strings.TrimSpace(transcription.Text)
	if transcript == "" {
		httpapi.WriteError(ctx, w, connect.NewError(connect.CodeInvalidArgument, errors.New("transcribe: no speech detected in recording")))
		return
	}

	msg, err := h.store.AddMessage(ctx, userID, conversationID, transcript, journaldb.RoleUser, "", nil)
	if err != nil {
		if errors.Is(err, journaldb.ErrConversationNotFound) {
			httpapi.WriteError(ctx, w, connect.NewError(connect.CodeNotFound, err))
			return
		}
		httpapi.WriteError(ctx, w, fmt.Errorf("transcribe: saving user message: %w", err))
		return
	}
	if _, err := h.store.TrackMessage(ctx, userID); err != nil {
		httpapi.WriteError(ctx, w, fmt.Errorf("transcribe: tracking usage: %w", err))
		return
	}

	// Archiving is best-effort. The transcript is already durable.
	audioURL := ""
	if h.archive != nil {
		url, err := h.archive.SaveClip(ctx, userID, conversationID, msg.ID, contentType, data)
		if err != nil {
			slog.ErrorContext(ctx, "transcribe: archiving clip", "error", err)
		} else {
			audioURL = url
		}
	}

	httpapi.WriteJSON(ctx, w, &Response{
		Transcript: transcript,
		Message:    msg,
		AudioURL:   audioURL,
	})
}
