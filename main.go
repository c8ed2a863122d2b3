// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/innervoice/server/internal/audioarchive"
	"github.com/innervoice/server/internal/auth"
	"github.com/innervoice/server/internal/config"
	"github.com/innervoice/server/internal/handler/addmessage"
	"github.com/innervoice/server/internal/handler/emotionsessions"
	"github.com/innervoice/server/internal/handler/getsession"
	"github.com/innervoice/server/internal/handler/latestmessages"
	"github.com/innervoice/server/internal/handler/listsessions"
	"github.com/innervoice/server/internal/handler/reply"
	"github.com/innervoice/server/internal/handler/searchsessions"
	"github.com/innervoice/server/internal/handler/speech"
	"github.com/innervoice/server/internal/handler/startsession"
	"github.com/innervoice/server/internal/handler/transcribe"
	"github.com/innervoice/server/internal/handler/usage"
	"github.com/innervoice/server/internal/httpapi"
	"github.com/innervoice/server/internal/i18n"
	"github.com/innervoice/server/internal/journaldb"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()

	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		Project: conf.Google.Project,
	})
	if err != nil {
		return fmt.Errorf("main: create genai client: %w", err)
	}

	oai := openai.NewClient()

	store := journaldb.NewStore(firestore)
	clips := audioarchive.New(storage, conf.Google.Project+"-voice-clips")

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(func(h http.Handler) http.Handler {
		return fbMW(auth.ProvisionUser(store)(h))
	}, func(r *http.Request) bool {
		switch {
		case strings.HasPrefix(r.URL.Path, "/internal/"):
			return false
		default:
			return true
		}
	}))

	mux.Use(i18n.Middleware())

	mux.Post("/api/conversation/start", httpapi.Handler(startsession.NewHandler(store).StartSession))
	mux.Post("/api/conversation/get", httpapi.Handler(getsession.NewHandler(store).GetSession))
	mux.Post("/api/conversation/list", httpapi.Handler(listsessions.NewHandler(store).ListSessions))
	mux.Post("/api/conversation/search", httpapi.Handler(searchsessions.NewHandler(store).SearchSessions))
	mux.Post("/api/conversation/byemotion", httpapi.Handler(emotionsessions.NewHandler(store).EmotionSessions))
	mux.Post("/api/message/add", httpapi.Handler(addmessage.NewHandler(store).AddMessage))
	mux.Post("/api/message/latest", httpapi.Handler(latestmessages.NewHandler(store).LatestMessages))
	mux.Post("/api/chat/reply", httpapi.Handler(reply.NewHandler(genAI, store, conf.Chat.Model).Reply))
	mux.Post("/api/chat/transcribe", transcribe.NewHandler(&oai, store, clips, conf.Chat.TranscribeModel).Transcribe)
	mux.Post("/api/chat/speech", speech.NewHandler(&oai, conf.Chat.SpeechModel, conf.Chat.Voice).Speak)
	mux.Post("/api/usage/current", httpapi.Handler(usage.NewHandler(store).CurrentMonth))

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
