// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
)

type echoRequest struct {
	Name string `json:"name"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
}

func TestHandlerRoundTrip(t *testing.T) {
	h := Handler(func(_ context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Greeting: "hello " + req.Name}, nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ada"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var res echoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.Greeting != "hello ada" {
		t.Errorf("got greeting %q, want %q", res.Greeting, "hello ada")
	}
}

func TestHandlerEmptyBody(t *testing.T) {
	h := Handler(func(_ context.Context, req *echoRequest) (*echoResponse, error) {
		if req.Name != "" {
			t.Errorf("got name %q, want empty", req.Name)
		}
		return &echoResponse{}, nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")))

	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rec.Code)
	}
}

func TestHandlerMalformedBody(t *testing.T) {
	h := Handler(func(_ context.Context, _ *echoRequest) (*echoResponse, error) {
		t.Error("handler invoked for malformed body")
		return nil, nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

func TestHandlerErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", connect.NewError(connect.CodeNotFound, errors.New("missing")), http.StatusNotFound},
		{"unauthenticated", connect.NewError(connect.CodeUnauthenticated, errors.New("no user")), http.StatusUnauthorized},
		{"invalid argument", connect.NewError(connect.CodeInvalidArgument, errors.New("bad role")), http.StatusBadRequest},
		{"permission denied", connect.NewError(connect.CodePermissionDenied, errors.New("not yours")), http.StatusForbidden},
		{"uncoded store failure", errors.New("firestore unavailable"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := Handler(func(_ context.Context, _ *echoRequest) (*echoResponse, error) {
				return nil, tc.err
			})

			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))

			if rec.Code != tc.want {
				t.Errorf("got status %d, want %d", rec.Code, tc.want)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("error body missing error field")
			}
		})
	}
}
