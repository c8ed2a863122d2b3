// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

// Package httpapi adapts unary request/response handlers to JSON over
// HTTP, translating connect error codes to HTTP statuses.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
)

// Handler wraps a unary function into an http.HandlerFunc that decodes
// the request body as JSON and encodes the response as JSON. An empty
// body decodes to the zero request.
func Handler[Req any, Res any](fn func(context.Context, *Req) (*Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req := new(Req)
		if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
			WriteError(ctx, w, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("httpapi: decoding request: %w", err)))
			return
		}
		res, err := fn(ctx, req)
		if err != nil {
			WriteError(ctx, w, err)
			return
		}
		WriteJSON(ctx, w, res)
	}
}

// WriteJSON writes v as a JSON response body.
func WriteJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "httpapi: encoding response", "error", err)
	}
}

// WriteError writes err as a JSON error response with the HTTP status
// derived from its connect code. Errors without a code become internal
// server errors.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	code := connect.CodeOf(err)
	httpStatus := statusFromCode(code)
	if httpStatus == http.StatusInternalServerError {
		slog.ErrorContext(ctx, "httpapi: handler failed", "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func statusFromCode(code connect.Code) int {
	switch code {
	case connect.CodeInvalidArgument:
		return http.StatusBadRequest
	case connect.CodeUnauthenticated:
		return http.StatusUnauthorized
	case connect.CodePermissionDenied:
		return http.StatusForbidden
	case connect.CodeNotFound:
		return http.StatusNotFound
	case connect.CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case connect.CodeResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
