package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/innervoice/server/internal/httpapi"
	"github.com/innervoice/server/internal/journaldb"
)

// UserID returns the verified user identity for the request, or the
// empty string when the request is unauthenticated. Identity always
// derives from the validated Firebase token, never from a header.
func UserID(ctx context.Context) string {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil {
		return ""
	}
	return tok.UID
}

// Email returns the user's email from the verified token, if any.
func Email(ctx context.Context) string {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil {
		return ""
	}
	if id, ok := tok.Firebase.Identities["email"]; ok {
		if idAny, ok := id.([]any); ok && len(idAny) > 0 {
			if email, ok := idAny[0].(string); ok {
				return email
			}
		}
	}
	return ""
}

// Name returns the user's display name from the verified token, if any.
func Name(ctx context.Context) string {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil {
		return ""
	}
	if name, ok := tok.Claims["name"].(string); ok {
		return name
	}
	return ""
}

// ProvisionUser creates the user record lazily on the first
// authenticated request, so every downstream handler can assume the
// user document exists.
func ProvisionUser(store *journaldb.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := UserID(ctx)
			if userID == "" {
				httpapi.WriteError(ctx, w, connect.NewError(connect.CodeUnauthenticated, errors.New("auth: no verified user identity")))
				return
			}
			if err := store.EnsureUser(ctx, userID, Email(ctx), Name(ctx)); err != nil {
				slog.ErrorContext(ctx, "auth: provisioning user", "error", err)
				httpapi.WriteError(ctx, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
