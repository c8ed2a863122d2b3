package i18n

import (
	"context"
	"net/http"
	"strings"
)

type userLanguageContextKey struct{}

var userLanguageContextKeyInstance = userLanguageContextKey{}

// Middleware records the request's preferred language from
// Accept-Language. The coach replies and synthesized speech follow it.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			lng := r.Header.Get("Accept-Language")
			lng, _, _ = strings.Cut(lng, ",")
			lng, _, _ = strings.Cut(lng, ";")
			lng = strings.TrimSpace(lng)

			if lng != "" {
				ctx = context.WithValue(ctx, userLanguageContextKeyInstance, strings.ToLower(lng))
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserLanguage returns the request's preferred language tag, or "en"
// when the client did not send one.
func UserLanguage(ctx context.Context) string {
	if lng, ok := ctx.Value(userLanguageContextKeyInstance).(string); ok {
		return lng
	}
	return "en"
}
