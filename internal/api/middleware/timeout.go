package middleware

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeout bounds the request context so database calls made while
// serving it are canceled after d. Handlers report the resulting context
// error themselves.
func RequestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
