package middleware

import (
	"net/http"
	"strings"
)

const (
	HeaderSessionID = "X-Session-Id"

	maxSessionIDLength = 128
)

// Session resolves the cart session for the request from X-Session-Id.
// Requests without the header share fallbackID.
func Session(fallbackID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := strings.TrimSpace(r.Header.Get(HeaderSessionID))
			if sid == "" {
				sid = fallbackID
			}
			if len(sid) > maxSessionIDLength {
				writeError(w, r, http.StatusBadRequest, "invalid header: X-Session-Id")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
		})
	}
}
