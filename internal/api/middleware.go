package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	ownerIDKey   contextKey = "ownerID"
	requestIDKey contextKey = "requestID"
)

// ownerID extracts the authenticated principal from the request context.
// Returns 0 when no principal is bound.
func ownerID(r *http.Request) int64 {
	id, _ := r.Context().Value(ownerIDKey).(int64)
	return id
}

// WithRequestID tags every request with an id for log correlation.
func (h *Handler) WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequireAuth verifies the bearer token and binds the principal to the
// request context. Requests without a valid token get 401.
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		userID, err := h.auth.VerifyToken(token)
		if err != nil {
			h.logger.Debug("rejected token", zap.Error(err))
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ownerIDKey, userID)))
	}
}
