package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
	"github.com/google/uuid"
)

// RequireUser gates account-only routes behind a bound session. The session
// middleware must already have run.
func RequireUser(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		sess := SessionFromContext(r.Context())

		if sess.UserID == nil {
			logger.Warn("Unauthenticated request to protected route")
			response.Error(w, errors.UnauthorizedError("Login required"))

			return
		}

		requestScopedLogger := logger.With(slog.String("userId", sess.UserID.String()))
		ctx := context.WithValue(r.Context(), loggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// UserIDFromContext returns the bound user id for handlers behind
// RequireUser. The boolean is false on routes that skipped the gate.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	sess := SessionFromContext(ctx)

	if sess.UserID == nil {
		return uuid.Nil, false
	}

	return *sess.UserID, true
}
