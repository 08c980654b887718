package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/R-umaria/boxedwithlove/internal/config"
	appErrors "github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/session"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
)

type sessionContextKey string

const sessionKey = sessionContextKey("session")

// SessionMiddleware binds every request to a redis-backed session. A missing
// or expired cookie gets a fresh token; the state is written back after the
// handler runs, which also slides the expiry forward.
type SessionMiddleware struct {
	store *session.Store
	cfg   *config.Session
}

func NewSessionMiddleware(store *session.Store, cfg *config.Session) *SessionMiddleware {
	return &SessionMiddleware{store: store, cfg: cfg}
}

func (m *SessionMiddleware) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		var sess *session.Session

		if cookie, err := r.Cookie(m.cfg.CookieName); err == nil {
			sess, err = m.store.Get(r.Context(), cookie.Value)
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				logger.Error("Failed to load session", slog.Any("error", err))
				response.Error(w, appErrors.InternalError("Session store unavailable").WithError(err))

				return
			}
		}

		if sess == nil {
			created, err := m.store.Create(r.Context())
			if err != nil {
				logger.Error("Failed to create session", slog.Any("error", err))
				response.Error(w, appErrors.InternalError("Session store unavailable").WithError(err))

				return
			}

			sess = created

			http.SetCookie(w, &http.Cookie{
				Name:     m.cfg.CookieName,
				Value:    sess.Token,
				Path:     "/",
				MaxAge:   int(m.cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   m.cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)

		next.ServeHTTP(w, r.WithContext(ctx))

		// handlers mutate the session in place; persist whatever they left
		if err := m.store.Save(r.Context(), sess); err != nil {
			logger.Error("Failed to save session", slog.Any("error", err))
		}
	})
}

// ContextWithSession binds a session the way WithSession does; tests use it
// to build request contexts without redis.
func ContextWithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func SessionFromContext(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(sessionKey).(*session.Session); ok {
		return sess
	}

	return &session.Session{}
}
