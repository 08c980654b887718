package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/R-umaria/boxedwithlove/internal/api/middleware"
	"github.com/R-umaria/boxedwithlove/internal/session"
	"github.com/google/uuid"
)

// CreateTestRequestWithUser builds a request whose session is bound to the
// given user, the shape handlers see behind RequireUser.
func CreateTestRequestWithUser(method, target string, body io.Reader, userID uuid.UUID, pathParams map[string]string) (*http.Request, *session.Session) {
	sess := &session.Session{Token: uuid.NewString(), UserID: &userID}

	return requestWithSession(method, target, body, sess, pathParams), sess
}

// CreateTestRequestAnonymous builds a request carrying a fresh anonymous
// session.
func CreateTestRequestAnonymous(method, target string, body io.Reader, pathParams map[string]string) (*http.Request, *session.Session) {
	sess := &session.Session{Token: uuid.NewString()}

	return requestWithSession(method, target, body, sess, pathParams), sess
}

func requestWithSession(method, target string, body io.Reader, sess *session.Session, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.ContextWithLogger(req.Context(), logger)
	ctx = middleware.ContextWithSession(ctx, sess)

	return req.WithContext(ctx)
}
