package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/R-umaria/boxedwithlove/internal/api/middleware"
	"github.com/R-umaria/boxedwithlove/internal/config"
	"github.com/R-umaria/boxedwithlove/internal/session"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionMiddlewareTest(t *testing.T) (redismock.ClientMock, *middleware.SessionMiddleware) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	t.Cleanup(func() {
		client.Close()
	})

	cfg := &config.Session{CookieName: "bwl_session", TTL: 30 * time.Minute}
	store := session.NewStore(client, cfg)

	return mock, middleware.NewSessionMiddleware(store, cfg)
}

func TestWithSession(t *testing.T) {
	t.Run("Success - Existing Token Loads And Persists", func(t *testing.T) {
		// Arrange
		mock, sessionMiddleware := setupSessionMiddlewareTest(t)

		mock.ExpectGet("session:tok-1").SetVal(`{"cart":{"7":2}}`)
		mock.ExpectSet("session:tok-1", []byte(`{"cart":{"7":2}}`), 30*time.Minute).SetVal("OK")

		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: "bwl_session", Value: "tok-1"})
		recorder := httptest.NewRecorder()

		handler := sessionMiddleware.WithSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := middleware.SessionFromContext(r.Context())
			assert.Equal(t, 2, sess.CartQuantity(7))
			w.WriteHeader(http.StatusOK)
		}))

		// Act
		handler.ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Store Error Renders The Error Envelope", func(t *testing.T) {
		// Arrange
		mock, sessionMiddleware := setupSessionMiddlewareTest(t)

		mock.ExpectGet("session:tok-1").SetErr(assert.AnError)

		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: "bwl_session", Value: "tok-1"})
		recorder := httptest.NewRecorder()

		called := false
		handler := sessionMiddleware.WithSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		// Act
		handler.ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.False(t, called, "Handlers must not run without a session")
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var envelope response.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "server_error", envelope.Error.Code)
		assert.Equal(t, "Session store unavailable", envelope.Error.Message)
	})
}
