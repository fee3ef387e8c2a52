package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/auth"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/tests/testutils"
)

func setupGate(t *testing.T) (*Middleware, string, string) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	t.Cleanup(cleanup)

	service := auth.NewService(factory.NewUserRepository(), testutils.GetTestConfig().JwtKey)
	user, err := service.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	token, err := service.GenerateToken(user.ID)
	require.NoError(t, err)

	return NewMiddleware(service), token, user.ID
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	mw, _, _ := setupGate(t)

	handlerCalled := false
	handler := mw.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	for _, header := range []string{"", "Basic abc", "bearer lowercase-scheme"} {
		req := httptest.NewRequest("GET", "/api/todos/user/1", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "No token provided")
	}
	assert.False(t, handlerCalled)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mw, _, _ := setupGate(t)

	handlerCalled := false
	handler := mw.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	req := httptest.NewRequest("GET", "/api/todos/user/1", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
	assert.False(t, handlerCalled)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mw, token, userID := setupGate(t)

	var gotID string
	handler := mw.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		gotID = id
	})

	req := httptest.NewRequest("GET", "/api/todos/user/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
}
