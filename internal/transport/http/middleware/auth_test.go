package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
)

type stubParser struct {
	identity entity.Identity
	err      error
}

func (p stubParser) ParseToken(string) (entity.Identity, error) {
	return p.identity, p.err
}

func TestAuthMiddleware(t *testing.T) {
	identity := entity.Identity{
		UserID: uuid.New(),
		Email:  "ahmed@example.com",
		Role:   entity.UserRoleUser,
		Status: entity.UserStatusActive,
	}

	var captured entity.Identity
	var capturedOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, capturedOK = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		handler := Auth(stubParser{identity: identity})(next)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, capturedOK)
		assert.Equal(t, identity, captured)
	})

	t.Run("missing header", func(t *testing.T) {
		handler := Auth(stubParser{identity: identity})(next)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var response dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, domainErrors.Unauthorized.Code, response.Error.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		handler := Auth(stubParser{identity: identity})(next)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		handler := Auth(stubParser{err: domainErrors.UnauthorizedErr(domainErrors.InvalidToken)})(next)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var response dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, domainErrors.InvalidToken.Code, response.Error.Code)
	})
}

func TestIdentityFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}
