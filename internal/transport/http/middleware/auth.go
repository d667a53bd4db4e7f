package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
)

type identityKey struct{}

// TokenParser проверяет токен и восстанавливает Identity
type TokenParser interface {
	ParseToken(token string) (entity.Identity, error)
}

// Auth извлекает bearer-токен, проверяет его и кладет Identity в контекст
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) {
				respondError(w, http.StatusUnauthorized,
					domainErrors.Unauthorized.Code, domainErrors.Unauthorized.Message)
				return
			}

			identity, err := parser.ParseToken(strings.TrimPrefix(authHeader, prefix))
			if err != nil {
				respondError(w, http.StatusUnauthorized,
					domainErrors.InvalidToken.Code, domainErrors.InvalidToken.Message)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext возвращает Identity, помещенную middleware Auth
func IdentityFromContext(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(entity.Identity)
	return identity, ok
}

// respondError отправляет ошибку в формате API
func respondError(w http.ResponseWriter, status, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}

	json.NewEncoder(w).Encode(response)
}
