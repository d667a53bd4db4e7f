package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/middleware"
)

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
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

// handleUseCaseError обрабатывает ошибки из usecase слоя
func handleUseCaseError(w http.ResponseWriter, err error) {
	domainErr, ok := domainErrors.AsDomain(err)
	if !ok {
		respondError(w, http.StatusInternalServerError,
			domainErrors.InternalError.Code, domainErrors.InternalError.Message)
		return
	}

	if domainErr.Kind == domainErrors.KindNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondError(w, statusByKind(domainErr.Kind), domainErr.Code, domainErr.Message)
}

// statusByKind возвращает HTTP статус код по категории доменной ошибки
func statusByKind(kind domainErrors.Kind) int {
	switch kind {
	case domainErrors.KindValidation, domainErrors.KindNoData:
		return http.StatusBadRequest
	case domainErrors.KindNotFound:
		return http.StatusNotFound
	case domainErrors.KindAlreadyExists:
		return http.StatusConflict
	case domainErrors.KindForbidden:
		return http.StatusForbidden
	case domainErrors.KindInvalidCredentials, domainErrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// pathUUID извлекает UUID из параметра пути
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func respondInvalidID(w http.ResponseWriter) {
	respondError(w, http.StatusBadRequest, domainErrors.NotFound.Code, "invalid id in path")
}

// queryInt читает целочисленный query-параметр с значением по умолчанию
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// identityFrom достает Identity из контекста запроса
func identityFrom(w http.ResponseWriter, r *http.Request) (entity.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized,
			domainErrors.Unauthorized.Code, domainErrors.Unauthorized.Message)
		return entity.Identity{}, false
	}
	return identity, true
}
