package handler

import (
	"net/http"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
)

// RequestHandler обрабатывает запросы-уведомления
type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
}

// NewRequestHandler создает новый handler запросов
func NewRequestHandler(requestUseCase *usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{requestUseCase: requestUseCase}
}

// GetReceived обрабатывает GET /api/requests/received
func (h *RequestHandler) GetReceived(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	requests, err := h.requestUseCase.GetReceived(r.Context(), identity)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToRequestDTOs(requests))
}

// GetSent обрабатывает GET /api/requests/sent
func (h *RequestHandler) GetSent(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	requests, err := h.requestUseCase.GetSent(r.Context(), identity)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToRequestDTOs(requests))
}
