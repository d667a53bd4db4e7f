package handler

import (
	"encoding/json"
	"net/http"

	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
)

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

// NewAuthHandler создает новый handler аутентификации
func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	user, token, err := h.authUseCase.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.AuthResponse{
		UserID: user.ID,
		Token:  token,
		Role:   string(user.Role),
	})
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	user, token, err := h.authUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.AuthResponse{
		UserID: user.ID,
		Token:  token,
		Role:   string(user.Role),
	})
}
