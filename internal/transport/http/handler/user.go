package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
)

// UserHandler обрабатывает запросы для пользователей
type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

// NewUserHandler создает новый handler пользователей
func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

// GetByID обрабатывает GET /api/users/{id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	userID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	user, err := h.userUseCase.GetByID(r.Context(), identity, userID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserDTO(user))
}

// Filter обрабатывает GET /api/users
func (h *UserHandler) Filter(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := entity.UserFilter{
		Email:    q.Get("email"),
		Username: q.Get("username"),
		Role:     entity.UserRole(q.Get("role")),
		Status:   entity.UserStatus(q.Get("status")),
		SortBy:   q.Get("sort_by"),
		SortDesc: q.Get("sort_dir") == "desc",
		Page:     queryInt(r, "page", 0),
		Size:     queryInt(r, "size", 20),
	}

	users, err := h.userUseCase.Filter(r.Context(), identity, filter)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserDTOs(users))
}

// Update обрабатывает PATCH /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	userID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	params := usecase.UpdateUserParams{
		Username: req.Username,
		Password: req.Password,
	}
	if req.Role != nil {
		role := entity.UserRole(*req.Role)
		params.Role = &role
	}
	if req.Status != nil {
		status := entity.UserStatus(*req.Status)
		params.Status = &status
	}

	user, err := h.userUseCase.Update(r.Context(), identity, userID, params)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserDTO(user))
}

// CheckPassword обрабатывает POST /api/users/check-password
func (h *UserHandler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req dto.CheckPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	if err := h.userUseCase.CheckPassword(r.Context(), identity, req.Password); err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// Delete обрабатывает DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	userID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	if err := h.userUseCase.Delete(r.Context(), identity, userID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
