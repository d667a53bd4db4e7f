package handler

import (
	"encoding/json"
	"net/http"

	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
)

// BookingHandler обрабатывает запросы для броней
type BookingHandler struct {
	bookingUseCase *usecase.BookingUseCase
}

// NewBookingHandler создает новый handler броней
func NewBookingHandler(bookingUseCase *usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{bookingUseCase: bookingUseCase}
}

// Create обрабатывает POST /api/booking-matches
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	match, err := h.bookingUseCase.Create(r.Context(), identity, usecase.CreateBookingParams{
		PlaceID:   req.PlaceID,
		TeamID:    req.TeamID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToBookingDTO(match))
}

// Confirm обрабатывает PATCH /api/booking-matches/confirm/{id}
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matchID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	match, err := h.bookingUseCase.Confirm(r.Context(), identity, matchID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDTO(match))
}

// Cancel обрабатывает PATCH /api/booking-matches/cancel/{id}
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matchID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	match, err := h.bookingUseCase.Cancel(r.Context(), identity, matchID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDTO(match))
}

// GetByID обрабатывает GET /api/booking-matches/{id}
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matchID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	match, err := h.bookingUseCase.GetByID(r.Context(), identity, matchID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDTO(match))
}

// GetDetail обрабатывает GET /api/booking-matches/details/{id}
func (h *BookingHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matchID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	detail, err := h.bookingUseCase.GetDetail(r.Context(), identity, matchID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDetailDTO(detail))
}

// GetByUser обрабатывает GET /api/booking-matches/user/{userId}
func (h *BookingHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	userID, ok := pathUUID(r, "userId")
	if !ok {
		respondInvalidID(w)
		return
	}

	matches, err := h.bookingUseCase.GetByUser(r.Context(), identity, userID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDTOs(matches))
}

// GetByTeam обрабатывает GET /api/booking-matches/team/{teamId}
func (h *BookingHandler) GetByTeam(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "teamId")
	if !ok {
		respondInvalidID(w)
		return
	}

	matches, err := h.bookingUseCase.GetByTeam(r.Context(), identity, teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDTOs(matches))
}

// GetByPlace обрабатывает GET /api/booking-matches/place/{placeId}
func (h *BookingHandler) GetByPlace(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	placeID, ok := pathUUID(r, "placeId")
	if !ok {
		respondInvalidID(w)
		return
	}

	matches, err := h.bookingUseCase.GetByPlace(r.Context(), identity, placeID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDTOs(matches))
}

// GetAll обрабатывает GET /api/booking-matches/all
func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	details, err := h.bookingUseCase.GetAllDetailed(r.Context(), identity)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDetailDTOs(details))
}

// GetMyOrganized обрабатывает GET /api/booking-matches/my/organizer
func (h *BookingHandler) GetMyOrganized(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matches, err := h.bookingUseCase.GetMyOrganized(r.Context(), identity)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBookingDTOs(matches))
}
