package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
)

// PlaceHandler обрабатывает запросы для площадок
type PlaceHandler struct {
	placeUseCase *usecase.PlaceUseCase
}

// NewPlaceHandler создает новый handler площадок
func NewPlaceHandler(placeUseCase *usecase.PlaceUseCase) *PlaceHandler {
	return &PlaceHandler{placeUseCase: placeUseCase}
}

// Create обрабатывает POST /api/places
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	place, err := h.placeUseCase.Create(r.Context(), identity, usecase.CreatePlaceParams{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		PlaceType:   entity.PlaceType(req.PlaceType),
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToPlaceDTO(place))
}

// GetByID обрабатывает GET /api/places/{id}
func (h *PlaceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	placeID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	place, err := h.placeUseCase.GetByID(r.Context(), identity, placeID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToPlaceDTO(place))
}

// Filter обрабатывает GET /api/places
func (h *PlaceHandler) Filter(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := entity.PlaceFilter{
		Name:      q.Get("name"),
		Location:  q.Get("location"),
		PlaceType: entity.PlaceType(q.Get("type")),
		Page:      queryInt(r, "page", 0),
		Size:      queryInt(r, "size", 20),
	}

	places, err := h.placeUseCase.Filter(r.Context(), identity, filter)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToPlaceDTOs(places))
}

// Update обрабатывает PATCH /api/places/{id}
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	placeID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	var req dto.UpdatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	params := usecase.UpdatePlaceParams{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}
	if req.PlaceType != nil {
		placeType := entity.PlaceType(*req.PlaceType)
		params.PlaceType = &placeType
	}

	place, err := h.placeUseCase.Update(r.Context(), identity, placeID, params)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToPlaceDTO(place))
}

// Delete обрабатывает DELETE /api/places/{id}
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	placeID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	if err := h.placeUseCase.Delete(r.Context(), identity, placeID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
