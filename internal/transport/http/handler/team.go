package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
)

// TeamHandler обрабатывает запросы для команд
type TeamHandler struct {
	teamUseCase *usecase.TeamUseCase
}

// NewTeamHandler создает новый handler команд
func NewTeamHandler(teamUseCase *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{teamUseCase: teamUseCase}
}

// Create обрабатывает POST /api/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	team, err := h.teamUseCase.Create(r.Context(), identity, req.Name, req.Description)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTeamDTO(team))
}

// GetByID обрабатывает GET /api/teams/{id}
func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	team, err := h.teamUseCase.GetByID(r.Context(), identity, teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTO(team))
}

// Filter обрабатывает GET /api/teams
func (h *TeamHandler) Filter(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := entity.TeamFilter{
		Name:        q.Get("name"),
		Description: q.Get("description"),
		Page:        queryInt(r, "page", 0),
		Size:        queryInt(r, "size", 20),
	}

	teams, err := h.teamUseCase.Filter(r.Context(), identity, filter)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTOs(teams))
}

// Update обрабатывает PATCH /api/teams/{id}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	var req dto.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	team, err := h.teamUseCase.Update(r.Context(), identity, teamID, usecase.UpdateTeamParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTO(team))
}

// Delete обрабатывает DELETE /api/teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	if err := h.teamUseCase.Delete(r.Context(), identity, teamID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetMy обрабатывает GET /api/teams/my
func (h *TeamHandler) GetMy(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teams, err := h.teamUseCase.GetMy(r.Context(), identity, queryInt(r, "page", 0), queryInt(r, "size", 20))
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTOs(teams))
}

// GetOthers обрабатывает GET /api/teams/others
func (h *TeamHandler) GetOthers(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teams, err := h.teamUseCase.GetOthers(r.Context(), identity, queryInt(r, "page", 0), queryInt(r, "size", 20))
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTOs(teams))
}
