package handler

import (
	"encoding/json"
	"net/http"

	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
)

// ParticipantHandler обрабатывает запросы для участников матчей
type ParticipantHandler struct {
	participantUseCase *usecase.ParticipantUseCase
	frontendURL        string
}

// NewParticipantHandler создает новый handler участников матчей
func NewParticipantHandler(participantUseCase *usecase.ParticipantUseCase, frontendURL string) *ParticipantHandler {
	return &ParticipantHandler{
		participantUseCase: participantUseCase,
		frontendURL:        frontendURL,
	}
}

// Invite обрабатывает POST /api/match-participants/invite/{matchId}
func (h *ParticipantHandler) Invite(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matchID, ok := pathUUID(r, "matchId")
	if !ok {
		respondInvalidID(w)
		return
	}

	var req dto.InviteParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	participant, err := h.participantUseCase.Invite(r.Context(), identity, matchID, req.Email)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToParticipantDTO(participant))
}

// Respond обрабатывает GET /api/match-participants/respond/{id}
func (h *ParticipantHandler) Respond(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	participantID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	participant, err := h.participantUseCase.Respond(r.Context(), identity, participantID, r.URL.Query().Get("status"))
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToParticipantDTO(participant))
}

// RespondByMail обрабатывает GET /api/match-participants/respond-mail/{id}
// и редиректит на фронтенд
func (h *ParticipantHandler) RespondByMail(w http.ResponseWriter, r *http.Request) {
	participantID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	if _, err := h.participantUseCase.RespondByMail(r.Context(), participantID, r.URL.Query().Get("status")); err != nil {
		handleUseCaseError(w, err)
		return
	}

	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

// JoinAsOrganizer обрабатывает POST /api/match-participants/join-as-organizer/{matchId}
func (h *ParticipantHandler) JoinAsOrganizer(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matchID, ok := pathUUID(r, "matchId")
	if !ok {
		respondInvalidID(w)
		return
	}

	participant, err := h.participantUseCase.JoinAsOrganizer(r.Context(), identity, matchID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToParticipantDTO(participant))
}

// GetByMatch обрабатывает GET /api/match-participants/match/{matchId}
func (h *ParticipantHandler) GetByMatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matchID, ok := pathUUID(r, "matchId")
	if !ok {
		respondInvalidID(w)
		return
	}

	participants, err := h.participantUseCase.GetByMatch(r.Context(), identity, matchID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToParticipantDetailDTOs(participants))
}

// GetUserMatches обрабатывает GET /api/match-participants/user/matches
func (h *ParticipantHandler) GetUserMatches(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matches, err := h.participantUseCase.GetUserMatches(r.Context(), identity)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	result := make([]map[string]interface{}, 0, len(matches))
	for _, m := range matches {
		result = append(result, map[string]interface{}{
			"matchId":          m.MatchID,
			"participantId":    m.ParticipantID,
			"invitationStatus": string(m.InvitationStatus),
		})
	}

	respondJSON(w, http.StatusOK, result)
}

// GetUserMatchesDetails обрабатывает GET /api/match-participants/user/matches/details
func (h *ParticipantHandler) GetUserMatchesDetails(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	matches, err := h.participantUseCase.GetUserMatches(r.Context(), identity)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserMatchDTOs(matches))
}
