package handler

import (
	"encoding/json"
	"net/http"

	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/dto"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
)

// TeamMemberHandler обрабатывает запросы для членств в командах
type TeamMemberHandler struct {
	memberUseCase *usecase.TeamMemberUseCase
	frontendURL   string
}

// NewTeamMemberHandler создает новый handler членств
func NewTeamMemberHandler(memberUseCase *usecase.TeamMemberUseCase, frontendURL string) *TeamMemberHandler {
	return &TeamMemberHandler{
		memberUseCase: memberUseCase,
		frontendURL:   frontendURL,
	}
}

// Invite обрабатывает POST /api/team-members/invite/{teamId}
func (h *TeamMemberHandler) Invite(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "teamId")
	if !ok {
		respondInvalidID(w)
		return
	}

	var req dto.InviteTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, domainErrors.NoData.Code, "invalid request body")
		return
	}

	member, err := h.memberUseCase.Invite(r.Context(), identity, teamID, req.Email)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTeamMemberDTO(member))
}

// RequestToJoin обрабатывает POST /api/team-members/join-request/{teamId}
func (h *TeamMemberHandler) RequestToJoin(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "teamId")
	if !ok {
		respondInvalidID(w)
		return
	}

	member, err := h.memberUseCase.RequestToJoin(r.Context(), identity, teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTeamMemberDTO(member))
}

// RespondToInvitation обрабатывает GET /api/team-members/respond/{id}
func (h *TeamMemberHandler) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	memberID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	member, err := h.memberUseCase.RespondToInvitation(r.Context(), identity, memberID, r.URL.Query().Get("status"))
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamMemberDTO(member))
}

// RespondToInvitationByMail обрабатывает GET /api/team-members/respond-mail/{id}
// и редиректит на фронтенд
func (h *TeamMemberHandler) RespondToInvitationByMail(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	if _, err := h.memberUseCase.RespondToInvitationByMail(r.Context(), memberID, r.URL.Query().Get("status")); err != nil {
		handleUseCaseError(w, err)
		return
	}

	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

// RespondToJoinRequest обрабатывает GET /api/team-members/join-request/respond/{id}/{organizerId}
func (h *TeamMemberHandler) RespondToJoinRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	memberID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	organizerID, ok := pathUUID(r, "organizerId")
	if !ok {
		respondInvalidID(w)
		return
	}

	member, err := h.memberUseCase.RespondToJoinRequest(r.Context(), identity, memberID, organizerID, r.URL.Query().Get("status"))
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamMemberDTO(member))
}

// RespondToJoinRequestByMail обрабатывает GET /api/team-members/join-request/respond-mail/{id}/{organizerId}
func (h *TeamMemberHandler) RespondToJoinRequestByMail(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	organizerID, ok := pathUUID(r, "organizerId")
	if !ok {
		respondInvalidID(w)
		return
	}

	if _, err := h.memberUseCase.RespondToJoinRequestByMail(r.Context(), memberID, organizerID, r.URL.Query().Get("status")); err != nil {
		handleUseCaseError(w, err)
		return
	}

	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

// GetPendingByTeam обрабатывает GET /api/team-members/join-requests/{teamId}
func (h *TeamMemberHandler) GetPendingByTeam(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "teamId")
	if !ok {
		respondInvalidID(w)
		return
	}

	members, err := h.memberUseCase.GetPendingByTeam(r.Context(), identity, teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamMemberDetailDTOs(members))
}

// GetByTeam обрабатывает GET /api/team-members/team/{teamId}
func (h *TeamMemberHandler) GetByTeam(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "teamId")
	if !ok {
		respondInvalidID(w)
		return
	}

	members, err := h.memberUseCase.GetByTeam(r.Context(), identity, teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamMemberDetailDTOs(members))
}

// GetByUser обрабатывает GET /api/team-members/user/{userId}
func (h *TeamMemberHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	userID, ok := pathUUID(r, "userId")
	if !ok {
		respondInvalidID(w)
		return
	}

	members, err := h.memberUseCase.GetByUser(r.Context(), identity, userID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamMemberDetailDTOs(members))
}

// GetByID обрабатывает GET /api/team-members/{id}
func (h *TeamMemberHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	memberID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	member, err := h.memberUseCase.GetByID(r.Context(), identity, memberID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamMemberDTO(member))
}

// IsOrganizer обрабатывает GET /api/team-members/is-organizer/{teamId}
func (h *TeamMemberHandler) IsOrganizer(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	teamID, ok := pathUUID(r, "teamId")
	if !ok {
		respondInvalidID(w)
		return
	}

	isOrganizer, err := h.memberUseCase.IsOrganizer(r.Context(), identity, teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.IsOrganizerResponse{IsOrganizer: isOrganizer})
}

// Delete обрабатывает DELETE /api/team-members/{id}
func (h *TeamMemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	memberID, ok := pathUUID(r, "id")
	if !ok {
		respondInvalidID(w)
		return
	}

	if err := h.memberUseCase.Delete(r.Context(), identity, memberID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
