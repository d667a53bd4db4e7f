package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
)

// ErrorResponse — ответ с ошибкой в формате API
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail — стабильный числовой код и сообщение
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- Аутентификация ---

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	UserID uuid.UUID `json:"userId"`
	Token  string    `json:"token"`
	Role   string    `json:"role"`
}

// --- Пользователи ---

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserDTO(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []*entity.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserDTO(u))
	}
	return result
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

type CheckPasswordRequest struct {
	Password string `json:"password"`
}

// --- Площадки ---

type CreatePlaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	PlaceType   string `json:"placeType"`
	ImageURL    string `json:"imageUrl"`
}

type UpdatePlaceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	PlaceType   *string `json:"placeType"`
	ImageURL    *string `json:"imageUrl"`
}

type PlaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PlaceType   string    `json:"placeType"`
	Capacity    int       `json:"capacity"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToPlaceDTO(place *entity.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID,
		Name:        place.Name,
		Description: place.Description,
		Location:    place.Location,
		PlaceType:   string(place.PlaceType),
		Capacity:    place.PlaceType.Capacity(),
		ImageURL:    place.ImageURL,
		CreatedAt:   place.CreatedAt,
	}
}

func ToPlaceDTOs(places []*entity.Place) []PlaceResponse {
	result := make([]PlaceResponse, 0, len(places))
	for _, p := range places {
		result = append(result, ToPlaceDTO(p))
	}
	return result
}

// --- Команды ---

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type TeamResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uuid.UUID `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToTeamDTO(team *entity.Team) TeamResponse {
	return TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatorID:   team.CreatorID,
		CreatedAt:   team.CreatedAt,
	}
}

func ToTeamDTOs(teams []*entity.Team) []TeamResponse {
	result := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		result = append(result, ToTeamDTO(t))
	}
	return result
}

// --- Участники команд ---

type InviteTeamMemberRequest struct {
	Email string `json:"email"`
}

type TeamMemberResponse struct {
	ID        uuid.UUID  `json:"id"`
	TeamID    uuid.UUID  `json:"teamId"`
	UserID    uuid.UUID  `json:"userId"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	InvitedBy *uuid.UUID `json:"invitedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func ToTeamMemberDTO(member *entity.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:        member.ID,
		TeamID:    member.TeamID,
		UserID:    member.UserID,
		Role:      string(member.Role),
		Status:    string(member.Status),
		InvitedBy: member.InvitedBy,
		CreatedAt: member.CreatedAt,
	}
}

type TeamMemberDetailResponse struct {
	ID       uuid.UUID `json:"id"`
	TeamID   uuid.UUID `json:"teamId"`
	TeamName string    `json:"teamName"`
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
}

func ToTeamMemberDetailDTOs(members []*entity.TeamMemberDetail) []TeamMemberDetailResponse {
	result := make([]TeamMemberDetailResponse, 0, len(members))
	for _, m := range members {
		result = append(result, TeamMemberDetailResponse{
			ID:       m.ID,
			TeamID:   m.TeamID,
			TeamName: m.TeamName,
			UserID:   m.UserID,
			Username: m.Username,
			Email:    m.Email,
			Role:     string(m.Role),
			Status:   string(m.Status),
		})
	}
	return result
}

type IsOrganizerResponse struct {
	IsOrganizer bool `json:"isOrganizer"`
}

// --- Брони ---

type CreateBookingRequest struct {
	PlaceID   uuid.UUID `json:"placeId"`
	TeamID    uuid.UUID `json:"teamId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	PlaceID   uuid.UUID `json:"placeId"`
	UserID    uuid.UUID `json:"userId"`
	TeamID    uuid.UUID `json:"teamId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToBookingDTO(match *entity.BookingMatch) BookingResponse {
	return BookingResponse{
		ID:        match.ID,
		PlaceID:   match.PlaceID,
		UserID:    match.UserID,
		TeamID:    match.TeamID,
		StartTime: match.StartTime,
		EndTime:   match.EndTime,
		Status:    string(match.Status),
		CreatedAt: match.CreatedAt,
	}
}

func ToBookingDTOs(matches []*entity.BookingMatch) []BookingResponse {
	result := make([]BookingResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, ToBookingDTO(m))
	}
	return result
}

type BookingDetailResponse struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	PlaceID   uuid.UUID `json:"placeId"`
	PlaceName string    `json:"placeName"`
	PlaceType string    `json:"placeType"`
	TeamID    uuid.UUID `json:"teamId"`
	TeamName  string    `json:"teamName"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
}

func ToBookingDetailDTO(d *entity.BookingDetail) BookingDetailResponse {
	return BookingDetailResponse{
		ID:        d.ID,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		PlaceID:   d.PlaceID,
		PlaceName: d.PlaceName,
		PlaceType: string(d.PlaceType),
		TeamID:    d.TeamID,
		TeamName:  d.TeamName,
		UserID:    d.UserID,
		Username:  d.Username,
	}
}

func ToBookingDetailDTOs(details []*entity.BookingDetail) []BookingDetailResponse {
	result := make([]BookingDetailResponse, 0, len(details))
	for _, d := range details {
		result = append(result, ToBookingDetailDTO(d))
	}
	return result
}

// --- Участники матчей ---

type InviteParticipantRequest struct {
	Email string `json:"email"`
}

type ParticipantResponse struct {
	ID             uuid.UUID  `json:"id"`
	BookingMatchID uuid.UUID  `json:"bookingMatchId"`
	UserID         uuid.UUID  `json:"userId"`
	Status         string     `json:"status"`
	RespondedAt    *time.Time `json:"respondedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func ToParticipantDTO(p *entity.MatchParticipant) ParticipantResponse {
	return ParticipantResponse{
		ID:             p.ID,
		BookingMatchID: p.BookingMatchID,
		UserID:         p.UserID,
		Status:         string(p.Status),
		RespondedAt:    p.RespondedAt,
		CreatedAt:      p.CreatedAt,
	}
}

type ParticipantDetailResponse struct {
	ID             uuid.UUID  `json:"id"`
	BookingMatchID uuid.UUID  `json:"bookingMatchId"`
	UserID         uuid.UUID  `json:"userId"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Status         string     `json:"status"`
	RespondedAt    *time.Time `json:"respondedAt,omitempty"`
}

func ToParticipantDetailDTOs(participants []*entity.ParticipantDetail) []ParticipantDetailResponse {
	result := make([]ParticipantDetailResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, ParticipantDetailResponse{
			ID:             p.ID,
			BookingMatchID: p.BookingMatchID,
			UserID:         p.UserID,
			Username:       p.Username,
			Email:          p.Email,
			Status:         string(p.Status),
			RespondedAt:    p.RespondedAt,
		})
	}
	return result
}

type UserMatchResponse struct {
	MatchID          uuid.UUID `json:"matchId"`
	ParticipantID    uuid.UUID `json:"participantId"`
	TeamID           uuid.UUID `json:"teamId"`
	TeamName         string    `json:"teamName"`
	PlaceID          uuid.UUID `json:"placeId"`
	PlaceName        string    `json:"placeName"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	BookingStatus    string    `json:"bookingStatus"`
	InvitationStatus string    `json:"invitationStatus"`
}

func ToUserMatchDTOs(matches []*entity.UserMatch) []UserMatchResponse {
	result := make([]UserMatchResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, UserMatchResponse{
			MatchID:          m.MatchID,
			ParticipantID:    m.ParticipantID,
			TeamID:           m.TeamID,
			TeamName:         m.TeamName,
			PlaceID:          m.PlaceID,
			PlaceName:        m.PlaceName,
			StartTime:        m.StartTime,
			EndTime:          m.EndTime,
			BookingStatus:    string(m.BookingStatus),
			InvitationStatus: string(m.InvitationStatus),
		})
	}
	return result
}

// --- Запросы ---

type RequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	SenderID        uuid.UUID  `json:"senderId"`
	SenderEmail     string     `json:"senderEmail"`
	ReceiverID      uuid.UUID  `json:"receiverId"`
	JokerID         uuid.UUID  `json:"jokerId"`
	RequestType     string     `json:"requestType"`
	Status          string     `json:"status"`
	RequestMessage  string     `json:"requestMessage"`
	ResponseMessage string     `json:"responseMessage,omitempty"`
	SendTime        time.Time  `json:"sendTime"`
	ResponseTime    *time.Time `json:"responseTime,omitempty"`
}

func ToRequestDTOs(requests []*entity.RequestDetail) []RequestResponse {
	result := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, RequestResponse{
			ID:              r.ID,
			SenderID:        r.SenderID,
			SenderEmail:     r.SenderEmail,
			ReceiverID:      r.ReceiverID,
			JokerID:         r.JokerID,
			RequestType:     string(r.RequestType),
			Status:          string(r.Status),
			RequestMessage:  r.RequestMessage,
			ResponseMessage: r.ResponseMessage,
			SendTime:        r.SendTime,
			ResponseTime:    r.ResponseTime,
		})
	}
	return result
}
