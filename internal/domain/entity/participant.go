package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantStatus — жизненный цикл приглашения: INVITED → ACCEPTED | DECLINED
type ParticipantStatus string

const (
	ParticipantStatusInvited  ParticipantStatus = "INVITED"
	ParticipantStatusAccepted ParticipantStatus = "ACCEPTED"
	ParticipantStatusDeclined ParticipantStatus = "DECLINED"
)

func (s ParticipantStatus) Valid() bool {
	return s == ParticipantStatusInvited || s == ParticipantStatusAccepted || s == ParticipantStatusDeclined
}

type MatchParticipant struct {
	ID             uuid.UUID
	BookingMatchID uuid.UUID
	UserID         uuid.UUID
	Status         ParticipantStatus
	RespondedAt    *time.Time
	CreatedAt      time.Time
}

// ParticipantDetail — участник, денормализованный данными пользователя
type ParticipantDetail struct {
	ID             uuid.UUID
	BookingMatchID uuid.UUID
	UserID         uuid.UUID
	Username       string
	Email          string
	Status         ParticipantStatus
	RespondedAt    *time.Time
}

// UserMatch — участие пользователя в матче для сводного списка
type UserMatch struct {
	MatchID          uuid.UUID
	ParticipantID    uuid.UUID
	TeamID           uuid.UUID
	TeamName         string
	PlaceID          uuid.UUID
	PlaceName        string
	StartTime        time.Time
	EndTime          time.Time
	BookingStatus    MatchStatus
	InvitationStatus ParticipantStatus
}
