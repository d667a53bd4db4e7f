package entity

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus — жизненный цикл брони:
// PENDING_PLAYERS → PENDING_PAYMENT → CONFIRMED; отмена до CONFIRMED
type MatchStatus string

const (
	MatchStatusPendingPlayers MatchStatus = "PENDING_PLAYERS"
	MatchStatusPendingPayment MatchStatus = "PENDING_PAYMENT"
	MatchStatusConfirmed      MatchStatus = "CONFIRMED"
	MatchStatusCancelled      MatchStatus = "CANCELLED"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPendingPlayers, MatchStatusPendingPayment, MatchStatusConfirmed, MatchStatusCancelled:
		return true
	}
	return false
}

type BookingMatch struct {
	ID        uuid.UUID
	PlaceID   uuid.UUID
	UserID    uuid.UUID
	TeamID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    MatchStatus
	CreatedAt time.Time
}

// BookingDetail — бронь, денормализованная данными площадки, команды и организатора
type BookingDetail struct {
	ID        uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    MatchStatus
	CreatedAt time.Time

	PlaceID   uuid.UUID
	PlaceName string
	PlaceType PlaceType

	TeamID   uuid.UUID
	TeamName string

	UserID   uuid.UUID
	Username string
}
