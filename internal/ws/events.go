package ws

import (
	"time"

	"github.com/google/uuid"
)

// SlotEvent — изменение расписания площадки на день
type SlotEvent struct {
	Type      string    `json:"type"`
	MatchID   uuid.UUID `json:"matchId"`
	PlaceID   uuid.UUID `json:"placeId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

// NotificationEvent — персональное уведомление пользователя
type NotificationEvent struct {
	Type      string    `json:"type"`
	RequestID uuid.UUID `json:"requestId"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sentAt"`
}
