package entity

import (
	"time"

	"github.com/google/uuid"
)

type RequestType string

const (
	RequestTypeJoinTeamInvitation RequestType = "JOIN_TEAM_INVITATION"
	RequestTypeJoinTeamRequest    RequestType = "JOIN_TEAM_REQUEST"
	RequestTypeMatchInvitation    RequestType = "MATCH_INVITATION"
)

func (t RequestType) Valid() bool {
	return t == RequestTypeJoinTeamInvitation || t == RequestTypeJoinTeamRequest || t == RequestTypeMatchInvitation
}

type ResponseStatus string

const (
	ResponseStatusPending  ResponseStatus = "PENDING"
	ResponseStatusAccepted ResponseStatus = "ACCEPTED"
	ResponseStatusRejected ResponseStatus = "REJECTED"
)

func (s ResponseStatus) Valid() bool {
	return s == ResponseStatusPending || s == ResponseStatusAccepted || s == ResponseStatusRejected
}

// Request — запись уведомления; JokerID ссылается на TeamMember
// или MatchParticipant в зависимости от RequestType
type Request struct {
	ID              uuid.UUID
	SenderID        uuid.UUID
	ReceiverID      uuid.UUID
	JokerID         uuid.UUID
	RequestType     RequestType
	Status          ResponseStatus
	RequestMessage  string
	ResponseMessage string
	SendTime        time.Time
	ResponseTime    *time.Time
}

// RequestDetail — запрос, денормализованный почтой отправителя
type RequestDetail struct {
	Request
	SenderEmail string
}
