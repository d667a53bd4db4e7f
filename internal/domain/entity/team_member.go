package entity

import (
	"time"

	"github.com/google/uuid"
)

type TeamRole string

const (
	TeamRoleOrganizer TeamRole = "ORGANIZER"
	TeamRolePlayer    TeamRole = "PLAYER"
)

func (r TeamRole) Valid() bool {
	return r == TeamRoleOrganizer || r == TeamRolePlayer
}

// TeamStatus — статус членства: PENDING переходит ровно один раз
// в APPROVED или REJECTED
type TeamStatus string

const (
	TeamStatusPending  TeamStatus = "PENDING"
	TeamStatusApproved TeamStatus = "APPROVED"
	TeamStatusRejected TeamStatus = "REJECTED"
)

func (s TeamStatus) Valid() bool {
	return s == TeamStatusPending || s == TeamStatusApproved || s == TeamStatusRejected
}

type TeamMember struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	UserID    uuid.UUID
	Role      TeamRole
	Status    TeamStatus
	InvitedBy *uuid.UUID
	CreatedAt time.Time
}

// TeamMemberDetail — членство, денормализованное данными пользователя и команды
type TeamMemberDetail struct {
	ID       uuid.UUID
	TeamID   uuid.UUID
	TeamName string
	UserID   uuid.UUID
	Username string
	Email    string
	Role     TeamRole
	Status   TeamStatus
}
