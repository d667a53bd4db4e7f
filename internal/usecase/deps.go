package usecase

import "github.com/google/uuid"

// Notifier отправляет письма пользователям; реализация не блокирует вызывающего
type Notifier interface {
	SendTeamInvitation(to, message string, memberID uuid.UUID)
	SendTeamJoinRequest(to, message string, memberID, organizerID uuid.UUID)
	SendMatchInvitation(to, message string, participantID uuid.UUID)
	SendNotice(to, subject, message string)
}

// EventPublisher рассылает события подписчикам топика
type EventPublisher interface {
	Publish(topic string, event interface{})
}
