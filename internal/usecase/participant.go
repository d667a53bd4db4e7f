package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/repository"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/ws"
)

// ParticipantUseCase реализует приглашения и участие в матчах
type ParticipantUseCase struct {
	participantRepo repository.MatchParticipantRepository
	bookingRepo     repository.BookingMatchRepository
	placeRepo       repository.PlaceRepository
	userRepo        repository.UserRepository
	requestRepo     repository.RequestRepository
	txManager       repository.TransactionManager
	authz           *Authorizer
	notifier        Notifier
	events          EventPublisher
}

// NewParticipantUseCase создает новый usecase участников матчей
func NewParticipantUseCase(
	participantRepo repository.MatchParticipantRepository,
	bookingRepo repository.BookingMatchRepository,
	placeRepo repository.PlaceRepository,
	userRepo repository.UserRepository,
	requestRepo repository.RequestRepository,
	txManager repository.TransactionManager,
	authz *Authorizer,
	notifier Notifier,
	events EventPublisher,
) *ParticipantUseCase {
	return &ParticipantUseCase{
		participantRepo: participantRepo,
		bookingRepo:     bookingRepo,
		placeRepo:       placeRepo,
		userRepo:        userRepo,
		requestRepo:     requestRepo,
		txManager:       txManager,
		authz:           authz,
		notifier:        notifier,
		events:          events,
	}
}

func (uc *ParticipantUseCase) notifyUser(userID, requestID uuid.UUID, message string) {
	uc.events.Publish(ws.NotificationTopic(userID), ws.NotificationEvent{
		Type:      "REQUEST",
		RequestID: requestID,
		Message:   message,
		SentAt:    time.Now(),
	})
}

func (uc *ParticipantUseCase) getParticipant(ctx context.Context, participantID uuid.UUID) (*entity.MatchParticipant, error) {
	participant, err := uc.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.MatchParticipantNotFound)
		}
		return nil, fmt.Errorf("failed to get match participant: %w", err)
	}
	return participant, nil
}

// capacity возвращает вместимость матча по типу его площадки
func (uc *ParticipantUseCase) capacity(ctx context.Context, match *entity.BookingMatch) (int, error) {
	place, err := uc.placeRepo.GetByID(ctx, match.PlaceID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, domainErrors.NotFoundError(domainErrors.PlaceNotFound)
		}
		return 0, fmt.Errorf("failed to get place: %w", err)
	}
	return place.PlaceType.Capacity(), nil
}

// Invite приглашает пользователя по почте в матч; доступно организатору команды
func (uc *ParticipantUseCase) Invite(ctx context.Context, identity entity.Identity, matchID uuid.UUID, email string) (*entity.MatchParticipant, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if strings.TrimSpace(email) == "" {
		return nil, domainErrors.Validation(domainErrors.InvalidParticipantEmail)
	}

	detail, err := uc.bookingRepo.GetDetail(ctx, matchID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.BookingMatchNotFound)
		}
		return nil, fmt.Errorf("failed to get booking match: %w", err)
	}

	if err := uc.authz.RequireTeamOrganizer(ctx, identity.UserID, detail.TeamID); err != nil {
		return nil, err
	}

	invitee, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.UserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if _, err := uc.participantRepo.GetByMatchAndUser(ctx, matchID, invitee.ID); err == nil {
		return nil, domainErrors.AlreadyExists(domainErrors.MatchParticipantAlreadyExists)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check participation: %w", err)
	}

	inviter, err := uc.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inviter: %w", err)
	}

	participant := &entity.MatchParticipant{
		ID:             uuid.New(),
		BookingMatchID: matchID,
		UserID:         invitee.ID,
		Status:         entity.ParticipantStatusInvited,
		CreatedAt:      time.Now(),
	}

	message := fmt.Sprintf(
		"%s has invited you to join match at %s with team %s at %s from %s to %s",
		inviter.Username,
		detail.PlaceName,
		detail.TeamName,
		detail.StartTime.Format("January 2, 2006"),
		detail.StartTime.Format("3:04 PM"),
		detail.EndTime.Format("3:04 PM"),
	)

	request := &entity.Request{
		ID:             uuid.New(),
		SenderID:       identity.UserID,
		ReceiverID:     invitee.ID,
		JokerID:        participant.ID,
		RequestType:    entity.RequestTypeMatchInvitation,
		Status:         entity.ResponseStatusPending,
		RequestMessage: message,
		SendTime:       time.Now(),
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.participantRepo.Create(ctx, participant); err != nil {
			return fmt.Errorf("failed to create match participant: %w", err)
		}
		if err := uc.requestRepo.Create(ctx, request); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.SendMatchInvitation(invitee.Email, message, participant.ID)
	uc.notifyUser(invitee.ID, request.ID, message)

	return participant, nil
}

func parseParticipantResponse(status string) (entity.ParticipantStatus, error) {
	s := entity.ParticipantStatus(strings.ToUpper(strings.TrimSpace(status)))
	if s != entity.ParticipantStatusAccepted && s != entity.ParticipantStatusDeclined {
		return "", domainErrors.Validation(domainErrors.InvalidParticipantStatus)
	}
	return s, nil
}

// respond выполняет переход INVITED → ACCEPTED | DECLINED. Принятие
// проверяет вместимость под блокировкой строки матча; десятый принявший
// на пятерке переводит матч в PENDING_PAYMENT
func (uc *ParticipantUseCase) respond(ctx context.Context, participant *entity.MatchParticipant, status entity.ParticipantStatus) (*entity.MatchParticipant, error) {
	if participant.Status != entity.ParticipantStatusInvited {
		return nil, domainErrors.AlreadyExists(domainErrors.MatchParticipantAlreadyResponded)
	}

	responder, err := uc.userRepo.GetByID(ctx, participant.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	request, err := uc.requestRepo.GetByJoker(ctx, participant.ID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.RequestNotFound)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	var (
		match       *entity.BookingMatch
		statusMoved bool
	)

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		match, err = uc.bookingRepo.GetByIDForUpdate(ctx, participant.BookingMatchID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.NotFoundError(domainErrors.BookingMatchNotFound)
			}
			return fmt.Errorf("failed to get booking match: %w", err)
		}

		now := time.Now()
		word := "declined"

		if status == entity.ParticipantStatusAccepted {
			word = "accepted"

			capacity, err := uc.capacity(ctx, match)
			if err != nil {
				return err
			}

			accepted, err := uc.participantRepo.CountAccepted(ctx, match.ID)
			if err != nil {
				return fmt.Errorf("failed to count accepted participants: %w", err)
			}
			if accepted >= capacity {
				return domainErrors.AlreadyExists(domainErrors.MatchCapacityExceeded)
			}

			if accepted+1 == capacity && match.Status == entity.MatchStatusPendingPlayers {
				match.Status = entity.MatchStatusPendingPayment
				if err := uc.bookingRepo.Update(ctx, match); err != nil {
					return fmt.Errorf("failed to update booking match: %w", err)
				}
				statusMoved = true
			}
		}

		participant.Status = status
		participant.RespondedAt = &now
		if err := uc.participantRepo.Update(ctx, participant); err != nil {
			return fmt.Errorf("failed to update match participant: %w", err)
		}

		request.ResponseMessage = fmt.Sprintf("%s has %s the match invitation", responder.Username, word)
		request.ResponseTime = &now
		if status == entity.ParticipantStatusAccepted {
			request.Status = entity.ResponseStatusAccepted
		} else {
			request.Status = entity.ResponseStatusRejected
		}
		if err := uc.requestRepo.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if sender, err := uc.userRepo.GetByID(ctx, request.SenderID); err == nil {
		uc.notifier.SendNotice(sender.Email, "Match Invitation Response", request.ResponseMessage)
	}
	uc.notifyUser(request.SenderID, request.ID, request.ResponseMessage)

	if statusMoved {
		date := match.StartTime.Format("2006-01-02")
		uc.events.Publish(ws.BookingTopic(match.PlaceID, date), ws.SlotEvent{
			Type:      "SLOT_UPDATED",
			MatchID:   match.ID,
			PlaceID:   match.PlaceID,
			StartTime: match.StartTime,
			EndTime:   match.EndTime,
			Status:    string(match.Status),
		})
	}

	return participant, nil
}

// Respond — ответ приглашенного на приглашение в матч
func (uc *ParticipantUseCase) Respond(ctx context.Context, identity entity.Identity, participantID uuid.UUID, status string) (*entity.MatchParticipant, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	newStatus, err := parseParticipantResponse(status)
	if err != nil {
		return nil, err
	}

	participant, err := uc.getParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if participant.UserID != identity.UserID {
		return nil, domainErrors.ForbiddenAction(domainErrors.Forbidden)
	}

	return uc.respond(ctx, participant, newStatus)
}

// RespondByMail — ответ по ссылке из письма, без аутентификации
func (uc *ParticipantUseCase) RespondByMail(ctx context.Context, participantID uuid.UUID, status string) (*entity.MatchParticipant, error) {
	newStatus, err := parseParticipantResponse(status)
	if err != nil {
		return nil, err
	}

	participant, err := uc.getParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	return uc.respond(ctx, participant, newStatus)
}

// JoinAsOrganizer добавляет организатора команды в матч сразу принявшим
func (uc *ParticipantUseCase) JoinAsOrganizer(ctx context.Context, identity entity.Identity, matchID uuid.UUID) (*entity.MatchParticipant, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	match, err := uc.bookingRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.BookingMatchNotFound)
		}
		return nil, fmt.Errorf("failed to get booking match: %w", err)
	}

	if err := uc.authz.RequireTeamOrganizer(ctx, identity.UserID, match.TeamID); err != nil {
		return nil, err
	}

	if _, err := uc.participantRepo.GetByMatchAndUser(ctx, matchID, identity.UserID); err == nil {
		return nil, domainErrors.AlreadyExists(domainErrors.MatchParticipantAlreadyExists)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check participation: %w", err)
	}

	now := time.Now()
	participant := &entity.MatchParticipant{
		ID:             uuid.New(),
		BookingMatchID: matchID,
		UserID:         identity.UserID,
		Status:         entity.ParticipantStatusAccepted,
		RespondedAt:    &now,
		CreatedAt:      now,
	}

	var statusMoved bool

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		locked, err := uc.bookingRepo.GetByIDForUpdate(ctx, matchID)
		if err != nil {
			return fmt.Errorf("failed to get booking match: %w", err)
		}

		capacity, err := uc.capacity(ctx, locked)
		if err != nil {
			return err
		}

		accepted, err := uc.participantRepo.CountAccepted(ctx, matchID)
		if err != nil {
			return fmt.Errorf("failed to count accepted participants: %w", err)
		}
		if accepted >= capacity {
			return domainErrors.AlreadyExists(domainErrors.MatchCapacityExceeded)
		}

		if err := uc.participantRepo.Create(ctx, participant); err != nil {
			return fmt.Errorf("failed to create match participant: %w", err)
		}

		if accepted+1 == capacity && locked.Status == entity.MatchStatusPendingPlayers {
			locked.Status = entity.MatchStatusPendingPayment
			if err := uc.bookingRepo.Update(ctx, locked); err != nil {
				return fmt.Errorf("failed to update booking match: %w", err)
			}
			match = locked
			statusMoved = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusMoved {
		date := match.StartTime.Format("2006-01-02")
		uc.events.Publish(ws.BookingTopic(match.PlaceID, date), ws.SlotEvent{
			Type:      "SLOT_UPDATED",
			MatchID:   match.ID,
			PlaceID:   match.PlaceID,
			StartTime: match.StartTime,
			EndTime:   match.EndTime,
			Status:    string(match.Status),
		})
	}

	return participant, nil
}

// GetByMatch возвращает участников матча; не-организаторы видят только принявших
func (uc *ParticipantUseCase) GetByMatch(ctx context.Context, identity entity.Identity, matchID uuid.UUID) ([]*entity.ParticipantDetail, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	match, err := uc.bookingRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.BookingMatchNotFound)
		}
		return nil, fmt.Errorf("failed to get booking match: %w", err)
	}

	participants, err := uc.participantRepo.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match participants: %w", err)
	}

	isOrganizer, err := uc.authz.IsTeamOrganizer(ctx, identity.UserID, match.TeamID)
	if err != nil {
		return nil, err
	}
	if isOrganizer {
		return participants, nil
	}

	accepted := make([]*entity.ParticipantDetail, 0, len(participants))
	for _, p := range participants {
		if p.Status == entity.ParticipantStatusAccepted {
			accepted = append(accepted, p)
		}
	}

	return accepted, nil
}

// GetUserMatches возвращает участия текущего пользователя
func (uc *ParticipantUseCase) GetUserMatches(ctx context.Context, identity entity.Identity) ([]*entity.UserMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	matches, err := uc.participantRepo.GetUserMatches(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user matches: %w", err)
	}

	return matches, nil
}
