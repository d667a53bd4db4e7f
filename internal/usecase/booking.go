package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/repository"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/ws"
)

// cancelDeadline — минимальный срок до начала матча, после которого отмена запрещена
const cancelDeadline = 3 * time.Hour

// BookingUseCase реализует бизнес-логику бронирования матчей
type BookingUseCase struct {
	bookingRepo repository.BookingMatchRepository
	placeRepo   repository.PlaceRepository
	teamRepo    repository.TeamRepository
	memberRepo  repository.TeamMemberRepository
	txManager   repository.TransactionManager
	authz       *Authorizer
	events      EventPublisher
}

// NewBookingUseCase создает новый usecase бронирования
func NewBookingUseCase(
	bookingRepo repository.BookingMatchRepository,
	placeRepo repository.PlaceRepository,
	teamRepo repository.TeamRepository,
	memberRepo repository.TeamMemberRepository,
	txManager repository.TransactionManager,
	authz *Authorizer,
	events EventPublisher,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo: bookingRepo,
		placeRepo:   placeRepo,
		teamRepo:    teamRepo,
		memberRepo:  memberRepo,
		txManager:   txManager,
		authz:       authz,
		events:      events,
	}
}

// CreateBookingParams — данные для создания брони
type CreateBookingParams struct {
	PlaceID   uuid.UUID
	TeamID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

func (uc *BookingUseCase) publishSlotEvent(eventType string, match *entity.BookingMatch) {
	date := match.StartTime.Format("2006-01-02")
	uc.events.Publish(ws.BookingTopic(match.PlaceID, date), ws.SlotEvent{
		Type:      eventType,
		MatchID:   match.ID,
		PlaceID:   match.PlaceID,
		StartTime: match.StartTime,
		EndTime:   match.EndTime,
		Status:    string(match.Status),
	})
}

func (uc *BookingUseCase) getMatch(ctx context.Context, matchID uuid.UUID) (*entity.BookingMatch, error) {
	match, err := uc.bookingRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.BookingMatchNotFound)
		}
		return nil, fmt.Errorf("failed to get booking match: %w", err)
	}
	return match, nil
}

// Create бронирует площадку для команды. Пересечение интервалов проверяется
// внутри транзакции вставки и продублировано exclusion constraint,
// так что гонка двух организаторов не создаст двойную бронь
func (uc *BookingUseCase) Create(ctx context.Context, identity entity.Identity, params CreateBookingParams) (*entity.BookingMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if params.StartTime.IsZero() {
		return nil, domainErrors.Validation(domainErrors.InvalidBookingStartTime)
	}
	if !params.EndTime.After(params.StartTime) {
		return nil, domainErrors.Validation(domainErrors.InvalidBookingEndTime)
	}

	if _, err := uc.placeRepo.GetByID(ctx, params.PlaceID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.PlaceNotFound)
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	ok, err := uc.authz.IsTeamOrganizer(ctx, identity.UserID, params.TeamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainErrors.ForbiddenAction(domainErrors.UnauthorizedBookingAction)
	}

	match := &entity.BookingMatch{
		ID:        uuid.New(),
		PlaceID:   params.PlaceID,
		UserID:    identity.UserID,
		TeamID:    params.TeamID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Status:    entity.MatchStatusPendingPlayers,
		CreatedAt: time.Now(),
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		overlaps, err := uc.bookingRepo.ExistsOverlapping(ctx, params.PlaceID, params.StartTime, params.EndTime)
		if err != nil {
			return fmt.Errorf("failed to check slot overlap: %w", err)
		}
		if overlaps {
			return domainErrors.AlreadyExists(domainErrors.TimeSlotUnavailable)
		}

		if err := uc.bookingRepo.Create(ctx, match); err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				return domainErrors.AlreadyExists(domainErrors.TimeSlotUnavailable)
			}
			return fmt.Errorf("failed to create booking match: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishSlotEvent("SLOT_BOOKED", match)

	return match, nil
}

// Confirm подтверждает бронь; доступно только администратору
func (uc *BookingUseCase) Confirm(ctx context.Context, identity entity.Identity, matchID uuid.UUID) (*entity.BookingMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}
	if err := uc.authz.RequireAdmin(identity); err != nil {
		return nil, err
	}

	match, err := uc.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	match.Status = entity.MatchStatusConfirmed
	if err := uc.bookingRepo.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update booking match: %w", err)
	}

	uc.publishSlotEvent("SLOT_CONFIRMED", match)

	return match, nil
}

// Cancel отменяет бронь; доступно организатору команды или администратору,
// но не позднее чем за три часа до начала
func (uc *BookingUseCase) Cancel(ctx context.Context, identity entity.Identity, matchID uuid.UUID) (*entity.BookingMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	match, err := uc.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin() {
		ok, err := uc.authz.IsTeamOrganizer(ctx, identity.UserID, match.TeamID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domainErrors.ForbiddenAction(domainErrors.UnauthorizedBookingAction)
		}
	}

	if time.Until(match.StartTime) < cancelDeadline {
		return nil, domainErrors.Validation(domainErrors.MatchCannotBeCancelledNow)
	}

	released := match.Status != entity.MatchStatusCancelled
	match.Status = entity.MatchStatusCancelled
	if err := uc.bookingRepo.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update booking match: %w", err)
	}

	if released {
		uc.publishSlotEvent("SLOT_RELEASED", match)
	}

	return match, nil
}

// GetByID возвращает бронь по ID
func (uc *BookingUseCase) GetByID(ctx context.Context, identity entity.Identity, matchID uuid.UUID) (*entity.BookingMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	return uc.getMatch(ctx, matchID)
}

// GetDetail возвращает бронь с данными площадки, команды и организатора
func (uc *BookingUseCase) GetDetail(ctx context.Context, identity entity.Identity, matchID uuid.UUID) (*entity.BookingDetail, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	detail, err := uc.bookingRepo.GetDetail(ctx, matchID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.BookingMatchNotFound)
		}
		return nil, fmt.Errorf("failed to get booking match: %w", err)
	}

	return detail, nil
}

// GetByUser возвращает брони, организованные пользователем
func (uc *BookingUseCase) GetByUser(ctx context.Context, identity entity.Identity, userID uuid.UUID) ([]*entity.BookingMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	matches, err := uc.bookingRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking matches: %w", err)
	}

	return matches, nil
}

// GetByTeam возвращает брони команды
func (uc *BookingUseCase) GetByTeam(ctx context.Context, identity entity.Identity, teamID uuid.UUID) ([]*entity.BookingMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	matches, err := uc.bookingRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking matches: %w", err)
	}

	return matches, nil
}

// GetByPlace возвращает брони площадки
func (uc *BookingUseCase) GetByPlace(ctx context.Context, identity entity.Identity, placeID uuid.UUID) ([]*entity.BookingMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	matches, err := uc.bookingRepo.GetByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking matches: %w", err)
	}

	return matches, nil
}

// GetAllDetailed возвращает все брони с денормализованными данными
func (uc *BookingUseCase) GetAllDetailed(ctx context.Context, identity entity.Identity) ([]*entity.BookingDetail, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	details, err := uc.bookingRepo.GetAllDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking matches: %w", err)
	}

	return details, nil
}

// GetMyOrganized возвращает брони команд, где пользователь одобренный организатор
func (uc *BookingUseCase) GetMyOrganized(ctx context.Context, identity entity.Identity) ([]*entity.BookingMatch, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	memberships, err := uc.memberRepo.GetByUserAndStatus(ctx, identity.UserID, entity.TeamStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships: %w", err)
	}

	var matches []*entity.BookingMatch
	for _, m := range memberships {
		if m.Role != entity.TeamRoleOrganizer {
			continue
		}

		teamMatches, err := uc.bookingRepo.GetByTeam(ctx, m.TeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to get booking matches: %w", err)
		}
		matches = append(matches, teamMatches...)
	}

	return matches, nil
}
