package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/repository"
)

// Authorizer проверяет права доступа; каждая проверка вызывается
// явно из usecase, а не скрыта в аннотациях маршрутов
type Authorizer struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.TeamMemberRepository
}

// NewAuthorizer создает новый Authorizer
func NewAuthorizer(teamRepo repository.TeamRepository, memberRepo repository.TeamMemberRepository) *Authorizer {
	return &Authorizer{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
	}
}

// RequireActive отклоняет неактивных пользователей
func (a *Authorizer) RequireActive(identity entity.Identity) error {
	if !identity.IsActive() {
		return domainErrors.ForbiddenAction(domainErrors.ForbiddenStatus)
	}
	return nil
}

// RequireAdmin отклоняет всех, кроме администраторов
func (a *Authorizer) RequireAdmin(identity entity.Identity) error {
	if !identity.IsAdmin() {
		return domainErrors.ForbiddenAction(domainErrors.Forbidden)
	}
	return nil
}

// IsTeamOrganizer сообщает, является ли пользователь организатором команды.
// Создатель команды считается организатором всегда; роль членства
// проверяется без учета его статуса
func (a *Authorizer) IsTeamOrganizer(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	team, err := a.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, domainErrors.NotFoundError(domainErrors.TeamNotFound)
		}
		return false, fmt.Errorf("failed to get team: %w", err)
	}

	if team.CreatorID == userID {
		return true, nil
	}

	member, err := a.memberRepo.GetByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get team member: %w", err)
	}

	return member.Role == entity.TeamRoleOrganizer, nil
}

// RequireTeamOrganizer отклоняет всех, кроме организаторов команды
func (a *Authorizer) RequireTeamOrganizer(ctx context.Context, userID, teamID uuid.UUID) error {
	ok, err := a.IsTeamOrganizer(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return domainErrors.ForbiddenAction(domainErrors.ForbiddenRole)
	}
	return nil
}
