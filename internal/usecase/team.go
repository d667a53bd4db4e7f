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
)

// TeamUseCase реализует бизнес-логику для команд
type TeamUseCase struct {
	teamRepo    repository.TeamRepository
	memberRepo  repository.TeamMemberRepository
	requestRepo repository.RequestRepository
	txManager   repository.TransactionManager
	authz       *Authorizer
}

// NewTeamUseCase создает новый usecase команд
func NewTeamUseCase(
	teamRepo repository.TeamRepository,
	memberRepo repository.TeamMemberRepository,
	requestRepo repository.RequestRepository,
	txManager repository.TransactionManager,
	authz *Authorizer,
) *TeamUseCase {
	return &TeamUseCase{
		teamRepo:    teamRepo,
		memberRepo:  memberRepo,
		requestRepo: requestRepo,
		txManager:   txManager,
		authz:       authz,
	}
}

// UpdateTeamParams — частичное обновление команды; nil-поля не меняются
type UpdateTeamParams struct {
	Name        *string
	Description *string
}

// Create создает команду; создатель становится одобренным организатором
// в той же транзакции
func (uc *TeamUseCase) Create(ctx context.Context, identity entity.Identity, name, description string) (*entity.Team, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.Validation(domainErrors.InvalidTeamName)
	}
	if strings.TrimSpace(description) == "" {
		return nil, domainErrors.Validation(domainErrors.InvalidTeamDescription)
	}

	exists, err := uc.teamRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}
	if exists {
		return nil, domainErrors.AlreadyExists(domainErrors.TeamAlreadyExists)
	}

	team := &entity.Team{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatorID:   identity.UserID,
		CreatedAt:   time.Now(),
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.teamRepo.Create(ctx, team); err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		creator := &entity.TeamMember{
			ID:        uuid.New(),
			TeamID:    team.ID,
			UserID:    identity.UserID,
			Role:      entity.TeamRoleOrganizer,
			Status:    entity.TeamStatusApproved,
			CreatedAt: time.Now(),
		}

		if err := uc.memberRepo.Create(ctx, creator); err != nil {
			return fmt.Errorf("failed to create team member: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return team, nil
}

// GetByID возвращает команду по ID
func (uc *TeamUseCase) GetByID(ctx context.Context, identity entity.Identity, teamID uuid.UUID) (*entity.Team, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.TeamNotFound)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// Filter возвращает страницу команд по фильтрам
func (uc *TeamUseCase) Filter(ctx context.Context, identity entity.Identity, filter entity.TeamFilter) ([]*entity.Team, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	teams, err := uc.teamRepo.Filter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to filter teams: %w", err)
	}

	if len(teams) == 0 {
		return nil, domainErrors.NoContentError(domainErrors.NoContent)
	}

	return teams, nil
}

// Update обновляет команду; доступно организатору команды
func (uc *TeamUseCase) Update(ctx context.Context, identity entity.Identity, teamID uuid.UUID, params UpdateTeamParams) (*entity.Team, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if params.Name == nil && params.Description == nil {
		return nil, domainErrors.NoDataError(domainErrors.NoData)
	}

	if err := uc.authz.RequireTeamOrganizer(ctx, identity.UserID, teamID); err != nil {
		return nil, err
	}

	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.TeamNotFound)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, domainErrors.Validation(domainErrors.InvalidTeamName)
		}
		if !strings.EqualFold(name, team.Name) {
			exists, err := uc.teamRepo.ExistsByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to check team name: %w", err)
			}
			if exists {
				return nil, domainErrors.AlreadyExists(domainErrors.TeamAlreadyExists)
			}
		}
		team.Name = name
	}

	if params.Description != nil {
		if strings.TrimSpace(*params.Description) == "" {
			return nil, domainErrors.Validation(domainErrors.InvalidTeamDescription)
		}
		team.Description = *params.Description
	}

	if err := uc.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// Delete удаляет команду одной транзакцией: сначала запросы,
// ссылающиеся на членства, затем сама команда; членства, брони
// и участники каскадируются по FK
func (uc *TeamUseCase) Delete(ctx context.Context, identity entity.Identity, teamID uuid.UUID) error {
	if err := uc.authz.RequireActive(identity); err != nil {
		return err
	}

	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.NotFoundError(domainErrors.TeamNotFound)
		}
		return fmt.Errorf("failed to get team: %w", err)
	}

	if !identity.IsAdmin() && team.CreatorID != identity.UserID {
		return domainErrors.ForbiddenAction(domainErrors.Forbidden)
	}

	return uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		members, err := uc.memberRepo.GetByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("failed to get team members: %w", err)
		}

		jokerIDs := make([]uuid.UUID, 0, len(members))
		for _, m := range members {
			jokerIDs = append(jokerIDs, m.ID)
		}

		if err := uc.requestRepo.DeleteByJokers(ctx, jokerIDs); err != nil {
			return fmt.Errorf("failed to delete requests: %w", err)
		}

		if err := uc.teamRepo.Delete(ctx, teamID); err != nil {
			return fmt.Errorf("failed to delete team: %w", err)
		}

		return nil
	})
}

// GetMy возвращает команды, в которых пользователь одобренный участник
func (uc *TeamUseCase) GetMy(ctx context.Context, identity entity.Identity, page, size int) ([]*entity.Team, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	memberships, err := uc.memberRepo.GetByUserAndStatus(ctx, identity.UserID, entity.TeamStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships: %w", err)
	}

	if size <= 0 {
		size = 20
	}
	start := page * size

	var teams []*entity.Team
	for i, m := range memberships {
		if i < start {
			continue
		}
		if len(teams) == size {
			break
		}

		team, err := uc.teamRepo.GetByID(ctx, m.TeamID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get team: %w", err)
		}
		teams = append(teams, team)
	}

	if len(teams) == 0 {
		return nil, domainErrors.NoContentError(domainErrors.NoContent)
	}

	return teams, nil
}

// GetOthers возвращает команды, в которых пользователь не состоит одобренным участником
func (uc *TeamUseCase) GetOthers(ctx context.Context, identity entity.Identity, page, size int) ([]*entity.Team, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	memberships, err := uc.memberRepo.GetByUserAndStatus(ctx, identity.UserID, entity.TeamStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships: %w", err)
	}

	teamIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		teamIDs = append(teamIDs, m.TeamID)
	}

	teams, err := uc.teamRepo.GetExcluding(ctx, teamIDs, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	if len(teams) == 0 {
		return nil, domainErrors.NoContentError(domainErrors.NoContent)
	}

	return teams, nil
}
