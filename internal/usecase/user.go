package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/repository"
)

// UserUseCase реализует бизнес-логику для пользователей
type UserUseCase struct {
	userRepo repository.UserRepository
	authz    *Authorizer
}

// NewUserUseCase создает новый usecase пользователей
func NewUserUseCase(userRepo repository.UserRepository, authz *Authorizer) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		authz:    authz,
	}
}

// UpdateUserParams — частичное обновление пользователя; nil-поля не меняются
type UpdateUserParams struct {
	Username *string
	Password *string
	Role     *entity.UserRole
	Status   *entity.UserStatus
}

func (p UpdateUserParams) empty() bool {
	return p.Username == nil && p.Password == nil && p.Role == nil && p.Status == nil
}

// GetByID возвращает пользователя по ID
func (uc *UserUseCase) GetByID(ctx context.Context, identity entity.Identity, userID uuid.UUID) (*entity.User, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.UserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Filter возвращает страницу пользователей по фильтрам
func (uc *UserUseCase) Filter(ctx context.Context, identity entity.Identity, filter entity.UserFilter) ([]*entity.User, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	users, err := uc.userRepo.Filter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to filter users: %w", err)
	}

	if len(users) == 0 {
		return nil, domainErrors.NoContentError(domainErrors.NoContent)
	}

	return users, nil
}

// Update обновляет пользователя; роль и статус может менять только администратор
func (uc *UserUseCase) Update(ctx context.Context, identity entity.Identity, userID uuid.UUID, params UpdateUserParams) (*entity.User, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if params.empty() {
		return nil, domainErrors.NoDataError(domainErrors.NoData)
	}

	if !identity.IsAdmin() {
		if identity.UserID != userID {
			return nil, domainErrors.ForbiddenAction(domainErrors.Forbidden)
		}
		if params.Role != nil || params.Status != nil {
			return nil, domainErrors.ForbiddenAction(domainErrors.Forbidden)
		}
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.UserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if params.Username != nil {
		username := strings.TrimSpace(*params.Username)
		if username == "" {
			return nil, domainErrors.Validation(domainErrors.InvalidUsername)
		}
		user.Username = username
	}

	if params.Password != nil {
		if *params.Password == "" {
			return nil, domainErrors.Validation(domainErrors.InvalidPassword)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, domainErrors.Validation(domainErrors.InvalidUserRole)
		}
		user.Role = *params.Role
	}

	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, domainErrors.Validation(domainErrors.InvalidUserStatus)
		}
		user.Status = *params.Status
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// CheckPassword проверяет пароль текущего пользователя
func (uc *UserUseCase) CheckPassword(ctx context.Context, identity entity.Identity, password string) error {
	if err := uc.authz.RequireActive(identity); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.NotFoundError(domainErrors.UserNotFound)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domainErrors.InvalidCreds(domainErrors.InvalidCredentials)
	}

	return nil
}

// Delete удаляет пользователя; разрешено самому пользователю и администратору
func (uc *UserUseCase) Delete(ctx context.Context, identity entity.Identity, userID uuid.UUID) error {
	if err := uc.authz.RequireActive(identity); err != nil {
		return err
	}

	if !identity.IsAdmin() && identity.UserID != userID {
		return domainErrors.ForbiddenAction(domainErrors.Forbidden)
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.NotFoundError(domainErrors.UserNotFound)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
