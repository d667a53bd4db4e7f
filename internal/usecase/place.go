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

// PlaceUseCase реализует бизнес-логику для площадок
type PlaceUseCase struct {
	placeRepo repository.PlaceRepository
	authz     *Authorizer
}

// NewPlaceUseCase создает новый usecase площадок
func NewPlaceUseCase(placeRepo repository.PlaceRepository, authz *Authorizer) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo: placeRepo,
		authz:     authz,
	}
}

// CreatePlaceParams — данные для создания площадки
type CreatePlaceParams struct {
	Name        string
	Description string
	Location    string
	PlaceType   entity.PlaceType
	ImageURL    string
}

// UpdatePlaceParams — частичное обновление площадки; nil-поля не меняются
type UpdatePlaceParams struct {
	Name        *string
	Description *string
	Location    *string
	PlaceType   *entity.PlaceType
	ImageURL    *string
}

func (p UpdatePlaceParams) empty() bool {
	return p.Name == nil && p.Description == nil && p.Location == nil && p.PlaceType == nil && p.ImageURL == nil
}

// Create создает новую площадку; доступно только администратору
func (uc *PlaceUseCase) Create(ctx context.Context, identity entity.Identity, params CreatePlaceParams) (*entity.Place, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}
	if err := uc.authz.RequireAdmin(identity); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Name) == "" {
		return nil, domainErrors.Validation(domainErrors.InvalidPlaceName)
	}
	if strings.TrimSpace(params.Location) == "" {
		return nil, domainErrors.Validation(domainErrors.InvalidPlaceLocation)
	}
	if !params.PlaceType.Valid() {
		return nil, domainErrors.Validation(domainErrors.InvalidPlaceType)
	}

	place := &entity.Place{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Location:    strings.TrimSpace(params.Location),
		PlaceType:   params.PlaceType,
		ImageURL:    params.ImageURL,
		CreatedAt:   time.Now(),
	}

	if err := uc.placeRepo.Create(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	return place, nil
}

// GetByID возвращает площадку по ID
func (uc *PlaceUseCase) GetByID(ctx context.Context, identity entity.Identity, placeID uuid.UUID) (*entity.Place, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	place, err := uc.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.PlaceNotFound)
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	return place, nil
}

// Filter возвращает страницу площадок по фильтрам
func (uc *PlaceUseCase) Filter(ctx context.Context, identity entity.Identity, filter entity.PlaceFilter) ([]*entity.Place, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	if filter.PlaceType != "" && !filter.PlaceType.Valid() {
		return nil, domainErrors.Validation(domainErrors.InvalidPlaceType)
	}

	places, err := uc.placeRepo.Filter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to filter places: %w", err)
	}

	if len(places) == 0 {
		return nil, domainErrors.NoContentError(domainErrors.NoContent)
	}

	return places, nil
}

// Update обновляет площадку; доступно только администратору
func (uc *PlaceUseCase) Update(ctx context.Context, identity entity.Identity, placeID uuid.UUID, params UpdatePlaceParams) (*entity.Place, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}
	if err := uc.authz.RequireAdmin(identity); err != nil {
		return nil, err
	}

	if params.empty() {
		return nil, domainErrors.NoDataError(domainErrors.NoData)
	}

	place, err := uc.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NotFoundError(domainErrors.PlaceNotFound)
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, domainErrors.Validation(domainErrors.InvalidPlaceName)
		}
		place.Name = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil {
		place.Description = *params.Description
	}
	if params.Location != nil {
		if strings.TrimSpace(*params.Location) == "" {
			return nil, domainErrors.Validation(domainErrors.InvalidPlaceLocation)
		}
		place.Location = strings.TrimSpace(*params.Location)
	}
	if params.PlaceType != nil {
		if !params.PlaceType.Valid() {
			return nil, domainErrors.Validation(domainErrors.InvalidPlaceType)
		}
		place.PlaceType = *params.PlaceType
	}
	if params.ImageURL != nil {
		place.ImageURL = *params.ImageURL
	}

	if err := uc.placeRepo.Update(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to update place: %w", err)
	}

	return place, nil
}

// Delete удаляет площадку; доступно только администратору
func (uc *PlaceUseCase) Delete(ctx context.Context, identity entity.Identity, placeID uuid.UUID) error {
	if err := uc.authz.RequireActive(identity); err != nil {
		return err
	}
	if err := uc.authz.RequireAdmin(identity); err != nil {
		return err
	}

	if err := uc.placeRepo.Delete(ctx, placeID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.NotFoundError(domainErrors.PlaceNotFound)
		}
		return fmt.Errorf("failed to delete place: %w", err)
	}

	return nil
}
