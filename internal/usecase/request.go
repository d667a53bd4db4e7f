package usecase

import (
	"context"
	"fmt"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/repository"
)

// RequestUseCase реализует чтение запросов-уведомлений
type RequestUseCase struct {
	requestRepo repository.RequestRepository
	authz       *Authorizer
}

// NewRequestUseCase создает новый usecase запросов
func NewRequestUseCase(requestRepo repository.RequestRepository, authz *Authorizer) *RequestUseCase {
	return &RequestUseCase{
		requestRepo: requestRepo,
		authz:       authz,
	}
}

// GetReceived возвращает запросы, адресованные текущему пользователю
func (uc *RequestUseCase) GetReceived(ctx context.Context, identity entity.Identity) ([]*entity.RequestDetail, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	requests, err := uc.requestRepo.GetByReceiver(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %w", err)
	}

	return requests, nil
}

// GetSent возвращает запросы, отправленные текущим пользователем
func (uc *RequestUseCase) GetSent(ctx context.Context, identity entity.Identity) ([]*entity.RequestDetail, error) {
	if err := uc.authz.RequireActive(identity); err != nil {
		return nil, err
	}

	requests, err := uc.requestRepo.GetBySender(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %w", err)
	}

	return requests, nil
}
