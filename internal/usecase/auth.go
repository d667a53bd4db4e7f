package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/repository"
)

const bcryptCost = 10

// AuthUseCase реализует регистрацию, вход и работу с токенами
type AuthUseCase struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthUseCase создает новый usecase аутентификации
func NewAuthUseCase(userRepo repository.UserRepository, secret string, tokenTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

type tokenClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Status string `json:"status"`
	jwt.RegisteredClaims
}

// Register создает нового пользователя и возвращает его вместе с токеном
func (uc *AuthUseCase) Register(ctx context.Context, username, email, password string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, "", domainErrors.Validation(domainErrors.InvalidUsername)
	}
	if email == "" {
		return nil, "", domainErrors.Validation(domainErrors.InvalidEmail)
	}
	if password == "" {
		return nil, "", domainErrors.Validation(domainErrors.InvalidPassword)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, "", domainErrors.AlreadyExists(domainErrors.EmailAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login проверяет учетные данные и возвращает пользователя с токеном
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.InvalidCreds(domainErrors.InvalidCredentials)
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domainErrors.InvalidCreds(domainErrors.InvalidCredentials)
	}

	if user.Status != entity.UserStatusActive {
		return nil, "", domainErrors.UnauthorizedErr(domainErrors.ForbiddenStatus)
	}

	token, err := uc.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (uc *AuthUseCase) generateToken(user *entity.User) (string, error) {
	now := time.Now()

	claims := tokenClaims{
		UserID: user.ID.String(),
		Role:   string(user.Role),
		Status: string(user.Status),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// ParseToken проверяет подпись токена и восстанавливает Identity
func (uc *AuthUseCase) ParseToken(tokenString string) (entity.Identity, error) {
	var claims tokenClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return uc.secret, nil
	})
	if err != nil || !token.Valid {
		return entity.Identity{}, domainErrors.UnauthorizedErr(domainErrors.InvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return entity.Identity{}, domainErrors.UnauthorizedErr(domainErrors.InvalidToken)
	}

	return entity.Identity{
		UserID: userID,
		Email:  claims.Subject,
		Role:   entity.UserRole(claims.Role),
		Status: entity.UserStatus(claims.Status),
	}, nil
}
