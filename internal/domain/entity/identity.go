package entity

import "github.com/google/uuid"

// Identity — данные аутентифицированного пользователя из JWT
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
	Status UserStatus
}

// IsAdmin сообщает, является ли пользователь администратором
func (i Identity) IsAdmin() bool {
	return i.Role == UserRoleAdmin
}

// IsActive сообщает, активен ли пользователь
func (i Identity) IsActive() bool {
	return i.Status == UserStatusActive
}
