package entity

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatorID   uuid.UUID
	CreatedAt   time.Time
}

// TeamFilter описывает фильтры для поиска команд
type TeamFilter struct {
	Name        string
	Description string
	Page        int
	Size        int
}
