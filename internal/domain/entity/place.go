package entity

import (
	"time"

	"github.com/google/uuid"
)

// PlaceType определяет размер площадки и вместимость матча
type PlaceType string

const (
	PlaceTypeFive   PlaceType = "FIVE"
	PlaceTypeSeven  PlaceType = "SEVEN"
	PlaceTypeEleven PlaceType = "ELEVEN"
)

func (t PlaceType) Valid() bool {
	return t == PlaceTypeFive || t == PlaceTypeSeven || t == PlaceTypeEleven
}

// Capacity возвращает максимум принятых участников для типа площадки
func (t PlaceType) Capacity() int {
	switch t {
	case PlaceTypeFive:
		return 10
	case PlaceTypeSeven:
		return 14
	case PlaceTypeEleven:
		return 22
	default:
		return 0
	}
}

type Place struct {
	ID          uuid.UUID
	Name        string
	Description string
	Location    string
	PlaceType   PlaceType
	ImageURL    string
	CreatedAt   time.Time
}

// PlaceFilter описывает фильтры для поиска площадок
type PlaceFilter struct {
	Name      string
	Location  string
	PlaceType PlaceType
	Page      int
	Size      int
}
