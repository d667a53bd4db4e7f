package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
)

// PlaceRepository реализует repository.PlaceRepository для PostgreSQL
type PlaceRepository struct {
	pool *pgxpool.Pool
}

// NewPlaceRepository создает новый репозиторий площадок
func NewPlaceRepository(pool *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{pool: pool}
}

const placeColumns = "id, name, description, location, place_type, image_url, created_at"

func scanPlace(row pgx.Row) (*entity.Place, error) {
	var place entity.Place
	err := row.Scan(
		&place.ID,
		&place.Name,
		&place.Description,
		&place.Location,
		&place.PlaceType,
		&place.ImageURL,
		&place.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// Create создает новую площадку
func (r *PlaceRepository) Create(ctx context.Context, place *entity.Place) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO places (id, name, description, location, place_type, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn.Exec(ctx, query,
		place.ID,
		place.Name,
		place.Description,
		place.Location,
		place.PlaceType,
		place.ImageURL,
		place.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}

	return nil
}

// Update обновляет площадку
func (r *PlaceRepository) Update(ctx context.Context, place *entity.Place) error {
	conn := getConn(ctx, r.pool)

	query := `
		UPDATE places
		SET name = $2, description = $3, location = $4, place_type = $5, image_url = $6
		WHERE id = $1
	`

	result, err := conn.Exec(ctx, query,
		place.ID,
		place.Name,
		place.Description,
		place.Location,
		place.PlaceType,
		place.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// Delete удаляет площадку
func (r *PlaceRepository) Delete(ctx context.Context, placeID uuid.UUID) error {
	conn := getConn(ctx, r.pool)

	result, err := conn.Exec(ctx, `DELETE FROM places WHERE id = $1`, placeID)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetByID возвращает площадку по ID
func (r *PlaceRepository) GetByID(ctx context.Context, placeID uuid.UUID) (*entity.Place, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`

	place, err := scanPlace(conn.QueryRow(ctx, query, placeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	return place, nil
}

// Filter возвращает страницу площадок по фильтрам
func (r *PlaceRepository) Filter(ctx context.Context, filter entity.PlaceFilter) ([]*entity.Place, error) {
	conn := getConn(ctx, r.pool)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + placeColumns + ` FROM places WHERE 1=1`)
	args := []interface{}{}

	if filter.Name != "" {
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
		fmt.Fprintf(&sb, " AND lower(name) LIKE $%d", len(args))
	}
	if filter.Location != "" {
		args = append(args, "%"+strings.ToLower(filter.Location)+"%")
		fmt.Fprintf(&sb, " AND lower(location) LIKE $%d", len(args))
	}
	if filter.PlaceType != "" {
		args = append(args, filter.PlaceType)
		fmt.Fprintf(&sb, " AND place_type = $%d", len(args))
	}

	sb.WriteString(" ORDER BY created_at DESC")

	size := filter.Size
	if size <= 0 {
		size = 20
	}
	args = append(args, size)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, filter.Page*size)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))

	rows, err := conn.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter places: %w", err)
	}
	defer rows.Close()

	var places []*entity.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate places: %w", err)
	}

	return places, nil
}
