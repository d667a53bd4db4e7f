package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
)

const exclusionViolationCode = "23P01"

// BookingMatchRepository реализует repository.BookingMatchRepository для PostgreSQL
type BookingMatchRepository struct {
	pool *pgxpool.Pool
}

// NewBookingMatchRepository создает новый репозиторий броней
func NewBookingMatchRepository(pool *pgxpool.Pool) *BookingMatchRepository {
	return &BookingMatchRepository{pool: pool}
}

const bookingColumns = "id, place_id, user_id, team_id, start_time, end_time, status, created_at"

const bookingDetailQuery = `
	SELECT bm.id, bm.start_time, bm.end_time, bm.status, bm.created_at,
	       bm.place_id, p.name, p.place_type,
	       bm.team_id, t.name,
	       bm.user_id, u.username
	FROM booking_matches bm
	JOIN places p ON p.id = bm.place_id
	JOIN teams t ON t.id = bm.team_id
	JOIN users u ON u.id = bm.user_id
`

func scanBookingMatch(row pgx.Row) (*entity.BookingMatch, error) {
	var match entity.BookingMatch
	err := row.Scan(
		&match.ID,
		&match.PlaceID,
		&match.UserID,
		&match.TeamID,
		&match.StartTime,
		&match.EndTime,
		&match.Status,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var d entity.BookingDetail
	err := row.Scan(
		&d.ID,
		&d.StartTime,
		&d.EndTime,
		&d.Status,
		&d.CreatedAt,
		&d.PlaceID,
		&d.PlaceName,
		&d.PlaceType,
		&d.TeamID,
		&d.TeamName,
		&d.UserID,
		&d.Username,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *BookingMatchRepository) collectMatches(ctx context.Context, query string, args ...interface{}) ([]*entity.BookingMatch, error) {
	conn := getConn(ctx, r.pool)

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking matches: %w", err)
	}
	defer rows.Close()

	var matches []*entity.BookingMatch
	for rows.Next() {
		match, err := scanBookingMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booking matches: %w", err)
	}

	return matches, nil
}

// Create создает новую бронь; пересечение интервалов на одной площадке
// отклоняется exclusion constraint как ErrAlreadyExists
func (r *BookingMatchRepository) Create(ctx context.Context, match *entity.BookingMatch) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO booking_matches (id, place_id, user_id, team_id, start_time, end_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := conn.Exec(ctx, query,
		match.ID,
		match.PlaceID,
		match.UserID,
		match.TeamID,
		match.StartTime,
		match.EndTime,
		match.Status,
		match.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolationCode {
			return domainErrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create booking match: %w", err)
	}

	return nil
}

// Update обновляет статус брони
func (r *BookingMatchRepository) Update(ctx context.Context, match *entity.BookingMatch) error {
	conn := getConn(ctx, r.pool)

	query := `UPDATE booking_matches SET status = $2 WHERE id = $1`

	result, err := conn.Exec(ctx, query, match.ID, match.Status)
	if err != nil {
		return fmt.Errorf("failed to update booking match: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetByID возвращает бронь по ID
func (r *BookingMatchRepository) GetByID(ctx context.Context, matchID uuid.UUID) (*entity.BookingMatch, error) {
	return r.getByID(ctx, matchID, "")
}

// GetByIDForUpdate возвращает бронь по ID, блокируя строку до конца транзакции
func (r *BookingMatchRepository) GetByIDForUpdate(ctx context.Context, matchID uuid.UUID) (*entity.BookingMatch, error) {
	return r.getByID(ctx, matchID, " FOR UPDATE")
}

func (r *BookingMatchRepository) getByID(ctx context.Context, matchID uuid.UUID, suffix string) (*entity.BookingMatch, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + bookingColumns + ` FROM booking_matches WHERE id = $1` + suffix

	match, err := scanBookingMatch(conn.QueryRow(ctx, query, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking match: %w", err)
	}

	return match, nil
}

// ExistsOverlapping проверяет пересечение интервала с неотмененными бронями площадки
func (r *BookingMatchRepository) ExistsOverlapping(ctx context.Context, placeID uuid.UUID, start, end time.Time) (bool, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM booking_matches
			WHERE place_id = $1
			  AND status <> 'CANCELLED'
			  AND start_time < $3
			  AND end_time > $2
		)
	`

	var exists bool
	if err := conn.QueryRow(ctx, query, placeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slot overlap: %w", err)
	}

	return exists, nil
}

// GetByUser возвращает брони, организованные пользователем
func (r *BookingMatchRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BookingMatch, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_matches WHERE user_id = $1 ORDER BY start_time`
	return r.collectMatches(ctx, query, userID)
}

// GetByTeam возвращает брони команды
func (r *BookingMatchRepository) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]*entity.BookingMatch, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_matches WHERE team_id = $1 ORDER BY start_time`
	return r.collectMatches(ctx, query, teamID)
}

// GetByPlace возвращает брони площадки
func (r *BookingMatchRepository) GetByPlace(ctx context.Context, placeID uuid.UUID) ([]*entity.BookingMatch, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_matches WHERE place_id = $1 ORDER BY start_time`
	return r.collectMatches(ctx, query, placeID)
}

// GetAllDetailed возвращает все брони с данными площадки, команды и организатора
func (r *BookingMatchRepository) GetAllDetailed(ctx context.Context) ([]*entity.BookingDetail, error) {
	conn := getConn(ctx, r.pool)

	rows, err := conn.Query(ctx, bookingDetailQuery+` ORDER BY bm.start_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking matches: %w", err)
	}
	defer rows.Close()

	var details []*entity.BookingDetail
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking match: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booking matches: %w", err)
	}

	return details, nil
}

// GetDetail возвращает бронь с данными площадки, команды и организатора
func (r *BookingMatchRepository) GetDetail(ctx context.Context, matchID uuid.UUID) (*entity.BookingDetail, error) {
	conn := getConn(ctx, r.pool)

	d, err := scanBookingDetail(conn.QueryRow(ctx, bookingDetailQuery+` WHERE bm.id = $1`, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking match: %w", err)
	}

	return d, nil
}
