package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/entity"
	domainErrors "github.com/mahd-mohamed/Football-Places-Booking-System/internal/domain/errors"
)

// MatchParticipantRepository реализует repository.MatchParticipantRepository для PostgreSQL
type MatchParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewMatchParticipantRepository создает новый репозиторий участников матчей
func NewMatchParticipantRepository(pool *pgxpool.Pool) *MatchParticipantRepository {
	return &MatchParticipantRepository{pool: pool}
}

const participantColumns = "id, booking_match_id, user_id, status, responded_at, created_at"

func scanParticipant(row pgx.Row) (*entity.MatchParticipant, error) {
	var p entity.MatchParticipant
	err := row.Scan(
		&p.ID,
		&p.BookingMatchID,
		&p.UserID,
		&p.Status,
		&p.RespondedAt,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create создает нового участника матча
func (r *MatchParticipantRepository) Create(ctx context.Context, participant *entity.MatchParticipant) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO match_participants (id, booking_match_id, user_id, status, responded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := conn.Exec(ctx, query,
		participant.ID,
		participant.BookingMatchID,
		participant.UserID,
		participant.Status,
		participant.RespondedAt,
		participant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create match participant: %w", err)
	}

	return nil
}

// Update обновляет статус и время ответа участника
func (r *MatchParticipantRepository) Update(ctx context.Context, participant *entity.MatchParticipant) error {
	conn := getConn(ctx, r.pool)

	query := `UPDATE match_participants SET status = $2, responded_at = $3 WHERE id = $1`

	result, err := conn.Exec(ctx, query, participant.ID, participant.Status, participant.RespondedAt)
	if err != nil {
		return fmt.Errorf("failed to update match participant: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetByID возвращает участника по ID
func (r *MatchParticipantRepository) GetByID(ctx context.Context, participantID uuid.UUID) (*entity.MatchParticipant, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + participantColumns + ` FROM match_participants WHERE id = $1`

	participant, err := scanParticipant(conn.QueryRow(ctx, query, participantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match participant: %w", err)
	}

	return participant, nil
}

// GetByMatchAndUser возвращает участие пользователя в матче
func (r *MatchParticipantRepository) GetByMatchAndUser(ctx context.Context, matchID, userID uuid.UUID) (*entity.MatchParticipant, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + participantColumns + ` FROM match_participants WHERE booking_match_id = $1 AND user_id = $2`

	participant, err := scanParticipant(conn.QueryRow(ctx, query, matchID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match participant: %w", err)
	}

	return participant, nil
}

// GetByMatch возвращает всех участников матча с данными пользователей
func (r *MatchParticipantRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*entity.ParticipantDetail, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT mp.id, mp.booking_match_id, mp.user_id, u.username, u.email, mp.status, mp.responded_at
		FROM match_participants mp
		JOIN users u ON u.id = mp.user_id
		WHERE mp.booking_match_id = $1
		ORDER BY mp.created_at
	`

	rows, err := conn.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match participants: %w", err)
	}
	defer rows.Close()

	var details []*entity.ParticipantDetail
	for rows.Next() {
		var d entity.ParticipantDetail
		err := rows.Scan(
			&d.ID,
			&d.BookingMatchID,
			&d.UserID,
			&d.Username,
			&d.Email,
			&d.Status,
			&d.RespondedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match participant: %w", err)
		}
		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match participants: %w", err)
	}

	return details, nil
}

// GetUserMatches возвращает участия пользователя с данными матча, команды и площадки
func (r *MatchParticipantRepository) GetUserMatches(ctx context.Context, userID uuid.UUID) ([]*entity.UserMatch, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT bm.id, mp.id, bm.team_id, t.name, bm.place_id, p.name,
		       bm.start_time, bm.end_time, bm.status, mp.status
		FROM match_participants mp
		JOIN booking_matches bm ON bm.id = mp.booking_match_id
		JOIN teams t ON t.id = bm.team_id
		JOIN places p ON p.id = bm.place_id
		WHERE mp.user_id = $1
		ORDER BY bm.start_time
	`

	rows, err := conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user matches: %w", err)
	}
	defer rows.Close()

	var matches []*entity.UserMatch
	for rows.Next() {
		var m entity.UserMatch
		err := rows.Scan(
			&m.MatchID,
			&m.ParticipantID,
			&m.TeamID,
			&m.TeamName,
			&m.PlaceID,
			&m.PlaceName,
			&m.StartTime,
			&m.EndTime,
			&m.BookingStatus,
			&m.InvitationStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user match: %w", err)
		}
		matches = append(matches, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user matches: %w", err)
	}

	return matches, nil
}

// CountAccepted возвращает число принявших приглашение участников матча
func (r *MatchParticipantRepository) CountAccepted(ctx context.Context, matchID uuid.UUID) (int, error) {
	conn := getConn(ctx, r.pool)

	var count int
	err := conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM match_participants WHERE booking_match_id = $1 AND status = 'ACCEPTED'`,
		matchID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accepted participants: %w", err)
	}

	return count, nil
}
