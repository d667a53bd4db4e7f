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

// TeamMemberRepository реализует repository.TeamMemberRepository для PostgreSQL
type TeamMemberRepository struct {
	pool *pgxpool.Pool
}

// NewTeamMemberRepository создает новый репозиторий членств
func NewTeamMemberRepository(pool *pgxpool.Pool) *TeamMemberRepository {
	return &TeamMemberRepository{pool: pool}
}

const teamMemberColumns = "id, team_id, user_id, role, status, invited_by, created_at"

const teamMemberDetailQuery = `
	SELECT tm.id, tm.team_id, t.name, tm.user_id, u.username, u.email, tm.role, tm.status
	FROM team_members tm
	JOIN teams t ON t.id = tm.team_id
	JOIN users u ON u.id = tm.user_id
`

func scanTeamMember(row pgx.Row) (*entity.TeamMember, error) {
	var member entity.TeamMember
	err := row.Scan(
		&member.ID,
		&member.TeamID,
		&member.UserID,
		&member.Role,
		&member.Status,
		&member.InvitedBy,
		&member.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func collectTeamMemberDetails(rows pgx.Rows) ([]*entity.TeamMemberDetail, error) {
	defer rows.Close()

	var details []*entity.TeamMemberDetail
	for rows.Next() {
		var d entity.TeamMemberDetail
		err := rows.Scan(
			&d.ID,
			&d.TeamID,
			&d.TeamName,
			&d.UserID,
			&d.Username,
			&d.Email,
			&d.Role,
			&d.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}

	return details, nil
}

// Create создает новое членство
func (r *TeamMemberRepository) Create(ctx context.Context, member *entity.TeamMember) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO team_members (id, team_id, user_id, role, status, invited_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn.Exec(ctx, query,
		member.ID,
		member.TeamID,
		member.UserID,
		member.Role,
		member.Status,
		member.InvitedBy,
		member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}

	return nil
}

// Update обновляет роль и статус членства
func (r *TeamMemberRepository) Update(ctx context.Context, member *entity.TeamMember) error {
	conn := getConn(ctx, r.pool)

	query := `UPDATE team_members SET role = $2, status = $3 WHERE id = $1`

	result, err := conn.Exec(ctx, query, member.ID, member.Role, member.Status)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// Delete удаляет членство
func (r *TeamMemberRepository) Delete(ctx context.Context, memberID uuid.UUID) error {
	conn := getConn(ctx, r.pool)

	result, err := conn.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetByID возвращает членство по ID
func (r *TeamMemberRepository) GetByID(ctx context.Context, memberID uuid.UUID) (*entity.TeamMember, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE id = $1`

	member, err := scanTeamMember(conn.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	return member, nil
}

// GetByTeamAndUser возвращает членство пользователя в команде
func (r *TeamMemberRepository) GetByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*entity.TeamMember, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE team_id = $1 AND user_id = $2`

	member, err := scanTeamMember(conn.QueryRow(ctx, query, teamID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	return member, nil
}

// GetByTeam возвращает всех участников команды
func (r *TeamMemberRepository) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]*entity.TeamMemberDetail, error) {
	conn := getConn(ctx, r.pool)

	query := teamMemberDetailQuery + ` WHERE tm.team_id = $1 ORDER BY tm.created_at`

	rows, err := conn.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	return collectTeamMemberDetails(rows)
}

// GetByUser возвращает все членства пользователя
func (r *TeamMemberRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TeamMemberDetail, error) {
	conn := getConn(ctx, r.pool)

	query := teamMemberDetailQuery + ` WHERE tm.user_id = $1 ORDER BY tm.created_at`

	rows, err := conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	return collectTeamMemberDetails(rows)
}

// GetByUserAndStatus возвращает членства пользователя с заданным статусом
func (r *TeamMemberRepository) GetByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.TeamStatus) ([]*entity.TeamMember, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE user_id = $1 AND status = $2 ORDER BY created_at`

	rows, err := conn.Query(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	var members []*entity.TeamMember
	for rows.Next() {
		member, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}

	return members, nil
}

// GetByTeamAndStatus возвращает участников команды с заданным статусом
func (r *TeamMemberRepository) GetByTeamAndStatus(ctx context.Context, teamID uuid.UUID, status entity.TeamStatus) ([]*entity.TeamMemberDetail, error) {
	conn := getConn(ctx, r.pool)

	query := teamMemberDetailQuery + ` WHERE tm.team_id = $1 AND tm.status = $2 ORDER BY tm.created_at`

	rows, err := conn.Query(ctx, query, teamID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	return collectTeamMemberDetails(rows)
}
