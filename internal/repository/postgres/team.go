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

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository создает новый репозиторий команд
func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

const teamColumns = "id, name, description, creator_id, created_at"

func scanTeam(row pgx.Row) (*entity.Team, error) {
	var team entity.Team
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.CreatorID,
		&team.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func collectTeams(rows pgx.Rows) ([]*entity.Team, error) {
	defer rows.Close()

	var teams []*entity.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}

	return teams, nil
}

// Create создает новую команду
func (r *TeamRepository) Create(ctx context.Context, team *entity.Team) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO teams (id, name, description, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := conn.Exec(ctx, query,
		team.ID,
		team.Name,
		team.Description,
		team.CreatorID,
		team.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

// Update обновляет команду
func (r *TeamRepository) Update(ctx context.Context, team *entity.Team) error {
	conn := getConn(ctx, r.pool)

	query := `UPDATE teams SET name = $2, description = $3 WHERE id = $1`

	result, err := conn.Exec(ctx, query, team.ID, team.Name, team.Description)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// Delete удаляет команду; членства и участники каскадируются по FK
func (r *TeamRepository) Delete(ctx context.Context, teamID uuid.UUID) error {
	conn := getConn(ctx, r.pool)

	result, err := conn.Exec(ctx, `DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetByID возвращает команду по ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID uuid.UUID) (*entity.Team, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := scanTeam(conn.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// ExistsByName проверяет занятость имени команды без учета регистра
func (r *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	conn := getConn(ctx, r.pool)

	var exists bool
	err := conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teams WHERE lower(name) = lower($1))`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team name: %w", err)
	}

	return exists, nil
}

// Filter возвращает страницу команд по фильтрам
func (r *TeamRepository) Filter(ctx context.Context, filter entity.TeamFilter) ([]*entity.Team, error) {
	conn := getConn(ctx, r.pool)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + teamColumns + ` FROM teams WHERE 1=1`)
	args := []interface{}{}

	if filter.Name != "" {
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
		fmt.Fprintf(&sb, " AND lower(name) LIKE $%d", len(args))
	}
	if filter.Description != "" {
		args = append(args, "%"+strings.ToLower(filter.Description)+"%")
		fmt.Fprintf(&sb, " AND lower(description) LIKE $%d", len(args))
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
		return nil, fmt.Errorf("failed to filter teams: %w", err)
	}

	return collectTeams(rows)
}

// GetAll возвращает все команды
func (r *TeamRepository) GetAll(ctx context.Context) ([]*entity.Team, error) {
	conn := getConn(ctx, r.pool)

	rows, err := conn.Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	return collectTeams(rows)
}

// GetExcluding возвращает страницу команд, не входящих в переданный список
func (r *TeamRepository) GetExcluding(ctx context.Context, teamIDs []uuid.UUID, page, size int) ([]*entity.Team, error) {
	conn := getConn(ctx, r.pool)

	if size <= 0 {
		size = 20
	}

	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE NOT (id = ANY($1))
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := conn.Query(ctx, query, teamIDs, size, page*size)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	return collectTeams(rows)
}
