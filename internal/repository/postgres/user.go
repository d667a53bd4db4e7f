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

// UserRepository реализует repository.UserRepository для PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, username, email, password_hash, role, status, created_at"

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создает нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO users (id, username, email, password_hash, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update обновляет пользователя
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	conn := getConn(ctx, r.pool)

	query := `
		UPDATE users
		SET username = $2, password_hash = $3, role = $4, status = $5
		WHERE id = $1
	`

	result, err := conn.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// Delete удаляет пользователя
func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	conn := getConn(ctx, r.pool)

	result, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(conn.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail возвращает пользователя по email без учета регистра
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	user, err := scanUser(conn.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail проверяет существование пользователя с таким email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	conn := getConn(ctx, r.pool)

	var exists bool
	err := conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// допустимые поля сортировки, чтобы не подставлять пользовательский ввод в SQL
var userSortFields = map[string]string{
	"username":  "username",
	"email":     "email",
	"role":      "role",
	"status":    "status",
	"createdAt": "created_at",
}

// Filter возвращает страницу пользователей по фильтрам
func (r *UserRepository) Filter(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	conn := getConn(ctx, r.pool)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + userColumns + ` FROM users WHERE 1=1`)
	args := []interface{}{}

	if filter.Email != "" {
		args = append(args, "%"+strings.ToLower(filter.Email)+"%")
		fmt.Fprintf(&sb, " AND lower(email) LIKE $%d", len(args))
	}
	if filter.Username != "" {
		args = append(args, "%"+strings.ToLower(filter.Username)+"%")
		fmt.Fprintf(&sb, " AND lower(username) LIKE $%d", len(args))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		fmt.Fprintf(&sb, " AND role = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}

	sortBy, ok := userSortFields[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s", sortBy, direction)

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
		return nil, fmt.Errorf("failed to filter users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
