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

// RequestRepository реализует repository.RequestRepository для PostgreSQL
type RequestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository создает новый репозиторий запросов
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

const requestColumns = "id, sender_id, receiver_id, joker_id, request_type, status, request_message, response_message, send_time, response_time"

const requestDetailQuery = `
	SELECT r.id, r.sender_id, r.receiver_id, r.joker_id, r.request_type, r.status,
	       r.request_message, r.response_message, r.send_time, r.response_time,
	       u.email
	FROM requests r
	JOIN users u ON u.id = r.sender_id
`

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var req entity.Request
	err := row.Scan(
		&req.ID,
		&req.SenderID,
		&req.ReceiverID,
		&req.JokerID,
		&req.RequestType,
		&req.Status,
		&req.RequestMessage,
		&req.ResponseMessage,
		&req.SendTime,
		&req.ResponseTime,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) collectDetails(ctx context.Context, query string, args ...interface{}) ([]*entity.RequestDetail, error) {
	conn := getConn(ctx, r.pool)

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %w", err)
	}
	defer rows.Close()

	var details []*entity.RequestDetail
	for rows.Next() {
		var d entity.RequestDetail
		err := rows.Scan(
			&d.ID,
			&d.SenderID,
			&d.ReceiverID,
			&d.JokerID,
			&d.RequestType,
			&d.Status,
			&d.RequestMessage,
			&d.ResponseMessage,
			&d.SendTime,
			&d.ResponseTime,
			&d.SenderEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}

	return details, nil
}

// Create создает новый запрос
func (r *RequestRepository) Create(ctx context.Context, request *entity.Request) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO requests (id, sender_id, receiver_id, joker_id, request_type, status,
		                      request_message, response_message, send_time, response_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := conn.Exec(ctx, query,
		request.ID,
		request.SenderID,
		request.ReceiverID,
		request.JokerID,
		request.RequestType,
		request.Status,
		request.RequestMessage,
		request.ResponseMessage,
		request.SendTime,
		request.ResponseTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}

// Update обновляет статус и ответ запроса
func (r *RequestRepository) Update(ctx context.Context, request *entity.Request) error {
	conn := getConn(ctx, r.pool)

	query := `
		UPDATE requests
		SET status = $2, response_message = $3, response_time = $4
		WHERE id = $1
	`

	result, err := conn.Exec(ctx, query,
		request.ID,
		request.Status,
		request.ResponseMessage,
		request.ResponseTime,
	)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// GetByID возвращает запрос по ID
func (r *RequestRepository) GetByID(ctx context.Context, requestID uuid.UUID) (*entity.Request, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	request, err := scanRequest(conn.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return request, nil
}

// GetByJoker возвращает запрос по ссылке на членство или участие
func (r *RequestRepository) GetByJoker(ctx context.Context, jokerID uuid.UUID) (*entity.Request, error) {
	conn := getConn(ctx, r.pool)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE joker_id = $1`

	request, err := scanRequest(conn.QueryRow(ctx, query, jokerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return request, nil
}

// DeleteByJokers удаляет запросы, ссылающиеся на перечисленные членства или участия
func (r *RequestRepository) DeleteByJokers(ctx context.Context, jokerIDs []uuid.UUID) error {
	if len(jokerIDs) == 0 {
		return nil
	}

	conn := getConn(ctx, r.pool)

	_, err := conn.Exec(ctx, `DELETE FROM requests WHERE joker_id = ANY($1)`, jokerIDs)
	if err != nil {
		return fmt.Errorf("failed to delete requests: %w", err)
	}

	return nil
}

// GetByReceiver возвращает запросы, адресованные пользователю
func (r *RequestRepository) GetByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*entity.RequestDetail, error) {
	query := requestDetailQuery + ` WHERE r.receiver_id = $1 ORDER BY r.send_time DESC`
	return r.collectDetails(ctx, query, receiverID)
}

// GetBySender возвращает запросы, отправленные пользователем
func (r *RequestRepository) GetBySender(ctx context.Context, senderID uuid.UUID) ([]*entity.RequestDetail, error) {
	query := requestDetailQuery + ` WHERE r.sender_id = $1 ORDER BY r.send_time DESC`
	return r.collectDetails(ctx, query, senderID)
}
