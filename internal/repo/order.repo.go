package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lavka-stub/internal/database"
	"lavka-stub/internal/domain"
)

// ErrDuplicateKey is returned when an insert hits the created_order_id
// uniqueness constraint.
var ErrDuplicateKey = errors.New("duplicate key")

type OrderRepo interface {
	// CreateOrder inserts one row. A second row with the same CreatedOrderID
	// fails with an error matching ErrDuplicateKey and writes nothing.
	CreateOrder(ctx context.Context, order *domain.Order) error
	// FindByCreatedOrderID returns nil, nil when no order carries the key.
	FindByCreatedOrderID(ctx context.Context, createdOrderID string) (*domain.Order, error)
}

type orderRepo struct {
	db *database.DB
}

func NewOrderRepo(db *database.DB) OrderRepo {
	return &orderRepo{db: db}
}

// conflictError keeps the driver message while matching ErrDuplicateKey.
type conflictError struct {
	err error
}

func (e *conflictError) Error() string   { return e.err.Error() }
func (e *conflictError) Unwrap() []error { return []error{ErrDuplicateKey, e.err} }

func (r *orderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO orders (created_order_id, order_id, status) VALUES ($1, $2, $3)",
		nullIfEmpty(order.CreatedOrderID), order.OrderID, string(order.Status),
	)
	if err != nil {
		if database.IsUniqueViolationOf(err, database.OrdersCreatedOrderIDKey, "orders.created_order_id") {
			return &conflictError{err: err}
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *orderRepo) FindByCreatedOrderID(ctx context.Context, createdOrderID string) (*domain.Order, error) {
	var (
		order    domain.Order
		external sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT created_order_id, order_id, status FROM orders WHERE created_order_id = $1",
		createdOrderID,
	).Scan(&external, &order.OrderID, &order.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	order.CreatedOrderID = external.String
	return &order, nil
}

// nullIfEmpty stores a missing idempotency key as NULL so the unique
// constraint never applies to it. Any other value, whitespace included, is
// stored as sent.
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
