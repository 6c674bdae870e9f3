package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	GetOrder(ctx context.Context, id uint) (*Order, error)
	CreatePayment(ctx context.Context, orderID uint, amount float64) (*Payment, error)
	GetPaymentByHash(ctx context.Context, hash string) (*Payment, error)
	GetPayment(ctx context.Context, id uint) (*Payment, error)
	MarkPaymentPaid(ctx context.Context, id uint) (bool, error)
	MarkOrderPaid(ctx context.Context, orderID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrder(ctx context.Context, id uint) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, amount, currency, email, phone, status, created_at
		FROM orders WHERE id = $1
	`, id)

	var o Order
	err := row.Scan(&o.ID, &o.Amount, &o.Currency, &o.Email, &o.Phone, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreatePayment opens a new checkout attempt. The hash is a fresh UUID per
// attempt, so it is never reused across attempts even for the same order.
func (r *repository) CreatePayment(ctx context.Context, orderID uint, amount float64) (*Payment, error) {
	p := &Payment{
		OrderID: orderID,
		Hash:    uuid.NewString(),
		Amount:  amount,
		Status:  StatusPending,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, hash, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.OrderID, p.Hash, p.Amount, p.Status).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetPaymentByHash(ctx context.Context, hash string) (*Payment, error) {
	return r.scanPayment(r.db.QueryRowContext(ctx, `
		SELECT id, order_id, hash, amount, status, created_at, updated_at
		FROM payments WHERE hash = $1
	`, hash))
}

func (r *repository) GetPayment(ctx context.Context, id uint) (*Payment, error) {
	return r.scanPayment(r.db.QueryRowContext(ctx, `
		SELECT id, order_id, hash, amount, status, created_at, updated_at
		FROM payments WHERE id = $1
	`, id))
}

func (r *repository) scanPayment(row *sql.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Hash, &p.Amount, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkPaymentPaid flips a pending payment to paid. The status predicate makes
// the transition single-shot: a duplicate notification affects zero rows.
func (r *repository) MarkPaymentPaid(ctx context.Context, id uint) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, StatusPaid, id, StatusPending)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) MarkOrderPaid(ctx context.Context, orderID uint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2
	`, StatusPaid, orderID)
	return err
}
