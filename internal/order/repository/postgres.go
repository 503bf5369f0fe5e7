package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindByIDAndOfftaker(ctx context.Context, id, offtakerID string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o,
		`SELECT * FROM orders WHERE id = $1 AND offtaker = $2`, id, offtakerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindByOfftaker(ctx context.Context, offtakerID string) ([]model.Order, error) {
	var items []model.Order
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM orders WHERE offtaker = $1 ORDER BY created_at DESC`, offtakerID)
	return items, err
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (
            id, offtaker, cluster, storage, selected_warehouse, quantity,
            order_type, status, tracking_id, price_per_tonne, deposit_paid,
            deposit_amount, remaining_amount, shipping_cost, vat, total_amount,
            estimated_delivery_date, created_at, updated_at
        )
        VALUES (
            :id, :offtaker, :cluster, :storage, :selected_warehouse, :quantity,
            :order_type, :status, :tracking_id, :price_per_tonne, :deposit_paid,
            :deposit_amount, :remaining_amount, :shipping_cost, :vat, :total_amount,
            :estimated_delivery_date, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) SetStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `
        UPDATE orders SET status = $2, updated_at = now()
        WHERE id = $1
        RETURNING *
    `, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}
