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

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.UploadedCommodity, error) {
	var c model.UploadedCommodity
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM uploaded_commodities WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) ([]model.UploadedCommodity, error) {
	var items []model.UploadedCommodity
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM uploaded_commodities WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return items, err
}

func (r *PGRepository) FindByCluster(ctx context.Context, clusterID string) ([]model.UploadedCommodity, error) {
	var items []model.UploadedCommodity
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM uploaded_commodities WHERE cluster = $1 ORDER BY created_at DESC`, clusterID)
	return items, err
}

func (r *PGRepository) Create(ctx context.Context, c *model.UploadedCommodity) error {
	query := `
        INSERT INTO uploaded_commodities (
            id, cluster, request, user_id, warehouse, status, commodity,
            quantity, quantity_units, price_per_tonne, image_url,
            created_at, updated_at
        )
        VALUES (
            :id, :cluster, :request, :user_id, :warehouse, :status, :commodity,
            :quantity, :quantity_units, :price_per_tonne, :image_url,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) SetStatus(ctx context.Context, id string, status model.UploadedCommodityStatus) (*model.UploadedCommodity, error) {
	var c model.UploadedCommodity
	err := r.DB.GetContext(ctx, &c, `
        UPDATE uploaded_commodities SET status = $2, updated_at = now()
        WHERE id = $1
        RETURNING *
    `, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
