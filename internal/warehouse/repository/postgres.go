package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// pageOffset clamps page to the first page so an unparsed or zero page
// query value never yields a negative OFFSET.
func pageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.DB.GetContext(ctx, &w, `SELECT * FROM warehouses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *PGRepository) FindByIDAndType(ctx context.Context, id string, warehouseType model.WarehouseType) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.DB.GetContext(ctx, &w,
		`SELECT * FROM warehouses WHERE id = $1 AND type = $2`, id, warehouseType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.WarehouseFilters) ([]model.Warehouse, int, error) {
	var items []model.Warehouse
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Q != "" {
		conditions = append(conditions, "name ILIKE :q")
		args["q"] = "%" + f.Q + "%"
	}
	if f.Type != "" {
		conditions = append(conditions, "type = :type")
		args["type"] = f.Type
	}
	if f.Location != "" {
		conditions = append(conditions, "location ILIKE :location")
		args["location"] = "%" + f.Location + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM warehouses" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM warehouses" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, pageOffset(f.Page, f.PageSize))
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) Create(ctx context.Context, w *model.Warehouse) error {
	query := `
        INSERT INTO warehouses (
            id, type, name, location, created_by, capacity,
            manager_assigned, commodities, created_at, updated_at
        )
        VALUES (
            :id, :type, :name, :location, :created_by, :capacity,
            :manager_assigned, :commodities, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, w)
	return err
}

func (r *PGRepository) Update(ctx context.Context, w *model.Warehouse) error {
	query := `
        UPDATE warehouses SET
            type = :type,
            name = :name,
            location = :location,
            capacity = :capacity,
            manager_assigned = :manager_assigned,
            commodities = :commodities,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, w)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	return err
}

func (r *PGRepository) AppendCommodityBatch(ctx context.Context, warehouseID string, batch model.CommodityBatch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	query := `
        UPDATE warehouses
        SET commodities = commodities || $2::jsonb, updated_at = now()
        WHERE id = $1
    `
	_, err = r.DB.ExecContext(ctx, query, warehouseID, payload)
	return err
}
