package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

const uniqueViolation = "23505"

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

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Cluster, error) {
	var c model.Cluster
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM clusters WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindByCode(ctx context.Context, clusterCode string) (*model.Cluster, error) {
	var c model.Cluster
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM clusters WHERE cluster_code = $1`, clusterCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ClusterFilters) ([]model.Cluster, int, error) {
	var items []model.Cluster
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Q != "" && f.Q != "all" {
		conditions = append(conditions, "name ILIKE :q")
		args["q"] = "%" + f.Q + "%"
	}
	if f.Location != "" && f.Location != "all" {
		conditions = append(conditions, "location = :location")
		args["location"] = f.Location
	}
	if f.Commodity != "" && f.Commodity != "all" {
		conditions = append(conditions, "commodity_name = :commodity")
		args["commodity"] = f.Commodity
	}
	if f.Type != "" && f.Type != "all" {
		conditions = append(conditions, "type = :type")
		args["type"] = f.Type
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM clusters" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM clusters" + whereClause + " ORDER BY created_at DESC"
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

func (r *PGRepository) ExistsByNameAndLocation(ctx context.Context, name, location string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM clusters WHERE name = $1 AND location = $2)`, name, location)
	return exists, err
}

func (r *PGRepository) CountByWarehouse(ctx context.Context, warehouseID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM clusters WHERE warehouse_id = $1`, warehouseID)
	return count, err
}

func (r *PGRepository) FindByWarehouse(ctx context.Context, warehouseID string) ([]model.Cluster, error) {
	var items []model.Cluster
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM clusters WHERE warehouse_id = $1`, warehouseID)
	return items, err
}

func (r *PGRepository) Create(ctx context.Context, c *model.Cluster) error {
	query := `
        INSERT INTO clusters (
            id, name, slug, type, description, commodity_name, location,
            cluster_code, rating, created_by, warehouse_id, gem_excite_assigned,
            producers, cluster_capacity, order_requested, cluster_available,
            created_at, updated_at
        )
        VALUES (
            :id, :name, :slug, :type, :description, :commodity_name, :location,
            :cluster_code, :rating, :created_by, :warehouse_id, :gem_excite_assigned,
            :producers, :cluster_capacity, :order_requested, :cluster_available,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return apperror.Wrap(apperror.KindConflict, "cluster uniqueness violation", err)
	}
	return err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Cluster) error {
	query := `
        UPDATE clusters SET
            name = :name,
            slug = :slug,
            description = :description,
            commodity_name = :commodity_name,
            location = :location,
            rating = :rating,
            warehouse_id = :warehouse_id,
            gem_excite_assigned = :gem_excite_assigned,
            producers = :producers,
            cluster_capacity = :cluster_capacity,
            order_requested = :order_requested,
            cluster_available = :cluster_available,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM clusters WHERE id = $1`, id)
	return err
}
