package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/request/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Request, error) {
	var req model.Request
	err := r.DB.GetContext(ctx, &req, `SELECT * FROM requests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *PGRepository) FindByOrder(ctx context.Context, orderID string) (*model.Request, error) {
	var req model.Request
	err := r.DB.GetContext(ctx, &req, `SELECT * FROM requests WHERE order_id = $1`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *PGRepository) FindBySource(ctx context.Context, sourceID, source string) ([]model.Request, error) {
	var items []model.Request
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM requests WHERE source_id = $1 AND source = $2 ORDER BY created_at DESC`,
		sourceID, source)
	return items, err
}

func (r *PGRepository) Create(ctx context.Context, req *model.Request) error {
	query := `
        INSERT INTO requests (
            id, type, order_id, source_id, source, status,
            users_on_request, created_at, updated_at
        )
        VALUES (
            :id, :type, :order_id, :source_id, :source, :status,
            :users_on_request, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, req)
	return err
}

func (r *PGRepository) Update(ctx context.Context, req *model.Request) error {
	query := `
        UPDATE requests SET
            status = :status,
            users_on_request = :users_on_request,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, req)
	return err
}

func (r *PGRepository) CreateUserRequest(ctx context.Context, ur *model.UserRequest) error {
	query := `
        INSERT INTO user_requests (
            id, cluster, request, user_id, status, quantity,
            quantity_units, created_at, updated_at
        )
        VALUES (
            :id, :cluster, :request, :user_id, :status, :quantity,
            :quantity_units, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, ur)
	return err
}

func (r *PGRepository) FindUserRequestByID(ctx context.Context, id string) (*model.UserRequest, error) {
	var ur model.UserRequest
	err := r.DB.GetContext(ctx, &ur, `SELECT * FROM user_requests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ur, nil
}

func (r *PGRepository) FindUserRequestByRequestAndUser(ctx context.Context, requestID, userID string) (*model.UserRequest, error) {
	var ur model.UserRequest
	err := r.DB.GetContext(ctx, &ur,
		`SELECT * FROM user_requests WHERE request = $1 AND user_id = $2`, requestID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ur, nil
}

func (r *PGRepository) FindUserRequests(ctx context.Context, f *dto.UserRequestFilters) ([]model.UserRequest, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Cluster != "" {
		conditions = append(conditions, "cluster = :cluster")
		args["cluster"] = f.Cluster
	}
	if f.User != "" {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = f.User
	}
	if f.Request != "" {
		conditions = append(conditions, "request = :request")
		args["request"] = f.Request
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	query := "SELECT * FROM user_requests"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var items []model.UserRequest
	err = nstmt.SelectContext(ctx, &items, args)
	return items, err
}

func (r *PGRepository) UpdateUserRequest(ctx context.Context, ur *model.UserRequest) error {
	query := `
        UPDATE user_requests SET
            status = :status,
            quantity = :quantity,
            quantity_units = :quantity_units,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, ur)
	return err
}
