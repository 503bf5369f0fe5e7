package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) ListByTypes(ctx context.Context, types []model.UserType) ([]model.User, error) {
	if len(types) == 0 {
		return []model.User{}, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM users WHERE user_type IN (?)`, types)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var users []model.User
	err = r.DB.SelectContext(ctx, &users, query, args...)
	return users, err
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (
            id, first_name, last_name, email, phone_number,
            user_type, status, country, profile, created_at, updated_at
        )
        VALUES (
            :id, :first_name, :last_name, :email, :phone_number,
            :user_type, :status, :country, :profile, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users SET
            first_name = :first_name,
            last_name = :last_name,
            email = :email,
            phone_number = :phone_number,
            status = :status,
            country = :country,
            profile = :profile,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// profileBranch maps a producer user type to its profile document branch.
func profileBranch(t model.UserType) (string, error) {
	switch t {
	case model.UserTypeFarmer:
		return "farmer", nil
	case model.UserTypeMiner:
		return "miner", nil
	default:
		return "", fmt.Errorf("user type %s has no producer profile branch", t)
	}
}

func (r *PGRepository) SetProducerClusterDetail(ctx context.Context, userID string, userType model.UserType, detail *model.ClusterDetail) error {
	branch, err := profileBranch(userType)
	if err != nil {
		return err
	}

	if detail == nil {
		query := fmt.Sprintf(`
            UPDATE users
            SET profile = profile #- '{%s,clusterDetail}', updated_at = now()
            WHERE id = $1
        `, branch)
		_, err = r.DB.ExecContext(ctx, query, userID)
		return err
	}

	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        UPDATE users
        SET profile = jsonb_set(profile, '{%s,clusterDetail}', $2::jsonb, true), updated_at = now()
        WHERE id = $1
    `, branch)
	_, err = r.DB.ExecContext(ctx, query, userID, payload)
	return err
}

func (r *PGRepository) SetAgentAssignment(ctx context.Context, userID string, assignment *model.AssignedCluster) error {
	if assignment == nil {
		assignment = &model.AssignedCluster{Assigned: false}
	}
	payload, err := json.Marshal(assignment)
	if err != nil {
		return err
	}
	query := `
        UPDATE users
        SET profile = jsonb_set(profile, '{gemExcite,isAssignedCluster}', $2::jsonb, true), updated_at = now()
        WHERE id = $1
    `
	_, err = r.DB.ExecContext(ctx, query, userID, payload)
	return err
}

func (r *PGRepository) AppendOrderInProcess(ctx context.Context, userID, orderID string) error {
	query := `
        UPDATE users
        SET profile = jsonb_set(
                profile,
                '{gemExcite,ordersInProcess}',
                COALESCE(profile #> '{gemExcite,ordersInProcess}', '[]'::jsonb)
                    || jsonb_build_object('order', $2::text),
                true
            ),
            updated_at = now()
        WHERE id = $1
    `
	_, err := r.DB.ExecContext(ctx, query, userID, orderID)
	return err
}
