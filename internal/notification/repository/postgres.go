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

func (r *PGRepository) EnsureChannel(ctx context.Context, n *model.Notification) error {
	query := `
        INSERT INTO notifications (id, user_id, message_container, created_at, updated_at)
        VALUES (:id, :user_id, :message_container, :created_at, :updated_at)
        ON CONFLICT (user_id) DO NOTHING
    `
	_, err := r.DB.NamedExecContext(ctx, query, n)
	return err
}

func (r *PGRepository) Append(ctx context.Context, userID string, msg model.Message) error {
	query := `
        UPDATE notifications
        SET message_container = message_container || jsonb_build_object('title', $2::text, 'message', $3::text),
            updated_at = now()
        WHERE user_id = $1
    `
	_, err := r.DB.ExecContext(ctx, query, userID, msg.Title, msg.Message)
	return err
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.GetContext(ctx, &n, `SELECT * FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}
