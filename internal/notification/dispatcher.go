package notification

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

// Dispatcher delivers a message to a user's notification channel.
// Delivery is fire-and-forget: callers log failures and continue, a failed
// dispatch never rolls back the state change that triggered it.
type Dispatcher interface {
	Send(ctx context.Context, userID, title, message string) error
}

type Repository interface {
	// EnsureChannel creates the user's notification row if it does not exist.
	EnsureChannel(ctx context.Context, n *model.Notification) error
	// Append pushes a message onto the user's message container.
	Append(ctx context.Context, userID string, msg model.Message) error
	FindByUser(ctx context.Context, userID string) (*model.Notification, error)
}
