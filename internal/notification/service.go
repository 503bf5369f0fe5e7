package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/broker"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

// Service persists notifications and mirrors them onto the notifications
// topic for downstream delivery (email, push). The kafka publish is best
// effort.
type Service struct {
	repo     Repository
	producer *broker.KafkaProducer
	logger   *zap.Logger
}

func NewService(repo Repository, producer *broker.KafkaProducer, log *zap.Logger) *Service {
	return &Service{repo: repo, producer: producer, logger: log}
}

type event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Service) Send(ctx context.Context, userID, title, message string) error {
	now := time.Now()
	if err := s.repo.EnsureChannel(ctx, &model.Notification{
		BaseModel:        model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		User:             userID,
		MessageContainer: model.MessageList{},
	}); err != nil {
		return err
	}
	if err := s.repo.Append(ctx, userID, model.Message{Title: title, Message: message}); err != nil {
		return err
	}

	if s.producer != nil {
		ev := event{
			EventID:   uuid.New().String(),
			EventType: "NotificationCreated",
			UserID:    userID,
			Title:     title,
			Message:   message,
			Timestamp: now,
		}
		payload, err := json.Marshal(ev)
		if err == nil {
			err = s.producer.Publish(ctx, []byte(userID), payload)
		}
		if err != nil {
			s.logger.Warn("failed to publish notification event",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}
