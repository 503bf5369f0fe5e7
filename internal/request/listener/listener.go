package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/broker"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster"
	"github.com/byron-a/ExciteTrade-backend/internal/commodity"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/request"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse"
	whdto "github.com/byron-a/ExciteTrade-backend/internal/warehouse/dto"
)

// QualityCheckListener consumes warehouse quality verdicts and moves the
// delivery pipeline forward: the upload record, the producer's assignment and,
// on a pass, the warehouse's batch inventory.
type QualityCheckListener struct {
	consumer    *broker.KafkaConsumer
	commodities commodity.Repository
	requests    request.Repository
	clusters    cluster.Repository
	warehouses  warehouse.UseCase
	logger      *zap.Logger
}

func NewQualityCheckListener(
	consumer *broker.KafkaConsumer,
	commodities commodity.Repository,
	requests request.Repository,
	clusters cluster.Repository,
	warehouses warehouse.UseCase,
	log *zap.Logger,
) *QualityCheckListener {
	return &QualityCheckListener{
		consumer:    consumer,
		commodities: commodities,
		requests:    requests,
		clusters:    clusters,
		warehouses:  warehouses,
		logger:      log,
	}
}

func (l *QualityCheckListener) Start(ctx context.Context) {
	l.logger.Info("starting quality-check kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping quality-check kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type QualityCheckedEvent struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Payload   QualityCheckPayload `json:"payload"`
	Timestamp time.Time           `json:"timestamp"`
}

type QualityCheckPayload struct {
	UploadID string `json:"upload_id"`
	Passed   bool   `json:"passed"`
	OrderID  string `json:"order_id,omitempty"`
}

func (l *QualityCheckListener) processMessage(ctx context.Context, value []byte) {
	var event QualityCheckedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "CommodityQualityChecked" {
		return
	}

	l.logger.Info("processing quality-check verdict",
		zap.String("upload_id", event.Payload.UploadID),
		zap.Bool("passed", event.Payload.Passed))

	verdict := model.UploadedCommodityStatusFailed
	if event.Payload.Passed {
		verdict = model.UploadedCommodityStatusPassed
	}
	upload, err := l.commodities.SetStatus(ctx, event.Payload.UploadID, verdict)
	if err != nil {
		l.logger.Error("failed to mark upload verdict",
			zap.String("upload_id", event.Payload.UploadID), zap.Error(err))
		return
	}
	if upload == nil {
		l.logger.Warn("quality verdict for unknown upload",
			zap.String("upload_id", event.Payload.UploadID))
		return
	}

	ur, err := l.requests.FindUserRequestByRequestAndUser(ctx, upload.Request, upload.User)
	if err != nil || ur == nil {
		l.logger.Error("assignment for upload not found",
			zap.String("upload_id", upload.ID), zap.Error(err))
		return
	}

	if !event.Payload.Passed {
		// A failed check sends the producer back to cultivation to redeliver.
		ur.Status = model.UserRequestStatusInCultivation
		ur.UpdatedAt = time.Now()
		if err := l.requests.UpdateUserRequest(ctx, ur); err != nil {
			l.logger.Error("failed to reset assignment after failed check",
				zap.String("user_request_id", ur.ID), zap.Error(err))
		}
		return
	}

	if ur.Status.CanTransition(model.UserRequestStatusValidating) {
		ur.Status = model.UserRequestStatusValidating
	}
	if ur.Status.CanTransition(model.UserRequestStatusDelivered) {
		ur.Status = model.UserRequestStatusDelivered
	}
	ur.UpdatedAt = time.Now()
	if err := l.requests.UpdateUserRequest(ctx, ur); err != nil {
		l.logger.Error("failed to advance assignment after passed check",
			zap.String("user_request_id", ur.ID), zap.Error(err))
		return
	}

	clusterName := ""
	if c, err := l.clusters.FindByID(ctx, upload.Cluster); err == nil && c != nil {
		clusterName = c.Name
	}

	if _, err := l.warehouses.AddCommodityBatch(ctx, upload.Warehouse, &whdto.AddBatchInput{
		Commodity:     upload.Commodity,
		Quantity:      upload.Quantity,
		ClusterName:   clusterName,
		InventoryType: string(model.InventoryTypePreOrder),
		Order:         event.Payload.OrderID,
		PricePerTonne: upload.PricePerTonne,
	}); err != nil {
		l.logger.Error("failed to record warehouse intake",
			zap.String("upload_id", upload.ID),
			zap.String("warehouse_id", upload.Warehouse),
			zap.Error(err))
	}
}
