package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/altarajoyas/catalog-service/internal/inventory"
	"github.com/altarajoyas/catalog-service/pkg/broker"
	"github.com/altarajoyas/catalog-service/pkg/logger"
)

// InventoryListener applies storefront order events to stock through the
// same transactional path the HTTP update uses.
type InventoryListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, log logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("starting inventory kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping inventory kafka listener")
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

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID    string             `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	for _, item := range event.Payload.Items {
		if item.Quantity <= 0 {
			continue
		}
		notes := fmt.Sprintf("order %s", event.Payload.ID)
		if err := l.uc.ApplyMovement(ctx, item.ProductID, -item.Quantity, notes); err != nil {
			// Skip and keep consuming; the order service reconciles
			// rejected deductions on its side.
			l.logger.Error("failed to apply order movement",
				zap.String("order_id", event.Payload.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err))
		}
	}
}
