package event

import (
	"context"
	"log/slog"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/pkg/kafka"
	"github.com/utafrali/finsearch/pkg/logger"
)

// Topics published and consumed by this service.
var (
	TopicExportCompleted = kafka.Topic("export", "completed")
	TopicSettingsUpdated = kafka.Topic("settings", "updated")
)

const sourceName = "finsearch"

// ExportCompletedData is the payload of an export completed event.
type ExportCompletedData struct {
	ShopKey    string `json:"shop_key"`
	Total      int    `json:"total"`
	Exported   int    `json:"exported"`
	ErrorCount int    `json:"error_count"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewProducer creates an event producer.
func NewProducer(producer *kafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{producer: producer, logger: logger}
}

// ExportCompleted publishes the outcome of an export run. Publish failures
// are logged, not returned: an export must not fail because the broker is
// down.
func (p *Producer) ExportCompleted(ctx context.Context, shopKey string, result *domain.ExportResult) {
	data := ExportCompletedData{
		ShopKey:    shopKey,
		Total:      result.Total,
		Exported:   result.Count,
		ErrorCount: result.ErrorCount,
	}

	ev, err := kafka.NewEvent("export.completed", shopKey, "export", sourceName, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build export event", slog.String("error", err.Error()))
		return
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		ev.WithCorrelationID(id)
	}

	if err := p.producer.Publish(ctx, TopicExportCompleted, ev); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish export event", slog.String("error", err.Error()))
	}
}
