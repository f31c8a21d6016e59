package event

import (
	"context"
	"log/slog"

	"github.com/utafrali/finsearch/pkg/kafka"
)

// SettingsInvalidator clears cached settings after configuration changes.
type SettingsInvalidator interface {
	Invalidate(ctx context.Context, shopID int64) error
}

// SettingsUpdatedData is the payload of a settings updated event. A zero
// ShopID invalidates the settings of all shops.
type SettingsUpdatedData struct {
	ShopID int64 `json:"shop_id"`
}

// SettingsConsumer reacts to settings updated events by invalidating the
// settings cache region, leaving all other cached data intact.
type SettingsConsumer struct {
	invalidator SettingsInvalidator
	logger      *slog.Logger
}

// NewSettingsConsumer creates a settings event consumer.
func NewSettingsConsumer(invalidator SettingsInvalidator, logger *slog.Logger) *SettingsConsumer {
	return &SettingsConsumer{invalidator: invalidator, logger: logger}
}

// Handle processes one settings event.
func (c *SettingsConsumer) Handle(ctx context.Context, event *kafka.Event) error {
	var data SettingsUpdatedData
	if err := event.UnmarshalData(&data); err != nil {
		// A malformed payload will never become parseable; skip it.
		c.logger.ErrorContext(ctx, "malformed settings event",
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if err := c.invalidator.Invalidate(ctx, data.ShopID); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "settings cache invalidated",
		slog.Int64("shop_id", data.ShopID),
		slog.String("event_id", event.EventID),
	)
	return nil
}
