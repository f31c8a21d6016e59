package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/finsearch/pkg/kafka"
)

type fakeInvalidator struct {
	calls []int64
	err   error
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, shopID int64) error {
	f.calls = append(f.calls, shopID)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func settingsEvent(t *testing.T, shopID int64) *kafka.Event {
	t.Helper()
	ev, err := kafka.NewEvent("settings.updated", "42", "settings", sourceName, SettingsUpdatedData{ShopID: shopID})
	require.NoError(t, err)
	return ev
}

func TestSettingsConsumerInvalidatesShop(t *testing.T) {
	inv := &fakeInvalidator{}
	consumer := NewSettingsConsumer(inv, discardLogger())

	err := consumer.Handle(context.Background(), settingsEvent(t, 42))

	require.NoError(t, err)
	assert.Equal(t, []int64{42}, inv.calls)
}

func TestSettingsConsumerInvalidatesAllShops(t *testing.T) {
	inv := &fakeInvalidator{}
	consumer := NewSettingsConsumer(inv, discardLogger())

	err := consumer.Handle(context.Background(), settingsEvent(t, 0))

	require.NoError(t, err)
	assert.Equal(t, []int64{0}, inv.calls)
}

func TestSettingsConsumerSkipsMalformedPayload(t *testing.T) {
	inv := &fakeInvalidator{}
	consumer := NewSettingsConsumer(inv, discardLogger())

	ev := settingsEvent(t, 1)
	ev.Data = json.RawMessage(`{not json`)

	err := consumer.Handle(context.Background(), ev)

	require.NoError(t, err)
	assert.Empty(t, inv.calls)
}

func TestSettingsConsumerPropagatesInvalidatorError(t *testing.T) {
	inv := &fakeInvalidator{err: errors.New("redis down")}
	consumer := NewSettingsConsumer(inv, discardLogger())

	err := consumer.Handle(context.Background(), settingsEvent(t, 7))

	assert.Error(t, err)
}
