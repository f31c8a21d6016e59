package settings

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/internal/repository/memory"
)

func newTestProvider(store *memory.SettingsStore) *Provider {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProvider(store, nil, time.Minute, logger)
}

func TestProviderGet(t *testing.T) {
	store := memory.NewSettingsStore()
	store.Put(domain.Settings{
		ShopID:             1,
		ActivateFindologic: true,
		ShopKey:            "ABCD0815",
		IntegrationType:    domain.IntegrationTypeAPI,
	})
	provider := newTestProvider(store)

	settings, err := provider.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "ABCD0815", settings.ShopKey)
	assert.True(t, settings.ActivateFindologic)
}

func TestProviderGetUnknownShop(t *testing.T) {
	provider := newTestProvider(memory.NewSettingsStore())

	_, err := provider.Get(context.Background(), 99)

	assert.Error(t, err)
}

func TestProviderInvalidateWithoutCache(t *testing.T) {
	provider := newTestProvider(memory.NewSettingsStore())

	assert.NoError(t, provider.Invalidate(context.Background(), 1))
	assert.NoError(t, provider.Invalidate(context.Background(), 0))
}
