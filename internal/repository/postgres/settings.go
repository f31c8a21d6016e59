package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utafrali/finsearch/internal/domain"
	apperrors "github.com/utafrali/finsearch/pkg/errors"
)

// SettingsRepository implements repository.SettingsStore using PostgreSQL.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// GetSettings returns the plugin configuration for the given shop.
func (r *SettingsRepository) GetSettings(ctx context.Context, shopID int64) (*domain.Settings, error) {
	query := `
		SELECT shop_id, activate_findologic, COALESCE(shop_key, ''), integration_type, activate_for_category_pages
		FROM shop_settings
		WHERE shop_id = $1`

	var s domain.Settings
	err := r.pool.QueryRow(ctx, query, shopID).Scan(
		&s.ShopID,
		&s.ActivateFindologic,
		&s.ShopKey,
		&s.IntegrationType,
		&s.ActivateForCategoryPages,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("settings", strconv.FormatInt(shopID, 10))
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}
