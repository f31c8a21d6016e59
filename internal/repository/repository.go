package repository

import (
	"context"

	"github.com/utafrali/finsearch/internal/domain"
)

// CatalogStore provides read access to the shop's product catalog. Products
// are returned with their variants, per-group prices, and category
// memberships eagerly materialized.
type CatalogStore interface {
	// CountActiveProducts returns the number of active products,
	// independent of paging.
	CountActiveProducts(ctx context.Context) (int, error)

	// FetchActiveProducts returns a page of active products ordered by ID.
	// A count of zero or less means no limit.
	FetchActiveProducts(ctx context.Context, start, count int) ([]domain.CatalogProduct, error)

	// FetchProductsByIdentifier returns active products whose ID, variant
	// order number, EAN, or supplier number matches the given identifier.
	FetchProductsByIdentifier(ctx context.Context, identifier string) ([]domain.CatalogProduct, error)

	// CustomerGroups returns all customer groups of the shop.
	CustomerGroups(ctx context.Context) ([]domain.CustomerGroup, error)

	// SalesFrequencies returns the total quantity sold per product ID.
	// Products with no sales are absent from the map.
	SalesFrequencies(ctx context.Context) (map[int64]int, error)

	// SearchActive runs a native catalog search for the given criteria and
	// returns the matching page plus the total match count.
	SearchActive(ctx context.Context, criteria domain.Criteria) ([]domain.CatalogProduct, int, error)
}

// SettingsStore provides read access to the per-shop plugin configuration.
type SettingsStore interface {
	GetSettings(ctx context.Context, shopID int64) (*domain.Settings, error)
}
