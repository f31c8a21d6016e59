package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/internal/findologic"
	"github.com/utafrali/finsearch/internal/repository"
)

// Sources a search result can come from.
const (
	SourceNative     = "native"
	SourceFindologic = "findologic"
)

// SettingsProvider resolves the plugin configuration for a shop.
type SettingsProvider interface {
	Get(ctx context.Context, shopID int64) (*domain.Settings, error)
}

// ExternalClient is the subset of the search service client used here.
type ExternalClient interface {
	IsAlive(ctx context.Context, shopKey string) bool
	Search(ctx context.Context, params url.Values) (*findologic.Response, error)
}

// Result is the outcome of one search request. The native path carries full
// products; the external path carries product references plus hydrated
// facets.
type Result struct {
	Total      int                     `json:"total"`
	Source     string                  `json:"source"`
	Products   []domain.CatalogProduct `json:"products,omitempty"`
	ProductIDs []string                `json:"product_ids,omitempty"`
	Facets     []domain.Facet          `json:"facets"`
}

// Service routes search requests between the native catalog search and the
// external service, translating criteria and hydrating the response.
type Service struct {
	catalog  repository.CatalogStore
	settings SettingsProvider
	client   ExternalClient
	logger   *slog.Logger
}

// NewService creates a search service.
func NewService(catalog repository.CatalogStore, settings SettingsProvider, client ExternalClient, logger *slog.Logger) *Service {
	return &Service{
		catalog:  catalog,
		settings: settings,
		client:   client,
		logger:   logger,
	}
}

// Search serves one search request. Unresolvable settings and an
// unreachable external service both degrade to native search instead of
// failing the request.
func (s *Service) Search(ctx context.Context, shopID int64, req RequestContext, criteria domain.Criteria) (*Result, error) {
	settings, err := s.settings.Get(ctx, shopID)
	if err != nil {
		s.logger.WarnContext(ctx, "settings lookup failed, using native search",
			slog.Int64("shop_id", shopID),
			slog.String("error", err.Error()),
		)
		settings = nil
	}

	if UseNativeSearch(settings, &req) {
		return s.nativeSearch(ctx, criteria)
	}

	result, err := s.externalSearch(ctx, settings.ShopKey, criteria)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotAlive) {
			s.logger.WarnContext(ctx, "search service not alive, falling back to native search",
				slog.Int64("shop_id", shopID),
			)
			return s.nativeSearch(ctx, criteria)
		}
		return nil, err
	}
	return result, nil
}

// Facets returns the facet set for a shop. When the external service is
// unreachable the result is an empty list, not an error, so callers can
// render without filters.
func (s *Service) Facets(ctx context.Context, shopID int64) ([]domain.Facet, error) {
	settings, err := s.settings.Get(ctx, shopID)
	if err != nil {
		settings = nil
	}

	req := RequestContext{IsSearchPage: true}
	if UseNativeSearch(settings, &req) {
		return findologic.HydrateFacets(nil), nil
	}

	params, err := findologic.BuildQuery(settings.ShopKey, domain.Criteria{Limit: 1})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Search(ctx, params)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotAlive) {
			return []domain.Facet{}, nil
		}
		return nil, err
	}

	return findologic.HydrateFacets(resp.Filters.Filters), nil
}

func (s *Service) nativeSearch(ctx context.Context, criteria domain.Criteria) (*Result, error) {
	products, total, err := s.catalog.SearchActive(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("native search: %w", err)
	}

	return &Result{
		Total:    total,
		Source:   SourceNative,
		Products: products,
		Facets:   findologic.HydrateFacets(nil),
	}, nil
}

func (s *Service) externalSearch(ctx context.Context, shopKey string, criteria domain.Criteria) (*Result, error) {
	if !s.client.IsAlive(ctx, shopKey) {
		return nil, domain.ErrServiceNotAlive
	}

	params, err := findologic.BuildQuery(shopKey, criteria)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Products.Products))
	for _, p := range resp.Products.Products {
		ids = append(ids, p.ID)
	}

	return &Result{
		Total:      resp.Results.Count,
		Source:     SourceFindologic,
		ProductIDs: ids,
		Facets:     findologic.HydrateFacets(resp.Filters.Filters),
	}, nil
}
