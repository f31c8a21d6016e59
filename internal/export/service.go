package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/internal/repository"
)

// EventPublisher notifies downstream consumers about completed export runs.
type EventPublisher interface {
	ExportCompleted(ctx context.Context, shopKey string, result *domain.ExportResult)
}

// Service orchestrates catalog export runs: paging through products,
// gating them through the eligibility filter, and mapping survivors into
// feed items.
type Service struct {
	catalog repository.CatalogStore
	filter  *EligibilityFilter
	events  EventPublisher
	logger  *slog.Logger
}

// NewService creates an export service. events may be nil when no event
// publishing is wired.
func NewService(catalog repository.CatalogStore, filter *EligibilityFilter, events EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		filter:  filter,
		events:  events,
		logger:  logger,
	}
}

// Export runs one paged export. Total is the count of active products
// independent of paging; count <= 0 means no limit. One product's failure
// never aborts the batch: it is recorded and the run continues.
func (s *Service) Export(ctx context.Context, shopKey string, baseCategoryID int64, start, count int) (*domain.ExportResult, error) {
	if err := validateArgs(shopKey, baseCategoryID, start); err != nil {
		return nil, err
	}

	total, err := s.catalog.CountActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active products: %w", err)
	}

	products, err := s.catalog.FetchActiveProducts(ctx, start, count)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	result, err := s.processProducts(ctx, shopKey, baseCategoryID, products)
	if err != nil {
		return nil, err
	}
	result.Total = total

	exportRunsTotal.Inc()
	exportedProductsTotal.Add(float64(result.Count))
	exportProductErrorsTotal.Add(float64(result.ErrorCount))

	s.logger.InfoContext(ctx, "export completed",
		slog.Int("total", result.Total),
		slog.Int("exported", result.Count),
		slog.Int("errors", result.ErrorCount),
		slog.Int("start", start),
		slog.Int("page_size", count),
	)

	if s.events != nil {
		s.events.ExportCompleted(ctx, shopKey, result)
	}

	return result, nil
}

// ExportProduct exports the products matching a single identifier (product
// ID, order number, EAN, or supplier number). A missing match is a general
// error, not a per-product one.
func (s *Service) ExportProduct(ctx context.Context, shopKey string, baseCategoryID int64, identifier string) (*domain.ExportResult, error) {
	if err := validateArgs(shopKey, baseCategoryID, 0); err != nil {
		return nil, err
	}

	products, err := s.catalog.FetchProductsByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("fetch products by identifier: %w", err)
	}

	if len(products) == 0 {
		return &domain.ExportResult{
			GeneralErrors: []string{fmt.Sprintf("No product found with ID %s", identifier)},
		}, nil
	}

	result, err := s.processProducts(ctx, shopKey, baseCategoryID, products)
	if err != nil {
		return nil, err
	}
	result.Total = len(products)
	return result, nil
}

// processProducts runs eligibility and mapping for a page of products.
// Reference data (customer groups, sales aggregates) is fetched once per
// call, not per product.
func (s *Service) processProducts(ctx context.Context, shopKey string, baseCategoryID int64, products []domain.CatalogProduct) (*domain.ExportResult, error) {
	groups, err := s.catalog.CustomerGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch customer groups: %w", err)
	}

	sales, err := s.catalog.SalesFrequencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch sales frequencies: %w", err)
	}

	result := &domain.ExportResult{}

	for i := range products {
		p := &products[i]

		info := s.filter.Evaluate(p, baseCategoryID)
		if info.HasErrors() {
			result.ProductErrors = append(result.ProductErrors, info)
			result.ErrorCount++
			continue
		}

		item, err := MapProduct(p, shopKey, groups, sales)
		if err != nil {
			info.AddReason(err.Error())
			result.ProductErrors = append(result.ProductErrors, info)
			result.ErrorCount++
			s.logger.WarnContext(ctx, "product skipped",
				slog.Int64("product_id", p.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		result.Items = append(result.Items, *item)
		result.ProductErrors = append(result.ProductErrors, info)
	}

	result.Count = len(result.Items)
	return result, nil
}

func validateArgs(shopKey string, baseCategoryID int64, start int) error {
	if !domain.ValidShopKey(shopKey) {
		return &domain.InvalidArgumentError{Reason: fmt.Sprintf("invalid shop key %q", shopKey)}
	}
	if baseCategoryID <= 0 {
		return &domain.InvalidArgumentError{Reason: fmt.Sprintf("invalid base category %d", baseCategoryID)}
	}
	if start < 0 {
		return &domain.InvalidArgumentError{Reason: fmt.Sprintf("invalid start offset %d", start)}
	}
	return nil
}
