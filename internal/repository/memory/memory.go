package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/utafrali/finsearch/internal/domain"
	apperrors "github.com/utafrali/finsearch/pkg/errors"
)

// CatalogStore is an in-memory repository.CatalogStore used in tests and
// local development.
type CatalogStore struct {
	mu       sync.RWMutex
	products []domain.CatalogProduct
	groups   []domain.CustomerGroup
	sales    map[int64]int
}

// NewCatalogStore creates an empty in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{sales: make(map[int64]int)}
}

// AddProduct adds a product to the store.
func (s *CatalogStore) AddProduct(p domain.CatalogProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	sort.Slice(s.products, func(i, j int) bool { return s.products[i].ID < s.products[j].ID })
}

// SetCustomerGroups replaces the customer groups of the store.
func (s *CatalogStore) SetCustomerGroups(groups []domain.CustomerGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
}

// SetSalesFrequency sets the total quantity sold for a product.
func (s *CatalogStore) SetSalesFrequency(productID int64, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales[productID] = total
}

// CountActiveProducts returns the number of active products.
func (s *CatalogStore) CountActiveProducts(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.products {
		if p.Active {
			count++
		}
	}
	return count, nil
}

// FetchActiveProducts returns a page of active products ordered by ID.
func (s *CatalogStore) FetchActiveProducts(ctx context.Context, start, count int) ([]domain.CatalogProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []domain.CatalogProduct
	for _, p := range s.products {
		if p.Active {
			active = append(active, p)
		}
	}

	if start >= len(active) {
		return nil, nil
	}
	active = active[start:]
	if count > 0 && count < len(active) {
		active = active[:count]
	}
	return active, nil
}

// FetchProductsByIdentifier returns active products matching the identifier
// against product ID, order number, EAN, or supplier number.
func (s *CatalogStore) FetchProductsByIdentifier(ctx context.Context, identifier string) ([]domain.CatalogProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.CatalogProduct
	for _, p := range s.products {
		if !p.Active {
			continue
		}
		if strconv.FormatInt(p.ID, 10) == identifier {
			matches = append(matches, p)
			continue
		}
		for _, v := range p.Variants {
			if v.Number == identifier || (v.EAN != "" && v.EAN == identifier) || (v.SupplierNumber != "" && v.SupplierNumber == identifier) {
				matches = append(matches, p)
				break
			}
		}
	}
	return matches, nil
}

// CustomerGroups returns the configured customer groups.
func (s *CatalogStore) CustomerGroups(ctx context.Context) ([]domain.CustomerGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]domain.CustomerGroup, len(s.groups))
	copy(groups, s.groups)
	return groups, nil
}

// SalesFrequencies returns the total quantity sold per product.
func (s *CatalogStore) SalesFrequencies(ctx context.Context) (map[int64]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sales := make(map[int64]int, len(s.sales))
	for k, v := range s.sales {
		sales[k] = v
	}
	return sales, nil
}

// SearchActive runs an in-memory search over active products.
func (s *CatalogStore) SearchActive(ctx context.Context, criteria domain.Criteria) ([]domain.CatalogProduct, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.CatalogProduct
	for _, p := range s.products {
		if !p.Active {
			continue
		}
		ok, err := matchesConditions(p, criteria.Conditions)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			matches = append(matches, p)
		}
	}

	if err := sortProducts(matches, criteria.Sortings, s.sales); err != nil {
		return nil, 0, err
	}

	total := len(matches)
	if criteria.Offset >= total {
		return nil, total, nil
	}
	matches = matches[criteria.Offset:]
	if criteria.Limit > 0 && criteria.Limit < len(matches) {
		matches = matches[:criteria.Limit]
	}
	return matches, total, nil
}

func matchesConditions(p domain.CatalogProduct, conditions []domain.Condition) (bool, error) {
	for _, cond := range conditions {
		switch c := cond.(type) {
		case domain.SearchTermCondition:
			term := strings.ToLower(c.Term)
			if !strings.Contains(strings.ToLower(p.Name), term) &&
				!strings.Contains(strings.ToLower(p.DescriptionLong), term) {
				return false, nil
			}
		case domain.CategoryCondition:
			found := false
			for _, cat := range p.Categories {
				if cat.Active && (cat.ID == c.CategoryID || cat.IsChildOf(c.CategoryID)) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		case domain.VendorCondition:
			if p.Supplier != c.Vendor {
				return false, nil
			}
		case domain.PriceCondition:
			found := false
			for _, v := range p.Variants {
				for _, price := range v.Prices {
					if price.Amount >= c.Min && (c.Max <= 0 || price.Amount <= c.Max) {
						found = true
						break
					}
				}
			}
			if !found {
				return false, nil
			}
		default:
			return false, &domain.UnsupportedConditionError{Kind: cond.Kind()}
		}
	}
	return true, nil
}

func sortProducts(products []domain.CatalogProduct, sortings []domain.Sorting, sales map[int64]int) error {
	if len(sortings) == 0 {
		return nil
	}

	// Only the first sorting decides the order; ties keep insertion order.
	switch s := sortings[0].(type) {
	case domain.PopularitySorting:
		sort.SliceStable(products, func(i, j int) bool {
			if s.Direction == domain.SortDescending {
				return sales[products[i].ID] > sales[products[j].ID]
			}
			return sales[products[i].ID] < sales[products[j].ID]
		})
	case domain.ReleaseDateSorting:
		sort.SliceStable(products, func(i, j int) bool {
			if s.Direction == domain.SortDescending {
				return products[i].CreatedAt.After(products[j].CreatedAt)
			}
			return products[i].CreatedAt.Before(products[j].CreatedAt)
		})
	case domain.PriceSorting:
		sort.SliceStable(products, func(i, j int) bool {
			if s.Direction == domain.SortDescending {
				return minPrice(products[i]) > minPrice(products[j])
			}
			return minPrice(products[i]) < minPrice(products[j])
		})
	case domain.ProductNameSorting:
		sort.SliceStable(products, func(i, j int) bool {
			if s.Direction == domain.SortDescending {
				return products[i].Name > products[j].Name
			}
			return products[i].Name < products[j].Name
		})
	default:
		return &domain.UnsupportedConditionError{Kind: sortings[0].Kind()}
	}
	return nil
}

func minPrice(p domain.CatalogProduct) float64 {
	min := 0.0
	first := true
	for _, v := range p.Variants {
		for _, price := range v.Prices {
			if first || price.Amount < min {
				min = price.Amount
				first = false
			}
		}
	}
	return min
}

// SettingsStore is an in-memory repository.SettingsStore.
type SettingsStore struct {
	mu       sync.RWMutex
	settings map[int64]domain.Settings
}

// NewSettingsStore creates an empty in-memory settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: make(map[int64]domain.Settings)}
}

// Put stores the configuration for a shop.
func (s *SettingsStore) Put(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.ShopID] = settings
}

// GetSettings returns the configuration for the given shop.
func (s *SettingsStore) GetSettings(ctx context.Context, shopID int64) (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings, ok := s.settings[shopID]
	if !ok {
		return nil, apperrors.NotFound("settings", strconv.FormatInt(shopID, 10))
	}
	return &settings, nil
}
