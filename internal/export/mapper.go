package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/utafrali/finsearch/internal/domain"
)

// MapProduct projects one catalog product into a feed item. It is a pure
// function of its inputs and never mutates the source product.
//
// Optional fields (summary, description) are skipped when blank. The name is
// required; a blank name fails with EmptyValueError. Sales frequency is read
// from the externally aggregated sales map, defaulting to zero.
func MapProduct(p *domain.CatalogProduct, shopKey string, groups []domain.CustomerGroup, sales map[int64]int) (*domain.FeedItem, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, &domain.EmptyValueError{Field: "name"}
	}

	item := &domain.FeedItem{
		ID:             strconv.FormatInt(p.ID, 10),
		Name:           name,
		Summary:        strings.TrimSpace(p.Description),
		Description:    strings.TrimSpace(p.DescriptionLong),
		DateAdded:      p.CreatedAt,
		SalesFrequency: sales[p.ID],
	}

	for _, v := range p.Variants {
		item.OrderNumbers = append(item.OrderNumbers, v.Number)
		if v.EAN != "" {
			item.OrderNumbers = append(item.OrderNumbers, v.EAN)
		}
		if v.SupplierNumber != "" {
			item.OrderNumbers = append(item.OrderNumbers, v.SupplierNumber)
		}
	}

	groupPrices, basePrice, err := ResolveGroupPrices(p, groups)
	if err != nil {
		return nil, err
	}

	for _, gp := range groupPrices {
		item.Prices = append(item.Prices, domain.ItemPrice{
			UsergroupHash: domain.EncodeUsergroupHash(shopKey, gp.GroupKey),
			Value:         formatPrice(gp.Value),
		})
	}
	item.Prices = append(item.Prices, domain.ItemPrice{Value: formatPrice(basePrice)})

	return item, nil
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
