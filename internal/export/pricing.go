package export

import (
	"math"

	"github.com/utafrali/finsearch/internal/domain"
)

// GroupPrice is one resolved price for a customer group.
type GroupPrice struct {
	GroupKey string
	Value    float64
}

// ResolveGroupPrices computes one price per customer group for a product,
// plus the unqualified base price.
//
// Raw prices are bucketed by group key across all active variants and the
// main variant, taking the minimum per bucket (lowest variant price wins).
// Groups without an explicit bucket fall back to the default group's bucket;
// if that is also absent the product fails with MissingBasePriceError.
// Tax-inclusive groups get the product tax rate applied.
func ResolveGroupPrices(p *domain.CatalogProduct, groups []domain.CustomerGroup) ([]GroupPrice, float64, error) {
	buckets := minPricesByGroup(p)

	baseRaw, baseOK := buckets[domain.DefaultCustomerGroupKey]
	if !baseOK {
		return nil, 0, &domain.MissingBasePriceError{ProductID: p.ID, GroupKey: domain.DefaultCustomerGroupKey}
	}

	prices := make([]GroupPrice, 0, len(groups))
	basePrice := roundPrice(baseRaw)

	for _, g := range groups {
		raw, ok := buckets[g.Key]
		if !ok {
			raw = baseRaw
		}
		if g.GrossPrices {
			raw *= 1 + p.TaxRate/100
		}
		value := roundPrice(raw)
		prices = append(prices, GroupPrice{GroupKey: g.Key, Value: value})

		if g.Key == domain.DefaultCustomerGroupKey {
			basePrice = value
		}
	}

	return prices, basePrice, nil
}

// minPricesByGroup buckets the prices of all active variants plus the main
// variant by customer group key, keeping the minimum per bucket.
func minPricesByGroup(p *domain.CatalogProduct) map[string]float64 {
	buckets := make(map[string]float64)

	consider := func(prices []domain.Price) {
		for _, price := range prices {
			if existing, ok := buckets[price.CustomerGroupKey]; !ok || price.Amount < existing {
				buckets[price.CustomerGroupKey] = price.Amount
			}
		}
	}

	for i := range p.Variants {
		if p.Variants[i].Active {
			consider(p.Variants[i].Prices)
		}
	}
	if p.MainVariant != nil {
		consider(p.MainVariant.Prices)
	}

	return buckets
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
