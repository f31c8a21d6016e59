package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/finsearch/internal/domain"
)

func TestResolveGroupPrices(t *testing.T) {
	groups := []domain.CustomerGroup{
		{Key: "EK", Name: "Shopkunden", GrossPrices: false},
		{Key: "H", Name: "Händler", GrossPrices: false},
	}

	t.Run("lowest variant price wins", func(t *testing.T) {
		p := &domain.CatalogProduct{
			ID: 1,
			Variants: []domain.Variant{
				{Active: true, Prices: []domain.Price{{CustomerGroupKey: "EK", Amount: 12.50}}},
				{Active: true, Prices: []domain.Price{{CustomerGroupKey: "EK", Amount: 9.99}}},
			},
		}

		prices, base, err := ResolveGroupPrices(p, groups)
		require.NoError(t, err)
		assert.Equal(t, 9.99, base)
		assert.Equal(t, []GroupPrice{{GroupKey: "EK", Value: 9.99}, {GroupKey: "H", Value: 9.99}}, prices)
	})

	t.Run("inactive variant prices are ignored", func(t *testing.T) {
		p := &domain.CatalogProduct{
			ID: 1,
			Variants: []domain.Variant{
				{Active: false, Prices: []domain.Price{{CustomerGroupKey: "EK", Amount: 1.00}}},
				{Active: true, Prices: []domain.Price{{CustomerGroupKey: "EK", Amount: 9.99}}},
			},
		}

		_, base, err := ResolveGroupPrices(p, groups)
		require.NoError(t, err)
		assert.Equal(t, 9.99, base)
	})

	t.Run("main variant prices always count", func(t *testing.T) {
		main := domain.Variant{Active: false, Prices: []domain.Price{{CustomerGroupKey: "EK", Amount: 5.00}}}
		p := &domain.CatalogProduct{
			ID:          1,
			MainVariant: &main,
			Variants: []domain.Variant{
				{Active: true, Prices: []domain.Price{{CustomerGroupKey: "EK", Amount: 9.99}}},
			},
		}

		_, base, err := ResolveGroupPrices(p, groups)
		require.NoError(t, err)
		assert.Equal(t, 5.00, base)
	})

	t.Run("group without explicit price falls back to default group", func(t *testing.T) {
		p := &domain.CatalogProduct{
			ID: 1,
			Variants: []domain.Variant{
				{Active: true, Prices: []domain.Price{{CustomerGroupKey: "EK", Amount: 20.00}}},
			},
		}

		prices, _, err := ResolveGroupPrices(p, groups)
		require.NoError(t, err)
		assert.Equal(t, GroupPrice{GroupKey: "H", Value: 20.00}, prices[1])
	})

	t.Run("gross group applies tax", func(t *testing.T) {
		grossGroups := []domain.CustomerGroup{
			{Key: "EK", GrossPrices: false},
			{Key: "B2C", GrossPrices: true},
		}
		p := &domain.CatalogProduct{
			ID:      1,
			TaxRate: 19,
			Variants: []domain.Variant{
				{Active: true, Prices: []domain.Price{{CustomerGroupKey: "EK", Amount: 100.00}}},
			},
		}

		prices, base, err := ResolveGroupPrices(p, grossGroups)
		require.NoError(t, err)
		assert.Equal(t, 100.00, base)
		assert.Equal(t, GroupPrice{GroupKey: "B2C", Value: 119.00}, prices[1])
	})

	t.Run("missing base price fails the product", func(t *testing.T) {
		p := &domain.CatalogProduct{
			ID: 7,
			Variants: []domain.Variant{
				{Active: true, Prices: []domain.Price{{CustomerGroupKey: "H", Amount: 10.00}}},
			},
		}

		_, _, err := ResolveGroupPrices(p, groups)
		var priceErr *domain.MissingBasePriceError
		require.ErrorAs(t, err, &priceErr)
		assert.Equal(t, int64(7), priceErr.ProductID)
	})
}
