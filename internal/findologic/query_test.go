package findologic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/finsearch/internal/domain"
)

func TestBuildQuery(t *testing.T) {
	criteria := domain.Criteria{
		Conditions: []domain.Condition{
			domain.SearchTermCondition{Term: "fahrrad licht"},
			domain.CategoryCondition{CategoryID: 42},
			domain.VendorCondition{Vendor: "Busch & Müller"},
			domain.PriceCondition{Min: 10, Max: 99.5},
		},
		Sortings: []domain.Sorting{
			domain.PopularitySorting{Direction: domain.SortDescending},
		},
		Offset: 24,
		Limit:  12,
	}

	params, err := BuildQuery("ABCD0815", criteria)
	require.NoError(t, err)

	assert.Equal(t, "ABCD0815", params.Get("shopkey"))
	assert.Equal(t, "fahrrad licht", params.Get("query"))
	assert.Equal(t, []string{"42"}, params["attrib[cat][]"])
	assert.Equal(t, []string{"Busch & Müller"}, params["attrib[vendor][]"])
	assert.Equal(t, "10", params.Get("attrib[price][min]"))
	assert.Equal(t, "99.5", params.Get("attrib[price][max]"))
	assert.Equal(t, "salesfrequency DESC", params.Get("order"))
	assert.Equal(t, "24", params.Get("first"))
	assert.Equal(t, "12", params.Get("count"))
}

func TestBuildQuerySortings(t *testing.T) {
	tests := []struct {
		name    string
		sorting domain.Sorting
		want    string
	}{
		{name: "popularity", sorting: domain.PopularitySorting{Direction: domain.SortDescending}, want: "salesfrequency DESC"},
		{name: "release date", sorting: domain.ReleaseDateSorting{Direction: domain.SortAscending}, want: "dateadded ASC"},
		{name: "price", sorting: domain.PriceSorting{Direction: domain.SortAscending}, want: "price ASC"},
		{name: "product name", sorting: domain.ProductNameSorting{Direction: domain.SortDescending}, want: "label DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := BuildQuery("ABCD0815", domain.Criteria{Sortings: []domain.Sorting{tt.sorting}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.Get("order"))
		})
	}
}

func TestBuildQueryUnboundedPrice(t *testing.T) {
	params, err := BuildQuery("ABCD0815", domain.Criteria{
		Conditions: []domain.Condition{domain.PriceCondition{Min: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "5", params.Get("attrib[price][min]"))
	assert.False(t, params.Has("attrib[price][max]"))
}

type bogusCondition struct{}

func (bogusCondition) Kind() string { return "bogus" }

func TestBuildQueryUnsupportedCondition(t *testing.T) {
	_, err := BuildQuery("ABCD0815", domain.Criteria{
		Conditions: []domain.Condition{bogusCondition{}},
	})
	var unsupported *domain.UnsupportedConditionError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "bogus", unsupported.Kind)
}

func TestBuildQueryNoLimit(t *testing.T) {
	params, err := BuildQuery("ABCD0815", domain.Criteria{Offset: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, "0", params.Get("first"))
	assert.False(t, params.Has("count"))
}
