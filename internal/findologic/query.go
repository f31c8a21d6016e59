package findologic

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/finsearch/internal/domain"
)

// BuildQuery translates search criteria into the external service's query
// parameters. Each condition and sorting kind has a dedicated rule; unknown
// kinds fail fast instead of being silently dropped, because a missing
// filter would return wrong results.
func BuildQuery(shopKey string, criteria domain.Criteria) (url.Values, error) {
	params := url.Values{}
	params.Set("shopkey", shopKey)

	for _, cond := range criteria.Conditions {
		switch c := cond.(type) {
		case domain.SearchTermCondition:
			params.Set("query", c.Term)
		case domain.CategoryCondition:
			params.Add("attrib[cat][]", strconv.FormatInt(c.CategoryID, 10))
		case domain.VendorCondition:
			params.Add("attrib[vendor][]", c.Vendor)
		case domain.PriceCondition:
			params.Set("attrib[price][min]", formatBound(c.Min))
			if c.Max > 0 {
				params.Set("attrib[price][max]", formatBound(c.Max))
			}
		default:
			return nil, &domain.UnsupportedConditionError{Kind: cond.Kind()}
		}
	}

	var orders []string
	for _, sort := range criteria.Sortings {
		switch s := sort.(type) {
		case domain.PopularitySorting:
			orders = append(orders, "salesfrequency "+string(s.Direction))
		case domain.ReleaseDateSorting:
			orders = append(orders, "dateadded "+string(s.Direction))
		case domain.PriceSorting:
			orders = append(orders, "price "+string(s.Direction))
		case domain.ProductNameSorting:
			orders = append(orders, "label "+string(s.Direction))
		default:
			return nil, &domain.UnsupportedConditionError{Kind: sort.Kind()}
		}
	}
	if len(orders) > 0 {
		params.Set("order", strings.Join(orders, ","))
	}

	params.Set("first", strconv.Itoa(criteria.Offset))
	if criteria.Limit > 0 {
		params.Set("count", strconv.Itoa(criteria.Limit))
	}

	return params, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
