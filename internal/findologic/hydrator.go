package findologic

import "github.com/utafrali/finsearch/internal/domain"

// Default labels for the facets every caller receives even when the
// service response contains no matching filter.
const (
	defaultVendorLabel   = "Hersteller"
	defaultCategoryLabel = "Kategorie"
)

// HydrateFacets converts the response filter list into facets.
//
// Range-slider filters become range facets; everything else becomes a
// value-list facet. A range whose min equals max carries no decision value
// and is suppressed. After hydration, default vendor and category facets
// are appended if the response produced none, so callers always receive at
// least those two.
func HydrateFacets(filters []Filter) []domain.Facet {
	var facets []domain.Facet

	for _, f := range filters {
		if f.Type == FilterTypeRangeSlider {
			if facet, ok := hydrateRange(f); ok {
				facets = append(facets, facet)
			}
			continue
		}
		facets = append(facets, hydrateValueList(f))
	}

	if !containsFacet(facets, domain.VendorFacetName) {
		facets = append(facets, domain.ValueListFacet{
			Field: domain.VendorFacetName,
			Name:  domain.VendorFacetName,
			Label: defaultVendorLabel,
			Mode:  domain.SelectMultiple,
		})
	}
	if !containsFacet(facets, domain.CategoryFacetName) {
		facets = append(facets, domain.ValueListFacet{
			Field: domain.CategoryFacetName,
			Name:  domain.CategoryFacetName,
			Label: defaultCategoryLabel,
			Mode:  domain.SelectMultiple,
		})
	}

	return facets
}

func hydrateRange(f Filter) (domain.Facet, bool) {
	var attrs FilterAttributes
	if f.Attributes != nil {
		attrs = *f.Attributes
	}

	// A range with no spread is useless as a filter control.
	if attrs.TotalRange.Min == attrs.TotalRange.Max {
		return nil, false
	}

	field := f.Field
	if field == "" {
		field = f.Name
	}
	name := f.Name

	// The price filter is identified by its literal name regardless of the
	// declared field attribute. This quirk must be preserved for
	// compatibility with the external schema.
	if f.Name == domain.PriceFacetName {
		field = domain.PriceFacetName
		name = domain.PriceFacetName
	}

	return domain.RangeFacet{
		Field:     field,
		Name:      name,
		Label:     f.Display,
		Min:       attrs.TotalRange.Min,
		Max:       attrs.TotalRange.Max,
		ActiveMin: attrs.SelectedRange.Min,
		ActiveMax: attrs.SelectedRange.Max,
		Unit:      attrs.Unit,
	}, true
}

func hydrateValueList(f Filter) domain.Facet {
	mode := domain.SelectSingle
	if f.Select == SelectMultiple {
		mode = domain.SelectMultiple
	}

	values := make([]domain.FacetValue, 0, len(f.Items))
	for _, item := range f.Items {
		values = append(values, domain.FacetValue{Value: item.Name, Frequency: item.Frequency})
	}

	field := f.Field
	if field == "" {
		field = f.Name
	}

	return domain.ValueListFacet{
		Field:  field,
		Name:   f.Name,
		Label:  f.Display,
		Mode:   mode,
		Values: values,
	}
}

func containsFacet(facets []domain.Facet, name string) bool {
	for _, f := range facets {
		if f.FacetName() == name {
			return true
		}
	}
	return false
}
