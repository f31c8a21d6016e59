package export

import "github.com/utafrali/finsearch/internal/domain"

// Reasons recorded by the eligibility filter. The wording is part of the
// export output contract consumed by shop operators.
const (
	ReasonProductInactive    = "Product is not active."
	ReasonCategoriesInactive = "All configured categories are inactive."
	ReasonMainDetailInactive = "Main Detail is not active or not available."
	ReasonOutOfStock         = "Product is out of stock."
)

// EligibilityFilter decides per product whether it qualifies for export.
type EligibilityFilter struct {
	hideNoInStock bool
}

// NewEligibilityFilter creates an eligibility filter. With hideNoInStock
// enabled, products whose main variant tracks last stock and has less stock
// than its minimum purchase quantity are excluded.
func NewEligibilityFilter(hideNoInStock bool) *EligibilityFilter {
	return &EligibilityFilter{hideNoInStock: hideNoInStock}
}

// Evaluate checks all eligibility rules independently and records every
// failing one. Zero recorded reasons means the product is eligible.
func (f *EligibilityFilter) Evaluate(p *domain.CatalogProduct, baseCategoryID int64) domain.ExportErrorInformation {
	info := domain.ExportErrorInformation{ProductID: p.ID}

	if !p.Active {
		info.AddReason(ReasonProductInactive)
	}

	// Only categories under the base category count. A product with zero
	// such categories passes this rule; catalog filtering handles that case
	// upstream.
	var underBase, inactive int
	for _, c := range p.Categories {
		if !c.IsChildOf(baseCategoryID) {
			continue
		}
		underBase++
		if !c.Active {
			inactive++
		}
	}
	if underBase > 0 && inactive == underBase {
		info.AddReason(ReasonCategoriesInactive)
	}

	main := p.MainVariant
	if main == nil || !main.Active {
		info.AddReason(ReasonMainDetailInactive)
	} else if f.hideNoInStock && main.LastStock && main.InStock < main.MinPurchase {
		info.AddReason(ReasonOutOfStock)
	}

	return info
}
