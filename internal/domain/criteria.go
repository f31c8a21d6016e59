package domain

// SortDirection is the order applied by a sorting rule.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// Condition kinds recognized by the translators.
const (
	ConditionSearchTerm = "search_term"
	ConditionCategory   = "category"
	ConditionVendor     = "vendor"
	ConditionPrice      = "price"
)

// Sorting kinds recognized by the translators.
const (
	SortingPopularity  = "popularity"
	SortingReleaseDate = "release_date"
	SortingPrice       = "price"
	SortingProductName = "product_name"
)

// Condition is one restriction in a search criteria. Conditions compose as
// independent AND-ed filters; order of application does not change the
// result set. Translators dispatch on the concrete type and fail with
// UnsupportedConditionError for kinds they do not recognize.
type Condition interface {
	Kind() string
}

// SearchTermCondition restricts results to products matching a free-text query.
type SearchTermCondition struct {
	Term string `json:"term"`
}

// CategoryCondition restricts results to products in the active category
// closure under the given category.
type CategoryCondition struct {
	CategoryID int64 `json:"category_id"`
}

// VendorCondition restricts results to products of one supplier.
type VendorCondition struct {
	Vendor string `json:"vendor"`
}

// PriceCondition restricts results to a price range. Max <= 0 means
// unbounded above.
type PriceCondition struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (SearchTermCondition) Kind() string { return ConditionSearchTerm }
func (CategoryCondition) Kind() string   { return ConditionCategory }
func (VendorCondition) Kind() string     { return ConditionVendor }
func (PriceCondition) Kind() string      { return ConditionPrice }

// Sorting is one ordering rule in a search criteria.
type Sorting interface {
	Kind() string
}

// PopularitySorting orders by accumulated sales frequency.
type PopularitySorting struct {
	Direction SortDirection `json:"direction"`
}

// ReleaseDateSorting orders by the product creation date.
type ReleaseDateSorting struct {
	Direction SortDirection `json:"direction"`
}

// PriceSorting orders by the resolved base price.
type PriceSorting struct {
	Direction SortDirection `json:"direction"`
}

// ProductNameSorting orders alphabetically by product name.
type ProductNameSorting struct {
	Direction SortDirection `json:"direction"`
}

func (PopularitySorting) Kind() string  { return SortingPopularity }
func (ReleaseDateSorting) Kind() string { return SortingReleaseDate }
func (PriceSorting) Kind() string       { return SortingPrice }
func (ProductNameSorting) Kind() string { return SortingProductName }

// Criteria is a caller-constructed search request: ordered conditions and
// sortings plus paging. Consumed read-only by translators.
type Criteria struct {
	Conditions []Condition
	Sortings   []Sorting
	Offset     int
	Limit      int
}
