package domain

// Well-known facet names with special handling during hydration.
const (
	CategoryFacetName = "cat"
	VendorFacetName   = "vendor"
	PriceFacetName    = "price"
)

// FacetMode is the selection mode of a facet control.
type FacetMode string

const (
	SelectSingle   FacetMode = "single"
	SelectMultiple FacetMode = "multiple"
)

// Facet is a user-facing filter control derived from the external service's
// filter response or synthesized as a default.
type Facet interface {
	// FacetName is the condition identity key the facet filters on.
	FacetName() string
	// Label is the display label shown to the user.
	FacetLabel() string
}

// RangeFacet is a range-slider control with total and currently selected
// bounds.
type RangeFacet struct {
	Field     string  `json:"field"`
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	ActiveMin float64 `json:"active_min"`
	ActiveMax float64 `json:"active_max"`
	Unit      string  `json:"unit,omitempty"`
}

func (f RangeFacet) FacetName() string  { return f.Name }
func (f RangeFacet) FacetLabel() string { return f.Label }

// FacetValue is one selectable entry of a value-list facet.
type FacetValue struct {
	Value     string `json:"value"`
	Frequency int    `json:"frequency,omitempty"`
}

// ValueListFacet is a label-list control with a flat list of selectable
// values.
type ValueListFacet struct {
	Field  string       `json:"field"`
	Name   string       `json:"name"`
	Label  string       `json:"label"`
	Mode   FacetMode    `json:"mode"`
	Values []FacetValue `json:"values"`
}

func (f ValueListFacet) FacetName() string  { return f.Name }
func (f ValueListFacet) FacetLabel() string { return f.Label }
