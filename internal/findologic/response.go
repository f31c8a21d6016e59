package findologic

import (
	"encoding/xml"
	"fmt"
)

// Response is the parsed XML answer of the external search service. The
// schema is a fixed external contract.
type Response struct {
	XMLName  xml.Name `xml:"searchResult"`
	Results  Results  `xml:"results"`
	Products Products `xml:"products"`
	Filters  Filters  `xml:"filters"`
}

// Results carries the total match count.
type Results struct {
	Count int `xml:"count"`
}

// Products is the list of matched product references.
type Products struct {
	Products []ProductRef `xml:"product"`
}

// ProductRef identifies one matched product.
type ProductRef struct {
	ID string `xml:"id,attr"`
}

// Filters is the filter list of a response.
type Filters struct {
	Filters []Filter `xml:"filter"`
}

// Filter is one filter element. Type distinguishes range sliders from
// label lists; range filters carry their bounds in Attributes.
type Filter struct {
	Name       string            `xml:"name"`
	Display    string            `xml:"display"`
	Field      string            `xml:"field"`
	Select     string            `xml:"select"`
	Type       string            `xml:"type"`
	Items      []FilterItem      `xml:"items>item"`
	Attributes *FilterAttributes `xml:"attributes"`
}

// FilterItem is one selectable value of a label-list filter.
type FilterItem struct {
	Name      string `xml:"name"`
	Frequency int    `xml:"frequency"`
}

// FilterAttributes carries the bounds of a range-slider filter.
type FilterAttributes struct {
	TotalRange    Range  `xml:"totalRange"`
	SelectedRange Range  `xml:"selectedRange"`
	Unit          string `xml:"unit"`
}

// Range is a min/max pair.
type Range struct {
	Min float64 `xml:"min"`
	Max float64 `xml:"max"`
}

// Filter types and select modes used by the external service.
const (
	FilterTypeRangeSlider = "range-slider"
	FilterTypeLabel       = "label"

	SelectMultiple = "multiple"
	SelectSingle   = "single"
)

// ParseResponse decodes a search response document.
func ParseResponse(data []byte) (*Response, error) {
	var resp Response
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return &resp, nil
}
