package domain

import (
	"strconv"
	"strings"
	"time"
)

// DefaultCustomerGroupKey identifies the base customer group every shop has.
// Prices for groups without an explicit price list fall back to this group.
const DefaultCustomerGroupKey = "EK"

// Price is a single per-customer-group price entry on a variant.
type Price struct {
	CustomerGroupKey string  `json:"customer_group_key"`
	Amount           float64 `json:"amount"`
}

// Variant is one orderable variation of a catalog product.
type Variant struct {
	ID             int64   `json:"id"`
	Number         string  `json:"number"`
	EAN            string  `json:"ean,omitempty"`
	SupplierNumber string  `json:"supplier_number,omitempty"`
	Active         bool    `json:"active"`
	InStock        int     `json:"in_stock"`
	LastStock      bool    `json:"last_stock"`
	MinPurchase    int     `json:"min_purchase"`
	IsMain         bool    `json:"is_main"`
	Prices         []Price `json:"prices"`
}

// Category is a node in the shop's category tree. Path is the materialized
// ancestor chain in the form "|rootID|...|parentID|" (the node's own ID is
// not part of its path).
type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Path   string `json:"path"`
}

// IsChildOf reports whether the category is a descendant of the given
// category ID.
func (c Category) IsChildOf(ancestorID int64) bool {
	return strings.Contains(c.Path, "|"+strconv.FormatInt(ancestorID, 10)+"|")
}

// CustomerGroup is a pricing segment. Groups with GrossPrices display
// tax-inclusive prices, so exported amounts must have tax applied.
type CustomerGroup struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	GrossPrices bool   `json:"gross_prices"`
}

// CatalogProduct is a product as read from the catalog store, with its
// variants, category memberships, and per-group prices eagerly materialized.
type CatalogProduct struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	DescriptionLong string     `json:"description_long,omitempty"`
	Active          bool       `json:"active"`
	TaxRate         float64    `json:"tax_rate"`
	Supplier        string     `json:"supplier,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	MainVariant     *Variant   `json:"main_variant,omitempty"`
	Variants        []Variant  `json:"variants"`
	Categories      []Category `json:"categories"`
}
