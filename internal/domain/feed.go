package domain

import (
	"encoding/base64"
	"fmt"
	"time"
)

// ItemPrice is a resolved price entry on a feed item, keyed by the usergroup
// hash of the customer group it belongs to. An empty hash marks the
// unqualified base price.
type ItemPrice struct {
	UsergroupHash string `json:"usergroup_hash,omitempty"`
	Value         string `json:"value"`
}

// FeedItem is one product's representation in the exported catalog feed.
// It is constructed once per product and never mutated afterwards.
type FeedItem struct {
	ID             string      `json:"id"`
	OrderNumbers   []string    `json:"order_numbers"`
	Name           string      `json:"name"`
	Summary        string      `json:"summary,omitempty"`
	Description    string      `json:"description,omitempty"`
	DateAdded      time.Time   `json:"date_added"`
	SalesFrequency int         `json:"sales_frequency"`
	Prices         []ItemPrice `json:"prices"`
}

// ExportErrorInformation collects the reasons preventing one product from
// being exported. An empty reason list means the product exported cleanly.
type ExportErrorInformation struct {
	ProductID int64    `json:"product_id"`
	Reasons   []string `json:"reasons"`
}

// AddReason appends a human-readable export failure reason.
func (e *ExportErrorInformation) AddReason(reason string) {
	e.Reasons = append(e.Reasons, reason)
}

// HasErrors reports whether any failure reason was recorded.
func (e *ExportErrorInformation) HasErrors() bool {
	return len(e.Reasons) > 0
}

// ExportResult aggregates the outcome of one export invocation. A failed
// product is absent from Items but present in ProductErrors; the batch as a
// whole never fails because of a single product.
type ExportResult struct {
	Total         int                      `json:"total"`
	Count         int                      `json:"count"`
	Items         []FeedItem               `json:"items"`
	GeneralErrors []string                 `json:"general_errors,omitempty"`
	ProductErrors []ExportErrorInformation `json:"product_errors,omitempty"`
	ErrorCount    int                      `json:"error_count"`
}

// EncodeUsergroupHash derives the opaque per-shop price-list key for a
// customer group: base64 of the byte-wise XOR of shop key and group key,
// truncated to the shorter of the two. The encoding must stay byte-for-byte
// stable because previously generated feeds embed it.
func EncodeUsergroupHash(shopKey, groupKey string) string {
	n := len(shopKey)
	if len(groupKey) < n {
		n = len(groupKey)
	}
	xored := make([]byte, n)
	for i := 0; i < n; i++ {
		xored[i] = shopKey[i] ^ groupKey[i]
	}
	return base64.StdEncoding.EncodeToString(xored)
}

// DecodeUsergroupHash recovers the customer group key from a usergroup hash.
func DecodeUsergroupHash(shopKey, hash string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return "", fmt.Errorf("decode usergroup hash: %w", err)
	}
	n := len(shopKey)
	if len(raw) < n {
		n = len(raw)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = shopKey[i] ^ raw[i]
	}
	return string(out), nil
}
