package domain

import "regexp"

// Integration modes for the external search service. With direct
// integration the service injects results client-side, so server-side
// search stays native.
const (
	IntegrationTypeAPI = "API"
	IntegrationTypeDI  = "Direct Integration"
)

// ShopKeyPlaceholder is the literal default value shipped with an
// unconfigured shop. It must never be treated as a usable shop key.
const ShopKeyPlaceholder = "Findologic ShopKey"

// shopKeyPattern accepts uppercase hexadecimal keys of at least 8 characters.
var shopKeyPattern = regexp.MustCompile(`^[A-F0-9]{8,}$`)

// ValidShopKey reports whether the given shop key is structurally valid.
func ValidShopKey(key string) bool {
	return shopKeyPattern.MatchString(key)
}

// Settings is the per-shop plugin configuration driving routing and export.
type Settings struct {
	ShopID                   int64  `json:"shop_id"`
	ActivateFindologic       bool   `json:"activate_findologic"`
	ShopKey                  string `json:"shop_key"`
	IntegrationType          string `json:"integration_type"`
	ActivateForCategoryPages bool   `json:"activate_for_category_pages"`
}
