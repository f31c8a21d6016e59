package search

import (
	"strings"

	"github.com/utafrali/finsearch/internal/domain"
)

// ModuleFrontend marks storefront requests. Anything else (backend,
// API, widgets) always uses native search.
const ModuleFrontend = "frontend"

// RequestContext describes the parts of an inbound shop request that drive
// the routing decision. An empty Module is treated as frontend.
type RequestContext struct {
	Module         string `json:"module,omitempty"`
	IsSearchPage   bool   `json:"is_search_page"`
	IsCategoryPage bool   `json:"is_category_page"`
}

// UseNativeSearch decides whether the shop's native search serves the
// request, bypassing the external service. A nil request is the fail-safe
// default: native search.
//
// Native search wins whenever any of these hold: the request is not a
// frontend request; the plugin is deactivated; the shop key is blank or
// still the shipped placeholder; the integration mode is direct
// integration; the request is neither a search nor a category page; or it
// is a category page with category pages deactivated.
func UseNativeSearch(settings *domain.Settings, req *RequestContext) bool {
	if req == nil {
		return true
	}
	if req.Module != "" && req.Module != ModuleFrontend {
		return true
	}
	if settings == nil || !settings.ActivateFindologic {
		return true
	}

	shopKey := strings.TrimSpace(settings.ShopKey)
	if shopKey == "" || shopKey == domain.ShopKeyPlaceholder {
		return true
	}
	if settings.IntegrationType == domain.IntegrationTypeDI {
		return true
	}

	if !req.IsSearchPage && !req.IsCategoryPage {
		return true
	}
	// A search page always qualifies; a plain category page additionally
	// needs the category pages flag.
	if !req.IsSearchPage && req.IsCategoryPage && !settings.ActivateForCategoryPages {
		return true
	}

	return false
}
