package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/internal/search"
	"github.com/utafrali/finsearch/pkg/httputil"
	"github.com/utafrali/finsearch/pkg/validator"
)

// SearchHandler handles HTTP requests for search endpoints.
type SearchHandler struct {
	service       *search.Service
	defaultShopID int64
	logger        *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *search.Service, defaultShopID int64, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service:       svc,
		defaultShopID: defaultShopID,
		logger:        logger,
	}
}

// SearchRequest is the JSON request body for a search.
type SearchRequest struct {
	ShopID         int64  `json:"shop_id" validate:"gte=0"`
	Module         string `json:"module"`
	IsSearchPage   bool   `json:"is_search_page"`
	IsCategoryPage bool   `json:"is_category_page"`

	Query      string  `json:"query"`
	CategoryID int64   `json:"category_id" validate:"gte=0"`
	Vendor     string  `json:"vendor"`
	MinPrice   float64 `json:"min_price" validate:"gte=0"`
	MaxPrice   float64 `json:"max_price" validate:"gte=0"`

	Sort          string `json:"sort" validate:"omitempty,oneof=popularity release_date price product_name"`
	SortDirection string `json:"sort_direction" validate:"omitempty,oneof=ASC DESC"`

	Offset int `json:"offset" validate:"gte=0"`
	Limit  int `json:"limit" validate:"gte=0,lte=100"`
}

// Search handles POST /api/v1/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if req.MinPrice > 0 && req.MaxPrice > 0 && req.MinPrice > req.MaxPrice {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "min_price must not exceed max_price"},
		})
		return
	}

	shopID := req.ShopID
	if shopID == 0 {
		shopID = h.defaultShopID
	}

	reqCtx := search.RequestContext{
		Module:         req.Module,
		IsSearchPage:   req.IsSearchPage,
		IsCategoryPage: req.IsCategoryPage,
	}

	result, err := h.service.Search(r.Context(), shopID, reqCtx, buildCriteria(req))
	if err != nil {
		var unsupported *domain.UnsupportedConditionError
		if errors.As(err, &unsupported) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: unsupported.Error()},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: searchResponse(result)})
}

// Facets handles GET /api/v1/search/facets.
func (h *SearchHandler) Facets(w http.ResponseWriter, r *http.Request) {
	v, ok := httputil.ParseIntParam(w, r, "shop_id", int(h.defaultShopID))
	if !ok {
		return
	}
	shopID := int64(v)

	facets, err := h.service.Facets(r.Context(), shopID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"facets": facetDTOs(facets)},
	})
}

func buildCriteria(req SearchRequest) domain.Criteria {
	criteria := domain.Criteria{Offset: req.Offset, Limit: req.Limit}

	if term := strings.TrimSpace(req.Query); term != "" {
		criteria.Conditions = append(criteria.Conditions, domain.SearchTermCondition{Term: term})
	}
	if req.CategoryID > 0 {
		criteria.Conditions = append(criteria.Conditions, domain.CategoryCondition{CategoryID: req.CategoryID})
	}
	if req.Vendor != "" {
		criteria.Conditions = append(criteria.Conditions, domain.VendorCondition{Vendor: req.Vendor})
	}
	if req.MinPrice > 0 || req.MaxPrice > 0 {
		criteria.Conditions = append(criteria.Conditions, domain.PriceCondition{Min: req.MinPrice, Max: req.MaxPrice})
	}

	direction := domain.SortAscending
	if req.SortDirection == string(domain.SortDescending) {
		direction = domain.SortDescending
	}
	switch req.Sort {
	case domain.SortingPopularity:
		criteria.Sortings = append(criteria.Sortings, domain.PopularitySorting{Direction: direction})
	case domain.SortingReleaseDate:
		criteria.Sortings = append(criteria.Sortings, domain.ReleaseDateSorting{Direction: direction})
	case domain.SortingPrice:
		criteria.Sortings = append(criteria.Sortings, domain.PriceSorting{Direction: direction})
	case domain.SortingProductName:
		criteria.Sortings = append(criteria.Sortings, domain.ProductNameSorting{Direction: direction})
	}

	return criteria
}

// facetDTOs adds a type discriminator so clients can tell range facets
// from value lists.
func facetDTOs(facets []domain.Facet) []map[string]any {
	out := make([]map[string]any, 0, len(facets))
	for _, f := range facets {
		switch facet := f.(type) {
		case domain.RangeFacet:
			out = append(out, map[string]any{
				"type": "range", "field": facet.Field, "name": facet.Name, "label": facet.Label,
				"min": facet.Min, "max": facet.Max,
				"active_min": facet.ActiveMin, "active_max": facet.ActiveMax,
				"unit": facet.Unit,
			})
		case domain.ValueListFacet:
			out = append(out, map[string]any{
				"type": "list", "field": facet.Field, "name": facet.Name, "label": facet.Label,
				"mode": facet.Mode, "values": facet.Values,
			})
		}
	}
	return out
}

func searchResponse(result *search.Result) map[string]any {
	return map[string]any{
		"total":       result.Total,
		"source":      result.Source,
		"products":    result.Products,
		"product_ids": result.ProductIDs,
		"facets":      facetDTOs(result.Facets),
	}
}
