package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/internal/findologic"
	"github.com/utafrali/finsearch/internal/repository/memory"
)

type fakeExternalClient struct {
	alive     bool
	response  *findologic.Response
	lastQuery url.Values
}

func (c *fakeExternalClient) IsAlive(ctx context.Context, shopKey string) bool {
	return c.alive
}

func (c *fakeExternalClient) Search(ctx context.Context, params url.Values) (*findologic.Response, error) {
	c.lastQuery = params
	if c.response != nil {
		return c.response, nil
	}
	return nil, domain.ErrServiceNotAlive
}

func postSearch(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func TestSearchEndpointNative(t *testing.T) {
	catalog := memory.NewCatalogStore()
	seedCatalog(catalog)
	// No settings configured: search routes to the native catalog.
	router := newTestRouter(t, catalog, memory.NewSettingsStore(), &fakeExternalClient{})

	rec := postSearch(router, `{"query":"bike"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, "native", data["source"])
	assert.Len(t, data["facets"], 2)
}

func TestSearchEndpointExternal(t *testing.T) {
	store := memory.NewSettingsStore()
	store.Put(domain.Settings{
		ShopID:             1,
		ActivateFindologic: true,
		ShopKey:            testShopKey,
		IntegrationType:    domain.IntegrationTypeAPI,
	})
	client := &fakeExternalClient{
		alive: true,
		response: &findologic.Response{
			Results:  findologic.Results{Count: 42},
			Products: findologic.Products{Products: []findologic.ProductRef{{ID: "101"}, {ID: "102"}}},
		},
	}
	router := newTestRouter(t, memory.NewCatalogStore(), store, client)

	rec := postSearch(router, `{"query":"bike","is_search_page":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(42), data["total"])
	assert.Equal(t, "findologic", data["source"])
	assert.Equal(t, []any{"101", "102"}, data["product_ids"])
	assert.Equal(t, "bike", client.lastQuery.Get("query"))
	assert.Equal(t, testShopKey, client.lastQuery.Get("shopkey"))
}

func TestSearchEndpointWrongContentType(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNSUPPORTED_MEDIA_TYPE")
}

func TestSearchEndpointInvalidBody(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), nil)

	rec := postSearch(router, `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestSearchEndpointValidation(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), nil)

	tests := []struct {
		name string
		body string
	}{
		{"limit too large", `{"limit":500}`},
		{"negative offset", `{"offset":-1}`},
		{"unknown sort", `{"sort":"relevance"}`},
		{"bad sort direction", `{"sort":"price","sort_direction":"UP"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postSearch(router, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSearchEndpointPriceRangeMismatch(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), nil)

	rec := postSearch(router, `{"min_price":50,"max_price":10}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_price must not exceed max_price")
}

func TestFacetsEndpointNative(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), &fakeExternalClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/facets", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	facets, ok := data["facets"].([]any)
	require.True(t, ok)
	require.Len(t, facets, 2)

	first := facets[0].(map[string]any)
	assert.Equal(t, "list", first["type"])
	assert.Equal(t, "Hersteller", first["label"])
	second := facets[1].(map[string]any)
	assert.Equal(t, "Kategorie", second["label"])
}

func TestFacetsEndpointBadShopID(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/facets?shop_id=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
