package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/internal/export"
	"github.com/utafrali/finsearch/internal/repository/memory"
	"github.com/utafrali/finsearch/internal/search"
	"github.com/utafrali/finsearch/internal/settings"
	"github.com/utafrali/finsearch/pkg/health"
)

const testShopKey = "ABCD0815"

func testProduct(id int64, name, number string) domain.CatalogProduct {
	main := domain.Variant{
		ID:          id * 10,
		Number:      number,
		Active:      true,
		InStock:     10,
		MinPurchase: 1,
		IsMain:      true,
		Prices: []domain.Price{
			{CustomerGroupKey: domain.DefaultCustomerGroupKey, Amount: 99.34},
		},
	}
	return domain.CatalogProduct{
		ID:          id,
		Name:        name,
		Active:      true,
		TaxRate:     19,
		Supplier:    "Trelock",
		CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MainVariant: &main,
		Variants:    []domain.Variant{main},
		Categories: []domain.Category{
			{ID: 5, Name: "Bikes", Active: true, Path: "|3|5|"},
		},
	}
}

func newTestRouter(t *testing.T, catalog *memory.CatalogStore, store *memory.SettingsStore, client search.ExternalClient) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	exportSvc := export.NewService(catalog, export.NewEligibilityFilter(false), nil, logger)
	provider := settings.NewProvider(store, nil, time.Minute, logger)
	searchSvc := search.NewService(catalog, provider, client, logger)

	cfg := RouterConfig{BaseCategoryID: 3, DefaultShopID: 1, Environment: "development"}
	return NewRouter(exportSvc, searchSvc, health.NewHandler(), cfg, logger)
}

func seedCatalog(catalog *memory.CatalogStore) {
	catalog.SetCustomerGroups([]domain.CustomerGroup{
		{Key: domain.DefaultCustomerGroupKey, Name: "Shopkunden"},
	})
	catalog.AddProduct(testProduct(1, "Trekking Bike", "SW10001"))
	catalog.AddProduct(testProduct(2, "City Bike", "SW10002"))
}

func TestExportEndpoint(t *testing.T) {
	catalog := memory.NewCatalogStore()
	seedCatalog(catalog)
	router := newTestRouter(t, catalog, memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/export?shopkey="+testShopKey, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "xml")

	body := rec.Body.String()
	assert.Contains(t, body, `<findologic version="1.0">`)
	assert.Contains(t, body, `total="2"`)
	assert.Contains(t, body, `count="2"`)
	assert.Contains(t, body, "<name>Trekking Bike</name>")
	assert.Contains(t, body, "<ordernumber>SW10001</ordernumber>")
	assert.Contains(t, body, "99.34")
}

func TestExportEndpointPaging(t *testing.T) {
	catalog := memory.NewCatalogStore()
	seedCatalog(catalog)
	router := newTestRouter(t, catalog, memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/export?shopkey="+testShopKey+"&start=1&count=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `start="1"`)
	assert.Contains(t, body, `count="1"`)
	assert.Contains(t, body, "<name>City Bike</name>")
	assert.NotContains(t, body, "<name>Trekking Bike</name>")
}

func TestExportEndpointSingleProduct(t *testing.T) {
	catalog := memory.NewCatalogStore()
	seedCatalog(catalog)
	router := newTestRouter(t, catalog, memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/export?shopkey="+testShopKey+"&productId=SW10002", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<name>City Bike</name>")
	assert.NotContains(t, body, "<name>Trekking Bike</name>")
}

func TestExportEndpointUnknownProduct(t *testing.T) {
	catalog := memory.NewCatalogStore()
	seedCatalog(catalog)
	router := newTestRouter(t, catalog, memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/export?shopkey="+testShopKey+"&productId=does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "EXPORT_ERROR")
	assert.Contains(t, rec.Body.String(), "No product found with ID does-not-exist")
}

func TestExportEndpointInvalidShopKey(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/export?shopkey=ABCD", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_PARAMETER")
}

func TestExportEndpointInvalidStart(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/export?shopkey="+testShopKey+"&start=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, memory.NewCatalogStore(), memory.NewSettingsStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"up"`)
}
