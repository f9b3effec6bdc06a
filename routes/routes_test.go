package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/descobre-saude/app/config"
	"github.com/descobre-saude/app/controllers"
	"github.com/descobre-saude/app/models"
	"github.com/descobre-saude/app/responses"
	"github.com/descobre-saude/app/services"
	"github.com/descobre-saude/internal/loader"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds := &loader.Dataset{
		Procedures: []models.ProcedureCode{
			{Code: "101", Description: "Consulta em consultório"},
			{Code: "1012", Description: "Consulta em domicílio"},
			{Code: "202", Description: "Raio-X de tórax"},
		},
		Plans: []models.PlanRecord{
			{ProductCode: "10", PlanName: "Gold", ANSCode: "A1", ANSRegisteredName: "Gold Amb", Segment: "Ambulatorial", Classification: "Executivo", Status: "Ativo", APIProductCode: "P10", APIPlanCode: "G"},
			{ProductCode: "2", PlanName: "Basic", ANSCode: "A2", ANSRegisteredName: "Básico", Segment: "Hospitalar", Classification: "Clássico", Status: "Ativo", APIProductCode: "P2", APIPlanCode: "B"},
			{ProductCode: "10", PlanName: "Silver Plus", ANSCode: "A3", ANSRegisteredName: "Prata", Segment: "Ambulatorial", Classification: "Clássico", Status: "Suspenso"},
		},
	}

	logger := zap.NewNop()
	cache, err := services.NewMemoryCacheService(100, 0)
	require.NoError(t, err)
	catalogService := services.NewCatalogService(ds, cache, logger)
	pagination := config.PaginationConfig{PageSize: 20, MaxPageSize: 500}

	router := gin.New()
	SetupAllRoutes(router, Controllers{
		Procedures: controllers.NewProcedureController(catalogService, pagination, logger),
		Plans:      controllers.NewPlanController(catalogService, pagination, logger),
		Admin:      controllers.NewAdminController(catalogService, logger),
	}, logger)
	return router
}

func doRequest(router *gin.Engine, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestProcedureSearch(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/tuss?search=consulta&page_size=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.ProcedurePageResponse
	decode(t, w, &resp)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, []int{1, 2}, resp.Window)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "101", resp.Items[0].Code)
	assert.False(t, resp.CacheHit)

	w = doRequest(router, http.MethodGet, "/api/tuss?search=CONSULTA&page_size=1", nil)
	decode(t, w, &resp)
	assert.True(t, resp.CacheHit)

	w = doRequest(router, http.MethodGet, "/api/tuss?search=10", nil)
	decode(t, w, &resp)
	assert.Equal(t, 2, resp.Total, "numeric queries match code prefixes")
	assert.Equal(t, 20, resp.PageSize)

	w = doRequest(router, http.MethodGet, "/api/tuss", nil)
	decode(t, w, &resp)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Items)
}

func TestProcedureSearch_InvalidParams(t *testing.T) {
	router := newTestRouter(t)

	for _, target := range []string{
		"/api/tuss?search=x&page=abc",
		"/api/tuss?search=x&page_size=-1",
		"/api/tuss?search=x&limit=many",
	} {
		w := doRequest(router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)

		var resp responses.ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, "INVALID_REQUEST", resp.Error)
	}
}

func TestProcedureSuggestAndLookup(t *testing.T) {
	router := newTestRouter(t)

	var list responses.ProcedureListResponse
	decode(t, doRequest(router, http.MethodGet, "/api/tuss/suggest?q=c", nil), &list)
	assert.Equal(t, 0, list.Total)

	decode(t, doRequest(router, http.MethodGet, "/api/tuss/suggest?q=torax", nil), &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "202", list.Items[0].Code)

	w := doRequest(router, http.MethodGet, "/api/tuss/1012", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var procedure models.ProcedureCode
	decode(t, w, &procedure)
	assert.Equal(t, "Consulta em domicílio", procedure.Description)

	w = doRequest(router, http.MethodGet, "/api/tuss/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp responses.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, "PROCEDURE_NOT_FOUND", errResp.Error)
}

func TestPlanList(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/products?segment=Ambulatorial", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.PlanPageResponse
	decode(t, w, &resp)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, []string{"A1", "A3"}, resp.ANSCodes.Codes)
	assert.Equal(t, 0, resp.ANSCodes.Remaining)
	require.Len(t, resp.Items, 2)

	gold := resp.Items[0]
	assert.Equal(t, "Gold", gold.PlanName)
	assert.True(t, gold.LinkAvailable)
	assert.Contains(t, gold.ProviderSearchURL, "&produto=P10&plano=G")
	assert.Contains(t, gold.PortalURL, "codProduto=10&planoProduto=Gold&")

	silver := resp.Items[1]
	assert.False(t, silver.LinkAvailable)
	assert.Contains(t, silver.PortalURL, "planoProduto=Silver%20Plus&")

	decode(t, doRequest(router, http.MethodGet, "/api/products?search=basico", nil), &resp)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "2", resp.Items[0].ProductCode)

	decode(t, doRequest(router, http.MethodGet, "/api/products?page_size=1000", nil), &resp)
	assert.Equal(t, 500, resp.PageSize)
	assert.Equal(t, 3, resp.Total)

	decode(t, doRequest(router, http.MethodGet, "/api/products?page=9", nil), &resp)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 1, resp.TotalPages)

	w = doRequest(router, http.MethodGet, "/api/products?page_size=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanGroupsAndPlans(t *testing.T) {
	router := newTestRouter(t)

	var groups []models.ProductGroup
	decode(t, doRequest(router, http.MethodGet, "/api/products/groups", nil), &groups)
	assert.Equal(t, []models.ProductGroup{
		{ProductCode: "2", PlanNames: []string{"Basic"}},
		{ProductCode: "10", PlanNames: []string{"Gold", "Silver Plus"}},
	}, groups)

	var names responses.PlanNamesResponse
	decode(t, doRequest(router, http.MethodGet, "/api/products/10/plans", nil), &names)
	assert.Equal(t, []string{"Gold", "Silver Plus"}, names.PlanNames)

	decode(t, doRequest(router, http.MethodGet, "/api/products/77/plans", nil), &names)
	assert.Empty(t, names.PlanNames)
}

func TestFindPlanAndLinks(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/products/10/plans/Silver%20Plus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail responses.PlanDetailResponse
	decode(t, w, &detail)
	assert.Equal(t, "A3", detail.Plan.ANSCode)
	assert.False(t, detail.LinkAvailable)

	w = doRequest(router, http.MethodGet, "/api/links?product_code=10&plan_name=Gold", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &detail)
	assert.True(t, detail.LinkAvailable)
	assert.Contains(t, detail.ProviderSearchURL, "https://rederef-saude.appspot.com/rederef/buscaPrestadores?login=publico&canal=1&data=")

	w = doRequest(router, http.MethodGet, "/api/links?product_code=2&plan_name=Gold", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp responses.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, "PLAN_NOT_FOUND", errResp.Error)

	w = doRequest(router, http.MethodGet, "/api/links?product_code=2", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/products/10/plans/Bronze", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacets(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		facet string
		want  []string
	}{
		{"product-codes", []string{"2", "10"}},
		{"plan-names", []string{"Basic", "Gold", "Silver Plus"}},
		{"segments", []string{"Ambulatorial", "Hospitalar"}},
		{"classifications", []string{"Clássico", "Executivo"}},
		{"statuses", []string{"Ativo", "Suspenso"}},
	}
	for _, tt := range tests {
		t.Run(tt.facet, func(t *testing.T) {
			var values []string
			w := doRequest(router, http.MethodGet, "/api/filters/"+tt.facet, nil)
			require.Equal(t, http.StatusOK, w.Code)
			decode(t, w, &values)
			assert.Equal(t, tt.want, values)
		})
	}

	w := doRequest(router, http.MethodGet, "/api/filters/operators", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsAndCacheAdmin(t *testing.T) {
	router := newTestRouter(t)

	var stats services.CatalogStats
	decode(t, doRequest(router, http.MethodGet, "/api/stats", nil), &stats)
	assert.Equal(t, 3, stats.TotalPlans)
	assert.Equal(t, 3, stats.TotalProcedures)
	assert.Equal(t, 2, stats.DistinctProducts)
	assert.Len(t, stats.DatasetVersion, 12)

	doRequest(router, http.MethodGet, "/api/tuss?search=raio", nil)
	doRequest(router, http.MethodGet, "/api/tuss?search=raio", nil)

	var cacheStats services.CacheStats
	decode(t, doRequest(router, http.MethodGet, "/api/admin/cache/stats", nil), &cacheStats)
	assert.Equal(t, int64(1), cacheStats.TotalHits)
	assert.Equal(t, int64(1), cacheStats.TotalItems)

	w := doRequest(router, http.MethodPost, "/api/admin/cache/clear", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	decode(t, doRequest(router, http.MethodGet, "/api/admin/cache/stats", nil), &cacheStats)
	assert.Equal(t, int64(0), cacheStats.TotalItems)
}

func TestHealthAndRequestID(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health responses.HealthResponse
	decode(t, w, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	id := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	w = doRequest(router, http.MethodGet, "/live", http.Header{RequestIDHeader: {id}})
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	w = doRequest(router, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
