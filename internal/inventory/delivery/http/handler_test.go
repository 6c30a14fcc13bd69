package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/internal/inventory/usecase/command"
	"github.com/tair/production-costing/internal/inventory/usecase/query"
	"github.com/tair/production-costing/internal/platform/memstore"
	"github.com/tair/production-costing/pkg/auth"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func newRouter(t *testing.T, authn *auth.Authenticator) (*mux.Router, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	_, err := store.Stock().CreateIfAbsent(context.Background(), &domain.StockItem{
		ProductName:     "flour",
		QuantityBase:    decimal.RequireFromString("1000"),
		BaseUnit:        "g",
		WeightedAvgCost: decimal.RequireFromString("0.01"),
	})
	require.NoError(t, err)

	repo := store.Stock()
	summary := query.NewSummarizeStockHandler(repo)
	h := NewStockHandler(
		command.NewConsumeStockHandler(repo, store),
		query.NewGetStockItemHandler(repo),
		summary,
		query.NewExportSummaryHandler(summary),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router, authn)
	RegisterHealthCheck(router, store)
	return router, store
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}, header http.Header) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestConsumeStockEndpoint(t *testing.T) {
	router, _ := newRouter(t, nil)

	rec, env := do(t, router, http.MethodPost, "/api/stock/consume",
		map[string]string{"product_name": "flour", "quantity": "0.2", "unit": "kg"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	var item stockItemResponse
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.True(t, item.QuantityBase.Equal(decimal.RequireFromString("800")))
	assert.Equal(t, "800.00 g", item.Display)

	rec, env = do(t, router, http.MethodPost, "/api/stock/consume",
		map[string]string{"product_name": "flour", "quantity": "900", "unit": "g"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient stock", env.Kind)
	assert.Contains(t, env.Error, "flour")

	rec, _ = do(t, router, http.MethodPost, "/api/stock/consume",
		map[string]string{"product_name": "flour", "quantity": "1", "unit": "l"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/api/stock/consume",
		map[string]string{"product_name": "salt", "quantity": "1", "unit": "g"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStockAndSummary(t *testing.T) {
	router, _ := newRouter(t, nil)

	rec, env := do(t, router, http.MethodGet, "/api/stock/flour", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = do(t, router, http.MethodGet, "/api/stock/summary", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary query.StockSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	require.Len(t, summary.Rows, 1)
	assert.Equal(t, "1.00 kg", summary.Rows[0].Display)

	rec, _ = do(t, router, http.MethodGet, "/api/stock/summary.xlsx", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.Bytes())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "stock-summary.xlsx")
}

func TestConsumeRequiresTokenWhenAuthEnabled(t *testing.T) {
	authn := auth.NewAuthenticator("secret", time.Hour)
	router, _ := newRouter(t, authn)
	body := map[string]string{"product_name": "flour", "quantity": "1", "unit": "g"}

	rec, _ := do(t, router, http.MethodPost, "/api/stock/consume", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := authn.GenerateToken("baker", "admin")
	require.NoError(t, err)
	rec, _ = do(t, router, http.MethodPost, "/api/stock/consume", body, http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/stock/flour", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newRouter(t, nil)
	rec, env := do(t, router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}
