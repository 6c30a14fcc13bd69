package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/internal/platform/memstore"
	proddomain "github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/internal/sales"
	"github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/internal/sales/usecase/query"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) *mux.Router {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	sub := &proddomain.Subproduct{Name: "Dough", TotalCost: decimal.NewFromInt(2)}
	require.NoError(t, store.Subproducts().Create(ctx, sub))
	require.NoError(t, store.FinalProducts().Create(ctx, &proddomain.FinalProduct{
		Name:          "Buns",
		SubproductID:  sub.ID,
		UnitsProduced: 20,
		SalePrice:     decimal.NewNullDecimal(decimal.RequireFromString("0.25")),
	}))

	h, err := sales.InitializeHTTPHandler(store.Clients(), store.Sales(), store.FinalProducts(), store, nil)
	require.NoError(t, err)
	router := mux.NewRouter()
	h.RegisterRoutes(router, nil)
	return router
}

func call(t *testing.T, router http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestSalesFlow(t *testing.T) {
	router := setup(t)

	code, env := call(t, router, http.MethodPost, "/api/clients", `{"name":"Deli"}`)
	require.Equal(t, http.StatusCreated, code, env.Error)
	code, env = call(t, router, http.MethodPost, "/api/clients", `{"name":"Deli"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "already exists", env.Kind)

	code, env = call(t, router, http.MethodPost, "/api/sales", `{"client_id":1,"final_product_id":1,"quantity":10}`)
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = call(t, router, http.MethodGet, "/api/sales", "")
	require.Equal(t, http.StatusOK, code)
	var history []query.SaleView
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "Deli", history[0].ClientName)
	assert.Equal(t, "Buns", history[0].ProductName)
	assert.True(t, history[0].Profit.Equal(decimal.RequireFromString("1.5")))

	code, env = call(t, router, http.MethodPatch, "/api/clients/1/active", "")
	require.Equal(t, http.StatusOK, code)
	var c domain.Client
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.False(t, c.Active)

	code, env = call(t, router, http.MethodPost, "/api/sales", `{"client_id":1,"final_product_id":1,"quantity":1}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "client inactive", env.Kind)

	code, env = call(t, router, http.MethodGet, "/api/clients?active=true", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestSalesErrors(t *testing.T) {
	router := setup(t)
	_, _ = call(t, router, http.MethodPost, "/api/clients", `{"name":"Deli"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"zero quantity", http.MethodPost, "/api/sales", `{"client_id":1,"final_product_id":1,"quantity":0}`, http.StatusUnprocessableEntity},
		{"unknown product", http.MethodPost, "/api/sales", `{"client_id":1,"final_product_id":9,"quantity":1}`, http.StatusNotFound},
		{"unknown client", http.MethodPatch, "/api/clients/9/active", "", http.StatusNotFound},
		{"bad id", http.MethodPatch, "/api/clients/abc/active", "", http.StatusBadRequest},
		{"empty name", http.MethodPost, "/api/clients", `{"name":""}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := call(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, code, env.Error)
		})
	}
}
