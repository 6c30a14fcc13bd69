package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/internal/inventory"
	"github.com/tair/production-costing/internal/platform/memstore"
	"github.com/tair/production-costing/internal/purchasing"
	"github.com/tair/production-costing/internal/purchasing/domain"
	"github.com/tair/production-costing/pkg/auth"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T, authn *auth.Authenticator) *mux.Router {
	t.Helper()
	store := memstore.New()
	inv, err := inventory.InitializeModule(store.Stock(), store)
	require.NoError(t, err)
	mod, err := purchasing.InitializeModule(store.Purchases(), inv.Ledger, store)
	require.NoError(t, err)

	router := mux.NewRouter()
	mod.HTTP.RegisterRoutes(router, authn)
	inv.HTTP.RegisterRoutes(router, nil)
	return router
}

func call(t *testing.T, router http.Handler, method, path, body, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestRecordAndListPurchases(t *testing.T) {
	router := setup(t, nil)

	code, env := call(t, router, http.MethodPost, "/api/purchases",
		`{"product_name":"flour","supplier":"Mill","kind":"bulk","quantity":"1.5","unit":"kg","unit_price":"2"}`, "")
	require.Equal(t, http.StatusCreated, code, env.Error)
	var p domain.Purchase
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "3", p.TotalPrice.String())

	code, env = call(t, router, http.MethodPost, "/api/purchases",
		`{"product_name":"flour","supplier":"Mill","kind":"package","unit":"g","package_count":"2","package_size":"500","package_price":"1"}`, "")
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = call(t, router, http.MethodGet, "/api/purchases?limit=10", "", "")
	require.Equal(t, http.StatusOK, code)
	var list []domain.Purchase
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, domain.KindPackage, list[0].Kind)

	code, env = call(t, router, http.MethodGet, "/api/stock/flour", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"display":"2.50 kg"`)
}

func TestRecordPurchaseErrors(t *testing.T) {
	router := setup(t, nil)

	tests := []struct {
		name string
		body string
		code int
		kind string
	}{
		{"bad kind", `{"product_name":"a","supplier":"b","kind":"crate","quantity":"1","unit":"g"}`, http.StatusBadRequest, "invalid input"},
		{"unknown field", `{"product":"a"}`, http.StatusBadRequest, "invalid input"},
		{"unknown unit", `{"product_name":"a","supplier":"b","kind":"bulk","quantity":"1","unit":"stone","unit_price":"1"}`, http.StatusUnprocessableEntity, "unknown unit"},
		{"zero quantity", `{"product_name":"a","supplier":"b","kind":"bulk","quantity":"0","unit":"g","unit_price":"1"}`, http.StatusUnprocessableEntity, "invalid quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := call(t, router, http.MethodPost, "/api/purchases", tt.body, "")
			assert.Equal(t, tt.code, code, env.Error)
			assert.Equal(t, tt.kind, env.Kind)
		})
	}

	body := `{"event_id":"e-1","product_name":"a","supplier":"b","kind":"bulk","quantity":"1","unit":"g","unit_price":"1"}`
	code, _ := call(t, router, http.MethodPost, "/api/purchases", body, "")
	require.Equal(t, http.StatusCreated, code)
	code, env := call(t, router, http.MethodPost, "/api/purchases", body, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "already exists", env.Kind)
}

func TestRecordPurchaseRequiresToken(t *testing.T) {
	authn := auth.NewAuthenticator("secret", 0)
	router := setup(t, authn)
	body := `{"product_name":"a","supplier":"b","kind":"bulk","quantity":"1","unit":"g","unit_price":"1"}`

	code, _ := call(t, router, http.MethodPost, "/api/purchases", body, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	token, err := authn.GenerateToken("baker", "admin")
	require.NoError(t, err)
	code, env := call(t, router, http.MethodPost, "/api/purchases", body, token)
	assert.Equal(t, http.StatusCreated, code, env.Error)
}
