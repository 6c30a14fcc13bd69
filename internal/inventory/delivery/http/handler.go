package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/inventory/usecase/command"
	"github.com/tair/production-costing/internal/inventory/usecase/query"
	"github.com/tair/production-costing/internal/platform/httpx"
	"github.com/tair/production-costing/internal/units"
	"github.com/tair/production-costing/pkg/auth"
)

// StockHandler handles HTTP requests for the stock ledger
type StockHandler struct {
	consume *command.ConsumeStockHandler
	get     *query.GetStockItemHandler
	summary *query.SummarizeStockHandler
	export  *query.ExportSummaryHandler
}

// NewStockHandler creates a new stock handler
func NewStockHandler(
	consume *command.ConsumeStockHandler,
	get *query.GetStockItemHandler,
	summary *query.SummarizeStockHandler,
	export *query.ExportSummaryHandler,
) *StockHandler {
	return &StockHandler{consume: consume, get: get, summary: summary, export: export}
}

type stockItemResponse struct {
	ProductName     string          `json:"product_name"`
	QuantityBase    decimal.Decimal `json:"quantity_base"`
	BaseUnit        string          `json:"base_unit"`
	Display         string          `json:"display"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
	TotalValue      decimal.Decimal `json:"total_value"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ConsumeStock handles POST /api/stock/consume
func (h *StockHandler) ConsumeStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductName string          `json:"product_name"`
		Quantity    decimal.Decimal `json:"quantity"`
		Unit        string          `json:"unit"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	item, err := h.consume.Handle(r.Context(), command.ConsumeStockCommand{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Stock consumed", toStockItemResponse(item.ProductName, item.QuantityBase, item.BaseUnit, item.WeightedAvgCost, item.UpdatedAt))
}

// GetStockItem handles GET /api/stock/{product}
func (h *StockHandler) GetStockItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.get.Handle(r.Context(), query.GetStockItemQuery{ProductName: mux.Vars(r)["product"]})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", toStockItemResponse(item.ProductName, item.QuantityBase, item.BaseUnit, item.WeightedAvgCost, item.UpdatedAt))
}

// Summary handles GET /api/stock/summary
func (h *StockHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", summary)
}

// ExportSummary handles GET /api/stock/summary.xlsx
func (h *StockHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	data, err := h.export.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="stock-summary.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// RegisterRoutes registers all stock routes
func (h *StockHandler) RegisterRoutes(router *mux.Router, authn *auth.Authenticator) {
	guard := httpx.RequireAuth(authn)
	router.HandleFunc("/api/stock/summary", httpx.Instrument("/api/stock/summary", h.Summary)).Methods("GET")
	router.HandleFunc("/api/stock/summary.xlsx", httpx.Instrument("/api/stock/summary.xlsx", h.ExportSummary)).Methods("GET")
	router.HandleFunc("/api/stock/consume", httpx.Instrument("/api/stock/consume", guard(h.ConsumeStock))).Methods("POST")
	router.HandleFunc("/api/stock/{product}", httpx.Instrument("/api/stock/{product}", h.GetStockItem)).Methods("GET")
}

// Pinger is satisfied by *sql.DB and the in-memory store.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RegisterHealthCheck registers health check endpoint
func RegisterHealthCheck(router *mux.Router, db Pinger) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			httpx.RespondJSON(w, http.StatusServiceUnavailable, httpx.Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		httpx.RespondJSON(w, http.StatusOK, httpx.Response{
			Success: true,
			Message: "Costing service is healthy",
		})
	}).Methods("GET")
}

func toStockItemResponse(name string, qty decimal.Decimal, unit string, avg decimal.Decimal, updated time.Time) stockItemResponse {
	return stockItemResponse{
		ProductName:     name,
		QuantityBase:    qty,
		BaseUnit:        unit,
		Display:         units.Display(qty, unit).String(),
		WeightedAvgCost: avg,
		TotalValue:      qty.Mul(avg),
		UpdatedAt:       updated,
	}
}
