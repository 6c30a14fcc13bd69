package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/platform/httpx"
	"github.com/tair/production-costing/internal/purchasing/domain"
	"github.com/tair/production-costing/internal/purchasing/usecase/command"
	"github.com/tair/production-costing/internal/purchasing/usecase/query"
	"github.com/tair/production-costing/pkg/auth"
)

// PurchaseHandler handles HTTP requests for supplier purchases
type PurchaseHandler struct {
	record *command.RecordPurchaseHandler
	list   *query.ListPurchasesHandler
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(record *command.RecordPurchaseHandler, list *query.ListPurchasesHandler) *PurchaseHandler {
	return &PurchaseHandler{record: record, list: list}
}

// RecordPurchaseRequest is the body of POST /api/purchases. Bulk purchases
// use quantity and unit_price; package purchases use the package fields.
type RecordPurchaseRequest struct {
	EventID      string          `json:"event_id,omitempty"`
	ProductName  string          `json:"product_name"`
	Supplier     string          `json:"supplier"`
	Kind         string          `json:"kind"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PackageCount decimal.Decimal `json:"package_count"`
	PackageSize  decimal.Decimal `json:"package_size"`
	PackagePrice decimal.Decimal `json:"package_price"`
}

// RecordPurchase handles POST /api/purchases
// @Summary      Record a supplier purchase
// @Description  Stores the purchase and folds it into the weighted-average stock ledger
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        purchase  body      RecordPurchaseRequest  true  "Purchase"
// @Success      201       {object}  httpx.Response
// @Failure      400       {object}  httpx.Response
// @Failure      409       {object}  httpx.Response
// @Failure      422       {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/purchases [post]
func (h *PurchaseHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req RecordPurchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	p, err := h.record.Handle(r.Context(), domain.Intake{
		EventID:      req.EventID,
		ProductName:  req.ProductName,
		Supplier:     req.Supplier,
		Kind:         kind,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitPrice:    req.UnitPrice,
		PackageCount: req.PackageCount,
		PackageSize:  req.PackageSize,
		PackagePrice: req.PackagePrice,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Purchase recorded", p)
}

// ListPurchases handles GET /api/purchases
// @Summary      List purchases
// @Description  Purchase history, newest first
// @Tags         purchases
// @Produce      json
// @Param        limit   query     int  false  "Page size"  default(50)
// @Param        offset  query     int  false  "Offset"     default(0)
// @Success      200     {object}  httpx.Response
// @Router       /api/purchases [get]
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpx.Page(r, 50)
	purchases, err := h.list.Handle(r.Context(), query.ListPurchasesQuery{Limit: limit, Offset: offset})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", purchases)
}

// RegisterRoutes registers all purchase routes
func (h *PurchaseHandler) RegisterRoutes(router *mux.Router, authn *auth.Authenticator) {
	guard := httpx.RequireAuth(authn)
	router.HandleFunc("/api/purchases", httpx.Instrument("/api/purchases", guard(h.RecordPurchase))).Methods("POST")
	router.HandleFunc("/api/purchases", httpx.Instrument("/api/purchases", h.ListPurchases)).Methods("GET")
}
