package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/platform/httpx"
	"github.com/tair/production-costing/internal/sales/usecase/command"
	"github.com/tair/production-costing/internal/sales/usecase/query"
	"github.com/tair/production-costing/pkg/auth"
)

// SalesHandler handles HTTP requests for clients and sales
type SalesHandler struct {
	registerClient *command.RegisterClientHandler
	toggleClient   *command.ToggleClientActiveHandler
	recordSale     *command.RecordSaleHandler
	listClients    *query.ListClientsHandler
	listSales      *query.ListSalesHandler
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(
	registerClient *command.RegisterClientHandler,
	toggleClient *command.ToggleClientActiveHandler,
	recordSale *command.RecordSaleHandler,
	listClients *query.ListClientsHandler,
	listSales *query.ListSalesHandler,
) *SalesHandler {
	return &SalesHandler{
		registerClient: registerClient,
		toggleClient:   toggleClient,
		recordSale:     recordSale,
		listClients:    listClients,
		listSales:      listSales,
	}
}

// RegisterClientRequest is the body of POST /api/clients
type RegisterClientRequest struct {
	Name string `json:"name"`
}

// RecordSaleRequest is the body of POST /api/sales. unit_price defaults to
// the product's sale price.
type RecordSaleRequest struct {
	ClientID       uint             `json:"client_id"`
	FinalProductID uint             `json:"final_product_id"`
	Quantity       int              `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
}

// RegisterClient handles POST /api/clients
// @Summary      Register a client
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        client  body      RegisterClientRequest  true  "Client"
// @Success      201     {object}  httpx.Response
// @Failure      409     {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/clients [post]
func (h *SalesHandler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req RegisterClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	c, err := h.registerClient.Handle(r.Context(), command.RegisterClientCommand{Name: req.Name})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Client registered", c)
}

// ListClients handles GET /api/clients
// @Summary      List clients
// @Tags         sales
// @Produce      json
// @Param        active  query     bool  false  "Only active clients"
// @Success      200     {object}  httpx.Response
// @Router       /api/clients [get]
func (h *SalesHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"
	clients, err := h.listClients.Handle(r.Context(), query.ListClientsQuery{OnlyActive: onlyActive})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", clients)
}

// ToggleClientActive handles PATCH /api/clients/{id}/active
// @Summary      Toggle a client's active flag
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  httpx.Response
// @Failure      404  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/clients/{id}/active [patch]
func (h *SalesHandler) ToggleClientActive(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	c, err := h.toggleClient.Handle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Client updated", c)
}

// RecordSale handles POST /api/sales
// @Summary      Record a sale
// @Description  Captures the unit cost at sale time and publishes sale.recorded
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        sale  body      RecordSaleRequest  true  "Sale"
// @Success      201   {object}  httpx.Response
// @Failure      404   {object}  httpx.Response
// @Failure      409   {object}  httpx.Response
// @Failure      422   {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/sales [post]
func (h *SalesHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req RecordSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	sale, err := h.recordSale.Handle(r.Context(), command.RecordSaleCommand{
		ClientID:       req.ClientID,
		FinalProductID: req.FinalProductID,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Sale recorded", sale)
}

// ListSales handles GET /api/sales
// @Summary      Sales history
// @Description  Sales newest first with per-sale profit
// @Tags         sales
// @Produce      json
// @Param        limit   query     int  false  "Page size"  default(50)
// @Param        offset  query     int  false  "Offset"     default(0)
// @Success      200     {object}  httpx.Response
// @Router       /api/sales [get]
func (h *SalesHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpx.Page(r, 50)
	sales, err := h.listSales.Handle(r.Context(), query.ListSalesQuery{Limit: limit, Offset: offset})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", sales)
}

// RegisterRoutes registers all client and sale routes
func (h *SalesHandler) RegisterRoutes(router *mux.Router, authn *auth.Authenticator) {
	guard := httpx.RequireAuth(authn)
	router.HandleFunc("/api/clients", httpx.Instrument("/api/clients", guard(h.RegisterClient))).Methods("POST")
	router.HandleFunc("/api/clients", httpx.Instrument("/api/clients", h.ListClients)).Methods("GET")
	router.HandleFunc("/api/clients/{id}/active", httpx.Instrument("/api/clients/{id}/active", guard(h.ToggleClientActive))).Methods("PATCH")
	router.HandleFunc("/api/sales", httpx.Instrument("/api/sales", guard(h.RecordSale))).Methods("POST")
	router.HandleFunc("/api/sales", httpx.Instrument("/api/sales", h.ListSales)).Methods("GET")
}
