package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/production-costing/internal/platform/httpx"
	"github.com/tair/production-costing/internal/pricing/usecase/query"
)

// PricingHandler handles HTTP requests for the pricing query
type PricingHandler struct {
	list *query.ListPricedProductsHandler
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(list *query.ListPricedProductsHandler) *PricingHandler {
	return &PricingHandler{list: list}
}

// ListPricing handles GET /api/pricing
// @Summary Final product pricing
// @Description Unit cost, sale price, profit per unit and margin percent of every final product. margin_percent is null when the unit cost is zero.
// @Tags Pricing
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/pricing [get]
func (h *PricingHandler) ListPricing(w http.ResponseWriter, r *http.Request) {
	products, err := h.list.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", products)
}

// RegisterRoutes registers all pricing routes
func (h *PricingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/pricing", httpx.Instrument("/api/pricing", h.ListPricing)).Methods("GET")
}
