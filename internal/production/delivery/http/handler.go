package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/platform/httpx"
	"github.com/tair/production-costing/internal/production/usecase/command"
	"github.com/tair/production-costing/internal/production/usecase/query"
	"github.com/tair/production-costing/pkg/auth"
)

// ProductionHandler handles HTTP requests for subproducts and final products
type ProductionHandler struct {
	createSub   *command.CreateSubproductHandler
	produce     *command.ProduceBatchHandler
	deleteSub   *command.DeleteSubproductHandler
	createFinal *command.CreateFinalProductHandler
	setPrice    *command.SetSalePriceHandler
	deleteFinal *command.DeleteFinalProductHandler
	listSubs    *query.ListSubproductsHandler
	ingredients *query.GetIngredientsHandler
	listFinals  *query.ListFinalProductsHandler
}

// NewProductionHandler creates a new production handler
func NewProductionHandler(
	createSub *command.CreateSubproductHandler,
	produce *command.ProduceBatchHandler,
	deleteSub *command.DeleteSubproductHandler,
	createFinal *command.CreateFinalProductHandler,
	setPrice *command.SetSalePriceHandler,
	deleteFinal *command.DeleteFinalProductHandler,
	listSubs *query.ListSubproductsHandler,
	ingredients *query.GetIngredientsHandler,
	listFinals *query.ListFinalProductsHandler,
) *ProductionHandler {
	return &ProductionHandler{
		createSub:   createSub,
		produce:     produce,
		deleteSub:   deleteSub,
		createFinal: createFinal,
		setPrice:    setPrice,
		deleteFinal: deleteFinal,
		listSubs:    listSubs,
		ingredients: ingredients,
		listFinals:  listFinals,
	}
}

type ingredientRequest struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}

// CreateSubproduct handles POST /api/subproducts
func (h *ProductionHandler) CreateSubproduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string              `json:"name"`
		Ingredients []ingredientRequest `json:"ingredients"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd := command.CreateSubproductCommand{Name: req.Name}
	for _, in := range req.Ingredients {
		cmd.Ingredients = append(cmd.Ingredients, command.IngredientLine{
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
		})
	}

	sub, err := h.createSub.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Subproduct created successfully", sub)
}

// ListSubproducts handles GET /api/subproducts
func (h *ProductionHandler) ListSubproducts(w http.ResponseWriter, r *http.Request) {
	subs, err := h.listSubs.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", subs)
}

// GetIngredients handles GET /api/subproducts/{id}/ingredients
func (h *ProductionHandler) GetIngredients(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	lines, err := h.ingredients.Handle(r.Context(), query.GetIngredientsQuery{SubproductID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", lines)
}

// ProduceBatch handles POST /api/subproducts/{id}/produce
func (h *ProductionHandler) ProduceBatch(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	sub, err := h.produce.Handle(r.Context(), command.ProduceBatchCommand{SubproductID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Batch produced", sub)
}

// DeleteSubproduct handles DELETE /api/subproducts/{id}
func (h *ProductionHandler) DeleteSubproduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := h.deleteSub.Handle(r.Context(), command.DeleteSubproductCommand{SubproductID: id}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Subproduct deleted successfully", nil)
}

// CreateFinalProduct handles POST /api/final-products
func (h *ProductionHandler) CreateFinalProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string           `json:"name"`
		SubproductID  uint             `json:"subproduct_id"`
		UnitsProduced int              `json:"units_produced"`
		SalePrice     *decimal.Decimal `json:"sale_price"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	fp, err := h.createFinal.Handle(r.Context(), command.CreateFinalProductCommand{
		Name:          req.Name,
		SubproductID:  req.SubproductID,
		UnitsProduced: req.UnitsProduced,
		SalePrice:     req.SalePrice,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Final product created successfully", query.NewFinalProductView(*fp))
}

// ListFinalProducts handles GET /api/final-products
func (h *ProductionHandler) ListFinalProducts(w http.ResponseWriter, r *http.Request) {
	views, err := h.listFinals.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", views)
}

// SetSalePrice handles PATCH /api/final-products/{id}/sale-price
func (h *ProductionHandler) SetSalePrice(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req struct {
		SalePrice decimal.Decimal `json:"sale_price"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := h.setPrice.Handle(r.Context(), command.SetSalePriceCommand{FinalProductID: id, Price: req.SalePrice}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Sale price updated successfully", nil)
}

// DeleteFinalProduct handles DELETE /api/final-products/{id}
func (h *ProductionHandler) DeleteFinalProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := h.deleteFinal.Handle(r.Context(), command.DeleteFinalProductCommand{FinalProductID: id}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Final product deleted successfully", nil)
}

// RegisterRoutes registers all production routes
func (h *ProductionHandler) RegisterRoutes(router *mux.Router, authn *auth.Authenticator) {
	guard := httpx.RequireAuth(authn)
	router.HandleFunc("/api/subproducts", httpx.Instrument("/api/subproducts", h.ListSubproducts)).Methods("GET")
	router.HandleFunc("/api/subproducts", httpx.Instrument("/api/subproducts", guard(h.CreateSubproduct))).Methods("POST")
	router.HandleFunc("/api/subproducts/{id}/ingredients", httpx.Instrument("/api/subproducts/{id}/ingredients", h.GetIngredients)).Methods("GET")
	router.HandleFunc("/api/subproducts/{id}/produce", httpx.Instrument("/api/subproducts/{id}/produce", guard(h.ProduceBatch))).Methods("POST")
	router.HandleFunc("/api/subproducts/{id}", httpx.Instrument("/api/subproducts/{id}", guard(h.DeleteSubproduct))).Methods("DELETE")

	router.HandleFunc("/api/final-products", httpx.Instrument("/api/final-products", h.ListFinalProducts)).Methods("GET")
	router.HandleFunc("/api/final-products", httpx.Instrument("/api/final-products", guard(h.CreateFinalProduct))).Methods("POST")
	router.HandleFunc("/api/final-products/{id}/sale-price", httpx.Instrument("/api/final-products/{id}/sale-price", guard(h.SetSalePrice))).Methods("PATCH")
	router.HandleFunc("/api/final-products/{id}", httpx.Instrument("/api/final-products/{id}", guard(h.DeleteFinalProduct))).Methods("DELETE")
}
