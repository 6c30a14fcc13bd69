package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the costing service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ConsumeStock godoc
// @Summary Consume stock
// @Description Take a quantity of a product out of stock. The weighted average cost is unchanged.
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_name=string,quantity=number,unit=string} true "Consumption"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Failure 409 {object} object{success=bool,error=string,kind=string}
// @Failure 422 {object} object{success=bool,error=string,kind=string}
// @Router /api/stock/consume [post]
func (h *StockHandler) ConsumeStockDoc() {}

// GetStockItem godoc
// @Summary Get stock item
// @Description Quantity on hand and weighted average cost of one product
// @Tags Stock
// @Produce json
// @Param product path string true "Product name"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Router /api/stock/{product} [get]
func (h *StockHandler) GetStockItemDoc() {}

// Summary godoc
// @Summary Stock summary
// @Description Every product with quantity above zero, scaled for display, with total value
// @Tags Stock
// @Produce json
// @Success 200 {object} object{success=bool,data=object{rows=array,total_value=number}}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/stock/summary [get]
func (h *StockHandler) SummaryDoc() {}

// ExportSummary godoc
// @Summary Stock summary spreadsheet
// @Description The stock summary as an xlsx workbook
// @Tags Stock
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /api/stock/summary.xlsx [get]
func (h *StockHandler) ExportSummaryDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func HealthCheckDoc() {}
