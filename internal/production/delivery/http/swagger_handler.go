package http

// CreateSubproduct godoc
// @Summary Create subproduct
// @Description Price and consume every ingredient and store the subproduct in one transaction. Nothing is consumed if any ingredient fails.
// @Tags Production
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,ingredients=[]object{product_name=string,quantity=number,unit=string}} true "Subproduct"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Failure 409 {object} object{success=bool,error=string,kind=string}
// @Failure 422 {object} object{success=bool,error=string,kind=string}
// @Router /api/subproducts [post]
func (h *ProductionHandler) CreateSubproductDoc() {}

// ListSubproducts godoc
// @Summary List subproducts
// @Description Every subproduct with its frozen total cost and ingredients
// @Tags Production
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/subproducts [get]
func (h *ProductionHandler) ListSubproductsDoc() {}

// GetIngredients godoc
// @Summary Subproduct ingredients
// @Description Ingredient lines of a subproduct in entry order
// @Tags Production
// @Produce json
// @Param id path int true "Subproduct ID"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Router /api/subproducts/{id}/ingredients [get]
func (h *ProductionHandler) GetIngredientsDoc() {}

// ProduceBatch godoc
// @Summary Produce another batch
// @Description Consume the stored ingredient list again. The cost snapshot is unchanged.
// @Tags Production
// @Security BearerAuth
// @Produce json
// @Param id path int true "Subproduct ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Failure 409 {object} object{success=bool,error=string,kind=string}
// @Router /api/subproducts/{id}/produce [post]
func (h *ProductionHandler) ProduceBatchDoc() {}

// DeleteSubproduct godoc
// @Summary Delete subproduct
// @Description Refused while a final product references it
// @Tags Production
// @Security BearerAuth
// @Produce json
// @Param id path int true "Subproduct ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Failure 409 {object} object{success=bool,error=string,kind=string}
// @Router /api/subproducts/{id} [delete]
func (h *ProductionHandler) DeleteSubproductDoc() {}

// CreateFinalProduct godoc
// @Summary Create final product
// @Description Link a subproduct batch to the number of units it yields
// @Tags Production
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,subproduct_id=int,units_produced=int,sale_price=number} true "Final product"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Failure 422 {object} object{success=bool,error=string,kind=string}
// @Router /api/final-products [post]
func (h *ProductionHandler) CreateFinalProductDoc() {}

// ListFinalProducts godoc
// @Summary List final products
// @Description Final products with batch cost and derived unit cost
// @Tags Production
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/final-products [get]
func (h *ProductionHandler) ListFinalProductsDoc() {}

// SetSalePrice godoc
// @Summary Set sale price
// @Tags Production
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Final product ID"
// @Param request body object{sale_price=number} true "Price"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Failure 422 {object} object{success=bool,error=string,kind=string}
// @Router /api/final-products/{id}/sale-price [patch]
func (h *ProductionHandler) SetSalePriceDoc() {}

// DeleteFinalProduct godoc
// @Summary Delete final product
// @Description Refused while sales reference it
// @Tags Production
// @Security BearerAuth
// @Produce json
// @Param id path int true "Final product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string,kind=string}
// @Failure 409 {object} object{success=bool,error=string,kind=string}
// @Router /api/final-products/{id} [delete]
func (h *ProductionHandler) DeleteFinalProductDoc() {}
