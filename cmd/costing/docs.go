package main

// @title Production Costing API
// @version 1.0
// @description Stock ledger with weighted-average costing, subproduct and final product costing, pricing margins and sales.

// @contact.name API Support
// @contact.url http://github.com/tair/production-costing

// @license.name MIT

// @host localhost:8085
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Stock
// @tag.description Stock ledger endpoints

// @tag.name Production
// @tag.description Subproducts and final products

// @tag.name pricing
// @tag.description Unit cost against sale price

// @tag.name purchases
// @tag.description Supplier purchases

// @tag.name sales
// @tag.description Clients and sales history

// @tag.name Health
// @tag.description Health check endpoints
