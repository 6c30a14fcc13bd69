package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	purchasesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costing_stock_purchases_total",
		Help: "Purchases folded into the stock ledger",
	})
	stockConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costing_stock_consumptions_total",
		Help: "Successful stock consumptions",
	})
	consumptionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costing_stock_insufficient_total",
		Help: "Consumptions rejected for insufficient stock",
	})
)
