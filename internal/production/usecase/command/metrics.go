package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	subproductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costing_subproducts_created_total",
		Help: "Subproducts created from raw stock",
	})
	batchesProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costing_batches_produced_total",
		Help: "Additional batches produced from stored recipes",
	})
	productionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "costing_production_failures_total",
		Help: "Production attempts rolled back, by error kind",
	}, []string{"kind"})
)
