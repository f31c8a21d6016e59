package export

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finsearch_export_runs_total",
			Help: "Total number of completed export runs",
		},
	)

	exportedProductsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finsearch_exported_products_total",
			Help: "Total number of products written to the feed",
		},
	)

	exportProductErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finsearch_export_product_errors_total",
			Help: "Total number of products skipped during export",
		},
	)
)
