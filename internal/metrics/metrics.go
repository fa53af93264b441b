package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Planner metrics
var (
	PlansComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlansComputed,
			Help: HelpTextPlansComputed,
		},
		[]string{LabelMode},
	)

	PlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePlanDuration,
			Help:    HelpTextPlanDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	PlanErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlanErrors,
			Help: HelpTextPlanErrors,
		},
		[]string{LabelClass},
	)

	PlanCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlanCacheHits,
			Help: HelpTextPlanCacheHits,
		},
	)

	PlanCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlanCacheMisses,
			Help: HelpTextPlanCacheMisses,
		},
	)
)

// Catalog metrics
var (
	CatalogItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: MetricNameCatalogItems,
		Help: HelpTextCatalogItems,
	})

	CatalogRecipes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: MetricNameCatalogRecipes,
		Help: HelpTextCatalogRecipes,
	})

	CatalogMachines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: MetricNameCatalogMachines,
		Help: HelpTextCatalogMachines,
	})

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogReloads,
			Help: HelpTextCatalogReloads,
		},
		[]string{LabelResult},
	)
)

// SetCatalogGauges records the size of the currently loaded catalog.
func SetCatalogGauges(items, recipes, machines int) {
	CatalogItems.Set(float64(items))
	CatalogRecipes.Set(float64(recipes))
	CatalogMachines.Set(float64(machines))
}
