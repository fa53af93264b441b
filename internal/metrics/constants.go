package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNamePlansComputed    = "plans_computed_total"
	MetricNamePlanDuration     = "plan_duration_seconds"
	MetricNamePlanErrors       = "plan_errors_total"
	MetricNamePlanCacheHits    = "plan_cache_hits_total"
	MetricNamePlanCacheMisses  = "plan_cache_misses_total"
	MetricNameCatalogItems     = "catalog_items"
	MetricNameCatalogRecipes   = "catalog_recipes"
	MetricNameCatalogMachines  = "catalog_machines"
	MetricNameCatalogReloads   = "catalog_reloads_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextPlansComputed   = "Total number of production plans computed"
	HelpTextPlanDuration    = "Plan resolution latency in seconds"
	HelpTextPlanErrors      = "Total number of failed plan requests by error class"
	HelpTextPlanCacheHits   = "Total number of plan cache hits"
	HelpTextPlanCacheMisses = "Total number of plan cache misses"
	HelpTextCatalogItems    = "Number of items in the loaded catalog"
	HelpTextCatalogRecipes  = "Number of recipes in the loaded catalog"
	HelpTextCatalogMachines = "Number of machine types in the loaded catalog"
	HelpTextCatalogReloads  = "Total number of catalog reload attempts"
)

// Metric label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelMode   = "mode"
	LabelClass  = "class"
	LabelResult = "result"
)

// HTTPLatencyBuckets covers fast in-memory handlers.
var HTTPLatencyBuckets = []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
