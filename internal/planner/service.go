// Package planner orchestrates a plan request end to end: resolve the
// demand tree, annotate machines and power, summarize, project for
// display. It owns the process-wide catalog pointer and the plan cache.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/veldra/planforge/internal/aggregate"
	"github.com/veldra/planforge/internal/catalog"
	"github.com/veldra/planforge/internal/domain"
	"github.com/veldra/planforge/internal/logger"
	"github.com/veldra/planforge/internal/metrics"
	"github.com/veldra/planforge/internal/projector"
	"github.com/veldra/planforge/internal/resolver"
)

// CatalogInfo describes the currently loaded catalog.
type CatalogInfo struct {
	Items    int    `json:"items"`
	Recipes  int    `json:"recipes"`
	Machines int    `json:"machines"`
	Hash     string `json:"hash"`
}

// Service defines the planning operations exposed to transports.
type Service interface {
	Plan(ctx context.Context, req domain.PlanRequest) (*domain.PlanResult, error)
	Items(ctx context.Context) []domain.Item
	RecipesFor(ctx context.Context, itemID string) ([]domain.Recipe, error)
	Machines(ctx context.Context) []domain.MachineType
	CatalogInfo(ctx context.Context) CatalogInfo
	Reload(ctx context.Context) (CatalogInfo, error)
}

type service struct {
	loader  catalog.Loader
	dataDir string
	catalog atomic.Pointer[catalog.Catalog]
	cache   *planCache // nil when caching is disabled
}

// NewService loads the catalog from dataDir and returns a ready service.
// cacheSize 0 disables the plan cache. A failed initial load is fatal to
// the caller; there is no catalog to fall back to.
func NewService(loader catalog.Loader, dataDir string, cacheSize int, cacheTTL time.Duration) (Service, error) {
	cat, err := loader.Load(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	s := &service{loader: loader, dataDir: dataDir}
	s.catalog.Store(cat)
	if cacheSize > 0 {
		s.cache = newPlanCache(cacheSize, cacheTTL)
	}

	metrics.SetCatalogGauges(cat.ItemCount(), cat.RecipeCount(), cat.MachineCount())
	return s, nil
}

// NewServiceWithCatalog wraps an already-built catalog, for callers that
// load data themselves (tests, the CLI).
func NewServiceWithCatalog(cat *catalog.Catalog, cacheSize int, cacheTTL time.Duration) Service {
	s := &service{}
	s.catalog.Store(cat)
	if cacheSize > 0 {
		s.cache = newPlanCache(cacheSize, cacheTTL)
	}
	return s
}

// Plan computes the full recursive production requirements for one item
// at the requested rate. Results are memoized; identical requests against
// the same catalog return the cached tree.
func (s *service) Plan(ctx context.Context, req domain.PlanRequest) (*domain.PlanResult, error) {
	log := logger.FromContext(ctx)
	cat := s.catalog.Load()

	if req.Mode == "" {
		req.Mode = domain.ModeMerged
	}
	if !req.Mode.Valid() {
		return nil, domain.NewResolutionError(req.ItemID, fmt.Errorf("unknown projection mode %q", req.Mode))
	}

	key := cacheKey(cat.Hash(), req)
	if s.cache != nil {
		if result, ok := s.cache.Get(key); ok {
			metrics.PlanCacheHits.Inc()
			log.Debug("Plan served from cache", "item", req.ItemID, "rate", req.Rate)
			return result, nil
		}
		metrics.PlanCacheMisses.Inc()
	}

	start := time.Now()
	result, err := compute(cat, req)
	if err != nil {
		metrics.PlanErrors.WithLabelValues(errorClass(err)).Inc()
		log.Warn("Plan failed", "item", req.ItemID, "rate", req.Rate, "error", err)
		return nil, err
	}

	metrics.PlansComputed.WithLabelValues(string(req.Mode)).Inc()
	metrics.PlanDuration.Observe(time.Since(start).Seconds())
	log.Info("Plan computed",
		"item", req.ItemID,
		"rate", req.Rate,
		"mode", req.Mode,
		"total_power", result.Summary.TotalPower,
		"duration", time.Since(start))

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result, nil
}

// compute runs the pipeline: resolve -> annotate -> summarize -> project.
func compute(cat *catalog.Catalog, req domain.PlanRequest) (*domain.PlanResult, error) {
	root, err := resolver.Resolve(cat, req.ItemID, req.Rate, req.Selections)
	if err != nil {
		return nil, err
	}

	if err := aggregate.Annotate(root); err != nil {
		return nil, err
	}

	tree, err := projector.Project(root, req.Mode)
	if err != nil {
		return nil, err
	}

	return &domain.PlanResult{
		Tree:    tree,
		Summary: aggregate.Summarize(root),
	}, nil
}

// Items returns all catalog items.
func (s *service) Items(ctx context.Context) []domain.Item {
	return s.catalog.Load().Items()
}

// RecipesFor returns the recipes producing itemID, empty for raw items.
func (s *service) RecipesFor(ctx context.Context, itemID string) ([]domain.Recipe, error) {
	cat := s.catalog.Load()
	if _, ok := cat.Item(itemID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemID)
	}
	return cat.Recipes(itemID), nil
}

// Machines returns all catalog machine types.
func (s *service) Machines(ctx context.Context) []domain.MachineType {
	return s.catalog.Load().Machines()
}

// CatalogInfo returns counts and the content hash of the loaded catalog.
func (s *service) CatalogInfo(ctx context.Context) CatalogInfo {
	return catalogInfo(s.catalog.Load())
}

// Reload re-reads the definition files and atomically swaps the catalog.
// On failure the previous catalog stays in place and keeps serving.
func (s *service) Reload(ctx context.Context) (CatalogInfo, error) {
	log := logger.FromContext(ctx)

	if s.loader == nil {
		return CatalogInfo{}, errors.New("catalog reload not available: no loader configured")
	}

	cat, err := s.loader.Load(s.dataDir)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("failure").Inc()
		log.Error("Catalog reload failed, keeping previous catalog", "error", err)
		return CatalogInfo{}, err
	}

	s.catalog.Store(cat)
	if s.cache != nil {
		s.cache.Purge()
	}
	metrics.CatalogReloads.WithLabelValues("success").Inc()
	metrics.SetCatalogGauges(cat.ItemCount(), cat.RecipeCount(), cat.MachineCount())

	info := catalogInfo(cat)
	log.Info("Catalog reloaded",
		"items", info.Items,
		"recipes", info.Recipes,
		"machines", info.Machines,
		"hash", info.Hash)
	return info, nil
}

func catalogInfo(cat *catalog.Catalog) CatalogInfo {
	return CatalogInfo{
		Items:    cat.ItemCount(),
		Recipes:  cat.RecipeCount(),
		Machines: cat.MachineCount(),
		Hash:     cat.Hash(),
	}
}

// errorClass buckets failures for the plan_errors_total metric.
func errorClass(err error) string {
	var resErr *domain.ResolutionError
	var aggErr *domain.AggregationError
	var dataErr *domain.DataError
	switch {
	case errors.As(err, &resErr):
		return "resolution"
	case errors.As(err, &aggErr):
		return "aggregation"
	case errors.As(err, &dataErr):
		return "data"
	default:
		return "internal"
	}
}
