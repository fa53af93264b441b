// Package resolver expands a production target into the full recursive
// demand tree: every intermediate and raw item consumed, with demand for
// repeated items merged across branches.
package resolver

import (
	"fmt"

	"github.com/veldra/planforge/internal/catalog"
	"github.com/veldra/planforge/internal/domain"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// resolution carries the per-request state: one resolve call owns it
// exclusively, the catalog stays read-only.
type resolution struct {
	cat        *catalog.Catalog
	selections map[string]string

	chosen map[string]*domain.Recipe
	state  map[string]visitState
	stack  []string
	order  []string // post-order; reversed it is topological (parents first)
	demand map[string]float64
}

// Resolve expands rootItemID at targetRate into a demand tree. selections
// maps item id to the chosen recipe id for items with alternate recipes;
// an item with several recipes and no selection fails rather than
// guessing. Indirect recipe cycles are detected and reported with the
// item chain; they never loop.
//
// Every node carries both the merged total rate for its item (Rate) and
// the share demanded through its own parent edge (BranchRate), so the
// projector can render merged or per-branch views without re-resolving.
func Resolve(cat *catalog.Catalog, rootItemID string, targetRate float64, selections map[string]string) (*domain.DemandNode, error) {
	if _, ok := cat.Item(rootItemID); !ok {
		return nil, domain.NewResolutionError(rootItemID, domain.ErrUnknownItem)
	}
	if targetRate <= 0 {
		return nil, domain.NewResolutionError(rootItemID, domain.ErrNonPositiveRate)
	}

	r := &resolution{
		cat:        cat,
		selections: selections,
		chosen:     make(map[string]*domain.Recipe),
		state:      make(map[string]visitState),
		demand:     make(map[string]float64),
	}

	// Pass 1: walk the recipe graph once, pinning a recipe per item,
	// detecting cycles via the in-progress visitation set and recording
	// a topological order.
	if err := r.visit(rootItemID); err != nil {
		return nil, err
	}

	// Pass 2: work through items parents-first so each item's total
	// demand is fully accumulated before its inputs are charged, exactly
	// once per item.
	r.demand[rootItemID] = targetRate
	for i := len(r.order) - 1; i >= 0; i-- {
		itemID := r.order[i]
		rec := r.chosen[itemID]
		if rec == nil {
			continue
		}
		rate := r.demand[itemID]
		for _, in := range rec.Inputs {
			r.demand[in.ItemID] += rate * in.Quantity
		}
	}

	return r.build(rootItemID, targetRate), nil
}

// visit pins the recipe for itemID and recurses into its inputs. A
// re-entry into an item still being expanded is an indirect cycle and is
// reported with the full chain.
func (r *resolution) visit(itemID string) error {
	switch r.state[itemID] {
	case visiting:
		for i, id := range r.stack {
			if id == itemID {
				chain := make([]string, 0, len(r.stack)-i+1)
				chain = append(chain, r.stack[i:]...)
				chain = append(chain, itemID)
				return domain.NewCycleError(chain)
			}
		}
		// Unreachable: a visiting item is always on the stack.
		return domain.NewCycleError([]string{itemID})
	case visited:
		return nil
	}

	r.state[itemID] = visiting
	r.stack = append(r.stack, itemID)

	rec, err := r.chooseRecipe(itemID)
	if err != nil {
		return err
	}
	r.chosen[itemID] = rec

	if rec != nil {
		for _, in := range rec.Inputs {
			if err := r.visit(in.ItemID); err != nil {
				return err
			}
		}
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.state[itemID] = visited
	r.order = append(r.order, itemID)
	return nil
}

// chooseRecipe picks the recipe for an item: none for raw items, the only
// recipe when there is exactly one, the explicit selection otherwise.
func (r *resolution) chooseRecipe(itemID string) (*domain.Recipe, error) {
	item, _ := r.cat.Item(itemID)
	if item.Raw {
		return nil, nil
	}

	recipes := r.cat.Recipes(itemID)
	if len(recipes) == 0 {
		return nil, nil
	}

	if selected, ok := r.selections[itemID]; ok {
		for i := range recipes {
			if recipes[i].ID == selected {
				rec := recipes[i]
				return &rec, nil
			}
		}
		if _, ok := r.cat.Recipe(selected); !ok {
			return nil, domain.NewResolutionError(itemID,
				fmt.Errorf("%w: %q", domain.ErrUnknownRecipe, selected))
		}
		return nil, domain.NewResolutionError(itemID,
			fmt.Errorf("%w: %q", domain.ErrInvalidSelection, selected))
	}

	if len(recipes) == 1 {
		rec := recipes[0]
		return &rec, nil
	}

	return nil, domain.NewResolutionError(itemID, domain.ErrMissingSelection)
}

// build materializes the display-shaped tree. The same item demanded by
// several parents yields one node per parent edge, each knowing both its
// branch share and the merged total.
func (r *resolution) build(itemID string, branchRate float64) *domain.DemandNode {
	node := &domain.DemandNode{
		ItemID:     itemID,
		Rate:       r.demand[itemID],
		BranchRate: branchRate,
		Recipe:     r.chosen[itemID],
	}

	rec := node.Recipe
	if rec == nil {
		return node
	}

	if m, ok := r.cat.Machine(rec.MachineType); ok {
		node.Machine = &m
	}

	node.Children = make([]*domain.DemandNode, 0, len(rec.Inputs))
	for _, in := range rec.Inputs {
		node.Children = append(node.Children, r.build(in.ItemID, branchRate*in.Quantity))
	}
	return node
}
