package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across the catalog, resolver and aggregator.
// Handlers classify failures with errors.Is/errors.As; nothing in the
// core ever falls back to a silent default.
var (
	ErrDuplicateID      = errors.New("duplicate identifier")
	ErrUnknownItem      = errors.New("unknown item")
	ErrUnknownRecipe    = errors.New("unknown recipe")
	ErrUnknownMachine   = errors.New("unknown machine type")
	ErrSelfReference    = errors.New("recipe consumes its own output")
	ErrRawWithRecipe    = errors.New("raw item has a recipe")
	ErrNonPositiveQty   = errors.New("non-positive quantity")
	ErrNonPositiveCycle = errors.New("non-positive cycle duration")
	ErrNonPositiveRate  = errors.New("target rate must be positive")
	ErrMissingSelection = errors.New("item has multiple recipes and no selection")
	ErrInvalidSelection = errors.New("selected recipe does not produce item")
	ErrRecipeCycle      = errors.New("circular recipe dependency")
)

// DataError reports a malformed or inconsistent catalog entry found at
// load time. The load attempt is fatal; the caller fixes the data and
// reloads.
type DataError struct {
	Entity string // "item", "recipe" or "machine"
	ID     string
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("catalog data error: %s %q: %v", e.Entity, e.ID, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// NewDataError wraps err with the offending catalog entity.
func NewDataError(entity, id string, err error) *DataError {
	return &DataError{Entity: entity, ID: id, Err: err}
}

// ResolutionError reports a per-request resolution failure: unknown root,
// missing or invalid recipe selection, or a detected recipe cycle. Chain
// is populated only for cycles and names the dependency loop in order,
// ending on the item that closed it.
type ResolutionError struct {
	ItemID string
	Chain  []string
	Err    error
}

func (e *ResolutionError) Error() string {
	if len(e.Chain) > 0 {
		return fmt.Sprintf("resolution error: item %q: %v (%s)", e.ItemID, e.Err, strings.Join(e.Chain, " -> "))
	}
	return fmt.Sprintf("resolution error: item %q: %v", e.ItemID, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// NewResolutionError wraps err with the offending item.
func NewResolutionError(itemID string, err error) *ResolutionError {
	return &ResolutionError{ItemID: itemID, Err: err}
}

// NewCycleError reports a circular recipe dependency. The chain starts at
// the item whose expansion re-entered itself.
func NewCycleError(chain []string) *ResolutionError {
	itemID := ""
	if len(chain) > 0 {
		itemID = chain[0]
	}
	return &ResolutionError{ItemID: itemID, Chain: chain, Err: ErrRecipeCycle}
}

// AggregationError reports malformed recipe numbers caught while
// converting demand rates into machine counts. The catalog rejects these
// at load; this is the second line of defense.
type AggregationError struct {
	RecipeID string
	Err      error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation error: recipe %q: %v", e.RecipeID, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

// NewAggregationError wraps err with the offending recipe.
func NewAggregationError(recipeID string, err error) *AggregationError {
	return &AggregationError{RecipeID: recipeID, Err: err}
}
