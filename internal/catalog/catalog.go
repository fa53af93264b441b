package catalog

import (
	"fmt"

	"github.com/veldra/planforge/internal/domain"
)

// Catalog is the immutable in-memory index of all known items, recipes
// and machine types. It is built once from static data and shared
// read-only afterwards, so concurrent resolutions need no locking.
type Catalog struct {
	items    map[string]domain.Item
	recipes  map[string]domain.Recipe
	byOutput map[string][]string // recipe ids per output item, definition order
	machines map[string]domain.MachineType

	itemOrder    []string
	machineOrder []string
	hash         string
}

// Build validates the raw definitions and indexes them. All referential
// problems are reported as DataError: unknown inputs, unknown machine
// types, duplicate identifiers, direct self-loops and non-positive
// recipe numbers. Indirect cycles across multiple items are legal data
// and left to the resolver.
func Build(file *File) (*Catalog, error) {
	if file == nil {
		return nil, domain.NewDataError("catalog", "", fmt.Errorf("nil definition file"))
	}

	c := &Catalog{
		items:    make(map[string]domain.Item, len(file.Items)),
		recipes:  make(map[string]domain.Recipe, len(file.Recipes)),
		byOutput: make(map[string][]string),
		machines: make(map[string]domain.MachineType, len(file.Machines)),
		hash:     file.Hash,
	}

	for _, def := range file.Machines {
		if _, ok := c.machines[def.ID]; ok {
			return nil, domain.NewDataError("machine", def.ID, domain.ErrDuplicateID)
		}
		m := domain.MachineType{
			ID:         def.ID,
			PowerDraw:  def.PowerDraw,
			Throughput: def.Throughput,
			Tier:       def.Tier,
		}
		if m.Throughput == 0 {
			m.Throughput = 1.0
		}
		if m.Throughput < 0 {
			return nil, domain.NewDataError("machine", def.ID, domain.ErrNonPositiveQty)
		}
		if m.PowerDraw < 0 {
			return nil, domain.NewDataError("machine", def.ID, fmt.Errorf("negative power draw"))
		}
		c.machines[def.ID] = m
		c.machineOrder = append(c.machineOrder, def.ID)
	}

	for _, def := range file.Items {
		if _, ok := c.items[def.ID]; ok {
			return nil, domain.NewDataError("item", def.ID, domain.ErrDuplicateID)
		}
		c.items[def.ID] = domain.Item{ID: def.ID, NameKey: def.NameKey, Raw: def.Raw}
		c.itemOrder = append(c.itemOrder, def.ID)
	}

	for _, def := range file.Recipes {
		if _, ok := c.recipes[def.ID]; ok {
			return nil, domain.NewDataError("recipe", def.ID, domain.ErrDuplicateID)
		}

		r, err := c.buildRecipe(def)
		if err != nil {
			return nil, err
		}

		c.recipes[r.ID] = r
		c.byOutput[r.OutputItem] = append(c.byOutput[r.OutputItem], r.ID)
	}

	return c, nil
}

func (c *Catalog) buildRecipe(def RecipeDef) (domain.Recipe, error) {
	item, ok := c.items[def.OutputItem]
	if !ok {
		return domain.Recipe{}, domain.NewDataError("recipe", def.ID,
			fmt.Errorf("%w: output %q", domain.ErrUnknownItem, def.OutputItem))
	}
	if item.Raw {
		return domain.Recipe{}, domain.NewDataError("recipe", def.ID,
			fmt.Errorf("%w: %q", domain.ErrRawWithRecipe, def.OutputItem))
	}
	if _, ok := c.machines[def.MachineType]; !ok {
		return domain.Recipe{}, domain.NewDataError("recipe", def.ID,
			fmt.Errorf("%w: %q", domain.ErrUnknownMachine, def.MachineType))
	}
	if def.OutputQty <= 0 {
		return domain.Recipe{}, domain.NewDataError("recipe", def.ID, domain.ErrNonPositiveQty)
	}
	if def.CycleDuration <= 0 {
		return domain.Recipe{}, domain.NewDataError("recipe", def.ID, domain.ErrNonPositiveCycle)
	}

	r := domain.Recipe{
		ID:            def.ID,
		OutputItem:    def.OutputItem,
		OutputQty:     def.OutputQty,
		CycleDuration: def.CycleDuration,
		MachineType:   def.MachineType,
		Inputs:        make([]domain.Ingredient, 0, len(def.Inputs)),
	}

	for _, in := range def.Inputs {
		if _, ok := c.items[in.Item]; !ok {
			return domain.Recipe{}, domain.NewDataError("recipe", def.ID,
				fmt.Errorf("%w: input %q", domain.ErrUnknownItem, in.Item))
		}
		// Direct self-loops are invalid data; indirect cycles across
		// several items are the resolver's problem.
		if in.Item == def.OutputItem {
			return domain.Recipe{}, domain.NewDataError("recipe", def.ID, domain.ErrSelfReference)
		}
		if in.Quantity <= 0 {
			return domain.Recipe{}, domain.NewDataError("recipe", def.ID,
				fmt.Errorf("%w: input %q", domain.ErrNonPositiveQty, in.Item))
		}
		r.Inputs = append(r.Inputs, domain.Ingredient{ItemID: in.Item, Quantity: in.Quantity})
	}

	return r, nil
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (domain.Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Recipe looks up a recipe by id.
func (c *Catalog) Recipe(id string) (domain.Recipe, bool) {
	r, ok := c.recipes[id]
	return r, ok
}

// Recipes returns the recipes producing itemID in definition order.
// The slice is empty for raw and unknown items.
func (c *Catalog) Recipes(itemID string) []domain.Recipe {
	ids := c.byOutput[itemID]
	if len(ids) == 0 {
		return nil
	}
	out := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.recipes[id])
	}
	return out
}

// Machine looks up a machine type by id.
func (c *Catalog) Machine(id string) (domain.MachineType, bool) {
	m, ok := c.machines[id]
	return m, ok
}

// Items returns all items in definition order.
func (c *Catalog) Items() []domain.Item {
	out := make([]domain.Item, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		out = append(out, c.items[id])
	}
	return out
}

// Machines returns all machine types in definition order.
func (c *Catalog) Machines() []domain.MachineType {
	out := make([]domain.MachineType, 0, len(c.machineOrder))
	for _, id := range c.machineOrder {
		out = append(out, c.machines[id])
	}
	return out
}

// ItemCount returns the number of known items.
func (c *Catalog) ItemCount() int { return len(c.items) }

// RecipeCount returns the number of known recipes.
func (c *Catalog) RecipeCount() int { return len(c.recipes) }

// MachineCount returns the number of known machine types.
func (c *Catalog) MachineCount() int { return len(c.machines) }

// Hash returns the content hash of the definition files the catalog was
// built from. Used for cache keys and change detection.
func (c *Catalog) Hash() string { return c.hash }
