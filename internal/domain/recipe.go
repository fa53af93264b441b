package domain

// Ingredient is a single material requirement of a recipe.
type Ingredient struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

// Recipe describes one transformation: consume Inputs, produce OutputQty
// units of OutputItem every CycleDuration time-units in a machine of
// MachineType. An item may have zero (raw), one, or several recipes;
// when several exist the caller picks one per item at resolution time.
type Recipe struct {
	ID            string       `json:"recipe_id"`
	OutputItem    string       `json:"output_item"`
	OutputQty     float64      `json:"output_qty"`
	CycleDuration float64      `json:"cycle_duration"`
	Inputs        []Ingredient `json:"inputs"`
	MachineType   string       `json:"machine_type"`
}

// OutputRate returns the per-machine production rate in units per
// time-unit before the machine throughput multiplier is applied.
// Returns 0 when the recipe data is malformed (guarded by the caller).
func (r Recipe) OutputRate() float64 {
	if r.OutputQty <= 0 || r.CycleDuration <= 0 {
		return 0
	}
	return r.OutputQty / r.CycleDuration
}
