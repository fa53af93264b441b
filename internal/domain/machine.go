package domain

// MachineType is a production unit that executes recipes.
// Throughput scales the recipe's base output rate; Tier is catalog
// metadata carried for the presentation layer and plays no role in
// resolution.
type MachineType struct {
	ID         string  `json:"machine_id"`
	PowerDraw  float64 `json:"power_draw"`
	Throughput float64 `json:"throughput"`
	Tier       int     `json:"tier,omitempty"`
}

// EffectiveRate returns the per-machine output rate for a recipe run in
// this machine type.
func (m MachineType) EffectiveRate(r Recipe) float64 {
	return r.OutputRate() * m.Throughput
}
