package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldra/planforge/internal/domain"
)

var (
	smelter = domain.MachineType{ID: "smelter", PowerDraw: 100, Throughput: 1}

	plateRecipe = domain.Recipe{
		ID: "plate", OutputItem: "plate", OutputQty: 2, CycleDuration: 4, MachineType: "smelter",
		Inputs: []domain.Ingredient{{ItemID: "ingot", Quantity: 3}},
	}
)

func plateTree() *domain.DemandNode {
	m := smelter
	r := plateRecipe
	return &domain.DemandNode{
		ItemID: "plate", Rate: 1, BranchRate: 1, Recipe: &r, Machine: &m,
		Children: []*domain.DemandNode{
			{ItemID: "ingot", Rate: 3, BranchRate: 3},
		},
	}
}

func TestAnnotatePlateChain(t *testing.T) {
	// Plate at 1/t with output 2 per 4t cycle: 1 / (2/4) = 2.0 machines,
	// ceil to 2, power 2 x 100.
	root := plateTree()
	require.NoError(t, Annotate(root))

	assert.Equal(t, 2.0, root.FractionalMachines)
	assert.Equal(t, 2, root.MachineCount)
	assert.Equal(t, 200.0, root.Power)
}

func TestAnnotateRawLeaf(t *testing.T) {
	root := plateTree()
	require.NoError(t, Annotate(root))

	leaf := root.Children[0]
	assert.Equal(t, 0, leaf.MachineCount)
	assert.Equal(t, 0.0, leaf.FractionalMachines)
	assert.Equal(t, 0.0, leaf.Power)
}

func TestAnnotateCeilingInvariant(t *testing.T) {
	for _, rate := range []float64{0.1, 1, 2.4, 7, 100.01} {
		root := plateTree()
		root.Rate = rate
		require.NoError(t, Annotate(root))

		assert.Equal(t, float64(root.MachineCount), math.Ceil(root.FractionalMachines))
		perMachine := root.Machine.EffectiveRate(*root.Recipe)
		assert.InDelta(t, rate, root.FractionalMachines*perMachine, 1e-9,
			"fractional machines times throughput recovers the required rate")
	}
}

func TestAnnotatePartialMachinesDrawFullPower(t *testing.T) {
	root := plateTree()
	root.Rate = 1.2 // 2.4 machines needed
	require.NoError(t, Annotate(root))

	assert.Equal(t, 2.4, root.FractionalMachines)
	assert.Equal(t, 3, root.MachineCount)
	assert.Equal(t, 300.0, root.Power, "idle capacity of the third machine still draws power")
}

func TestAnnotateThroughputMultiplier(t *testing.T) {
	root := plateTree()
	root.Machine.Throughput = 2 // doubles per-machine rate

	require.NoError(t, Annotate(root))
	assert.Equal(t, 1.0, root.FractionalMachines)
	assert.Equal(t, 1, root.MachineCount)
}

func TestAnnotateRejectsMalformedRecipe(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Recipe)
		want   error
	}{
		{"zero output", func(r *domain.Recipe) { r.OutputQty = 0 }, domain.ErrNonPositiveQty},
		{"negative duration", func(r *domain.Recipe) { r.CycleDuration = -1 }, domain.ErrNonPositiveCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := plateTree()
			tt.mutate(root.Recipe)

			err := Annotate(root)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var aggErr *domain.AggregationError
			require.ErrorAs(t, err, &aggErr)
			assert.Equal(t, "plate", aggErr.RecipeID)
		})
	}
}

func TestSummarizeCountsMergedItemsOnce(t *testing.T) {
	m := smelter
	r := plateRecipe
	// plate appears under two parents; its machines must count once.
	plateA := &domain.DemandNode{ItemID: "plate", Rate: 2, BranchRate: 1.5, Recipe: &r, Machine: &m}
	plateB := &domain.DemandNode{ItemID: "plate", Rate: 2, BranchRate: 0.5, Recipe: &r, Machine: &m}
	root := &domain.DemandNode{
		ItemID: "kit", Rate: 1, BranchRate: 1,
		Recipe:  &domain.Recipe{ID: "kit", OutputItem: "kit", OutputQty: 1, CycleDuration: 1, MachineType: "smelter"},
		Machine: &m,
		Children: []*domain.DemandNode{
			plateA, plateB,
			{ItemID: "iron_ore", Rate: 6, BranchRate: 6},
		},
	}
	require.NoError(t, Annotate(root))

	summary := Summarize(root)
	assert.Equal(t, plateA.MachineCount+root.MachineCount, summary.MachineTotals["smelter"])
	assert.Equal(t, plateA.Power+root.Power, summary.TotalPower)
	assert.Equal(t, 6.0, summary.RawTotals["iron_ore"])
}
