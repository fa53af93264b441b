package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldra/planforge/internal/domain"
)

func TestRenderPlan(t *testing.T) {
	result := &domain.PlanResult{
		Tree: &domain.DisplayNode{
			ItemID: "plate", Rate: 1, MachineType: "smelter",
			MachineCount: 2, FractionalMachines: 2, Power: 200,
			Children: []*domain.DisplayNode{
				{
					ItemID: "ingot", Rate: 3, MachineType: "smelter",
					MachineCount: 6, FractionalMachines: 6, Power: 600,
					Children: []*domain.DisplayNode{
						{ItemID: "ore", Rate: 3},
					},
				},
			},
		},
		Summary: domain.PlanSummary{
			MachineTotals: map[string]int{"smelter": 8},
			TotalPower:    800,
			RawTotals:     map[string]float64{"ore": 3},
		},
	}

	var buf strings.Builder
	renderPlan(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "--- Production Tree ---")
	assert.Contains(t, out, "plate 1/t [smelter x2 (2.00 needed)] 200 power")
	assert.Contains(t, out, "└── ingot 3/t [smelter x6 (6.00 needed)] 600 power")
	assert.Contains(t, out, "    └── ore 3/t (raw)")
	assert.Contains(t, out, "Total power: 800")
}

func TestRenderPlanBackref(t *testing.T) {
	result := &domain.PlanResult{
		Tree: &domain.DisplayNode{
			ItemID: "gear", Rate: 1, MachineType: "constructor",
			MachineCount: 1, FractionalMachines: 0.5, Power: 75,
			Children: []*domain.DisplayNode{
				{ItemID: "ingot", Rate: 4, MachineType: "smelter",
					MachineCount: 8, FractionalMachines: 8, Power: 800},
				{ItemID: "plate", Rate: 1, MachineType: "smelter",
					MachineCount: 2, FractionalMachines: 2, Power: 200,
					Children: []*domain.DisplayNode{
						{ItemID: "ingot", Rate: 3, Backref: true},
					}},
			},
		},
		Summary: domain.PlanSummary{
			MachineTotals: map[string]int{"constructor": 1, "smelter": 10},
			TotalPower:    1075,
		},
	}

	var buf strings.Builder
	renderPlan(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "ingot 3/t (see above)")
	assert.Contains(t, out, "├── ingot 4/t")

	// Tree connectors line up: middle children get the vertical bar prefix.
	require.True(t, strings.Contains(out, "│   └── ingot 3/t (see above)") ||
		strings.Contains(out, "    └── ingot 3/t (see above)"))
}

func TestParseSelections(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got, err := parseSelections(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("pairs", func(t *testing.T) {
		got, err := parseSelections([]string{"fuel=fuel_from_coal", "wire=wire_alt"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"fuel": "fuel_from_coal",
			"wire": "wire_alt",
		}, got)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, bad := range []string{"fuel", "=recipe", "fuel="} {
			_, err := parseSelections([]string{bad})
			assert.Error(t, err, bad)
		}
	})
}
