// Package aggregate converts resolved demand rates into machine counts
// and power draw, and totals them across the tree.
package aggregate

import (
	"math"

	"github.com/veldra/planforge/internal/domain"
)

// Annotate fills MachineCount, FractionalMachines and Power on every
// node, bottom-up. Raw nodes keep zero machines and zero power. Machine
// figures are computed from the item's merged rate, so an item demanded
// by several branches carries the same machine block at every
// occurrence; the projector decides how to render that.
//
// Partial machines draw full power: counts are rounded up before the
// power multiply. Returns AggregationError on non-positive recipe
// numbers, a second line of defense behind catalog validation.
func Annotate(root *domain.DemandNode) error {
	if root == nil {
		return nil
	}

	for _, child := range root.Children {
		if err := Annotate(child); err != nil {
			return err
		}
	}

	if root.IsRaw() {
		return nil
	}

	fractional, count, power, err := MachineLoad(root.Recipe, root.Machine, root.Rate)
	if err != nil {
		return err
	}

	root.FractionalMachines = fractional
	root.MachineCount = count
	root.Power = power
	return nil
}

// MachineLoad computes the machine requirement for producing rate units
// per time-unit with the given recipe and machine type.
func MachineLoad(rec *domain.Recipe, machine *domain.MachineType, rate float64) (fractional float64, count int, power float64, err error) {
	if rec.OutputQty <= 0 {
		return 0, 0, 0, domain.NewAggregationError(rec.ID, domain.ErrNonPositiveQty)
	}
	if rec.CycleDuration <= 0 {
		return 0, 0, 0, domain.NewAggregationError(rec.ID, domain.ErrNonPositiveCycle)
	}

	perMachine := rec.OutputRate()
	if machine != nil {
		perMachine = machine.EffectiveRate(*rec)
	}
	if perMachine <= 0 {
		return 0, 0, 0, domain.NewAggregationError(rec.ID, domain.ErrNonPositiveQty)
	}

	fractional = rate / perMachine
	count = int(math.Ceil(fractional))
	if machine != nil {
		power = float64(count) * machine.PowerDraw
	}
	return fractional, count, power, nil
}

// Summarize walks an annotated tree and totals machines per machine
// type, power, and raw-material demand. Each item counts once no matter
// how many branches demand it, since its rate was merged upstream.
func Summarize(root *domain.DemandNode) domain.PlanSummary {
	summary := domain.PlanSummary{
		MachineTotals: make(map[string]int),
		RawTotals:     make(map[string]float64),
	}
	seen := make(map[string]bool)
	summarize(root, seen, &summary)
	return summary
}

func summarize(node *domain.DemandNode, seen map[string]bool, summary *domain.PlanSummary) {
	if node == nil || seen[node.ItemID] {
		return
	}
	seen[node.ItemID] = true

	if node.IsRaw() {
		summary.RawTotals[node.ItemID] = node.Rate
	} else if node.Machine != nil {
		summary.MachineTotals[node.Machine.ID] += node.MachineCount
		summary.TotalPower += node.Power
	}

	for _, child := range node.Children {
		summarize(child, seen, summary)
	}
}
