// Package projector flattens a resolved, annotated demand tree into the
// renderable display tree. Merged and per-branch views are two pure
// projections over the same resolution; nothing is re-resolved.
package projector

import (
	"fmt"

	"github.com/veldra/planforge/internal/aggregate"
	"github.com/veldra/planforge/internal/domain"
)

// Project converts the demand tree into a display tree.
//
// In ModeMerged an item demanded by several parents appears once, at its
// shallowest occurrence (ties broken by document order), carrying the
// merged rate and machine block; every other occurrence becomes a
// back-reference marker with its branch rate and no children, so the
// visual tree never double-counts.
//
// In ModePerBranch every occurrence is rendered with its own partial
// rate and a machine block recomputed from that rate; branch rates for
// an item always sum to its merged total.
func Project(root *domain.DemandNode, mode domain.ProjectionMode) (*domain.DisplayNode, error) {
	if root == nil {
		return nil, fmt.Errorf("project: nil tree")
	}

	switch mode {
	case domain.ModeMerged:
		return projectMerged(root, canonicalOccurrences(root)), nil
	case domain.ModePerBranch:
		return projectPerBranch(root)
	default:
		return nil, fmt.Errorf("project: unknown mode %q", mode)
	}
}

// canonicalOccurrences maps each item to the node that renders it in
// merged mode. Breadth-first order makes the first hit the shallowest
// occurrence, document order within a level.
func canonicalOccurrences(root *domain.DemandNode) map[string]*domain.DemandNode {
	canonical := make(map[string]*domain.DemandNode)
	queue := []*domain.DemandNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if _, ok := canonical[node.ItemID]; !ok {
			canonical[node.ItemID] = node
		}
		queue = append(queue, node.Children...)
	}
	return canonical
}

func projectMerged(node *domain.DemandNode, canonical map[string]*domain.DemandNode) *domain.DisplayNode {
	if canonical[node.ItemID] != node {
		// Rendered elsewhere with the merged rate; keep only the branch
		// contribution as a pointer for the reader.
		return &domain.DisplayNode{
			ItemID:  node.ItemID,
			Rate:    node.BranchRate,
			Backref: true,
		}
	}

	out := &domain.DisplayNode{
		ItemID:             node.ItemID,
		Rate:               node.Rate,
		MachineCount:       node.MachineCount,
		FractionalMachines: node.FractionalMachines,
		Power:              node.Power,
	}
	if node.Machine != nil {
		out.MachineType = node.Machine.ID
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, projectMerged(child, canonical))
	}
	return out
}

func projectPerBranch(node *domain.DemandNode) (*domain.DisplayNode, error) {
	out := &domain.DisplayNode{
		ItemID: node.ItemID,
		Rate:   node.BranchRate,
	}

	if !node.IsRaw() {
		fractional, count, power, err := aggregate.MachineLoad(node.Recipe, node.Machine, node.BranchRate)
		if err != nil {
			return nil, err
		}
		out.FractionalMachines = fractional
		out.MachineCount = count
		out.Power = power
		if node.Machine != nil {
			out.MachineType = node.Machine.ID
		}
	}

	for _, child := range node.Children {
		projected, err := projectPerBranch(child)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, projected)
	}
	return out, nil
}
