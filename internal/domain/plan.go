package domain

// ProjectionMode selects how the display tree handles items demanded by
// more than one parent.
type ProjectionMode string

const (
	// ModeMerged renders each item once, at its shallowest occurrence,
	// with its merged total rate; other occurrences become back-references.
	ModeMerged ProjectionMode = "merged"
	// ModePerBranch renders every occurrence with its own partial rate,
	// useful for "where is this consumed" views.
	ModePerBranch ProjectionMode = "per-branch"
)

// Valid reports whether the mode is a known projection mode.
func (m ProjectionMode) Valid() bool {
	return m == ModeMerged || m == ModePerBranch
}

// DemandNode is one edge of the resolved demand tree. Rate is the merged
// demand for the item across the whole resolution; BranchRate is the share
// demanded through this particular parent edge. Machine fields are zero
// until the aggregator annotates the tree, and stay zero for raw items.
type DemandNode struct {
	ItemID     string
	Rate       float64 // merged total across all parents
	BranchRate float64 // contribution through this parent edge
	Recipe     *Recipe // nil for raw items
	Machine    *MachineType

	FractionalMachines float64
	MachineCount       int
	Power              float64

	Children []*DemandNode
}

// IsRaw reports whether the node is a terminal raw-material node.
func (n *DemandNode) IsRaw() bool { return n.Recipe == nil }

// DisplayNode is the renderable projection of a DemandNode. The core
// returns identifiers and numbers only; naming and formatting belong to
// the presentation layer.
type DisplayNode struct {
	ItemID             string         `json:"item_id"`
	Rate               float64        `json:"rate"`
	MachineType        string         `json:"machine_type,omitempty"`
	MachineCount       int            `json:"machine_count"`
	FractionalMachines float64        `json:"fractional_machines"`
	Power              float64        `json:"power"`
	Backref            bool           `json:"backref,omitempty"` // points at an earlier occurrence of the same item
	Children           []*DisplayNode `json:"children,omitempty"`
}

// PlanSummary aggregates the whole tree: machine counts per machine type,
// total power, and the demand rate of every raw material. Each item is
// counted once regardless of how many branches demand it.
type PlanSummary struct {
	MachineTotals map[string]int     `json:"machine_totals"`
	TotalPower    float64            `json:"total_power"`
	RawTotals     map[string]float64 `json:"raw_totals"`
}

// PlanRequest asks for the full production requirements of one item at a
// target output rate. Selections maps item id to the chosen recipe id for
// items that have alternate recipes.
type PlanRequest struct {
	ItemID     string            `json:"item_id"`
	Rate       float64           `json:"rate"`
	Mode       ProjectionMode    `json:"mode"`
	Selections map[string]string `json:"selections,omitempty"`
}

// PlanResult is the primary payload the presentation layer renders.
type PlanResult struct {
	Tree    *DisplayNode `json:"tree"`
	Summary PlanSummary  `json:"summary"`
}
