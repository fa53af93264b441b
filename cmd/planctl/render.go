package main

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/veldra/planforge/internal/domain"
)

var printer = message.NewPrinter(language.English)

// renderPlan prints the display tree plus the machine and power summary.
func renderPlan(w io.Writer, result *domain.PlanResult) {
	fmt.Fprintln(w, "--- Production Tree ---")
	fmt.Fprintln(w, nodeLine(result.Tree))
	renderChildren(w, result.Tree, "")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Summary ---")

	machines := make([]string, 0, len(result.Summary.MachineTotals))
	for id := range result.Summary.MachineTotals {
		machines = append(machines, id)
	}
	sort.Strings(machines)
	for _, id := range machines {
		printer.Fprintf(w, "%-24s x%d\n", id, result.Summary.MachineTotals[id])
	}

	raws := make([]string, 0, len(result.Summary.RawTotals))
	for id := range result.Summary.RawTotals {
		raws = append(raws, id)
	}
	sort.Strings(raws)
	for _, id := range raws {
		printer.Fprintf(w, "%-24s %.4g/t (raw)\n", id, result.Summary.RawTotals[id])
	}

	printer.Fprintf(w, "Total power: %.4g\n", result.Summary.TotalPower)
}

func renderChildren(w io.Writer, node *domain.DisplayNode, prefix string) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}
		fmt.Fprintln(w, prefix+connector+nodeLine(child))
		renderChildren(w, child, childPrefix)
	}
}

// nodeLine formats one node: item, rate, machine block or raw/backref marker.
func nodeLine(node *domain.DisplayNode) string {
	if node.Backref {
		return printer.Sprintf("%s %.4g/t (see above)", node.ItemID, node.Rate)
	}
	if node.MachineType == "" {
		return printer.Sprintf("%s %.4g/t (raw)", node.ItemID, node.Rate)
	}
	return printer.Sprintf("%s %.4g/t [%s x%d (%.2f needed)] %.4g power",
		node.ItemID, node.Rate, node.MachineType, node.MachineCount,
		node.FractionalMachines, node.Power)
}

// renderRecipe prints one recipe with its inputs.
func renderRecipe(w io.Writer, r domain.Recipe) {
	fmt.Fprintf(w, "%s: %g x %s every %g t in %s\n",
		r.ID, r.OutputQty, r.OutputItem, r.CycleDuration, r.MachineType)
	for _, in := range r.Inputs {
		fmt.Fprintf(w, "    %g x %s\n", in.Quantity, in.ItemID)
	}
}
