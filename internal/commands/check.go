package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/chartseed/internal/accounts"
	"github.com/cleared-dev/chartseed/internal/diaglog"
	"github.com/cleared-dev/chartseed/internal/hierarchy"
	"github.com/cleared-dev/chartseed/internal/model"
	"github.com/cleared-dev/chartseed/internal/seed"
)

func newCheckCommand(dir *string) *cobra.Command {
	var (
		strict   bool
		logDiag  bool
		showTree bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build hierarchies and report data-quality warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, *dir)
			if err != nil {
				return err
			}
			snap, err := p.snapshot()
			if err != nil {
				return err
			}

			res, err := seed.Build(cmd.Context(), snap, p.seedOptions())
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), res)
			if showTree {
				for _, f := range []*hierarchy.Forest{res.Forests.Accounts, res.Forests.BalanceSheets, res.Forests.IncomeStatements} {
					printTree(cmd.OutOrStdout(), f)
				}
			}

			if logDiag && len(res.Warnings) > 0 {
				if err := diaglog.Append(p.dir, diaglog.FromWarnings(time.Now().UTC(), res.Warnings)); err != nil {
					return err
				}
			}
			if strict && len(res.Warnings) > 0 {
				return fmt.Errorf("%d warnings", len(res.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any warning is reported")
	cmd.Flags().BoolVar(&logDiag, "log", false, "append warnings to logs/diagnostics.csv")
	cmd.Flags().BoolVar(&showTree, "tree", false, "print the reconstructed hierarchies")

	return cmd
}

func printSummary(out io.Writer, res *seed.Result) {
	f := res.Forests
	selectable := accounts.NewService(res.Batch.Accounts).Selectable()
	fmt.Fprintf(out, "Accounts:          %d (%d selectable, %d roots, depth %d)\n",
		f.Accounts.Len(), len(selectable), len(f.Accounts.Roots()), maxDepth(f.Accounts))
	fmt.Fprintf(out, "Balance sheet:     %d lines\n", f.BalanceSheets.Len())
	fmt.Fprintf(out, "Income statement:  %d lines\n", f.IncomeStatements.Len())
	fmt.Fprintf(out, "Computations:      %d\n", len(res.Bindings))
	fmt.Fprintf(out, "Records:           %d (%d rows)\n", len(res.Batch.Records), len(res.Batch.RecordRows))
	fmt.Fprintf(out, "Total to persist:  %d\n", res.Batch.Len())

	if len(res.Warnings) == 0 {
		fmt.Fprintln(out, "No warnings.")
		return
	}
	fmt.Fprintf(out, "\nWarnings (%d):\n", len(res.Warnings))
	counts := model.CountByKind(res.Warnings)
	for _, k := range model.WarningKinds {
		if n := counts[k]; n > 0 {
			fmt.Fprintf(out, "  %-28s %d\n", k, n)
		}
	}
	fmt.Fprintln(out)
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "  %s\n", w)
	}
}

func maxDepth(f *hierarchy.Forest) int {
	depth := 0
	for i := range f.Len() {
		depth = max(depth, f.Depth(hierarchy.NodeID(i)))
	}
	return depth
}

// printTree prints f depth-first, marking nodes with children "+".
func printTree(out io.Writer, f *hierarchy.Forest) {
	fmt.Fprintf(out, "\n%s:\n", f.Name())
	f.Walk(func(id hierarchy.NodeID, depth int) bool {
		n := f.Node(id)
		marker := "+"
		if f.IsLeaf(id) {
			marker = "-"
		}
		line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", depth+1), marker, n.Code, n.Label)
		if n.Scope != "" {
			line += " [" + n.Scope + "]"
		}
		fmt.Fprintln(out, line)
		return true
	})
}
