package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/chartseed/internal/computation"
	"github.com/cleared-dev/chartseed/internal/seed"
)

const (
	colAmountLine = iota
	colAmountValue
	amountColumns
)

func newComputeCommand(dir *string) *cobra.Command {
	var amountsPath string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Evaluate computations against income statement amounts",
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

			f, err := os.Open(amountsPath)
			if err != nil {
				return fmt.Errorf("opening amounts: %w", err)
			}
			defer f.Close()
			byCode, err := readAmounts(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", amountsPath, err)
			}

			res, err := seed.Build(cmd.Context(), snap, p.seedOptions())
			if err != nil {
				return err
			}

			amounts, unknown := computation.AmountsByCode(res.Forests.IncomeStatements, byCode)
			slices.Sort(unknown)
			for _, c := range unknown {
				p.logger.Warn("amount for unknown income statement line ignored", "line", c)
			}

			return printResults(cmd.OutOrStdout(), computation.EvaluateAll(res.Bindings, amounts))
		},
	}

	cmd.Flags().StringVar(&amountsPath, "amounts", "", "CSV file of line,amount pairs")
	_ = cmd.MarkFlagRequired("amounts")

	return cmd
}

// readAmounts parses a line,amount CSV with a header row. Repeated lines are summed.
func readAmounts(r io.Reader) (map[string]decimal.Decimal, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = amountColumns
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]decimal.Decimal{}, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	amounts := make(map[string]decimal.Decimal)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line := strings.TrimSpace(record[colAmountLine])
		amt, err := decimal.NewFromString(strings.TrimSpace(record[colAmountValue]))
		if err != nil {
			return nil, fmt.Errorf("parsing amount for line %s: %w", line, err)
		}
		amounts[line] = amounts[line].Add(amt)
	}
	return amounts, nil
}

func printResults(out io.Writer, results []computation.Result) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tLABEL\tVALUE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Code, r.Label, r.Value.StringFixed(2))
	}
	return tw.Flush()
}
