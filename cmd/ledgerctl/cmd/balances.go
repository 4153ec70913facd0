package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/groupfile"
)

// maxConcurrentFiles bounds how many files are read and computed at once.
const maxConcurrentFiles = 4

var balancesCmd = &cobra.Command{
	Use:   "balances FILE...",
	Short: "Print the balance sheet of one or more groups",
	Long: `Print paid, owed and net amounts for every person of each group.
Positive balances are owed money, negative balances owe money.

Example:
  ledgerctl balances trip.yaml flat.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBalances,
}

type groupResult struct {
	Group   string              `json:"group"`
	Summary *calculator.Summary `json:"summary"`
}

// summarizeFiles computes the summary of every file concurrently. Results
// keep the order of paths; the first error cancels the rest.
func summarizeFiles(cmd *cobra.Command, paths []string) ([]groupResult, error) {
	results := make([]groupResult, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentFiles)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.Debug("Reading group file", "path", path)

			ledger, err := groupfile.Load(path)
			if err != nil {
				return err
			}
			summary, err := ledger.Summarize()
			if err != nil {
				return err
			}
			results[i] = groupResult{Group: ledger.Name, Summary: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runBalances(cmd *cobra.Command, args []string) error {
	results, err := summarizeFiles(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output == "json" {
		return writeJSON(out, results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := printSheet(out, r.Group, r.Summary.Sheet); err != nil {
			return err
		}
	}
	return nil
}

func printSheet(w io.Writer, group string, sheet calculator.BalanceSheet) error {
	fmt.Fprintf(w, "== %s ==\n", group)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PERSON\tPAID\tOWES\tBALANCE\t")
	for _, id := range sheet.PersonIDs() {
		b := sheet[id]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", b.Name, b.Paid, b.Owes, b.Balance)
	}
	return tw.Flush()
}
