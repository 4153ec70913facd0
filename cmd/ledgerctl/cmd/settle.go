package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settleCmd = &cobra.Command{
	Use:   "settle FILE",
	Short: "Print the transfers that settle a group",
	Long: `Print a short list of payments that brings every balance of the
group to zero. Each step pays the largest debt into the largest credit.

Example:
  ledgerctl settle trip.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSettle,
}

func runSettle(cmd *cobra.Command, args []string) error {
	results, err := summarizeFiles(cmd, args)
	if err != nil {
		return err
	}
	r := results[0]

	out := cmd.OutOrStdout()
	if output == "json" {
		return writeJSON(out, r.Summary.Transfers)
	}

	if len(r.Summary.Transfers) == 0 {
		fmt.Fprintf(out, "%s is settled up\n", r.Group)
		return nil
	}
	for _, t := range r.Summary.Transfers {
		fmt.Fprintf(out, "%s pays %s %s\n", r.Summary.Sheet[t.From].Name, r.Summary.Sheet[t.To].Name, t.Amount)
	}
	return nil
}
