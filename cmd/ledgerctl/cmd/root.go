// Package cmd provides CLI commands for ledgerctl.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/groupledger/pkg/logging"
)

var (
	output string
	debug  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Compute group balances from YAML ledger files",
	Long: `ledgerctl reads groups described in YAML files and prints who owes
what, together with the transfers that settle the group.

Example:
  ledgerctl balances trip.yaml flat.yaml
  ledgerctl settle trip.yaml --output json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		logging.SetupWithLevel(level)

		switch output {
		case "text", "json":
			return nil
		default:
			return fmt.Errorf("unknown output format %q: must be text or json", output)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(balancesCmd)
	rootCmd.AddCommand(settleCmd)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
