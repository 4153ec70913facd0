// Command ledgerctl computes group balances and settling transfers from YAML
// group files, without a server.
package main

import (
	"os"

	"github.com/mmynk/groupledger/cmd/ledgerctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
