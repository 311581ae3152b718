// Command sqlparity deploys typed test data into SQL databases under
// different evaluation strategies and compares query results across them.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlparity/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
