// Command autoopti runs MetaTrader 5 optimization sweeps.
package main

import (
	"os"

	"github.com/roach88/autoopti/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
