// Package main points at the axisim command, which runs scenarios against
// the AXI4-Lite slave model.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "axilite: use 'go run ./cmd/axisim [options] <scenario.yaml>'")
	os.Exit(2)
}
