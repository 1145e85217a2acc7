// Package main is the entry point for the mini-admin binary.
package main

import (
	"os"

	cli "mini-admin/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
