// Package main is the entry point for the stripe-infakt-sync CLI.
package main

import (
	"os"

	"github.com/mzawadzki/stripe-infakt-sync/cmd/stripe-infakt-sync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
