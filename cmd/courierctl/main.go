// Package main is the operator CLI of courierhub.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "courierctl",
	Short: "Operate a courierhub deployment",
	Long: `courierctl seeds a courierhub store with demo data and prices bookings
against the courier catalogue from the command line.

The store is selected by the same config.yaml and environment as the API server.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(quoteCmd)
}
