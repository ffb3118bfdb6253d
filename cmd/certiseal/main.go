// Package main provides the certiseal CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "certiseal",
		Short: "Product certification ratings and reports",
		Long: `Certiseal rates tested products against the 42-criterion catalog,
derives section and overall grades, and renders test reports.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newCatalogCmd(),
		newRateCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
