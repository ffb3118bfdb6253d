package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/certiseal/certiseal/pkg/rating"
)

func newCatalogCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the criterion catalog",
		Long:  `Prints all rating criteria grouped by section, with section weights.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(outputFmt)
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runCatalog(outputFmt string) error {
	switch outputFmt {
	case "json":
		type section struct {
			Key      rating.Section     `json:"key"`
			Label    string             `json:"label"`
			Weight   int                `json:"weight"`
			Criteria []rating.Criterion `json:"criteria"`
		}
		var out []section
		for _, s := range rating.Sections() {
			out = append(out, section{
				Key:      s.Key,
				Label:    s.Label,
				Weight:   s.Weight,
				Criteria: rating.SectionCriteria(s.Key),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case "text":
		for _, s := range rating.Sections() {
			fmt.Printf("Abschnitt %s: %s (Gewichtung %d)\n", s.Key, s.Label, s.Weight)
			for _, c := range rating.SectionCriteria(s.Key) {
				fmt.Printf("  %-4s %2d. %s\n", c.ID, c.Row, c.Label)
			}
			fmt.Println()
		}
		return nil

	default:
		return fmt.Errorf("unknown output format: %s", outputFmt)
	}
}
