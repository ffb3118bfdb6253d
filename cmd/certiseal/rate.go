package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/certiseal/certiseal/pkg/rating"
	"github.com/certiseal/certiseal/pkg/render"
)

func newRateCmd() *cobra.Command {
	var (
		name         string
		manufacturer string
		testNumber   string
	)

	cmd := &cobra.Command{
		Use:   "rate <values.json>",
		Short: "Compute grades from a rating file",
		Long: `Reads criterion scores from a JSON file keyed by criterion id,
computes section and overall grades, and prints the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, computed, err := loadRating(args[0])
			if err != nil {
				return err
			}
			info := render.ProductInfo{
				Name:         name,
				Manufacturer: manufacturer,
				TestNumber:   testNumber,
				TestedAt:     time.Now(),
			}
			return render.Terminal(os.Stdout, info, values, computed)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "Manufacturer name")
	cmd.Flags().StringVar(&testNumber, "test-number", "", "Assigned test number")

	return cmd
}

// loadRating reads raw criterion values from a JSON file and derives the
// full rating. The file maps criterion ids to {"score": ..., "note": ...}
// objects; scores may be numbers or numeric strings.
func loadRating(path string) (rating.Values, rating.Computed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rating.Computed{}, fmt.Errorf("read rating file: %w", err)
	}

	var raw map[string]rating.RawValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, rating.Computed{}, fmt.Errorf("parse rating file: %w", err)
	}

	values := rating.ToPersistableValues(raw)
	return values, rating.Compute(values), nil
}
