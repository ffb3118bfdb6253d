// Package render produces the export documents for a product rating:
// a semicolon-separated CSV report, an HTML report used as input to PDF
// rendering, and a colored terminal view for the admin console.
//
// Renderers only format; all numbers they print come straight from the
// rating engine. German display convention: comma as decimal separator.
package render

import (
	"fmt"
	"strings"
	"time"
)

// ProductInfo is the product identity printed on reports.
type ProductInfo struct {
	Name         string
	Manufacturer string
	TestNumber   string
	TestedAt     time.Time
}

// formatScore renders an optional integer score, "-" when unscored.
func formatScore(score *int) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *score)
}

// formatDecimal renders a float with one decimal and a comma separator,
// "-" when absent.
func formatDecimal(v *float64) string {
	if v == nil {
		return "-"
	}
	return strings.ReplaceAll(fmt.Sprintf("%.1f", *v), ".", ",")
}

// formatAverage renders an average with two decimals and a comma separator.
func formatAverage(v *float64) string {
	if v == nil {
		return "-"
	}
	return strings.ReplaceAll(fmt.Sprintf("%.2f", *v), ".", ",")
}

func formatCategory(c *string) string {
	if c == nil {
		return "-"
	}
	return *c
}
