package render

import (
	"fmt"
	"io"
	"os"

	"github.com/certiseal/certiseal/pkg/rating"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func categoryColor(category *string) string {
	if noColor() || category == nil {
		return ""
	}
	switch *category {
	case "Sehr gut", "Gut":
		return colorGreen
	case "Befriedigend":
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

// Terminal writes a colored rating overview for the admin console.
func Terminal(w io.Writer, product ProductInfo, values rating.Values, computed rating.Computed) error {
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("certiseal: %s — %s", product.Name, product.Manufacturer)))
	fmt.Fprintf(w, "%s\n\n", dim(fmt.Sprintf("Prüfnummer %s, geprüft am %s",
		product.TestNumber, product.TestedAt.Format("02.01.2006"))))

	for _, s := range rating.Sections() {
		fmt.Fprintf(w, "%s  Ø %s  Note %s  %s\n",
			bold(fmt.Sprintf("[%s] %s", s.Key, s.Label)),
			formatAverage(computed.SectionAverage[s.Key]),
			formatDecimal(computed.SectionGrade[s.Key]),
			colored(formatCategory(computed.SectionCategory[s.Key]), categoryColor(computed.SectionCategory[s.Key])))

		for _, c := range rating.SectionCriteria(s.Key) {
			v := values[c.ID]
			line := fmt.Sprintf("  %2d. %-45s %3s", c.Row, c.Label, formatScore(v.Score))
			if v.Score == nil {
				line = dim(line)
			}
			fmt.Fprintln(w, line)
			if v.Note != nil {
				fmt.Fprintf(w, "      %s\n", dim(*v.Note))
			}
		}
		fmt.Fprintln(w)
	}

	if computed.OverallGrade == nil {
		fmt.Fprintln(w, dim("Gesamtnote: noch nicht berechenbar (unvollständige Bewertung)"))
		return nil
	}

	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Gesamt: Ø %s — Note %s (%s)",
		formatAverage(computed.OverallAverage),
		formatDecimal(computed.OverallGrade),
		colored(*computed.OverallCategory, categoryColor(computed.OverallCategory)))))
	return nil
}
