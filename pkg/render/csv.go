package render

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/certiseal/certiseal/pkg/rating"
)

// CSV renders the full rating report as a semicolon-separated document:
// product header, one block per section with per-criterion rows and a
// summary, the overall block, and the grading-key legend.
func CSV(product ProductInfo, values rating.Values, computed rating.Computed) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	records := [][]string{
		{"Prüfbericht", product.Name},
		{"Hersteller", product.Manufacturer},
		{"Prüfnummer", product.TestNumber},
		{"Prüfdatum", product.TestedAt.Format("02.01.2006")},
		{},
	}

	for _, s := range rating.Sections() {
		records = append(records,
			[]string{fmt.Sprintf("Abschnitt %s", s.Key), s.Label, fmt.Sprintf("Gewichtung %d", s.Weight)},
			[]string{"Nr.", "Kriterium", "Punkte", "Anmerkung"},
		)
		for _, c := range rating.SectionCriteria(s.Key) {
			v := values[c.ID]
			note := ""
			if v.Note != nil {
				note = *v.Note
			}
			records = append(records, []string{
				fmt.Sprintf("%d", c.Row), c.Label, formatScore(v.Score), note,
			})
		}
		records = append(records,
			[]string{"", "Durchschnitt", formatAverage(computed.SectionAverage[s.Key]), ""},
			[]string{"", "Note", formatDecimal(computed.SectionGrade[s.Key]), formatCategory(computed.SectionCategory[s.Key])},
			[]string{},
		)
	}

	records = append(records,
		[]string{"Gesamtergebnis"},
		[]string{"Gesamtdurchschnitt", formatAverage(computed.OverallAverage)},
		[]string{"Gesamtnote", formatDecimal(computed.OverallGrade)},
		[]string{"Kategorie", formatCategory(computed.OverallCategory)},
		[]string{},
		[]string{"Notenschlüssel"},
		[]string{"Punkte", "Note", "Kategorie"},
	)
	for _, row := range gradingKeyLegend {
		records = append(records, []string{row.Points, row.Grade, row.Category})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
