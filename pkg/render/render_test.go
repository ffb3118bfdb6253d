package render_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/certiseal/certiseal/pkg/rating"
	"github.com/certiseal/certiseal/pkg/render"
)

func sampleProduct() render.ProductInfo {
	return render.ProductInfo{
		Name:         "Trekkingrucksack Fjell 45",
		Manufacturer: "Bergwald GmbH",
		TestNumber:   "CS-2025-0042",
		TestedAt:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func sampleRating(t *testing.T) (rating.Values, rating.Computed) {
	t.Helper()
	values := make(rating.Values)
	for _, c := range rating.Catalog() {
		score := 8
		values[c.ID] = rating.Value{Score: &score}
	}
	note := "Reißverschluss hakt leicht"
	v := values["b03"]
	v.Note = &note
	values["b03"] = v
	return values, rating.Compute(values)
}

func TestCSVReport(t *testing.T) {
	values, computed := sampleRating(t)
	out, err := render.CSV(sampleProduct(), values, computed)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"Prüfbericht;Trekkingrucksack Fjell 45",
		"Prüfnummer;CS-2025-0042",
		"Abschnitt A;Produktschutz;Gewichtung 1",
		"Abschnitt B;Verarbeitung & Erscheinungsbild;Gewichtung 2",
		"Reißverschluss hakt leicht",
		"Gesamtdurchschnitt;8,00",
		"Gesamtnote;2,1",
		"Kategorie;Gut",
		"Notenschlüssel",
		"9,0 – 10,0;1,0 – 1,5;Hervorragend",
		"1,0 – 2,9;4,6 – 6,0;Wiederholen",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("CSV output missing %q", want)
		}
	}

	// The document must parse back as semicolon-separated CSV.
	r := csv.NewReader(bytes.NewReader(out))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	if _, err := r.ReadAll(); err != nil {
		t.Fatalf("CSV output does not parse: %v", err)
	}
}

func TestCSVReportCriterionRows(t *testing.T) {
	values, computed := sampleRating(t)
	out, err := render.CSV(sampleProduct(), values, computed)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	for _, c := range rating.Catalog() {
		if !strings.Contains(string(out), c.Label) {
			t.Errorf("CSV output missing criterion %q", c.ID)
		}
	}
}

func TestCSVReportIncompleteRating(t *testing.T) {
	values := rating.ToPersistableValues(nil)
	computed := rating.Compute(values)

	out, err := render.CSV(sampleProduct(), values, computed)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if !strings.Contains(string(out), "Gesamtnote;-") {
		t.Error("incomplete rating should print '-' for the overall grade")
	}
}

func TestHTMLReport(t *testing.T) {
	values, computed := sampleRating(t)
	out, err := render.HTML(sampleProduct(), values, computed)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Trekkingrucksack Fjell 45",
		"Abschnitt C: Praxistest",
		"Reißverschluss hakt leicht",
		"Gesamtnote",
		"2,1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
}

func TestHTMLReportEscapesUserInput(t *testing.T) {
	values, _ := sampleRating(t)
	note := `<script>alert("x")</script>`
	v := values["a01"]
	v.Note = &note
	values["a01"] = v
	computed := rating.Compute(values)

	out, err := render.HTML(sampleProduct(), values, computed)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(string(out), "<script>alert") {
		t.Error("note content must be HTML-escaped")
	}
}

func TestTerminalReport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	values, computed := sampleRating(t)
	var buf bytes.Buffer
	if err := render.Terminal(&buf, sampleProduct(), values, computed); err != nil {
		t.Fatalf("Terminal: %v", err)
	}
	text := buf.String()

	for _, want := range []string{
		"Trekkingrucksack Fjell 45",
		"[A] Produktschutz",
		"[D] Preis-Leistung & Bewertungen",
		"Gesamt: Ø 8,00 — Note 2,1 (Gut)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}
}

func TestTerminalReportIncomplete(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	values := rating.ToPersistableValues(nil)
	var buf bytes.Buffer
	if err := render.Terminal(&buf, sampleProduct(), values, rating.Compute(values)); err != nil {
		t.Fatalf("Terminal: %v", err)
	}
	if !strings.Contains(buf.String(), "noch nicht berechenbar") {
		t.Error("incomplete rating should print the pending notice")
	}
}
