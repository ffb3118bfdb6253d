package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/certiseal/certiseal/pkg/rating"
)

// htmlReport is the report document grouped by section. It is deliberately
// plain markup: the downstream PDF renderer applies the print stylesheet.
const htmlReport = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Prüfbericht {{.Product.Name}}</title>
</head>
<body>
<h1>Prüfbericht</h1>
<table class="identity">
<tr><th>Produkt</th><td>{{.Product.Name}}</td></tr>
<tr><th>Hersteller</th><td>{{.Product.Manufacturer}}</td></tr>
<tr><th>Prüfnummer</th><td>{{.Product.TestNumber}}</td></tr>
<tr><th>Prüfdatum</th><td>{{.Product.TestedAt.Format "02.01.2006"}}</td></tr>
</table>
{{range .Sections}}
<h2>Abschnitt {{.Key}}: {{.Label}} <small>(Gewichtung {{.Weight}})</small></h2>
<table class="criteria">
<tr><th>Nr.</th><th>Kriterium</th><th>Punkte</th><th>Anmerkung</th></tr>
{{range .Rows}}<tr><td>{{.Row}}</td><td>{{.Label}}</td><td>{{.Score}}</td><td>{{.Note}}</td></tr>
{{end}}<tr class="summary"><td></td><td>Durchschnitt</td><td>{{.Average}}</td><td></td></tr>
<tr class="summary"><td></td><td>Note</td><td>{{.Grade}}</td><td>{{.Category}}</td></tr>
</table>
{{end}}
<h2>Gesamtergebnis</h2>
<table class="overall">
<tr><th>Gesamtdurchschnitt</th><td>{{.OverallAverage}}</td></tr>
<tr><th>Gesamtnote</th><td>{{.OverallGrade}}</td></tr>
<tr><th>Kategorie</th><td>{{.OverallCategory}}</td></tr>
</table>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(htmlReport))

type htmlRow struct {
	Row   int
	Label string
	Score string
	Note  string
}

type htmlSection struct {
	Key      rating.Section
	Label    string
	Weight   int
	Rows     []htmlRow
	Average  string
	Grade    string
	Category string
}

type htmlData struct {
	Product         ProductInfo
	Sections        []htmlSection
	OverallAverage  string
	OverallGrade    string
	OverallCategory string
}

// HTML renders the rating report as a standalone HTML document for
// downstream PDF rendering.
func HTML(product ProductInfo, values rating.Values, computed rating.Computed) ([]byte, error) {
	data := htmlData{
		Product:         product,
		OverallAverage:  formatAverage(computed.OverallAverage),
		OverallGrade:    formatDecimal(computed.OverallGrade),
		OverallCategory: formatCategory(computed.OverallCategory),
	}

	for _, s := range rating.Sections() {
		sec := htmlSection{
			Key:      s.Key,
			Label:    s.Label,
			Weight:   s.Weight,
			Average:  formatAverage(computed.SectionAverage[s.Key]),
			Grade:    formatDecimal(computed.SectionGrade[s.Key]),
			Category: formatCategory(computed.SectionCategory[s.Key]),
		}
		for _, c := range rating.SectionCriteria(s.Key) {
			v := values[c.ID]
			note := ""
			if v.Note != nil {
				note = *v.Note
			}
			sec.Rows = append(sec.Rows, htmlRow{
				Row:   c.Row,
				Label: c.Label,
				Score: formatScore(v.Score),
				Note:  note,
			})
		}
		data.Sections = append(data.Sections, sec)
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return buf.Bytes(), nil
}
