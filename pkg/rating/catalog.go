package rating

// catalog is the fixed list of scoring criteria, grouped into the four
// weighted sections. Ids are stable identifiers: entries may be appended in
// a later catalog version, but existing ids are never renumbered or moved to
// another section.
var catalog = []Criterion{
	// Section A: Produktschutz
	{ID: "a01", Section: SectionProtection, Row: 1, Label: "Verpackung unbeschädigt angekommen"},
	{ID: "a02", Section: SectionProtection, Row: 2, Label: "Umverpackung schützt das Produkt ausreichend"},
	{ID: "a03", Section: SectionProtection, Row: 3, Label: "Innenpolsterung vorhanden und wirksam"},
	{ID: "a04", Section: SectionProtection, Row: 4, Label: "Produkt gegen Feuchtigkeit geschützt"},
	{ID: "a05", Section: SectionProtection, Row: 5, Label: "Versiegelung unversehrt"},
	{ID: "a06", Section: SectionProtection, Row: 6, Label: "Transportsicherung der Einzelteile"},
	{ID: "a07", Section: SectionProtection, Row: 7, Label: "Kennzeichnung und Warnhinweise vollständig"},
	{ID: "a08", Section: SectionProtection, Row: 8, Label: "Wiederverschließbarkeit der Verpackung"},
	{ID: "a09", Section: SectionProtection, Row: 9, Label: "Materialqualität der Verpackung"},
	{ID: "a10", Section: SectionProtection, Row: 10, Label: "Nachhaltigkeit der Verpackungsmaterialien"},

	// Section B: Verarbeitung & Erscheinungsbild
	{ID: "b01", Section: SectionWorkmanship, Row: 1, Label: "Erster Eindruck des Produkts"},
	{ID: "b02", Section: SectionWorkmanship, Row: 2, Label: "Materialqualität"},
	{ID: "b03", Section: SectionWorkmanship, Row: 3, Label: "Verarbeitung der Nähte und Kanten"},
	{ID: "b04", Section: SectionWorkmanship, Row: 4, Label: "Passgenauigkeit der Komponenten"},
	{ID: "b05", Section: SectionWorkmanship, Row: 5, Label: "Oberflächenbeschaffenheit"},
	{ID: "b06", Section: SectionWorkmanship, Row: 6, Label: "Farbgebung und Druckqualität"},
	{ID: "b07", Section: SectionWorkmanship, Row: 7, Label: "Geruchsneutralität"},
	{ID: "b08", Section: SectionWorkmanship, Row: 8, Label: "Stabilität und Festigkeit"},
	{ID: "b09", Section: SectionWorkmanship, Row: 9, Label: "Gewicht und Haptik"},
	{ID: "b10", Section: SectionWorkmanship, Row: 10, Label: "Design und Formgebung"},
	{ID: "b11", Section: SectionWorkmanship, Row: 11, Label: "Qualität der Beschläge und Verschlüsse"},
	{ID: "b12", Section: SectionWorkmanship, Row: 12, Label: "Gesamteindruck der Verarbeitung"},

	// Section C: Praxistest
	{ID: "c01", Section: SectionPractical, Row: 1, Label: "Montage bzw. Inbetriebnahme"},
	{ID: "c02", Section: SectionPractical, Row: 2, Label: "Verständlichkeit der Anleitung"},
	{ID: "c03", Section: SectionPractical, Row: 3, Label: "Handhabung im Alltag"},
	{ID: "c04", Section: SectionPractical, Row: 4, Label: "Funktionsumfang"},
	{ID: "c05", Section: SectionPractical, Row: 5, Label: "Erfüllung des Produktversprechens"},
	{ID: "c06", Section: SectionPractical, Row: 6, Label: "Komfort in der Anwendung"},
	{ID: "c07", Section: SectionPractical, Row: 7, Label: "Reinigung und Pflege"},
	{ID: "c08", Section: SectionPractical, Row: 8, Label: "Haltbarkeit im Dauertest"},
	{ID: "c09", Section: SectionPractical, Row: 9, Label: "Sicherheit in der Anwendung"},
	{ID: "c10", Section: SectionPractical, Row: 10, Label: "Eignung für die Zielgruppe"},
	{ID: "c11", Section: SectionPractical, Row: 11, Label: "Zubehör und Erweiterbarkeit"},
	{ID: "c12", Section: SectionPractical, Row: 12, Label: "Gesamteindruck im Praxistest"},

	// Section D: Preis-Leistung & Bewertungen
	{ID: "d01", Section: SectionValue, Row: 1, Label: "Preis im Vergleich zum Wettbewerb"},
	{ID: "d02", Section: SectionValue, Row: 2, Label: "Preis-Leistungs-Verhältnis"},
	{ID: "d03", Section: SectionValue, Row: 3, Label: "Lieferumfang im Verhältnis zum Preis"},
	{ID: "d04", Section: SectionValue, Row: 4, Label: "Garantie- und Serviceleistungen"},
	{ID: "d05", Section: SectionValue, Row: 5, Label: "Kundenbewertungen im Web"},
	{ID: "d06", Section: SectionValue, Row: 6, Label: "Bewertungen in Fachmedien"},
	{ID: "d07", Section: SectionValue, Row: 7, Label: "Reklamationsquote laut Hersteller"},
	{ID: "d08", Section: SectionValue, Row: 8, Label: "Gesamteindruck Preis-Leistung"},
}

// Catalog returns all criteria in catalog order.
func Catalog() []Criterion {
	out := make([]Criterion, len(catalog))
	copy(out, catalog)
	return out
}

// SectionCriteria returns the criteria of one section in catalog order.
func SectionCriteria(key Section) []Criterion {
	var out []Criterion
	for _, c := range catalog {
		if c.Section == key {
			out = append(out, c)
		}
	}
	return out
}

// CriterionByID looks up a criterion by id.
func CriterionByID(id string) (Criterion, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}
