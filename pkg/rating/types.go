// Package rating implements the certiseal product rating engine.
// It turns a sparse map of admin-entered criterion scores into section and
// overall averages, school grades (1.0 best, 6.0 worst) and qualitative
// categories. The engine is pure: it never errors and never touches state.
package rating

// Section identifies one of the four fixed rating sections.
type Section string

const (
	SectionProtection  Section = "A" // Produktschutz
	SectionWorkmanship Section = "B" // Verarbeitung & Erscheinungsbild
	SectionPractical   Section = "C" // Praxistest
	SectionValue       Section = "D" // Preis-Leistung & Bewertungen
)

// SectionInfo describes a section: display label and its weight in the
// overall average. The weights sum to the overall denominator of 6.
type SectionInfo struct {
	Key    Section `json:"key"`
	Label  string  `json:"label"`
	Weight int     `json:"weight"`
}

var sections = []SectionInfo{
	{Key: SectionProtection, Label: "Produktschutz", Weight: 1},
	{Key: SectionWorkmanship, Label: "Verarbeitung & Erscheinungsbild", Weight: 2},
	{Key: SectionPractical, Label: "Praxistest", Weight: 2},
	{Key: SectionValue, Label: "Preis-Leistung & Bewertungen", Weight: 1},
}

// overallDenominator is the sum of all section weights.
const overallDenominator = 6

// Sections returns the four sections in display order.
func Sections() []SectionInfo {
	out := make([]SectionInfo, len(sections))
	copy(out, sections)
	return out
}

// SectionLabel returns the display label for a section key, or "" for an
// unknown key.
func SectionLabel(key Section) string {
	for _, s := range sections {
		if s.Key == key {
			return s.Label
		}
	}
	return ""
}

// Criterion is one fixed scoring question. The catalog of criteria is
// compile-time constant; ids and section assignments of existing entries are
// never changed because persisted ratings reference ids directly.
type Criterion struct {
	ID      string  `json:"id"`
	Section Section `json:"section"`
	Row     int     `json:"row"`
	Label   string  `json:"label"`
}

// Value is the admin-entered rating for a single criterion. A nil Score
// means "not yet scored" and is excluded from averaging, never counted as
// zero.
type Value struct {
	Score *int    `json:"score"`
	Note  *string `json:"note"`
}

// Values maps criterion id to the entered value. Persisted maps always
// contain exactly the catalog's ids (see ToPersistableValues).
type Values map[string]Value

// Computed is the derived rating, fully re-derivable from Values and the
// static catalog. Nil fields mean "not yet computable", not an error.
type Computed struct {
	SectionAverage  map[Section]*float64 `json:"section_average"`
	SectionGrade    map[Section]*float64 `json:"section_grade"`
	SectionCategory map[Section]*string  `json:"section_category"`
	OverallAverage  *float64             `json:"overall_average"`
	OverallGrade    *float64             `json:"overall_grade"`
	OverallCategory *string              `json:"overall_category"`
}
