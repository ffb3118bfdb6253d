package rating

import "math"

// Average returns the arithmetic mean of the non-nil scores, or nil when no
// score is present. Division is plain floating point; rounding happens only
// at grade derivation.
func Average(scores []*int) *float64 {
	var sum float64
	var n int
	for _, s := range scores {
		if s == nil {
			continue
		}
		sum += float64(*s)
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GradeFromAverage maps a raw 1-10 average to a school grade, rounded to one
// decimal: a raw 10 is grade 1.0 (best), a raw 1 is grade 6.0 (worst).
// The linear remapping 6 - (avg-1)*5/9 is reproduced exactly; downstream
// documents depend on the grade values bit for bit.
func GradeFromAverage(avg float64) float64 {
	return round1(6 - (avg-1)*5/9)
}

// CategoryFromGrade buckets a grade into its qualitative label. Boundaries
// are half-open at exact integers: 1.999 is still "Sehr gut", 2.0 is "Gut".
// Grades outside [1,6] cannot occur via GradeFromAverage but fall through to
// the worst bucket.
func CategoryFromGrade(grade float64) string {
	switch {
	case grade >= 1 && grade < 2:
		return "Sehr gut"
	case grade >= 2 && grade < 3:
		return "Gut"
	case grade >= 3 && grade < 4:
		return "Befriedigend"
	case grade >= 4 && grade < 5:
		return "Ausreichend"
	default:
		return "Wiederholen"
	}
}

// Compute derives the full rating from the entered values and the static
// catalog. Sections without any scored criterion get nil average, grade and
// category. The overall average is the weighted mean over the four sections
// and exists only when every section has an average; a single unscored
// section leaves the whole overall block nil. Compute never fails and never
// emits NaN or Inf.
func Compute(values Values) Computed {
	c := Computed{
		SectionAverage:  make(map[Section]*float64, len(sections)),
		SectionGrade:    make(map[Section]*float64, len(sections)),
		SectionCategory: make(map[Section]*string, len(sections)),
	}

	for _, s := range sections {
		criteria := SectionCriteria(s.Key)
		scores := make([]*int, 0, len(criteria))
		for _, cr := range criteria {
			scores = append(scores, values[cr.ID].Score)
		}

		avg := Average(scores)
		c.SectionAverage[s.Key] = avg
		if avg == nil {
			c.SectionGrade[s.Key] = nil
			c.SectionCategory[s.Key] = nil
			continue
		}
		grade := GradeFromAverage(*avg)
		category := CategoryFromGrade(grade)
		c.SectionGrade[s.Key] = &grade
		c.SectionCategory[s.Key] = &category
	}

	// All-or-nothing gate: no partial-credit overall.
	var weighted float64
	for _, s := range sections {
		avg := c.SectionAverage[s.Key]
		if avg == nil {
			return c
		}
		weighted += *avg * float64(s.Weight)
	}

	overall := weighted / overallDenominator
	grade := GradeFromAverage(overall)
	category := CategoryFromGrade(grade)
	c.OverallAverage = &overall
	c.OverallGrade = &grade
	c.OverallCategory = &category
	return c
}
