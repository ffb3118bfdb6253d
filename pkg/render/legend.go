package render

// legendRow is one line of the printed grading-key table.
type legendRow struct {
	Points   string
	Grade    string
	Category string
}

// gradingKeyLegend is the Notenschlüssel table printed at the end of every
// report. It is carried over verbatim from the printed report layout and is
// purely presentational; the point ranges and labels do not line up with the
// engine's grade formula (the engine never produces "Hervorragend") and must
// never be used to derive grades.
var gradingKeyLegend = []legendRow{
	{Points: "9,0 – 10,0", Grade: "1,0 – 1,5", Category: "Hervorragend"},
	{Points: "7,0 – 8,9", Grade: "1,6 – 2,5", Category: "Gut"},
	{Points: "5,0 – 6,9", Grade: "2,6 – 3,5", Category: "Befriedigend"},
	{Points: "3,0 – 4,9", Grade: "3,6 – 4,5", Category: "Ausreichend"},
	{Points: "1,0 – 2,9", Grade: "4,6 – 6,0", Category: "Wiederholen"},
}
