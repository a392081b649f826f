package catalog

import "github.com/jonathan/career-insights/internal/analysis"

// EducationLevel describes one canonical education level: the name used in
// by-education income data, the assumed annual cost and duration of
// completing it, and the StatCan member IDs used to query it.
type EducationLevel struct {
	Name              string
	StatCanLabel      string
	AnnualCost        float64
	DurationYears     int
	LabourForceMember int
	IncomeMember      int
	UnempSeriesID     int
	JobVacMember      int
	GraduateMember    int
}

// educationLevels is the canonical ascending order used for ROI adjacency.
// Costs are rough Canadian averages for tuition plus living expenses.
var educationLevels = []EducationLevel{
	{
		Name: "High school diploma", StatCanLabel: "High school diploma",
		AnnualCost: 0, DurationYears: 0,
		LabourForceMember: 3, IncomeMember: 3, UnempSeriesID: 4, JobVacMember: 6,
	},
	{
		Name: "Apprenticeship/trades", StatCanLabel: "Apprenticeship or trades certificate or diploma",
		AnnualCost: 8000, DurationYears: 2,
		LabourForceMember: 6, IncomeMember: 6, UnempSeriesID: 6, JobVacMember: 8, GraduateMember: 3,
	},
	{
		Name: "College/CEGEP", StatCanLabel: "College, CEGEP or other non-university certificate or diploma",
		AnnualCost: 12000, DurationYears: 2,
		LabourForceMember: 9, IncomeMember: 9, UnempSeriesID: 6, JobVacMember: 9, GraduateMember: 4,
	},
	{
		Name: "Bachelor's degree", StatCanLabel: "Bachelor's degree",
		AnnualCost: 22000, DurationYears: 4,
		LabourForceMember: 12, IncomeMember: 12, UnempSeriesID: 8, JobVacMember: 12, GraduateMember: 7,
	},
	{
		Name: "Master's degree", StatCanLabel: "Master's degree",
		AnnualCost: 25000, DurationYears: 2,
		LabourForceMember: 15, IncomeMember: 15, UnempSeriesID: 9, JobVacMember: 13, GraduateMember: 11,
	},
	{
		Name: "Earned doctorate", StatCanLabel: "Earned doctorate",
		AnnualCost: 28000, DurationYears: 4,
		LabourForceMember: 16, IncomeMember: 16, UnempSeriesID: 9, GraduateMember: 12,
	},
}

// SeriesRef names one education series of the unemployment trends table
// together with its member ID.
type SeriesRef struct {
	Name string
	ID   int
}

// unemploymentSeries maps the unemployment table's education-series names to
// their member IDs, in dimension order.
var unemploymentSeries = []SeriesRef{
	{"Total, all education levels", 1},
	{"0 to 8 years", 2},
	{"Some high school", 3},
	{"High school graduate", 4},
	{"Some postsecondary", 5},
	{"Postsecondary certificate or diploma", 6},
	{"University degree", 7},
	{"Bachelor's degree", 8},
	{"Above bachelor's degree", 9},
}

// EducationLevels returns the canonical levels in ascending order.
func EducationLevels() []EducationLevel {
	return educationLevels
}

// EducationLevelByName finds a level by its canonical name or its full
// StatCan label.
func EducationLevelByName(name string) (EducationLevel, bool) {
	for _, l := range educationLevels {
		if l.Name == name || l.StatCanLabel == name {
			return l, true
		}
	}
	return EducationLevel{}, false
}

// CostTable builds the analysis cost table from the canonical levels.
func CostTable() analysis.CostTable {
	table := analysis.CostTable{
		Order:  make([]string, len(educationLevels)),
		Levels: make(map[string]analysis.LevelCost, len(educationLevels)),
	}
	for i, l := range educationLevels {
		table.Order[i] = l.Name
		table.Levels[l.Name] = analysis.LevelCost{
			AnnualCost:    l.AnnualCost,
			DurationYears: l.DurationYears,
		}
	}
	return table
}

// UnemploymentSeriesKey resolves a user-facing education label to the name
// of the unemployment series it belongs to. Slots satisfy
// analysis.SeriesResolver.
func UnemploymentSeriesKey(educationLabel string) (string, bool) {
	level, ok := EducationLevelByName(educationLabel)
	if !ok {
		return "", false
	}
	for _, s := range unemploymentSeries {
		if s.ID == level.UnempSeriesID {
			return s.Name, true
		}
	}
	return "", false
}

// UnemploymentSeries returns all education series of the unemployment
// trends table in dimension order.
func UnemploymentSeries() []SeriesRef {
	out := make([]SeriesRef, len(unemploymentSeries))
	copy(out, unemploymentSeries)
	return out
}

// UnemploymentSeriesNames returns all series names in dimension order.
func UnemploymentSeriesNames() []string {
	names := make([]string, len(unemploymentSeries))
	for i, s := range unemploymentSeries {
		names[i] = s.Name
	}
	return names
}
