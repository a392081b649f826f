package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-insights/internal/types"
)

const (
	mathCS      = "Mathematics, computer and information sciences"
	engineering = "Architecture, engineering, and related trades"
	business    = "Business, management and public administration"
	humanities  = "Humanities"
	education   = "Education"
)

// bachelorResolver maps the Bachelor's degree label to its unemployment
// series, the way the catalog does.
func bachelorResolver(label string) (string, bool) {
	if label == "Bachelor's degree" {
		return "Bachelor's degree", true
	}
	return "", false
}

// testCostTable mirrors the canonical level ordering with round cost figures.
func testCostTable() CostTable {
	return CostTable{
		Order: []string{
			"High school diploma",
			"Apprenticeship/trades",
			"College/CEGEP",
			"Bachelor's degree",
			"Master's degree",
			"Earned doctorate",
		},
		Levels: map[string]LevelCost{
			"High school diploma": {AnnualCost: 0, DurationYears: 0},
			"Bachelor's degree":   {AnnualCost: 22000, DurationYears: 4},
			"Master's degree":     {AnnualCost: 25000, DurationYears: 2},
		},
	}
}

func testShortNames() map[string]string {
	return map[string]string{
		mathCS:      "Math & CS",
		engineering: "Engineering",
		business:    "Business",
		humanities:  "Humanities",
		education:   "Education",
	}
}

// mathSnapshot is the canonical full fixture: a math and computer science
// bachelor's view with every section populated.
func mathSnapshot() *types.SurveySnapshot {
	return &types.SurveySnapshot{
		LabourForce: &types.LabourForceSection{
			UserField:   mathCS,
			UserFieldID: "math_cs",
			Summary: &types.LabourForceSummary{
				EmploymentRate:    types.Float(85.0),
				ParticipationRate: types.Float(88.0),
				UnemploymentRate:  types.Float(5.1),
			},
			Comparison: []types.FieldEmployment{
				{Field: education, FieldID: "education", EmploymentRate: types.Float(80.0)},
				{Field: humanities, FieldID: "humanities", EmploymentRate: types.Float(78.0)},
				{Field: mathCS, FieldID: "math_cs", EmploymentRate: types.Float(85.0)},
				{Field: engineering, FieldID: "engineering", EmploymentRate: types.Float(90.0)},
				{Field: business, FieldID: "business", EmploymentRate: types.Float(82.0)},
			},
		},
		Income: &types.IncomeSection{
			Summary: &types.IncomeSummary{
				MedianIncome:  types.Float(70000),
				AverageIncome: types.Float(80000),
			},
			Ranking: []types.FieldIncome{
				{Field: humanities, FieldID: "humanities", MedianIncome: types.Float(60000)},
				{Field: business, FieldID: "business", MedianIncome: types.Float(65000)},
				{Field: mathCS, FieldID: "math_cs", MedianIncome: types.Float(70000)},
				{Field: engineering, FieldID: "engineering", MedianIncome: types.Float(75000)},
			},
			ByEducation: []types.EducationIncome{
				{Education: "High school diploma", MedianIncome: 45000},
				{Education: "Bachelor's degree", MedianIncome: 70000},
				{Education: "Master's degree", MedianIncome: 80000},
			},
		},
		Unemployment: &types.UnemploymentSection{
			UserEducation: "Bachelor's degree",
			Trends: map[string][]types.Observation{
				"Bachelor's degree": {
					{Date: "2018", Value: 8.0},
					{Date: "2019", Value: 7.0},
					{Date: "2020", Value: 6.0},
					{Date: "2021", Value: 5.0},
					{Date: "2022", Value: 4.0},
					{Date: "2023", Value: 3.0},
				},
				"Total, all education levels": {
					{Date: "2018", Value: 6.0},
					{Date: "2019", Value: 6.1},
					{Date: "2020", Value: 6.2},
				},
			},
		},
		JobVacancies: &types.JobVacancySection{
			Trends: []types.VacancyObservation{
				{Date: "2022-01", Vacancies: types.Float(100)},
				{Date: "2022-04", Vacancies: types.Float(100)},
				{Date: "2022-07", Vacancies: types.Float(100)},
				{Date: "2022-10", Vacancies: types.Float(100)},
				{Date: "2023-01", Vacancies: types.Float(120)},
				{Date: "2023-04", Vacancies: types.Float(120)},
				{Date: "2023-07", Vacancies: types.Float(120)},
				{Date: "2023-10", Vacancies: types.Float(120)},
			},
		},
		GraduateOutcomes: &types.GraduateOutcomesSection{
			Summary: &types.GraduateSummary{
				Income2Yr: types.Float(62000),
				Income5Yr: types.Float(78000),
				GrowthPct: types.Float(25.8),
			},
			Comparison: []types.FieldGraduateIncome{
				{Field: mathCS, FieldID: "math_cs", Income2Yr: types.Float(62000)},
				{Field: engineering, FieldID: "engineering", Income2Yr: types.Float(70000)},
				{Field: humanities, FieldID: "humanities", Income2Yr: types.Float(45000)},
			},
		},
		Subfields: &types.SubfieldSection{
			BroadField:   mathCS,
			UserSubfield: "11.07 Computer science",
			Subfields: []types.Subfield{
				{
					Name:           "11. Computer and information sciences",
					EmploymentRate: types.Float(84.9),
					MedianIncome:   types.Float(75000),
				},
				{
					Name:                "11.07 Computer science",
					EmploymentRate:      types.Float(84.9),
					MedianIncome:        types.Float(78000),
					EmploymentRateExact: types.Bool(false),
				},
				{
					Name:           "27. Mathematics and statistics",
					EmploymentRate: types.Float(86.0),
					MedianIncome:   types.Float(72000),
				},
			},
		},
	}
}

func testOptions() Options {
	return Options{
		Costs:         testCostTable(),
		ShortNames:    testShortNames(),
		ResolveSeries: bachelorResolver,
	}
}

func TestRunAll_FullSnapshot(t *testing.T) {
	results := RunAll(mathSnapshot(), testOptions())

	require.Len(t, results, len(AnalysisNames))
	for _, name := range AnalysisNames {
		result, ok := results[name]
		require.True(t, ok, "missing result for %s", name)
		assert.False(t, result.Failed(), "%s failed: %s", name, result.Err)
		assert.NotNil(t, result.Payload, "%s has no payload", name)
	}
}

func TestRunAll_EmptySnapshot(t *testing.T) {
	results := RunAll(&types.SurveySnapshot{}, testOptions())

	require.Len(t, results, len(AnalysisNames))

	// Composite score and risk assessment degrade to neutral output instead
	// of failing.
	assert.False(t, results[AnalysisCompositeScore].Failed())
	assert.False(t, results[AnalysisRiskAssessment].Failed())

	// Everything else reports why it could not run.
	for _, name := range []string{
		AnalysisUnemploymentForecast,
		AnalysisVacancyForecast,
		AnalysisIncomeProjection,
		AnalysisEducationROI,
		AnalysisFieldCompetitiveness,
		AnalysisCareerQuadrant,
		AnalysisSubfieldQuadrant,
	} {
		result := results[name]
		assert.True(t, result.Failed(), "%s should fail on an empty snapshot", name)
		assert.Nil(t, result.Payload)
		assert.NotEmpty(t, result.Err)
	}
}

func TestSelectUserSeries_ResolverHit(t *testing.T) {
	snap := mathSnapshot()
	series := SelectUserSeries(snap.Unemployment, bachelorResolver)
	require.Len(t, series, 6)
	assert.Equal(t, 8.0, series[0].Value)
}

func TestSelectUserSeries_FallbackToFirstKey(t *testing.T) {
	section := &types.UnemploymentSection{
		UserEducation: "College/CEGEP",
		Trends: map[string][]types.Observation{
			"University degree":    {{Date: "2020", Value: 4.0}},
			"High school graduate": {{Date: "2020", Value: 7.0}},
		},
	}
	// The resolver misses, so the first series in key order wins.
	series := SelectUserSeries(section, bachelorResolver)
	require.Len(t, series, 1)
	assert.Equal(t, 7.0, series[0].Value)
}

func TestSelectUserSeries_NilSection(t *testing.T) {
	assert.Nil(t, SelectUserSeries(nil, bachelorResolver))
	assert.Nil(t, SelectUserSeries(&types.UnemploymentSection{}, nil))
}
