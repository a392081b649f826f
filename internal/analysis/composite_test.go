package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-insights/internal/types"
)

func TestComputeCompositeScore_FullSnapshot(t *testing.T) {
	score := ComputeCompositeScore(mathSnapshot(), bachelorResolver)
	require.NotNil(t, score)

	// Employment: 85.0 beats 3 of 4 peers.
	assert.Equal(t, 75.0, score.Components.Employment)
	// Income: 70000 beats 2 of 3 peers.
	assert.Equal(t, 66.7, score.Components.Income)
	// Trend: slope -1 per year maps to 75.
	assert.Equal(t, 75.0, score.Components.Trend)
	// Demand: vacancies up 20% between halves maps to 70.
	assert.Equal(t, 70.0, score.Components.Demand)
	// Growth: 25.8% doubles to 51.6.
	assert.Equal(t, 51.6, score.Components.Growth)

	assert.Equal(t, 68.7, score.Total)
	assert.Equal(t, "B", score.Grade)
}

func TestComputeCompositeScore_EmptySnapshotIsNeutral(t *testing.T) {
	score := ComputeCompositeScore(&types.SurveySnapshot{}, bachelorResolver)
	require.NotNil(t, score)

	assert.Equal(t, ComponentScores{
		Employment: 50,
		Income:     50,
		Trend:      50,
		Demand:     50,
		Growth:     50,
	}, score.Components)
	assert.Equal(t, 50.0, score.Total)
	assert.Equal(t, "C", score.Grade)
}

func TestCompositeSubScores_MissingPieces(t *testing.T) {
	// Summary without a comparison population.
	labour := &types.LabourForceSection{
		Summary: &types.LabourForceSummary{EmploymentRate: types.Float(85)},
	}
	assert.Equal(t, 50.0, employmentSubScore(labour))

	// Fewer than three observations cannot establish a trend.
	assert.Equal(t, 50.0, trendSubScore([]types.Observation{
		{Date: "2022", Value: 5}, {Date: "2023", Value: 4},
	}))

	// Suppressed vacancy values do not count toward the minimum.
	vac := &types.JobVacancySection{
		Trends: []types.VacancyObservation{
			{Date: "2023-01", Vacancies: types.Float(100)},
			{Date: "2023-04", Vacancies: nil},
			{Date: "2023-07", Vacancies: nil},
			{Date: "2023-10", Vacancies: types.Float(110)},
		},
	}
	assert.Equal(t, 50.0, demandSubScore(vac))

	// No growth figure, no growth signal.
	grad := &types.GraduateOutcomesSection{Summary: &types.GraduateSummary{}}
	assert.Equal(t, 50.0, growthSubScore(grad))
}

func TestTrendSubScore_RisingUnemploymentScoresLow(t *testing.T) {
	rising := []types.Observation{
		{Date: "2019", Value: 4}, {Date: "2020", Value: 5},
		{Date: "2021", Value: 6}, {Date: "2022", Value: 7},
	}
	assert.Equal(t, 25.0, trendSubScore(rising))
}

func TestDemandSubScore_ClampsExtremeSwings(t *testing.T) {
	vac := &types.JobVacancySection{
		Trends: []types.VacancyObservation{
			{Date: "2023-01", Vacancies: types.Float(10)},
			{Date: "2023-04", Vacancies: types.Float(10)},
			{Date: "2023-07", Vacancies: types.Float(100)},
			{Date: "2023-10", Vacancies: types.Float(100)},
		},
	}
	assert.Equal(t, 100.0, demandSubScore(vac), "a 900% jump clamps to 100")
}
