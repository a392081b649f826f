package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-insights/internal/types"
)

func TestComputeUnemploymentForecast(t *testing.T) {
	forecast, err := ComputeUnemploymentForecast(mathSnapshot(), bachelorResolver)
	require.NoError(t, err)

	assert.Equal(t, []string{"2018", "2019", "2020", "2021", "2022", "2023"}, forecast.Dates)
	assert.Equal(t, []float64{8, 7.5, 7, 6, 5, 4}, forecast.Smoothed)

	// The steadily falling series fits a clearly negative slope.
	assert.InDelta(t, -0.8143, forecast.Slope, 0.0001)
	assert.Equal(t, "Improving — unemployment trending downward", forecast.Interpretation)

	assert.Equal(t, []string{"2024", "2025", "2026"}, forecast.ForecastDates)
	require.Len(t, forecast.ForecastValues, 3)
	assert.Equal(t, []float64{3.4, 2.59, 1.77}, forecast.ForecastValues)

	// Bands bracket the forecast symmetrically, floored at zero.
	for i := range forecast.ForecastValues {
		assert.GreaterOrEqual(t, forecast.UpperBand[i], forecast.ForecastValues[i])
		assert.LessOrEqual(t, forecast.LowerBand[i], forecast.ForecastValues[i])
		assert.GreaterOrEqual(t, forecast.LowerBand[i], 0.0)
	}
}

func TestComputeUnemploymentForecast_Worsening(t *testing.T) {
	snap := &types.SurveySnapshot{
		Unemployment: &types.UnemploymentSection{
			UserEducation: "Bachelor's degree",
			Trends: map[string][]types.Observation{
				"Bachelor's degree": {
					{Date: "2020", Value: 3.0},
					{Date: "2021", Value: 4.0},
					{Date: "2022", Value: 5.0},
					{Date: "2023", Value: 6.0},
				},
			},
		},
	}
	forecast, err := ComputeUnemploymentForecast(snap, bachelorResolver)
	require.NoError(t, err)
	assert.Equal(t, "Worsening — unemployment trending upward", forecast.Interpretation)
}

func TestComputeUnemploymentForecast_InsufficientData(t *testing.T) {
	snap := &types.SurveySnapshot{
		Unemployment: &types.UnemploymentSection{
			UserEducation: "Bachelor's degree",
			Trends: map[string][]types.Observation{
				"Bachelor's degree": {{Date: "2022", Value: 5}, {Date: "2023", Value: 4}},
			},
		},
	}
	_, err := ComputeUnemploymentForecast(snap, bachelorResolver)
	require.Error(t, err)

	var insufficientErr *InsufficientDataError
	assert.ErrorAs(t, err, &insufficientErr)

	_, err = ComputeUnemploymentForecast(&types.SurveySnapshot{}, bachelorResolver)
	assert.Error(t, err)
}

func TestComputeVacancyForecast(t *testing.T) {
	forecast, err := ComputeVacancyForecast(mathSnapshot())
	require.NoError(t, err)

	assert.Len(t, forecast.Values, 8)
	assert.Equal(t, []string{"Q+1", "Q+2", "Q+3"}, forecast.ForecastDates)
	require.Len(t, forecast.ForecastValues, 3)
	// A 20-point quarterly step stays under the 100-per-period threshold.
	assert.Equal(t, "Stable — job vacancies relatively flat", forecast.Interpretation)
}

func TestComputeVacancyForecast_SkipsSuppressedValues(t *testing.T) {
	snap := &types.SurveySnapshot{
		JobVacancies: &types.JobVacancySection{
			Trends: []types.VacancyObservation{
				{Date: "2022-01", Vacancies: types.Float(500)},
				{Date: "2022-04", Vacancies: nil},
				{Date: "2022-07", Vacancies: types.Float(700)},
				{Date: "2022-10", Vacancies: types.Float(900)},
				{Date: "2023-01", Vacancies: types.Float(1100)},
			},
		},
	}
	forecast, err := ComputeVacancyForecast(snap)
	require.NoError(t, err)
	assert.Len(t, forecast.Values, 4, "nil observations drop out")
	assert.Equal(t, "Growing — job vacancies increasing", forecast.Interpretation)
}

func TestComputeVacancyForecast_InsufficientData(t *testing.T) {
	_, err := ComputeVacancyForecast(&types.SurveySnapshot{})
	require.Error(t, err)

	snap := &types.SurveySnapshot{
		JobVacancies: &types.JobVacancySection{
			Trends: []types.VacancyObservation{
				{Date: "2023-01", Vacancies: types.Float(100)},
				{Date: "2023-04", Vacancies: nil},
				{Date: "2023-07", Vacancies: nil},
				{Date: "2023-10", Vacancies: types.Float(120)},
			},
		},
	}
	_, err = ComputeVacancyForecast(snap)
	require.Error(t, err)

	var insufficientErr *InsufficientDataError
	assert.ErrorAs(t, err, &insufficientErr)
}

func TestYearLabels_NonYearDates(t *testing.T) {
	assert.Equal(t, []string{"Y+1", "Y+2", "Y+3"}, yearLabels("Q1"))
	assert.Equal(t, []string{"2024", "2025", "2026"}, yearLabels("2023-12"))
}
