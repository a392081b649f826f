package analysis

import (
	"fmt"
	"strconv"

	"github.com/jonathan/career-insights/internal/types"
)

// forecastHorizon is the number of future periods extrapolated by both
// forecaster call sites.
const forecastHorizon = 3

// Forecast is the output of the trend forecaster: the original and smoothed
// series, extrapolated points with a residual confidence band, the fitted
// slope, and a plain-language interpretation.
type Forecast struct {
	Dates          []string  `json:"dates"`
	Values         []float64 `json:"values"`
	Smoothed       []float64 `json:"smoothed"`
	ForecastDates  []string  `json:"forecast_dates"`
	ForecastValues []float64 `json:"forecast_values"`
	UpperBand      []float64 `json:"upper_band"`
	LowerBand      []float64 `json:"lower_band"`
	Slope          float64   `json:"slope"`
	StdResidual    float64   `json:"std_residual"`
	Interpretation string    `json:"interpretation"`
}

// forecastSpec parameterizes the shared forecaster for one call site:
// smoothing window, rounding precision, slope interpretation thresholds, and
// the period-label strategy.
type forecastSpec struct {
	window         int
	valuePrecision int // forecast values and bands
	fitPrecision   int // reported slope and std_residual
	downThreshold  float64
	upThreshold    float64
	downLabel      string
	upLabel        string
	stableLabel    string
	periodLabels   func(lastDate string) []string
}

var unemploymentSpec = forecastSpec{
	window:         3,
	valuePrecision: 2,
	fitPrecision:   4,
	downThreshold:  -0.1,
	upThreshold:    0.1,
	downLabel:      "Improving — unemployment trending downward",
	upLabel:        "Worsening — unemployment trending upward",
	stableLabel:    "Stable — unemployment relatively flat",
	periodLabels:   yearLabels,
}

// Vacancy thresholds are on raw counts, reflecting the larger scale of the
// series.
var vacancySpec = forecastSpec{
	window:         3,
	valuePrecision: 0,
	fitPrecision:   2,
	downThreshold:  -100,
	upThreshold:    100,
	downLabel:      "Declining — job vacancies decreasing",
	upLabel:        "Growing — job vacancies increasing",
	stableLabel:    "Stable — job vacancies relatively flat",
	periodLabels:   quarterLabels,
}

// ComputeUnemploymentForecast fits a linear trend to the user's smoothed
// unemployment series and extrapolates three annual periods ahead. Requires
// at least three observations.
func ComputeUnemploymentForecast(snap *types.SurveySnapshot, resolve SeriesResolver) (*Forecast, error) {
	series := SelectUserSeries(snap.Unemployment, resolve)
	if len(series) < 3 {
		return nil, insufficientData("insufficient unemployment data for forecasting")
	}

	dates := make([]string, len(series))
	values := make([]float64, len(series))
	for i, obs := range series {
		dates[i] = obs.Date
		values[i] = obs.Value
	}
	return forecastSeries(dates, values, unemploymentSpec), nil
}

// ComputeVacancyForecast fits a linear trend to the smoothed quarterly job
// vacancy series and extrapolates three quarters ahead. Requires at least
// four non-missing observations.
func ComputeVacancyForecast(snap *types.SurveySnapshot) (*Forecast, error) {
	vac := snap.JobVacancies
	if vac == nil || len(vac.Trends) < 4 {
		return nil, insufficientData("insufficient vacancy data for forecasting")
	}

	dates := make([]string, 0, len(vac.Trends))
	values := make([]float64, 0, len(vac.Trends))
	for _, t := range vac.Trends {
		if t.Vacancies != nil {
			dates = append(dates, t.Date)
			values = append(values, *t.Vacancies)
		}
	}
	if len(values) < 4 {
		return nil, insufficientData("insufficient vacancy data for forecasting")
	}
	return forecastSeries(dates, values, vacancySpec), nil
}

// forecastSeries runs the shared algorithm: smooth, fit, band, extrapolate.
func forecastSeries(dates []string, values []float64, spec forecastSpec) *Forecast {
	smoothed := movingAverage(values, spec.window)
	slope, intercept := linearFit(smoothed)

	residuals := make([]float64, len(smoothed))
	for i, v := range smoothed {
		residuals[i] = v - (slope*float64(i) + intercept)
	}
	stdResidual := stdDev(residuals)

	n := len(smoothed)
	forecast := make([]float64, forecastHorizon)
	upper := make([]float64, forecastHorizon)
	lower := make([]float64, forecastHorizon)
	for i := 0; i < forecastHorizon; i++ {
		x := float64(n + i)
		v := roundTo(slope*x+intercept, spec.valuePrecision)
		if v < 0 {
			v = 0
		}
		forecast[i] = v
		upper[i] = roundTo(v+stdResidual, spec.valuePrecision)
		lo := roundTo(v-stdResidual, spec.valuePrecision)
		if lo < 0 {
			lo = 0
		}
		lower[i] = lo
	}

	interpretation := spec.stableLabel
	if slope < spec.downThreshold {
		interpretation = spec.downLabel
	} else if slope > spec.upThreshold {
		interpretation = spec.upLabel
	}

	return &Forecast{
		Dates:          dates,
		Values:         values,
		Smoothed:       smoothed,
		ForecastDates:  spec.periodLabels(dates[len(dates)-1]),
		ForecastValues: forecast,
		UpperBand:      upper,
		LowerBand:      lower,
		Slope:          roundTo(slope, spec.fitPrecision),
		StdResidual:    roundTo(stdResidual, spec.fitPrecision),
		Interpretation: interpretation,
	}
}

// yearLabels labels the forecast periods as consecutive years following the
// last historical period, falling back to generic Y+n labels when the period
// does not start with a 4-digit year.
func yearLabels(lastDate string) []string {
	labels := make([]string, forecastHorizon)
	if len(lastDate) >= 4 {
		if year, err := strconv.Atoi(lastDate[:4]); err == nil {
			for i := range labels {
				labels[i] = strconv.Itoa(year + i + 1)
			}
			return labels
		}
	}
	for i := range labels {
		labels[i] = fmt.Sprintf("Y+%d", i+1)
	}
	return labels
}

// quarterLabels always uses generic Q+n labels; quarterly reference periods
// are not worth date arithmetic here.
func quarterLabels(string) []string {
	labels := make([]string, forecastHorizon)
	for i := range labels {
		labels[i] = fmt.Sprintf("Q+%d", i+1)
	}
	return labels
}
