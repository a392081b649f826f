package analysis

import (
	"github.com/jonathan/career-insights/internal/types"
)

// Weights for the composite score components. They sum to exactly 1.0.
const (
	employmentWeight = 0.25
	incomeWeight     = 0.25
	trendWeight      = 0.20
	demandWeight     = 0.15
	growthWeight     = 0.15
)

// neutralScore is the sub-score used when the data behind a component is
// missing or too short.
const neutralScore = 50.0

// ComponentScores holds the five 0-100 sub-scores of the composite career
// prospect score.
type ComponentScores struct {
	Employment float64 `json:"employment"`
	Income     float64 `json:"income"`
	Trend      float64 `json:"trend"`
	Demand     float64 `json:"demand"`
	Growth     float64 `json:"growth"`
}

// CompositeScore is the weighted overall career prospect score with its
// component breakdown and letter grade.
type CompositeScore struct {
	Total      float64         `json:"total"`
	Components ComponentScores `json:"components"`
	Grade      string          `json:"grade"`
}

// ComputeCompositeScore combines employment percentile, income percentile,
// unemployment trend, vacancy demand, and graduate income growth into one
// weighted 0-100 score. Missing inputs degrade each component to the neutral
// 50.0; this analysis never fails.
func ComputeCompositeScore(snap *types.SurveySnapshot, resolve SeriesResolver) *CompositeScore {
	components := ComponentScores{
		Employment: employmentSubScore(snap.LabourForce),
		Income:     incomeSubScore(snap.Income),
		Trend:      trendSubScore(SelectUserSeries(snap.Unemployment, resolve)),
		Demand:     demandSubScore(snap.JobVacancies),
		Growth:     growthSubScore(snap.GraduateOutcomes),
	}

	total := components.Employment*employmentWeight +
		components.Income*incomeWeight +
		components.Trend*trendWeight +
		components.Demand*demandWeight +
		components.Growth*growthWeight
	total = roundTo(total, 1)

	return &CompositeScore{
		Total:      total,
		Components: components,
		Grade:      CompositeGradeScale.Grade(total),
	}
}

// employmentSubScore is the percentile of the user's employment rate among
// all fields' employment rates.
func employmentSubScore(labour *types.LabourForceSection) float64 {
	if labour == nil || labour.Summary == nil {
		return neutralScore
	}
	rates := make([]float64, 0, len(labour.Comparison))
	for _, c := range labour.Comparison {
		if c.EmploymentRate != nil {
			rates = append(rates, *c.EmploymentRate)
		}
	}
	if labour.Summary.EmploymentRate == nil || len(rates) == 0 {
		return neutralScore
	}
	return roundTo(PercentileScore(labour.Summary.EmploymentRate, rates), 1)
}

// incomeSubScore is the percentile of the user's median income among all
// fields' median incomes.
func incomeSubScore(income *types.IncomeSection) float64 {
	if income == nil || income.Summary == nil {
		return neutralScore
	}
	incomes := make([]float64, 0, len(income.Ranking))
	for _, r := range income.Ranking {
		if r.MedianIncome != nil {
			incomes = append(incomes, *r.MedianIncome)
		}
	}
	if income.Summary.MedianIncome == nil || len(incomes) == 0 {
		return neutralScore
	}
	return roundTo(PercentileScore(income.Summary.MedianIncome, incomes), 1)
}

// trendSubScore maps the slope of the user's unemployment series to 0-100.
// A negative slope (improving) raises the score.
func trendSubScore(series []types.Observation) float64 {
	if len(series) < 3 {
		return neutralScore
	}
	values := make([]float64, len(series))
	for i, obs := range series {
		values[i] = obs.Value
	}
	slope, _ := linearFit(values)
	// Slope is roughly -2 to +2 points per year.
	return roundTo(clamp(50-slope*25, 0, 100), 1)
}

// demandSubScore compares the mean of the later half of the vacancy series
// against the earlier half and maps the percentage change to 0-100.
func demandSubScore(vacancies *types.JobVacancySection) float64 {
	if vacancies == nil || len(vacancies.Trends) < 4 {
		return neutralScore
	}
	values := make([]float64, 0, len(vacancies.Trends))
	for _, t := range vacancies.Trends {
		if t.Vacancies != nil {
			values = append(values, *t.Vacancies)
		}
	}
	if len(values) < 4 {
		return neutralScore
	}
	mid := len(values) / 2
	older := mean(values[:mid])
	recent := mean(values[mid:])
	if older <= 0 {
		return neutralScore
	}
	changePct := (recent - older) / older * 100
	return roundTo(clamp(50+changePct, 0, 100), 1)
}

// growthSubScore maps the 2yr-to-5yr graduate income growth percentage to
// 0-100, benchmarking 0-50% growth onto the full scale.
func growthSubScore(grad *types.GraduateOutcomesSection) float64 {
	if grad == nil || grad.Summary == nil || grad.Summary.GrowthPct == nil {
		return neutralScore
	}
	return roundTo(clamp(*grad.Summary.GrowthPct*2, 0, 100), 1)
}
