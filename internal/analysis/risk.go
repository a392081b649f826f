package analysis

import (
	"strings"

	"github.com/jonathan/career-insights/internal/types"
)

// RiskAssessment grades career stability: unemployment volatility, income
// distribution symmetry, and an overall letter grade. Sub-metrics that cannot
// be computed are nil with an N/A grade; the analysis itself never fails.
type RiskAssessment struct {
	VolatilityCV    *float64 `json:"volatility_cv"`
	VolatilityGrade string   `json:"volatility_grade"`
	IncomeSymmetry  *float64 `json:"income_symmetry"`
	SymmetryGrade   string   `json:"symmetry_grade"`
	OverallGrade    string   `json:"overall_grade"`
	Interpretation  string   `json:"interpretation"`
}

// Interpretation trigger thresholds. These are looser than the grade cutoffs:
// only clearly elevated metrics surface as named risk factors.
const (
	highVolatilityCV  = 25.0
	lowSymmetryFactor = 0.80
)

// ComputeRiskAssessment computes the coefficient of variation of the user's
// unemployment series and the median/average income ratio, grades each, and
// averages the available grades into an overall grade.
func ComputeRiskAssessment(snap *types.SurveySnapshot, resolve SeriesResolver) *RiskAssessment {
	out := &RiskAssessment{
		VolatilityGrade: GradeNA,
		SymmetryGrade:   GradeNA,
		OverallGrade:    GradeNA,
	}

	// Volatility: population CV of the unemployment series, percent.
	series := SelectUserSeries(snap.Unemployment, resolve)
	if len(series) >= 3 {
		values := make([]float64, len(series))
		for i, obs := range series {
			values[i] = obs.Value
		}
		if m := mean(values); m > 0 {
			cv := roundTo(stdDev(values)/m*100, 1)
			out.VolatilityCV = &cv
			out.VolatilityGrade = VolatilityGradeScale.Grade(cv)
		}
	}

	// Income symmetry: median over average. Close to 1.0 means a balanced
	// distribution.
	if snap.Income != nil && snap.Income.Summary != nil {
		med := snap.Income.Summary.MedianIncome
		avg := snap.Income.Summary.AverageIncome
		if med != nil && avg != nil && *avg > 0 {
			symmetry := roundTo(*med / *avg, 3)
			out.IncomeSymmetry = &symmetry
			out.SymmetryGrade = SymmetryGradeScale.Grade(symmetry)
		}
	}

	out.OverallGrade = overallGrade(out.VolatilityGrade, out.SymmetryGrade)
	out.Interpretation = riskInterpretation(out.VolatilityCV, out.IncomeSymmetry)
	return out
}

// overallGrade averages the available sub-grades on a 0-4 scale and maps the
// average back to a letter. N/A sub-grades are excluded from the average;
// with no available sub-grade the overall grade is N/A.
func overallGrade(grades ...string) string {
	total := 0.0
	count := 0
	for _, g := range grades {
		if points, ok := gradePoints[g]; ok {
			total += points
			count++
		}
	}
	if count == 0 {
		return GradeNA
	}
	return overallGradeScale.Grade(total / float64(count))
}

func riskInterpretation(volatilityCV, symmetry *float64) string {
	var factors []string
	if volatilityCV != nil && *volatilityCV > highVolatilityCV {
		factors = append(factors, "high unemployment volatility")
	}
	if symmetry != nil && *symmetry < lowSymmetryFactor {
		factors = append(factors, "significant income inequality (median << average)")
	}
	if len(factors) == 0 {
		return "Low risk profile — stable employment and balanced income distribution"
	}
	return "Risk factors: " + strings.Join(factors, ", ")
}
