package analysis

import (
	"math"

	"github.com/jonathan/career-insights/internal/types"
)

// Projection horizon: curve years 1..curveMaxYear, with headline projections
// at the two marker years.
const curveMaxYear = 15

var projectionYears = [2]int{10, 15}

// YearIncome is an (years-since-graduation, income) point.
type YearIncome struct {
	Year   int     `json:"year"`
	Income float64 `json:"income"`
}

// LogFormula reports the fitted coefficients of income = a*ln(year) + b.
type LogFormula struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// IncomeProjection is the logarithmic income growth projection: the two
// anchor points, the headline projections, and a plottable curve.
type IncomeProjection struct {
	DataPoints      []YearIncome `json:"data_points"`
	ProjectedPoints []YearIncome `json:"projected_points"`
	CurveYears      []int        `json:"curve_years"`
	CurveIncomes    []float64    `json:"curve_incomes"`
	Formula         LogFormula   `json:"formula"`
	FieldAvg2Yr     *float64     `json:"field_avg_2yr,omitempty"`
}

// ComputeIncomeProjection fits income = a*ln(year) + b through the 2-year
// and 5-year graduate income anchors and extrapolates to years 10 and 15.
// The two anchors lie exactly on the curve by construction; this is an exact
// two-point fit, not a regression.
func ComputeIncomeProjection(snap *types.SurveySnapshot) (*IncomeProjection, error) {
	grad := snap.GraduateOutcomes
	if grad == nil || grad.Summary == nil ||
		grad.Summary.Income2Yr == nil || grad.Summary.Income5Yr == nil {
		return nil, insufficientData("insufficient graduate income data for projection")
	}

	income2 := *grad.Summary.Income2Yr
	income5 := *grad.Summary.Income5Yr
	if income2 <= 0 {
		return nil, &DomainError{Message: "invalid income data (2yr income <= 0)"}
	}

	a := (income5 - income2) / (math.Log(5) - math.Log(2))
	b := income2 - a*math.Log(2)

	curveYears := make([]int, curveMaxYear)
	curveIncomes := make([]float64, curveMaxYear)
	for i := range curveYears {
		year := i + 1
		curveYears[i] = year
		curveIncomes[i] = roundTo(a*math.Log(float64(year))+b, 0)
	}

	projected := make([]YearIncome, len(projectionYears))
	for i, year := range projectionYears {
		projected[i] = YearIncome{
			Year:   year,
			Income: roundTo(a*math.Log(float64(year))+b, 0),
		}
	}

	result := &IncomeProjection{
		DataPoints: []YearIncome{
			{Year: 2, Income: income2},
			{Year: 5, Income: income5},
		},
		ProjectedPoints: projected,
		CurveYears:      curveYears,
		CurveIncomes:    curveIncomes,
		Formula:         LogFormula{A: roundTo(a, 2), B: roundTo(b, 2)},
	}

	// Field-average benchmark from the cross-field 2yr comparison, when
	// available.
	incomes := make([]float64, 0, len(grad.Comparison))
	for _, c := range grad.Comparison {
		if c.Income2Yr != nil {
			incomes = append(incomes, *c.Income2Yr)
		}
	}
	if len(incomes) > 0 {
		avg := roundTo(mean(incomes), 0)
		result.FieldAvg2Yr = &avg
	}

	return result, nil
}
