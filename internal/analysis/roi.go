package analysis

import (
	"github.com/jonathan/career-insights/internal/types"
)

// Cost assumptions applied to education levels missing from the cost table.
const (
	defaultAnnualCost    = 20000.0
	defaultDurationYears = 2
)

// LevelCost holds the assumed annual cost (currency) and duration (years) of
// completing one education level.
type LevelCost struct {
	AnnualCost    float64 `json:"annual_cost"`
	DurationYears int     `json:"duration_years"`
}

// CostTable supplies the canonical education-level ordering and the per-level
// cost assumptions to the ROI calculator. It is passed in at call time so the
// calculator stays a pure function of its inputs.
type CostTable struct {
	Order  []string             `json:"order"`
	Levels map[string]LevelCost `json:"levels"`
}

func (t CostTable) cost(level string) LevelCost {
	if c, ok := t.Levels[level]; ok {
		return c
	}
	return LevelCost{AnnualCost: defaultAnnualCost, DurationYears: defaultDurationYears}
}

// ROIStep is the return on advancing between two consecutive available
// education levels. BreakEvenYears is nil when the income premium is not
// positive, which is distinct from a zero break-even.
type ROIStep struct {
	FromLevel      string   `json:"from_level"`
	ToLevel        string   `json:"to_level"`
	FromIncome     float64  `json:"from_income"`
	ToIncome       float64  `json:"to_income"`
	IncomePremium  float64  `json:"income_premium"`
	PremiumPct     float64  `json:"premium_pct"`
	TotalCost      float64  `json:"total_cost"`
	DurationYears  int      `json:"duration_years"`
	BreakEvenYears *float64 `json:"break_even_years"`
}

// EducationROI holds the per-step returns and the step with the shortest
// positive break-even, if any.
type EducationROI struct {
	Levels  []ROIStep `json:"levels"`
	BestROI *ROIStep  `json:"best_roi"`
}

// ComputeEducationROI evaluates the income premium, total cost, and
// break-even period for each adjacent pair of education levels present in the
// by-education income data. Adjacency follows the cost table's canonical
// order; gaps in the input are skipped, not interpolated.
func ComputeEducationROI(snap *types.SurveySnapshot, costs CostTable) (*EducationROI, error) {
	if snap.Income == nil || len(snap.Income.ByEducation) < 2 {
		return nil, insufficientData("insufficient education-level income data for ROI")
	}

	incomeByLevel := make(map[string]float64, len(snap.Income.ByEducation))
	for _, entry := range snap.Income.ByEducation {
		incomeByLevel[entry.Education] = entry.MedianIncome
	}

	available := make([]string, 0, len(costs.Order))
	for _, level := range costs.Order {
		if _, ok := incomeByLevel[level]; ok {
			available = append(available, level)
		}
	}

	steps := make([]ROIStep, 0, len(available))
	for i := 1; i < len(available); i++ {
		fromLevel, toLevel := available[i-1], available[i]
		fromIncome := incomeByLevel[fromLevel]
		toIncome := incomeByLevel[toLevel]

		premium := toIncome - fromIncome
		premiumPct := 0.0
		if fromIncome > 0 {
			premiumPct = roundTo(premium/fromIncome*100, 1)
		}

		levelCost := costs.cost(toLevel)
		totalCost := levelCost.AnnualCost * float64(levelCost.DurationYears)

		step := ROIStep{
			FromLevel:     fromLevel,
			ToLevel:       toLevel,
			FromIncome:    fromIncome,
			ToIncome:      toIncome,
			IncomePremium: roundTo(premium, 0),
			PremiumPct:    premiumPct,
			TotalCost:     totalCost,
			DurationYears: levelCost.DurationYears,
		}
		if premium > 0 {
			breakEven := roundTo(totalCost/premium, 1)
			step.BreakEvenYears = &breakEven
		}
		steps = append(steps, step)
	}

	return &EducationROI{
		Levels:  steps,
		BestROI: bestROI(steps),
	}, nil
}

// bestROI returns the step with the shortest positive break-even, or nil when
// no step has a positive return.
func bestROI(steps []ROIStep) *ROIStep {
	var best *ROIStep
	for i := range steps {
		be := steps[i].BreakEvenYears
		if be == nil || *be <= 0 {
			continue
		}
		if best == nil || *be < *best.BreakEvenYears {
			best = &steps[i]
		}
	}
	return best
}
