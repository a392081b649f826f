package analysis

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-insights/internal/types"
)

// Fixed analysis names, the keys of a ResultSet.
const (
	AnalysisCompositeScore       = "composite_score"
	AnalysisUnemploymentForecast = "unemployment_forecast"
	AnalysisVacancyForecast      = "vacancy_forecast"
	AnalysisIncomeProjection     = "income_projection"
	AnalysisRiskAssessment       = "risk_assessment"
	AnalysisEducationROI         = "education_roi"
	AnalysisFieldCompetitiveness = "field_competitiveness"
	AnalysisCareerQuadrant       = "career_quadrant"
	AnalysisSubfieldQuadrant     = "subfield_quadrant"
)

// AnalysisNames lists the nine analyses in presentation order.
var AnalysisNames = []string{
	AnalysisCompositeScore,
	AnalysisUnemploymentForecast,
	AnalysisVacancyForecast,
	AnalysisIncomeProjection,
	AnalysisRiskAssessment,
	AnalysisEducationROI,
	AnalysisFieldCompetitiveness,
	AnalysisCareerQuadrant,
	AnalysisSubfieldQuadrant,
}

// Result is the tagged outcome of one analysis: a payload on success, an
// error message on failure, never both. Consumers check Failed before
// reading the payload.
type Result struct {
	Payload any    `json:"payload,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Failed reports whether the result carries an error instead of a payload.
func (r Result) Failed() bool {
	return r.Err != ""
}

// ResultSet maps each of the nine analysis names to its Result.
type ResultSet map[string]Result

// SeriesResolver maps a user-facing education label to the key of the
// unemployment series that belongs to it.
type SeriesResolver func(educationLabel string) (string, bool)

// Options carries the static configuration the engine receives at call time:
// education cost assumptions for the ROI calculator, short display names for
// quadrant labeling, and the education-to-series lookup.
type Options struct {
	Costs         CostTable
	ShortNames    map[string]string
	ResolveSeries SeriesResolver
}

// SelectUserSeries returns the unemployment series resolved for the user's
// education label. When the resolved series is absent it falls back to the
// first available series in key order; the fallback is documented behavior,
// not an error.
func SelectUserSeries(section *types.UnemploymentSection, resolve SeriesResolver) []types.Observation {
	if section == nil || len(section.Trends) == 0 {
		return nil
	}
	if resolve != nil {
		if key, ok := resolve(section.UserEducation); ok {
			if series, ok := section.Trends[key]; ok && len(series) > 0 {
				return series
			}
		}
	}
	keys := make([]string, 0, len(section.Trends))
	for k := range section.Trends {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if series := section.Trends[k]; len(series) > 0 {
			return series
		}
	}
	return nil
}

// RunAll executes all nine analyses against one snapshot and collects a
// ResultSet. The analyses are pure and share no state, so they run
// concurrently; a failure in one never prevents the others from completing.
func RunAll(snap *types.SurveySnapshot, opts Options) ResultSet {
	results := make(ResultSet, len(AnalysisNames))
	var mu sync.Mutex
	record := func(name string, payload any, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			results[name] = Result{Err: err.Error()}
			return
		}
		results[name] = Result{Payload: payload}
	}

	var g errgroup.Group
	g.Go(func() error {
		record(AnalysisCompositeScore, ComputeCompositeScore(snap, opts.ResolveSeries), nil)
		return nil
	})
	g.Go(func() error {
		payload, err := ComputeUnemploymentForecast(snap, opts.ResolveSeries)
		record(AnalysisUnemploymentForecast, payload, err)
		return nil
	})
	g.Go(func() error {
		payload, err := ComputeVacancyForecast(snap)
		record(AnalysisVacancyForecast, payload, err)
		return nil
	})
	g.Go(func() error {
		payload, err := ComputeIncomeProjection(snap)
		record(AnalysisIncomeProjection, payload, err)
		return nil
	})
	g.Go(func() error {
		record(AnalysisRiskAssessment, ComputeRiskAssessment(snap, opts.ResolveSeries), nil)
		return nil
	})
	g.Go(func() error {
		payload, err := ComputeEducationROI(snap, opts.Costs)
		record(AnalysisEducationROI, payload, err)
		return nil
	})
	g.Go(func() error {
		payload, err := ComputeFieldCompetitiveness(snap)
		record(AnalysisFieldCompetitiveness, payload, err)
		return nil
	})
	g.Go(func() error {
		payload, err := ComputeCareerQuadrant(snap, opts.ShortNames)
		record(AnalysisCareerQuadrant, payload, err)
		return nil
	})
	g.Go(func() error {
		payload, err := ComputeSubfieldQuadrant(snap)
		record(AnalysisSubfieldQuadrant, payload, err)
		return nil
	})
	_ = g.Wait()

	return results
}
