package analysis

import (
	"sort"
	"strings"

	"github.com/jonathan/career-insights/internal/types"
)

// Quartile labels shared by the competitiveness ranker.
const (
	quartileTop    = "Top quartile"
	quartileSecond = "Second quartile"
	quartileThird  = "Third quartile"
	quartileBottom = "Bottom quartile"
)

// FieldRanking is one row of the full cross-field ranking. Rank 1 is best; a
// field missing from one input list gets the worst rank on that dimension.
type FieldRanking struct {
	Field          string        `json:"field"`
	FieldID        types.FieldID `json:"field_id,omitempty"`
	EmploymentRate *float64      `json:"employment_rate"`
	MedianIncome   *float64      `json:"median_income"`
	EmploymentRank int           `json:"emp_rank"`
	IncomeRank     int           `json:"inc_rank"`
	CombinedRank   int           `json:"combined_rank"`
}

// Competitiveness ranks the user's field on employment rate and median income
// among all fields, with quartile placement and derived strengths and
// weaknesses.
type Competitiveness struct {
	EmploymentRank     *int           `json:"employment_rank"`
	IncomeRank         *int           `json:"income_rank"`
	TotalFields        int            `json:"total_fields"`
	EmploymentQuartile string         `json:"emp_quartile"`
	IncomeQuartile     string         `json:"inc_quartile"`
	Strengths          []string       `json:"strengths"`
	Weaknesses         []string       `json:"weaknesses"`
	FieldRankings      []FieldRanking `json:"field_rankings"`
}

// ComputeFieldCompetitiveness builds two independent descending rankings over
// the union of fields in the employment comparison and the income ranking,
// then sorts the union by combined rank.
func ComputeFieldCompetitiveness(snap *types.SurveySnapshot) (*Competitiveness, error) {
	var comparison []types.FieldEmployment
	var ranking []types.FieldIncome
	userField := ""
	var userFieldID types.FieldID
	if snap.LabourForce != nil {
		comparison = snap.LabourForce.Comparison
		userField = snap.LabourForce.UserField
		userFieldID = snap.LabourForce.UserFieldID
	}
	if snap.Income != nil {
		ranking = snap.Income.Ranking
	}
	if len(comparison) == 0 && len(ranking) == 0 {
		return nil, insufficientData("insufficient data for competitiveness analysis")
	}

	empRates := make(map[string]*float64, len(comparison))
	incomes := make(map[string]*float64, len(ranking))
	fieldIDs := make(map[string]types.FieldID)
	for _, c := range comparison {
		empRates[c.Field] = c.EmploymentRate
		if c.FieldID != "" {
			fieldIDs[c.Field] = c.FieldID
		}
	}
	for _, r := range ranking {
		incomes[r.Field] = r.MedianIncome
		if r.FieldID != "" {
			fieldIDs[r.Field] = r.FieldID
		}
	}

	allFields := fieldUnion(empRates, incomes)
	total := len(allFields)

	empRankOf := rankDescending(allFields, empRates)
	incRankOf := rankDescending(allFields, incomes)

	rankings := make([]FieldRanking, 0, total)
	for _, f := range allFields {
		er := empRankOf[f]
		ir := incRankOf[f]
		rankings = append(rankings, FieldRanking{
			Field:          f,
			FieldID:        fieldIDs[f],
			EmploymentRate: empRates[f],
			MedianIncome:   incomes[f],
			EmploymentRank: er,
			IncomeRank:     ir,
			CombinedRank:   er + ir,
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].CombinedRank < rankings[j].CombinedRank
	})

	result := &Competitiveness{
		TotalFields:   total,
		Strengths:     []string{},
		Weaknesses:    []string{},
		FieldRankings: rankings,
	}

	for _, f := range allFields {
		if fieldMatches(userField, userFieldID, f, fieldIDs[f]) {
			er, ir := empRankOf[f], incRankOf[f]
			result.EmploymentRank = &er
			result.IncomeRank = &ir
			break
		}
	}

	q1 := total / 4
	if q1 < 1 {
		q1 = 1
	}
	q4Start := total - q1

	result.EmploymentQuartile = quartileLabel(result.EmploymentRank, total, q1, q4Start)
	result.IncomeQuartile = quartileLabel(result.IncomeRank, total, q1, q4Start)

	if result.EmploymentRank != nil && *result.EmploymentRank <= q1 {
		result.Strengths = append(result.Strengths, "High employment rate")
	}
	if result.IncomeRank != nil && *result.IncomeRank <= q1 {
		result.Strengths = append(result.Strengths, "High income")
	}
	if result.EmploymentRank != nil && *result.EmploymentRank > q4Start {
		result.Weaknesses = append(result.Weaknesses, "Low employment rate")
	}
	if result.IncomeRank != nil && *result.IncomeRank > q4Start {
		result.Weaknesses = append(result.Weaknesses, "Low income relative to other fields")
	}

	return result, nil
}

// fieldUnion returns the sorted union of the keys of both maps.
func fieldUnion(a, b map[string]*float64) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for f := range a {
		seen[f] = true
	}
	for f := range b {
		seen[f] = true
	}
	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// rankDescending assigns 1-based ranks by descending metric value. Fields
// with no value sort as zero, landing at the bottom; ties keep alphabetical
// order via the stable sort.
func rankDescending(fields []string, values map[string]*float64) map[string]int {
	ordered := make([]string, len(fields))
	copy(ordered, fields)
	sort.SliceStable(ordered, func(i, j int) bool {
		return valueOrZero(values[ordered[i]]) > valueOrZero(values[ordered[j]])
	})
	ranks := make(map[string]int, len(ordered))
	for i, f := range ordered {
		ranks[f] = i + 1
	}
	return ranks
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func quartileLabel(rank *int, total, q1, q4Start int) string {
	if rank == nil {
		return GradeNA
	}
	switch {
	case *rank <= q1:
		return quartileTop
	case *rank <= total/2:
		return quartileSecond
	case *rank <= q4Start:
		return quartileThird
	default:
		return quartileBottom
	}
}

// fieldMatches reports whether an entry identifies the user's field. When
// both sides carry a stable FieldID the match is exact; otherwise it falls
// back to the legacy bidirectional substring containment, which can
// mis-attribute fields whose names are prefixes of one another.
func fieldMatches(userField string, userID types.FieldID, entryField string, entryID types.FieldID) bool {
	if userID != "" && entryID != "" {
		return entryID == userID
	}
	return strings.Contains(entryField, userField) || strings.Contains(userField, entryField)
}
