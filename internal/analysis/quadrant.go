package analysis

import (
	"sort"
	"strings"

	"github.com/jonathan/career-insights/internal/types"
)

// Quadrant labels. The dividing lines are the medians of the eligible
// entries, inclusive on the high side.
const (
	QuadrantHighHigh    = "High Employability + High Income"
	QuadrantNicheHigh   = "Competitive/Niche + High Income"
	QuadrantAccessible  = "Accessible + Lower Income"
	QuadrantChallenging = "Challenging + Lower Income"
)

// QuadrantEntry is one plotted point: employment rate against median income.
// EmploymentRateExact is only populated by the subfield variant.
type QuadrantEntry struct {
	Field               string  `json:"field"`
	ShortName           string  `json:"short_name"`
	EmploymentRate      float64 `json:"employment_rate"`
	MedianIncome        float64 `json:"median_income"`
	EmploymentRateExact *bool   `json:"employment_rate_is_exact,omitempty"`
	IsUser              bool    `json:"is_user"`
}

// Quadrant is the median-split scatter placement: the eligible entries, the
// median dividing lines, a padded bounding box for display, and the user's
// quadrant label (N/A when no entry is the user's).
type Quadrant struct {
	Fields       []QuadrantEntry `json:"fields"`
	EmpMidpoint  float64         `json:"emp_midpoint"`
	IncMidpoint  float64         `json:"inc_midpoint"`
	EmpMin       float64         `json:"emp_min"`
	EmpMax       float64         `json:"emp_max"`
	IncMin       float64         `json:"inc_min"`
	IncMax       float64         `json:"inc_max"`
	UserQuadrant string          `json:"user_quadrant"`
}

// SubfieldQuadrant is the quadrant placement among the subfields of the
// user's broad field. HasEstimatedRates flags that at least one employment
// rate was inherited rather than directly observed; that is a caveat, not an
// error.
type SubfieldQuadrant struct {
	Quadrant
	BroadField        string `json:"broad_field"`
	HasEstimatedRates bool   `json:"has_estimated_emp"`
}

// ComputeCareerQuadrant places the user's field among all peer fields that
// have both an employment rate and a median income. Requires at least three
// such fields. Short display names come from the supplied lookup, truncating
// the full name when absent.
func ComputeCareerQuadrant(snap *types.SurveySnapshot, shortNames map[string]string) (*Quadrant, error) {
	userField := ""
	var userFieldID types.FieldID
	var comparison []types.FieldEmployment
	var ranking []types.FieldIncome
	if snap.LabourForce != nil {
		userField = snap.LabourForce.UserField
		userFieldID = snap.LabourForce.UserFieldID
		comparison = snap.LabourForce.Comparison
	}
	if snap.Income != nil {
		ranking = snap.Income.Ranking
	}
	if len(comparison) == 0 || len(ranking) == 0 {
		return nil, insufficientData("insufficient data for career quadrant analysis")
	}

	empRates := make(map[string]float64)
	fieldIDs := make(map[string]types.FieldID)
	for _, c := range comparison {
		if c.EmploymentRate != nil {
			empRates[c.Field] = *c.EmploymentRate
		}
		if c.FieldID != "" {
			fieldIDs[c.Field] = c.FieldID
		}
	}
	incomes := make(map[string]float64)
	for _, r := range ranking {
		if r.MedianIncome != nil {
			incomes[r.Field] = *r.MedianIncome
		}
		if r.FieldID != "" {
			fieldIDs[r.Field] = r.FieldID
		}
	}

	// Only fields with both metrics qualify.
	common := make([]string, 0, len(empRates))
	for f := range empRates {
		if _, ok := incomes[f]; ok {
			common = append(common, f)
		}
	}
	sort.Strings(common)
	if len(common) < 3 {
		return nil, insufficientData("too few fields with both employment and income data")
	}

	entries := make([]QuadrantEntry, 0, len(common))
	for _, f := range common {
		entries = append(entries, QuadrantEntry{
			Field:          f,
			ShortName:      shortDisplayName(f, shortNames, 20),
			EmploymentRate: empRates[f],
			MedianIncome:   incomes[f],
			IsUser:         fieldMatches(userField, userFieldID, f, fieldIDs[f]),
		})
	}

	return buildQuadrant(entries), nil
}

// ComputeSubfieldQuadrant places the user's subfield among the subfields of
// the same broad field. Requires at least two subfields with both metrics.
func ComputeSubfieldQuadrant(snap *types.SurveySnapshot) (*SubfieldQuadrant, error) {
	section := snap.Subfields
	broadField := ""
	if section != nil {
		broadField = section.BroadField
	}

	var eligible []types.Subfield
	if section != nil {
		for _, sf := range section.Subfields {
			if sf.EmploymentRate != nil && sf.MedianIncome != nil {
				eligible = append(eligible, sf)
			}
		}
	}
	if len(eligible) < 2 {
		return nil, insufficientData("insufficient subfield data for %s (need at least 2 subfields)", broadField)
	}

	hasEstimated := false
	entries := make([]QuadrantEntry, 0, len(eligible))
	for _, sf := range eligible {
		exact := sf.RateIsExact()
		if !exact {
			hasEstimated = true
		}
		entries = append(entries, QuadrantEntry{
			Field:               sf.Name,
			ShortName:           subfieldShortName(sf.Name),
			EmploymentRate:      *sf.EmploymentRate,
			MedianIncome:        *sf.MedianIncome,
			EmploymentRateExact: types.Bool(exact),
			IsUser:              subfieldIsUser(section.UserSubfield, sf.Name),
		})
	}

	return &SubfieldQuadrant{
		Quadrant:          *buildQuadrant(entries),
		BroadField:        broadField,
		HasEstimatedRates: hasEstimated,
	}, nil
}

// buildQuadrant computes medians, the padded bounding box, and the first
// user entry's quadrant.
func buildQuadrant(entries []QuadrantEntry) *Quadrant {
	emp := make([]float64, len(entries))
	inc := make([]float64, len(entries))
	for i, e := range entries {
		emp[i] = e.EmploymentRate
		inc[i] = e.MedianIncome
	}

	empMid := median(emp)
	incMid := median(inc)

	userQuadrant := GradeNA
	for _, e := range entries {
		if !e.IsUser {
			continue
		}
		highEmp := e.EmploymentRate >= empMid
		highInc := e.MedianIncome >= incMid
		switch {
		case highEmp && highInc:
			userQuadrant = QuadrantHighHigh
		case highInc:
			userQuadrant = QuadrantNicheHigh
		case highEmp:
			userQuadrant = QuadrantAccessible
		default:
			userQuadrant = QuadrantChallenging
		}
		break
	}

	empMin, empMax := minMax(emp)
	incMin, incMax := minMax(inc)

	return &Quadrant{
		Fields:       entries,
		EmpMidpoint:  roundTo(empMid, 1),
		IncMidpoint:  roundTo(incMid, 0),
		EmpMin:       roundTo(empMin-2, 1),
		EmpMax:       roundTo(empMax+2, 1),
		IncMin:       roundTo(incMin*0.9, 0),
		IncMax:       roundTo(incMax*1.1, 0),
		UserQuadrant: userQuadrant,
	}
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// subfieldIsUser matches the user's subfield identifier against a subfield
// name: exact match or substring containment in either direction. An empty
// identifier matches nothing.
func subfieldIsUser(userSubfield, name string) bool {
	if userSubfield == "" {
		return false
	}
	return userSubfield == name ||
		strings.Contains(userSubfield, name) ||
		strings.Contains(name, userSubfield)
}

// shortDisplayName looks up a short label, truncating the full name as a
// fallback.
func shortDisplayName(field string, shortNames map[string]string, maxLen int) string {
	if short, ok := shortNames[field]; ok {
		return short
	}
	if len(field) > maxLen {
		return field[:maxLen]
	}
	return field
}

// subfieldShortName strips a leading CIP prefix like "11.07 " or "11. ",
// otherwise truncates to 25 characters.
func subfieldShortName(name string) string {
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 2 {
		prefix := strings.ReplaceAll(parts[0], ".", "")
		if prefix != "" && isDigits(prefix) {
			return parts[1]
		}
	}
	if len(name) > 25 {
		return name[:25]
	}
	return name
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
