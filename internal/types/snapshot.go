// Package types provides type definitions for the survey data consumed by the
// career-insights analysis engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FieldID is a stable identifier for one of the eleven broad fields of study.
// Comparison entries may carry it alongside the display name so the user's row
// can be resolved without string matching.
type FieldID string

// SurveySnapshot is the complete, immutable bundle of fetched statistics for
// one field / education / region selection. Any section may be nil; every
// analysis degrades to an explicit error or a neutral default instead of
// assuming presence.
type SurveySnapshot struct {
	LabourForce      *LabourForceSection      `json:"labour_force,omitempty"`
	Income           *IncomeSection           `json:"income,omitempty"`
	Unemployment     *UnemploymentSection     `json:"unemployment,omitempty"`
	JobVacancies     *JobVacancySection       `json:"job_vacancies,omitempty"`
	GraduateOutcomes *GraduateOutcomesSection `json:"graduate_outcomes,omitempty"`
	Subfields        *SubfieldSection         `json:"subfield_comparison,omitempty"`
}

// LabourForceSection holds the user's labour force summary and the
// cross-field employment rate comparison.
type LabourForceSection struct {
	UserField   string              `json:"user_field"`
	UserFieldID FieldID             `json:"user_field_id,omitempty"`
	Summary     *LabourForceSummary `json:"summary,omitempty"`
	Comparison  []FieldEmployment   `json:"comparison,omitempty"`
}

// LabourForceSummary holds the headline labour force rates for the user's
// field. All values are percentages on a 0-100 scale.
type LabourForceSummary struct {
	EmploymentRate    *float64 `json:"employment_rate,omitempty"`
	ParticipationRate *float64 `json:"participation_rate,omitempty"`
	UnemploymentRate  *float64 `json:"unemployment_rate,omitempty"`
}

// FieldEmployment is one row of the cross-field employment comparison.
type FieldEmployment struct {
	Field          string   `json:"field"`
	FieldID        FieldID  `json:"field_id,omitempty"`
	EmploymentRate *float64 `json:"employment_rate"`
}

// IncomeSection holds income statistics: the user's summary, the cross-field
// median income ranking, and median income by education level.
type IncomeSection struct {
	Summary     *IncomeSummary    `json:"summary,omitempty"`
	Ranking     []FieldIncome     `json:"ranking,omitempty"`
	ByEducation []EducationIncome `json:"by_education,omitempty"`
}

// IncomeSummary holds the user's median and average employment income.
type IncomeSummary struct {
	MedianIncome  *float64 `json:"median_income,omitempty"`
	AverageIncome *float64 `json:"average_income,omitempty"`
}

// FieldIncome is one row of the cross-field median income ranking.
type FieldIncome struct {
	Field        string   `json:"field"`
	FieldID      FieldID  `json:"field_id,omitempty"`
	MedianIncome *float64 `json:"median_income"`
}

// EducationIncome is the median income observed at one education level.
type EducationIncome struct {
	Education    string  `json:"education"`
	MedianIncome float64 `json:"median_income"`
}

// UnemploymentSection maps education-series names to chronological
// unemployment rate observations. UserEducation is the label the retrieval
// layer resolved for the user; SelectUserSeries in the analysis package picks
// the matching series.
type UnemploymentSection struct {
	UserEducation string                   `json:"user_education"`
	Trends        map[string][]Observation `json:"trends,omitempty"`
}

// Observation is a single dated data point in a rate time series.
type Observation struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// JobVacancySection holds the chronological job vacancy series.
type JobVacancySection struct {
	Trends []VacancyObservation `json:"trends,omitempty"`
}

// VacancyObservation is a single dated vacancy count. Vacancies is nil when
// the source suppressed or did not report the value for that period.
type VacancyObservation struct {
	Date      string   `json:"date"`
	Vacancies *float64 `json:"vacancies"`
}

// GraduateOutcomesSection holds graduate income outcomes: the user's 2- and
// 5-year medians and the cross-field 2-year comparison.
type GraduateOutcomesSection struct {
	Summary    *GraduateSummary      `json:"summary,omitempty"`
	Comparison []FieldGraduateIncome `json:"comparison,omitempty"`
}

// GraduateSummary holds graduate income anchors for the user's field.
// GrowthPct is the percentage change from the 2-year to the 5-year median.
type GraduateSummary struct {
	Income2Yr *float64 `json:"income_2yr,omitempty"`
	Income5Yr *float64 `json:"income_5yr,omitempty"`
	GrowthPct *float64 `json:"growth_pct,omitempty"`
}

// FieldGraduateIncome is one row of the cross-field 2-year income comparison.
type FieldGraduateIncome struct {
	Field     string   `json:"field"`
	FieldID   FieldID  `json:"field_id,omitempty"`
	Income2Yr *float64 `json:"income_2yr"`
}

// SubfieldSection holds the subfields of the user's broad field for the
// subfield quadrant analysis.
type SubfieldSection struct {
	BroadField   string     `json:"broad_field"`
	UserSubfield string     `json:"user_subfield,omitempty"`
	Subfields    []Subfield `json:"subfields,omitempty"`
}

// Subfield is one subfield row. An absent EmploymentRateExact means the rate
// was directly observed; false means it was inherited from the parent group
// or the broad-field average.
type Subfield struct {
	Name                string   `json:"name"`
	EmploymentRate      *float64 `json:"employment_rate"`
	MedianIncome        *float64 `json:"median_income"`
	EmploymentRateExact *bool    `json:"employment_rate_is_exact,omitempty"`
}

// RateIsExact reports whether the subfield's employment rate was directly
// observed. Absent defaults to exact.
func (s Subfield) RateIsExact() bool {
	return s.EmploymentRateExact == nil || *s.EmploymentRateExact
}

// Float returns a pointer to v. Convenience for building snapshots in code.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
