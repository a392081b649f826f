package statcan

// Product IDs of the StatCan tables the snapshot is assembled from.
const (
	// TableLabourForce is census labour force status by field of study.
	// Dimensions: geo, education, location of study, age, gender, field,
	// status.
	TableLabourForce = 98100445
	// TableIncome is census employment income by field of study.
	// Dimensions: geo, gender, age, education, work activity, income year,
	// field, statistic.
	TableIncome = 98100409
	// TableUnemployment is the monthly labour force survey unemployment
	// series by education. Dimensions: geo, indicator, education, gender,
	// age group.
	TableUnemployment = 14100020
	// TableJobVacancies is the quarterly job vacancy and wage survey.
	// Dimensions: geo, occupation, education characteristic, statistic.
	TableJobVacancies = 14100443
	// TableGraduateOutcomes is graduate income by qualification and field.
	// Dimensions: geo, qualification, field, gender, age group, student
	// status, characteristic, statistic.
	TableGraduateOutcomes = 37100283
)

// Fixed members shared by every snapshot query. The analyses describe the
// core working-age population with full-year full-time earnings, so the age,
// gender, and work activity dimensions are pinned.
const (
	lfLocationAll     = 1 // location of study: all
	lfAge25to64       = 5
	lfGenderTotal     = 1
	lfStatusPartRate  = 6
	lfStatusEmpRate   = 7
	lfStatusUnempRate = 8

	incGenderTotal = 1
	incAge25to64   = 5
	incWorkFYFT    = 5 // full-year full-time
	incYear2020    = 1
	incStatMedian  = 3
	incStatAverage = 4

	unempIndicatorRate = 8
	unempGenderTotal   = 1
	unempAge25Plus     = 3

	vacOccupationAll = 1
	vacStatVacancies = 1

	gradGenderTotal    = 1
	gradAge15to64      = 1
	gradStatusAll      = 1
	gradCharWithIncome = 4 // graduates reporting employment income
	gradStat2YrMedian  = 2
	gradStat5YrMedian  = 3
)

// defaultVacancyCharacteristic is used when an education level has no
// matching vacancy characteristic member.
const defaultVacancyCharacteristic = 4

// Periods fetched for the two trend sections.
const (
	unemploymentPeriods = 36
	vacancyPeriods      = 20
)
