package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-insights/internal/types"
)

func TestComputeFieldCompetitiveness(t *testing.T) {
	comp, err := ComputeFieldCompetitiveness(mathSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 5, comp.TotalFields)
	require.NotNil(t, comp.EmploymentRank)
	require.NotNil(t, comp.IncomeRank)
	assert.Equal(t, 2, *comp.EmploymentRank)
	assert.Equal(t, 2, *comp.IncomeRank)
	assert.Equal(t, quartileSecond, comp.EmploymentQuartile)
	assert.Equal(t, quartileSecond, comp.IncomeQuartile)

	// Rank 2 of 5 is neither a top-quartile strength nor a weakness.
	assert.Empty(t, comp.Strengths)
	assert.Empty(t, comp.Weaknesses)

	// Engineering leads both rankings, so it leads the combined ordering.
	require.Len(t, comp.FieldRankings, 5)
	assert.Equal(t, engineering, comp.FieldRankings[0].Field)
	assert.Equal(t, 2, comp.FieldRankings[0].CombinedRank)
	assert.Equal(t, mathCS, comp.FieldRankings[1].Field)
}

func TestComputeFieldCompetitiveness_TopField(t *testing.T) {
	snap := mathSnapshot()
	snap.LabourForce.UserField = engineering
	snap.LabourForce.UserFieldID = "engineering"

	comp, err := ComputeFieldCompetitiveness(snap)
	require.NoError(t, err)

	require.NotNil(t, comp.EmploymentRank)
	assert.Equal(t, 1, *comp.EmploymentRank)
	assert.Equal(t, quartileTop, comp.EmploymentQuartile)
	assert.Contains(t, comp.Strengths, "High employment rate")
	assert.Contains(t, comp.Strengths, "High income")
}

func TestComputeFieldCompetitiveness_BottomField(t *testing.T) {
	snap := mathSnapshot()
	snap.LabourForce.UserField = humanities
	snap.LabourForce.UserFieldID = "humanities"

	comp, err := ComputeFieldCompetitiveness(snap)
	require.NoError(t, err)

	require.NotNil(t, comp.EmploymentRank)
	assert.Equal(t, 5, *comp.EmploymentRank)
	assert.Equal(t, quartileBottom, comp.EmploymentQuartile)
	assert.Contains(t, comp.Weaknesses, "Low employment rate")
}

func TestComputeFieldCompetitiveness_FieldMissingFromOneList(t *testing.T) {
	comp, err := ComputeFieldCompetitiveness(mathSnapshot())
	require.NoError(t, err)

	// Education has an employment rate but no income entry, so it takes the
	// worst income rank.
	for _, r := range comp.FieldRankings {
		if r.Field == education {
			assert.Nil(t, r.MedianIncome)
			assert.Equal(t, 5, r.IncomeRank)
			return
		}
	}
	t.Fatal("Education missing from rankings")
}

func TestComputeFieldCompetitiveness_UserUnknown(t *testing.T) {
	snap := mathSnapshot()
	snap.LabourForce.UserField = "Underwater basket weaving"
	snap.LabourForce.UserFieldID = "basket_weaving"

	comp, err := ComputeFieldCompetitiveness(snap)
	require.NoError(t, err)

	assert.Nil(t, comp.EmploymentRank)
	assert.Nil(t, comp.IncomeRank)
	assert.Equal(t, GradeNA, comp.EmploymentQuartile)
	assert.Equal(t, GradeNA, comp.IncomeQuartile)
}

func TestComputeFieldCompetitiveness_InsufficientData(t *testing.T) {
	_, err := ComputeFieldCompetitiveness(&types.SurveySnapshot{})
	require.Error(t, err)

	var insufficientErr *InsufficientDataError
	assert.ErrorAs(t, err, &insufficientErr)
}

func TestFieldMatches(t *testing.T) {
	// Stable IDs on both sides decide exactly.
	assert.True(t, fieldMatches("x", "math_cs", "y", "math_cs"))
	assert.False(t, fieldMatches("Humanities", "humanities", "Humanities", "math_cs"))

	// Without IDs, bidirectional containment applies.
	assert.True(t, fieldMatches("Humanities", "", "Humanities", ""))
	assert.True(t, fieldMatches("Health", "", "Health and related fields", ""))
	assert.False(t, fieldMatches("Business", "", "Humanities", ""))
}
