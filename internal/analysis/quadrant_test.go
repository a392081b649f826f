package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-insights/internal/types"
)

func TestComputeCareerQuadrant(t *testing.T) {
	quadrant, err := ComputeCareerQuadrant(mathSnapshot(), testShortNames())
	require.NoError(t, err)

	// Education has no income entry, so only four fields qualify.
	require.Len(t, quadrant.Fields, 4)

	assert.Equal(t, 83.5, quadrant.EmpMidpoint)
	assert.Equal(t, 67500.0, quadrant.IncMidpoint)
	assert.Equal(t, 76.0, quadrant.EmpMin)
	assert.Equal(t, 92.0, quadrant.EmpMax)
	assert.Equal(t, 54000.0, quadrant.IncMin)
	assert.Equal(t, 82500.0, quadrant.IncMax)

	// 85.0 / 70000 clears both medians.
	assert.Equal(t, QuadrantHighHigh, quadrant.UserQuadrant)

	userCount := 0
	for _, entry := range quadrant.Fields {
		if entry.IsUser {
			userCount++
			assert.Equal(t, mathCS, entry.Field)
			assert.Equal(t, "Math & CS", entry.ShortName)
		}
		assert.Nil(t, entry.EmploymentRateExact, "only the subfield variant flags estimates")
	}
	assert.Equal(t, 1, userCount)
}

func TestComputeCareerQuadrant_LowerQuadrants(t *testing.T) {
	snap := mathSnapshot()
	snap.LabourForce.UserField = humanities
	snap.LabourForce.UserFieldID = "humanities"

	quadrant, err := ComputeCareerQuadrant(snap, testShortNames())
	require.NoError(t, err)
	// Humanities sits below both medians.
	assert.Equal(t, QuadrantChallenging, quadrant.UserQuadrant)
}

func TestComputeCareerQuadrant_ShortNameFallback(t *testing.T) {
	quadrant, err := ComputeCareerQuadrant(mathSnapshot(), nil)
	require.NoError(t, err)

	for _, entry := range quadrant.Fields {
		assert.LessOrEqual(t, len(entry.ShortName), 20, "long names truncate without a lookup")
	}
}

func TestComputeCareerQuadrant_InsufficientData(t *testing.T) {
	_, err := ComputeCareerQuadrant(&types.SurveySnapshot{}, nil)
	require.Error(t, err)

	// Only two fields carry both metrics.
	snap := &types.SurveySnapshot{
		LabourForce: &types.LabourForceSection{
			UserField: humanities,
			Comparison: []types.FieldEmployment{
				{Field: humanities, EmploymentRate: types.Float(78)},
				{Field: business, EmploymentRate: types.Float(82)},
			},
		},
		Income: &types.IncomeSection{
			Ranking: []types.FieldIncome{
				{Field: humanities, MedianIncome: types.Float(60000)},
				{Field: business, MedianIncome: types.Float(65000)},
			},
		},
	}
	_, err = ComputeCareerQuadrant(snap, nil)
	require.Error(t, err)

	var insufficientErr *InsufficientDataError
	assert.ErrorAs(t, err, &insufficientErr)
}

func TestComputeSubfieldQuadrant(t *testing.T) {
	quadrant, err := ComputeSubfieldQuadrant(mathSnapshot())
	require.NoError(t, err)

	assert.Equal(t, mathCS, quadrant.BroadField)
	assert.True(t, quadrant.HasEstimatedRates, "the user's subfield rate is inherited")
	require.Len(t, quadrant.Fields, 3)

	assert.Equal(t, 84.9, quadrant.EmpMidpoint)
	assert.Equal(t, 75000.0, quadrant.IncMidpoint)
	assert.Equal(t, QuadrantHighHigh, quadrant.UserQuadrant)

	for _, entry := range quadrant.Fields {
		require.NotNil(t, entry.EmploymentRateExact)
		if entry.Field == "11.07 Computer science" {
			assert.True(t, entry.IsUser)
			assert.False(t, *entry.EmploymentRateExact)
			assert.Equal(t, "Computer science", entry.ShortName)
		} else {
			assert.False(t, entry.IsUser)
			assert.True(t, *entry.EmploymentRateExact)
		}
	}
}

func TestComputeSubfieldQuadrant_DropsIncompleteSubfields(t *testing.T) {
	snap := mathSnapshot()
	snap.Subfields.Subfields = append(snap.Subfields.Subfields, types.Subfield{
		Name:           "14. Engineering",
		EmploymentRate: types.Float(88),
	})

	quadrant, err := ComputeSubfieldQuadrant(snap)
	require.NoError(t, err)
	assert.Len(t, quadrant.Fields, 3, "a subfield without income does not plot")
}

func TestComputeSubfieldQuadrant_InsufficientData(t *testing.T) {
	_, err := ComputeSubfieldQuadrant(&types.SurveySnapshot{})
	require.Error(t, err)

	snap := mathSnapshot()
	snap.Subfields.Subfields = snap.Subfields.Subfields[:1]
	_, err = ComputeSubfieldQuadrant(snap)
	require.Error(t, err)

	var insufficientErr *InsufficientDataError
	assert.ErrorAs(t, err, &insufficientErr)
	assert.Contains(t, err.Error(), mathCS)
}

func TestSubfieldShortName(t *testing.T) {
	assert.Equal(t, "Computer science", subfieldShortName("11.07 Computer science"))
	assert.Equal(t, "Education", subfieldShortName("13. Education"))
	assert.Equal(t, "Plain name", subfieldShortName("Plain name"))

	long := "An extraordinarily verbose subfield name"
	assert.Equal(t, long[:25], subfieldShortName(long))
}
