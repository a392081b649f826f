package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-insights/internal/types"
)

func TestPercentileScore(t *testing.T) {
	population := []float64{78, 80, 82, 85, 90}

	tests := []struct {
		name  string
		value *float64
		want  float64
	}{
		{"above most", types.Float(85), 75.0},
		{"top of population", types.Float(90), 100.0},
		{"bottom of population", types.Float(78), 0.0},
		{"tie does not count as below", types.Float(80), 25.0},
		{"nil value is neutral", nil, 50.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentileScore(tt.value, population))
		})
	}
}

func TestPercentileScore_SmallPopulations(t *testing.T) {
	assert.Equal(t, 50.0, PercentileScore(types.Float(10), nil))
	assert.Equal(t, 50.0, PercentileScore(types.Float(10), []float64{5}))
}

func TestGradeScale_HigherIsBetter(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "A"},
		{80, "A"},
		{79.9, "B"},
		{65, "B"},
		{50, "C"},
		{35, "D"},
		{34.9, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompositeGradeScale.Grade(tt.score), "score %v", tt.score)
	}
}

func TestGradeScale_LowerIsBetter(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{5, "A"},
		{10, "B"},
		{19.9, "B"},
		{25, "C"},
		{35, "D"},
		{40, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VolatilityGradeScale.Grade(tt.score), "score %v", tt.score)
	}
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 3.0, median([]float64{3}))
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 2, 3}), "even count averages the middle pair")
}

func TestLinearFit(t *testing.T) {
	slope, intercept := linearFit([]float64{1, 3, 5, 7})
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 1.0, intercept, 1e-9)

	slope, intercept = linearFit([]float64{5})
	assert.Equal(t, 0.0, slope)
	assert.Equal(t, 5.0, intercept)

	slope, intercept = linearFit(nil)
	assert.Equal(t, 0.0, slope)
	assert.Equal(t, 0.0, intercept)
}

func TestMovingAverage(t *testing.T) {
	got := movingAverage([]float64{8, 7, 6, 5, 4, 3}, 3)
	assert.Equal(t, []float64{8, 7.5, 7, 6, 5, 4}, got)

	short := movingAverage([]float64{1, 2}, 3)
	assert.Equal(t, []float64{1, 2}, short, "series shorter than the window pass through")
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 83.3, roundTo(83.25, 1))
	assert.Equal(t, 85500.0, roundTo(85500.4, 0))
	assert.Equal(t, -0.8143, roundTo(-0.81428571, 4))
}
