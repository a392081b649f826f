package analysis

import (
	"math"
	"sort"
)

// GradeNA is the sentinel grade for metrics that could not be computed.
const GradeNA = "N/A"

// PercentileScore returns the 0-100 percentile score of value within
// population: the fraction of the population strictly below the value, scaled
// by n-1. Ties are not counted as below. Returns the neutral 50.0 when the
// value is absent or the population has fewer than two elements.
func PercentileScore(value *float64, population []float64) float64 {
	if value == nil || len(population) == 0 {
		return 50.0
	}
	n := len(population)
	if n == 1 {
		return 50.0
	}
	below := 0
	for _, p := range population {
		if p < *value {
			below++
		}
	}
	return math.Min(100.0, float64(below)/float64(n-1)*100.0)
}

// GradeScale is an ordered four-cutoff table mapping a numeric score to a
// letter grade A through F. With LowerIsBetter false a score at or above
// Cutoffs[0] grades A, at or above Cutoffs[1] grades B, and so on; below
// Cutoffs[3] grades F. With LowerIsBetter true the comparisons invert: a
// score strictly below Cutoffs[0] grades A.
type GradeScale struct {
	Cutoffs       [4]float64
	LowerIsBetter bool
}

// Grade scales used across the engine. Composite grading also applies to the
// overall career prospect score; the volatility and symmetry scales belong to
// the risk assessment.
var (
	CompositeGradeScale  = GradeScale{Cutoffs: [4]float64{80, 65, 50, 35}}
	VolatilityGradeScale = GradeScale{Cutoffs: [4]float64{10, 20, 30, 40}, LowerIsBetter: true}
	SymmetryGradeScale   = GradeScale{Cutoffs: [4]float64{0.95, 0.85, 0.75, 0.65}}
	overallGradeScale    = GradeScale{Cutoffs: [4]float64{3.5, 2.5, 1.5, 0.5}}
)

// Grade maps score to a letter grade using the scale's cutoffs.
func (s GradeScale) Grade(score float64) string {
	letters := [4]string{"A", "B", "C", "D"}
	for i, cutoff := range s.Cutoffs {
		if s.LowerIsBetter {
			if score < cutoff {
				return letters[i]
			}
		} else if score >= cutoff {
			return letters[i]
		}
	}
	return "F"
}

// gradePoints maps letter grades to the 0-4 scale used when averaging
// sub-grades into an overall grade. N/A has no point value and is excluded.
var gradePoints = map[string]float64{"A": 4, "B": 3, "C": 2, "D": 1, "F": 0}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// median returns the interpolated median: for an even count, the average of
// the two middle values.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// linearFit performs an ordinary least-squares degree-1 fit of values against
// their 0-based indices and returns (slope, intercept).
func linearFit(values []float64) (float64, float64) {
	n := float64(len(values))
	if len(values) == 0 {
		return 0, 0
	}
	if len(values) == 1 {
		return 0, values[0]
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return slope, intercept
}

// movingAverage returns a trailing moving average of the given window. For
// indices before the window fills, the average runs over however many points
// are available. Series shorter than the window are returned unchanged.
func movingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if len(values) < window {
		copy(out, values)
		return out
	}
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		out[i] = mean(values[start : i+1])
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
