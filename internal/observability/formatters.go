// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-insights/internal/analysis"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for analysis results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// boxTitles maps analysis names to their display headings.
var boxTitles = map[string]string{
	analysis.AnalysisCompositeScore:       "CAREER PROSPECT SCORE",
	analysis.AnalysisUnemploymentForecast: "UNEMPLOYMENT FORECAST",
	analysis.AnalysisVacancyForecast:      "JOB VACANCY FORECAST",
	analysis.AnalysisIncomeProjection:     "INCOME PROJECTION",
	analysis.AnalysisRiskAssessment:       "RISK ASSESSMENT",
	analysis.AnalysisEducationROI:         "EDUCATION ROI",
	analysis.AnalysisFieldCompetitiveness: "FIELD COMPETITIVENESS",
	analysis.AnalysisCareerQuadrant:       "CAREER QUADRANT",
	analysis.AnalysisSubfieldQuadrant:     "SUBFIELD QUADRANT",
}

// PrintResults outputs every analysis result in presentation order. Failed
// analyses are shown with their error instead of being dropped.
func (p *Printer) PrintResults(results analysis.ResultSet) {
	for _, name := range analysis.AnalysisNames {
		result, ok := results[name]
		if !ok {
			continue
		}
		title := boxTitles[name]
		if title == "" {
			title = strings.ToUpper(name)
		}
		if result.Failed() {
			p.printBox(title, fmt.Sprintf("Unavailable: %s", result.Err))
			continue
		}
		p.printPayload(title, result.Payload)
	}
}

func (p *Printer) printPayload(title string, payload any) {
	switch v := payload.(type) {
	case *analysis.CompositeScore:
		p.PrintCompositeScore(v)
	case *analysis.Forecast:
		p.PrintForecast(title, v)
	case *analysis.IncomeProjection:
		p.PrintIncomeProjection(v)
	case *analysis.RiskAssessment:
		p.PrintRiskAssessment(v)
	case *analysis.EducationROI:
		p.PrintEducationROI(v)
	case *analysis.Competitiveness:
		p.PrintCompetitiveness(v)
	case *analysis.SubfieldQuadrant:
		p.PrintSubfieldQuadrant(v)
	case *analysis.Quadrant:
		p.PrintQuadrant(title, v)
	default:
		p.printBox(title, fmt.Sprintf("%v", v))
	}
}

// PrintCompositeScore outputs the weighted score with its component
// breakdown.
func (p *Printer) PrintCompositeScore(score *analysis.CompositeScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %.1f / 100   Grade: %s\n\n", score.Total, score.Grade))
	sb.WriteString(fmt.Sprintf("  Employment:  %5.1f\n", score.Components.Employment))
	sb.WriteString(fmt.Sprintf("  Income:      %5.1f\n", score.Components.Income))
	sb.WriteString(fmt.Sprintf("  Trend:       %5.1f\n", score.Components.Trend))
	sb.WriteString(fmt.Sprintf("  Demand:      %5.1f\n", score.Components.Demand))
	sb.WriteString(fmt.Sprintf("  Growth:      %5.1f", score.Components.Growth))

	p.printBox("CAREER PROSPECT SCORE", sb.String())
}

// PrintForecast outputs a trend forecast: interpretation, slope, and the
// extrapolated points.
func (p *Printer) PrintForecast(title string, forecast *analysis.Forecast) {
	if forecast == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(forecast.Interpretation + "\n")
	sb.WriteString(fmt.Sprintf("Slope: %+.2f per period\n\n", forecast.Slope))
	for i, date := range forecast.ForecastDates {
		if i >= len(forecast.ForecastValues) {
			break
		}
		sb.WriteString(fmt.Sprintf("  %-8s %.1f", date, forecast.ForecastValues[i]))
		if i < len(forecast.LowerBand) && i < len(forecast.UpperBand) {
			sb.WriteString(fmt.Sprintf("  (%.1f – %.1f)", forecast.LowerBand[i], forecast.UpperBand[i]))
		}
		sb.WriteString("\n")
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIncomeProjection outputs the fitted formula and the projected income
// points.
func (p *Printer) PrintIncomeProjection(projection *analysis.IncomeProjection) {
	if projection == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("income = %.2f * ln(year) + %.2f\n\n", projection.Formula.A, projection.Formula.B))
	for _, point := range projection.DataPoints {
		sb.WriteString(fmt.Sprintf("  Year %-3d $%.0f  (observed)\n", point.Year, point.Income))
	}
	for _, point := range projection.ProjectedPoints {
		sb.WriteString(fmt.Sprintf("  Year %-3d $%.0f  (projected)\n", point.Year, point.Income))
	}

	p.printBox("INCOME PROJECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRiskAssessment outputs the risk metrics, grades, and interpretation.
func (p *Printer) PrintRiskAssessment(risk *analysis.RiskAssessment) {
	if risk == nil {
		return
	}

	var sb strings.Builder
	if risk.VolatilityCV != nil {
		sb.WriteString(fmt.Sprintf("Volatility CV:   %.2f%%  [%s]\n", *risk.VolatilityCV, risk.VolatilityGrade))
	} else {
		sb.WriteString("Volatility CV:   N/A\n")
	}
	if risk.IncomeSymmetry != nil {
		sb.WriteString(fmt.Sprintf("Income symmetry: %.3f  [%s]\n", *risk.IncomeSymmetry, risk.SymmetryGrade))
	} else {
		sb.WriteString("Income symmetry: N/A\n")
	}
	sb.WriteString(fmt.Sprintf("Overall grade:   %s\n\n", risk.OverallGrade))
	sb.WriteString(risk.Interpretation)

	p.printBox("RISK ASSESSMENT", sb.String())
}

// PrintEducationROI outputs each education step and highlights the best one.
func (p *Printer) PrintEducationROI(roi *analysis.EducationROI) {
	if roi == nil || len(roi.Levels) == 0 {
		return
	}

	var sb strings.Builder
	for _, step := range roi.Levels {
		sb.WriteString(fmt.Sprintf("%s -> %s\n", step.FromLevel, step.ToLevel))
		sb.WriteString(fmt.Sprintf("  Premium: $%.0f (%.1f%%)", step.IncomePremium, step.PremiumPct))
		if step.BreakEvenYears != nil {
			sb.WriteString(fmt.Sprintf("  Break-even: %.1f yr", *step.BreakEvenYears))
		} else {
			sb.WriteString("  No positive return")
		}
		sb.WriteString("\n")
	}
	if roi.BestROI != nil {
		sb.WriteString(fmt.Sprintf("\nBest step: %s -> %s", roi.BestROI.FromLevel, roi.BestROI.ToLevel))
	}

	p.printBox("EDUCATION ROI", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompetitiveness outputs the user's ranks, quartiles, and the derived
// strengths and weaknesses.
func (p *Printer) PrintCompetitiveness(comp *analysis.Competitiveness) {
	if comp == nil {
		return
	}

	var sb strings.Builder
	if comp.EmploymentRank != nil {
		sb.WriteString(fmt.Sprintf("Employment rank: %d of %d  (%s)\n", *comp.EmploymentRank, comp.TotalFields, comp.EmploymentQuartile))
	}
	if comp.IncomeRank != nil {
		sb.WriteString(fmt.Sprintf("Income rank:     %d of %d  (%s)\n", *comp.IncomeRank, comp.TotalFields, comp.IncomeQuartile))
	}
	if len(comp.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range comp.Strengths {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}
	if len(comp.Weaknesses) > 0 {
		sb.WriteString("\nWeaknesses:\n")
		for _, w := range comp.Weaknesses {
			sb.WriteString(fmt.Sprintf("  • %s\n", w))
		}
	}

	p.printBox("FIELD COMPETITIVENESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuadrant outputs the user's quadrant and the top plotted entries.
func (p *Printer) PrintQuadrant(title string, quadrant *analysis.Quadrant) {
	if quadrant == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Placement: %s\n", quadrant.UserQuadrant))
	sb.WriteString(fmt.Sprintf("Midpoints: %.1f%% employment, $%.0f income\n\n", quadrant.EmpMidpoint, quadrant.IncMidpoint))

	count := min(len(quadrant.Fields), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := quadrant.Fields[i]
		marker := "  "
		if entry.IsUser {
			marker = "* "
		}
		sb.WriteString(fmt.Sprintf("%s%-22s %5.1f%%  $%.0f\n", marker, entry.ShortName, entry.EmploymentRate, entry.MedianIncome))
	}
	if len(quadrant.Fields) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(quadrant.Fields)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSubfieldQuadrant outputs the within-field quadrant with its estimated
// rate caveat.
func (p *Printer) PrintSubfieldQuadrant(quadrant *analysis.SubfieldQuadrant) {
	if quadrant == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Within: %s\n", quadrant.BroadField))
	sb.WriteString(fmt.Sprintf("Placement: %s\n", quadrant.UserQuadrant))
	if quadrant.HasEstimatedRates {
		sb.WriteString("Note: some employment rates are estimated\n")
	}
	sb.WriteString("\n")

	count := min(len(quadrant.Fields), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := quadrant.Fields[i]
		marker := "  "
		if entry.IsUser {
			marker = "* "
		}
		sb.WriteString(fmt.Sprintf("%s%-22s %5.1f%%  $%.0f\n", marker, entry.ShortName, entry.EmploymentRate, entry.MedianIncome))
	}
	if len(quadrant.Fields) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(quadrant.Fields)-maxItemsToShow))
	}

	p.printBox("SUBFIELD QUADRANT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintError outputs an error in a formatted box.
func (p *Printer) PrintError(context string, err error) {
	if err == nil {
		return
	}
	p.printBox("ERROR: "+context, err.Error())
}
