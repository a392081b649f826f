package statcan

import (
	"context"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-insights/internal/catalog"
	"github.com/jonathan/career-insights/internal/types"
)

// Selection identifies what to assemble a snapshot for. Field and Education
// are display names from the catalog; Subfield is optional. Unknown values
// degrade the same way the dropdowns do: field falls back to the all-fields
// total, education to a bachelor's degree, region to Canada.
type Selection struct {
	Field     string `json:"field" validate:"required"`
	Subfield  string `json:"subfield,omitempty"`
	Education string `json:"education" validate:"required"`
	Region    string `json:"region,omitempty"`
}

// Assembler builds survey snapshots by querying the WDS tables.
type Assembler struct {
	client *Client
}

// NewAssembler creates an assembler backed by the given client.
func NewAssembler(client *Client) *Assembler {
	return &Assembler{client: client}
}

// resolved carries the catalog entries a selection maps to.
type resolved struct {
	field  catalog.Field
	level  catalog.EducationLevel
	region catalog.Region
}

func resolve(sel Selection) resolved {
	field, ok := catalog.FieldByName(sel.Field)
	if !ok {
		// Unknown field: query the all-fields totals under the given name.
		field = catalog.Field{
			Name:              sel.Field,
			LabourForceMember: 1,
			IncomeMember:      1,
			GraduateMember:    1,
		}
	}
	level, ok := catalog.EducationLevelByName(sel.Education)
	if !ok {
		level, _ = catalog.EducationLevelByName("Bachelor's degree")
	}
	return resolved{
		field:  field,
		level:  level,
		region: catalog.RegionByName(sel.Region),
	}
}

// Snapshot assembles a survey snapshot for the selection. The five source
// tables are queried concurrently; a section whose data cannot be fetched is
// left nil rather than failing the snapshot. Only context cancellation
// returns an error.
func (a *Assembler) Snapshot(ctx context.Context, sel Selection) (*types.SurveySnapshot, error) {
	r := resolve(sel)
	snap := &types.SurveySnapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		section, err := a.labourForce(ctx, sel, r)
		snap.LabourForce = section
		return err
	})
	g.Go(func() error {
		section, err := a.income(ctx, sel, r)
		snap.Income = section
		return err
	})
	g.Go(func() error {
		section, err := a.unemployment(ctx, r)
		snap.Unemployment = section
		return err
	})
	g.Go(func() error {
		section, err := a.jobVacancies(ctx, r)
		snap.JobVacancies = section
		return err
	})
	g.Go(func() error {
		section, err := a.graduateOutcomes(ctx, r)
		snap.GraduateOutcomes = section
		return err
	})
	g.Go(func() error {
		section, err := a.subfields(ctx, sel, r)
		snap.Subfields = section
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// labourForce fetches the user's headline rates and the cross-field
// employment rate comparison from the census labour force table.
func (a *Assembler) labourForce(ctx context.Context, sel Selection, r resolved) (*types.LabourForceSection, error) {
	geo := r.region.LabourForce()
	edu := r.level.LabourForceMember
	fieldMember := r.field.LabourForceMember
	if ref, ok := r.field.Subfields[sel.Subfield]; ok && ref.LabourForceMember != 0 {
		fieldMember = ref.LabourForceMember
	}

	coord := func(field, status int) string {
		return Coordinate(geo, edu, lfLocationAll, lfAge25to64, lfGenderTotal, field, status)
	}

	empCoord := coord(fieldMember, lfStatusEmpRate)
	unempCoord := coord(fieldMember, lfStatusUnempRate)
	partCoord := coord(fieldMember, lfStatusPartRate)
	batch := []Request{
		{ProductID: TableLabourForce, Coordinate: empCoord, LatestN: 1},
		{ProductID: TableLabourForce, Coordinate: unempCoord, LatestN: 1},
		{ProductID: TableLabourForce, Coordinate: partCoord, LatestN: 1},
	}

	comparison := catalog.Fields()
	compCoords := make([]string, len(comparison))
	for i, f := range comparison {
		compCoords[i] = coord(f.LabourForceMember, lfStatusEmpRate)
		batch = append(batch, Request{ProductID: TableLabourForce, Coordinate: compCoords[i], LatestN: 1})
	}

	coordMap, err := a.client.QueryBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	section := &types.LabourForceSection{
		UserField:   r.field.Name,
		UserFieldID: r.field.ID,
	}
	summary := &types.LabourForceSummary{
		EmploymentRate:    roundPtr(extractValue(coordMap, empCoord), 1),
		UnemploymentRate:  roundPtr(extractValue(coordMap, unempCoord), 1),
		ParticipationRate: roundPtr(extractValue(coordMap, partCoord), 1),
	}
	if summary.EmploymentRate != nil || summary.UnemploymentRate != nil || summary.ParticipationRate != nil {
		section.Summary = summary
	}
	for i, f := range comparison {
		if val := extractValue(coordMap, compCoords[i]); val != nil {
			section.Comparison = append(section.Comparison, types.FieldEmployment{
				Field:          f.Name,
				FieldID:        f.ID,
				EmploymentRate: roundPtr(val, 1),
			})
		}
	}
	if section.Summary == nil && len(section.Comparison) == 0 {
		return nil, nil
	}
	return section, nil
}

// income fetches the user's income summary, the cross-field median income
// ranking, and median income by education level from the census income table.
func (a *Assembler) income(ctx context.Context, sel Selection, r resolved) (*types.IncomeSection, error) {
	geo := r.region.Income()
	edu := r.level.IncomeMember
	fieldMember := r.field.IncomeMember
	if ref, ok := r.field.Subfields[sel.Subfield]; ok && ref.IncomeMember != 0 {
		fieldMember = ref.IncomeMember
	}

	coord := func(eduMember, field, stat int) string {
		return Coordinate(geo, incGenderTotal, incAge25to64, eduMember, incWorkFYFT, incYear2020, field, stat)
	}

	medianCoord := coord(edu, fieldMember, incStatMedian)
	averageCoord := coord(edu, fieldMember, incStatAverage)
	batch := []Request{
		{ProductID: TableIncome, Coordinate: medianCoord, LatestN: 1},
		{ProductID: TableIncome, Coordinate: averageCoord, LatestN: 1},
	}

	ranking := catalog.Fields()
	rankCoords := make([]string, len(ranking))
	for i, f := range ranking {
		rankCoords[i] = coord(edu, f.IncomeMember, incStatMedian)
		batch = append(batch, Request{ProductID: TableIncome, Coordinate: rankCoords[i], LatestN: 1})
	}

	levels := catalog.EducationLevels()
	levelCoords := make([]string, len(levels))
	for i, l := range levels {
		levelCoords[i] = coord(l.IncomeMember, fieldMember, incStatMedian)
		batch = append(batch, Request{ProductID: TableIncome, Coordinate: levelCoords[i], LatestN: 1})
	}

	coordMap, err := a.client.QueryBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	section := &types.IncomeSection{}
	summary := &types.IncomeSummary{
		MedianIncome:  roundPtr(extractValue(coordMap, medianCoord), 0),
		AverageIncome: roundPtr(extractValue(coordMap, averageCoord), 0),
	}
	if summary.MedianIncome != nil || summary.AverageIncome != nil {
		section.Summary = summary
	}
	for i, f := range ranking {
		if val := extractValue(coordMap, rankCoords[i]); val != nil {
			section.Ranking = append(section.Ranking, types.FieldIncome{
				Field:        f.Name,
				FieldID:      f.ID,
				MedianIncome: roundPtr(val, 0),
			})
		}
	}
	for i, l := range levels {
		if val := extractValue(coordMap, levelCoords[i]); val != nil {
			section.ByEducation = append(section.ByEducation, types.EducationIncome{
				Education:    l.Name,
				MedianIncome: math.Round(*val),
			})
		}
	}
	if section.Summary == nil && len(section.Ranking) == 0 && len(section.ByEducation) == 0 {
		return nil, nil
	}
	return section, nil
}

// unemployment fetches three years of monthly unemployment rates for every
// education series. Dates are truncated to the year.
func (a *Assembler) unemployment(ctx context.Context, r resolved) (*types.UnemploymentSection, error) {
	geo := r.region.Unemployment()
	series := catalog.UnemploymentSeries()

	batch := make([]Request, len(series))
	coords := make([]string, len(series))
	for i, s := range series {
		coords[i] = Coordinate(geo, unempIndicatorRate, s.ID, unempGenderTotal, unempAge25Plus)
		batch[i] = Request{ProductID: TableUnemployment, Coordinate: coords[i], LatestN: unemploymentPeriods}
	}

	coordMap, err := a.client.QueryBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	trends := make(map[string][]types.Observation)
	for i, s := range series {
		points := extractSeries(coordMap, coords[i])
		if len(points) == 0 {
			continue
		}
		observations := make([]types.Observation, len(points))
		for j, dp := range points {
			date := dp.RefPer
			if len(date) > 4 {
				date = date[:4]
			}
			observations[j] = types.Observation{Date: date, Value: *dp.Value}
		}
		trends[s.Name] = observations
	}
	if len(trends) == 0 {
		return nil, nil
	}
	return &types.UnemploymentSection{
		UserEducation: r.level.Name,
		Trends:        trends,
	}, nil
}

// jobVacancies fetches the quarterly vacancy series for the user's education
// characteristic.
func (a *Assembler) jobVacancies(ctx context.Context, r resolved) (*types.JobVacancySection, error) {
	geo := r.region.Vacancies()
	char := r.level.JobVacMember
	if char == 0 {
		char = defaultVacancyCharacteristic
	}

	coord := Coordinate(geo, vacOccupationAll, char, vacStatVacancies)
	coordMap, err := a.client.QueryBatch(ctx, []Request{
		{ProductID: TableJobVacancies, Coordinate: coord, LatestN: vacancyPeriods},
	})
	if err != nil {
		return nil, err
	}

	points := extractSeries(coordMap, coord)
	if len(points) == 0 {
		return nil, nil
	}
	trends := make([]types.VacancyObservation, len(points))
	for i, dp := range points {
		value := *dp.Value
		trends[i] = types.VacancyObservation{Date: dp.RefPer, Vacancies: &value}
	}
	return &types.JobVacancySection{Trends: trends}, nil
}

// graduateOutcomes fetches the user's 2- and 5-year graduate income medians
// and the cross-field 2-year comparison.
func (a *Assembler) graduateOutcomes(ctx context.Context, r resolved) (*types.GraduateOutcomesSection, error) {
	geo := r.region.Graduate()
	qual := r.level.GraduateMember
	if qual == 0 {
		qual = 1 // total, all qualifications
	}

	coord := func(field, stat int) string {
		return Coordinate(geo, qual, field, gradGenderTotal, gradAge15to64, gradStatusAll, gradCharWithIncome, stat)
	}

	inc2Coord := coord(r.field.GraduateMember, gradStat2YrMedian)
	inc5Coord := coord(r.field.GraduateMember, gradStat5YrMedian)
	batch := []Request{
		{ProductID: TableGraduateOutcomes, Coordinate: inc2Coord, LatestN: 1},
		{ProductID: TableGraduateOutcomes, Coordinate: inc5Coord, LatestN: 1},
	}

	comparison := catalog.Fields()
	compCoords := make([]string, len(comparison))
	for i, f := range comparison {
		compCoords[i] = coord(f.GraduateMember, gradStat2YrMedian)
		batch = append(batch, Request{ProductID: TableGraduateOutcomes, Coordinate: compCoords[i], LatestN: 1})
	}

	coordMap, err := a.client.QueryBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	section := &types.GraduateOutcomesSection{}
	income2 := roundPtr(extractValue(coordMap, inc2Coord), 0)
	income5 := roundPtr(extractValue(coordMap, inc5Coord), 0)
	if income2 != nil || income5 != nil {
		summary := &types.GraduateSummary{Income2Yr: income2, Income5Yr: income5}
		if income2 != nil && income5 != nil && *income2 > 0 {
			growth := math.Round((*income5-*income2)/(*income2)*100*10) / 10
			summary.GrowthPct = &growth
		}
		section.Summary = summary
	}
	for i, f := range comparison {
		if val := extractValue(coordMap, compCoords[i]); val != nil {
			section.Comparison = append(section.Comparison, types.FieldGraduateIncome{
				Field:     f.Name,
				FieldID:   f.ID,
				Income2Yr: roundPtr(val, 0),
			})
		}
	}
	if section.Summary == nil && len(section.Comparison) == 0 {
		return nil, nil
	}
	return section, nil
}

// subfields fetches employment rate and median income for every subfield of
// the user's broad field. Subfields without their own labour force series
// inherit the employment rate of their two-digit parent group, or failing
// that the broad field's rate, and are marked as estimated.
func (a *Assembler) subfields(ctx context.Context, sel Selection, r resolved) (*types.SubfieldSection, error) {
	if len(r.field.Subfields) == 0 {
		return nil, nil
	}

	geoLF := r.region.LabourForce()
	eduLF := r.level.LabourForceMember
	geoInc := r.region.Income()
	eduInc := r.level.IncomeMember

	empCoord := func(member int) string {
		return Coordinate(geoLF, eduLF, lfLocationAll, lfAge25to64, lfGenderTotal, member, lfStatusEmpRate)
	}
	incCoord := func(member int) string {
		return Coordinate(geoInc, incGenderTotal, incAge25to64, eduInc, incWorkFYFT, incYear2020, member, incStatMedian)
	}

	broadEmpCoord := empCoord(r.field.LabourForceMember)
	batch := []Request{{ProductID: TableLabourForce, Coordinate: broadEmpCoord, LatestN: 1}}

	type subfieldCoords struct {
		name string
		emp  string
		inc  string
	}
	metas := make([]subfieldCoords, 0, len(r.field.Subfields))
	for name, ref := range r.field.Subfields {
		meta := subfieldCoords{name: name}
		if ref.LabourForceMember != 0 {
			meta.emp = empCoord(ref.LabourForceMember)
			batch = append(batch, Request{ProductID: TableLabourForce, Coordinate: meta.emp, LatestN: 1})
		}
		if ref.IncomeMember != 0 {
			meta.inc = incCoord(ref.IncomeMember)
			batch = append(batch, Request{ProductID: TableIncome, Coordinate: meta.inc, LatestN: 1})
		}
		metas = append(metas, meta)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].name < metas[j].name })

	coordMap, err := a.client.QueryBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	broadEmpRate := roundPtr(extractValue(coordMap, broadEmpCoord), 1)

	// Two-digit CIP prefix to observed rate, for inheritance.
	prefixRates := make(map[string]*float64)
	for _, meta := range metas {
		if meta.emp == "" {
			continue
		}
		if val := roundPtr(extractValue(coordMap, meta.emp), 1); val != nil {
			prefixRates[cipPrefix(meta.name)] = val
		}
	}

	section := &types.SubfieldSection{
		BroadField:   r.field.Name,
		UserSubfield: sel.Subfield,
	}
	for _, meta := range metas {
		entry := types.Subfield{Name: meta.name}
		if meta.emp != "" {
			if val := roundPtr(extractValue(coordMap, meta.emp), 1); val != nil {
				entry.EmploymentRate = val
				entry.EmploymentRateExact = types.Bool(true)
			}
		}
		if entry.EmploymentRate == nil {
			if val, ok := prefixRates[cipPrefix(meta.name)]; ok {
				entry.EmploymentRate = val
			} else if broadEmpRate != nil {
				entry.EmploymentRate = broadEmpRate
			}
			if entry.EmploymentRate != nil {
				entry.EmploymentRateExact = types.Bool(false)
			}
		}
		if meta.inc != "" {
			entry.MedianIncome = roundPtr(extractValue(coordMap, meta.inc), 0)
		}
		if entry.EmploymentRate != nil && entry.MedianIncome != nil {
			section.Subfields = append(section.Subfields, entry)
		}
	}
	if len(section.Subfields) == 0 {
		return nil, nil
	}
	return section, nil
}

// cipPrefix extracts the part of a subfield name before the first dot, the
// two-digit CIP series for names like "11. Computer and information sciences".
func cipPrefix(name string) string {
	prefix, _, _ := strings.Cut(name, ".")
	return strings.TrimSpace(prefix)
}

// extractValue returns the latest value for a coordinate, or nil.
func extractValue(coordMap map[string]*Series, coord string) *float64 {
	obj, ok := coordMap[coord]
	if !ok || len(obj.DataPoints) == 0 {
		return nil
	}
	return obj.DataPoints[0].Value
}

// extractSeries returns the data points for a coordinate with suppressed
// values dropped.
func extractSeries(coordMap map[string]*Series, coord string) []DataPoint {
	obj, ok := coordMap[coord]
	if !ok {
		return nil
	}
	points := make([]DataPoint, 0, len(obj.DataPoints))
	for _, dp := range obj.DataPoints {
		if dp.Value != nil {
			points = append(points, dp)
		}
	}
	return points
}

// roundPtr rounds through a pointer, keeping nil as nil.
func roundPtr(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	factor := math.Pow(10, float64(decimals))
	rounded := math.Round(*v*factor) / factor
	return &rounded
}
