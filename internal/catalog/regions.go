package catalog

// Region describes one geography with its member ID in each StatCan table.
// The tables number their geography dimensions differently: the labour force
// census table interleaves sub-provincial areas, the survey tables list the
// provinces sequentially, and the unemployment and graduate tables cover the
// territories partially or as a single combined member.
type Region struct {
	Name               string
	LabourForceMember  int
	IncomeMember       int
	UnemploymentMember int
	VacancyMember      int
	GraduateMember     int
}

// regions is every supported geography in StatCan presentation order. A zero
// member means the table has no series for that geography; lookups fall back
// to Canada.
var regions = []Region{
	{Name: "Canada", LabourForceMember: 1, IncomeMember: 1, UnemploymentMember: 1, VacancyMember: 1, GraduateMember: 1},
	{Name: "Newfoundland and Labrador", LabourForceMember: 2, IncomeMember: 2, UnemploymentMember: 2, VacancyMember: 2, GraduateMember: 2},
	{Name: "Prince Edward Island", LabourForceMember: 7, IncomeMember: 3, UnemploymentMember: 3, VacancyMember: 3, GraduateMember: 3},
	{Name: "Nova Scotia", LabourForceMember: 10, IncomeMember: 4, UnemploymentMember: 4, VacancyMember: 4, GraduateMember: 4},
	{Name: "New Brunswick", LabourForceMember: 16, IncomeMember: 5, UnemploymentMember: 5, VacancyMember: 5, GraduateMember: 5},
	{Name: "Quebec", LabourForceMember: 26, IncomeMember: 6, UnemploymentMember: 6, VacancyMember: 6, GraduateMember: 6},
	{Name: "Ontario", LabourForceMember: 56, IncomeMember: 7, UnemploymentMember: 7, VacancyMember: 7, GraduateMember: 7},
	{Name: "Manitoba", LabourForceMember: 104, IncomeMember: 8, UnemploymentMember: 8, VacancyMember: 8, GraduateMember: 8},
	{Name: "Saskatchewan", LabourForceMember: 111, IncomeMember: 9, UnemploymentMember: 9, VacancyMember: 9, GraduateMember: 9},
	{Name: "Alberta", LabourForceMember: 121, IncomeMember: 10, UnemploymentMember: 10, VacancyMember: 10, GraduateMember: 10},
	{Name: "British Columbia", LabourForceMember: 141, IncomeMember: 11, UnemploymentMember: 11, VacancyMember: 11, GraduateMember: 11},
	{Name: "Yukon", LabourForceMember: 170, IncomeMember: 12, VacancyMember: 12, GraduateMember: 12},
	{Name: "Northwest Territories", LabourForceMember: 172, IncomeMember: 13, VacancyMember: 13, GraduateMember: 12},
	{Name: "Nunavut", LabourForceMember: 174, IncomeMember: 14, VacancyMember: 14, GraduateMember: 12},
}

// Regions returns all supported geographies in presentation order.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// RegionByName finds a region by its display name. Unknown names resolve to
// Canada, matching how unrecognized selections degrade to national data.
func RegionByName(name string) Region {
	for _, r := range regions {
		if r.Name == name {
			return r
		}
	}
	return regions[0]
}

// RegionNames returns the display names of every supported geography.
func RegionNames() []string {
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.Name
	}
	return names
}

// member returns id, or the Canada member when the table has no series for
// this geography.
func member(id int) int {
	if id == 0 {
		return 1
	}
	return id
}

// LabourForce returns the labour force table member for this region.
func (r Region) LabourForce() int { return member(r.LabourForceMember) }

// Income returns the income table member for this region.
func (r Region) Income() int { return member(r.IncomeMember) }

// Unemployment returns the unemployment trends table member for this region.
func (r Region) Unemployment() int { return member(r.UnemploymentMember) }

// Vacancies returns the job vacancy table member for this region.
func (r Region) Vacancies() int { return member(r.VacancyMember) }

// Graduate returns the graduate outcomes table member for this region.
func (r Region) Graduate() int { return member(r.GraduateMember) }
