// Package catalog holds the static Statistics Canada classification data the
// system is configured with: the eleven broad fields of study with their
// table member IDs, the canonical education levels with cost assumptions,
// and a curated CIP code universe for field-of-study search.
package catalog

import "github.com/jonathan/career-insights/internal/types"

// Stable identifiers for the eleven broad fields of study.
const (
	FieldEducation     types.FieldID = "education"
	FieldArtsMedia     types.FieldID = "arts_media"
	FieldHumanities    types.FieldID = "humanities"
	FieldSocialLaw     types.FieldID = "social_sciences_law"
	FieldBusiness      types.FieldID = "business"
	FieldLifeSciences  types.FieldID = "life_sciences"
	FieldMathCS        types.FieldID = "math_cs"
	FieldEngineering   types.FieldID = "engineering"
	FieldAgriculture   types.FieldID = "agriculture"
	FieldHealth        types.FieldID = "health"
	FieldServices      types.FieldID = "services"
)

// SubfieldRef holds the StatCan member IDs of one subfield. A zero member ID
// means the subfield does not appear in that table.
type SubfieldRef struct {
	LabourForceMember int
	IncomeMember      int
}

// Field describes one broad field of study: display names and the member IDs
// used to build WDS coordinates against the labour force, income, and
// graduate outcome tables.
type Field struct {
	ID                types.FieldID
	Name              string
	ShortName         string
	LabourForceMember int
	IncomeMember      int
	GraduateMember    int
	Subfields         map[string]SubfieldRef
}

// fields is ordered as the StatCan field-of-study dimension lists them.
var fields = []Field{
	{
		ID: FieldEducation, Name: "Education", ShortName: "Education",
		LabourForceMember: 3, IncomeMember: 3, GraduateMember: 33,
		Subfields: map[string]SubfieldRef{
			"13. Education": {LabourForceMember: 4, IncomeMember: 4},
		},
	},
	{
		ID:   FieldArtsMedia,
		Name: "Visual and performing arts, and communications technologies", ShortName: "Arts & Media",
		LabourForceMember: 5, IncomeMember: 20, GraduateMember: 17,
		Subfields: map[string]SubfieldRef{
			"10. Communications technologies": {LabourForceMember: 6, IncomeMember: 21},
			"50. Visual and performing arts":  {LabourForceMember: 7, IncomeMember: 26},
		},
	},
	{
		ID: FieldHumanities, Name: "Humanities", ShortName: "Humanities",
		LabourForceMember: 8, IncomeMember: 38, GraduateMember: 19,
		Subfields: map[string]SubfieldRef{
			"23. English language and literature":  {LabourForceMember: 10, IncomeMember: 59},
			"38. Philosophy and religious studies": {LabourForceMember: 13, IncomeMember: 76},
			"54. History":                          {LabourForceMember: 15, IncomeMember: 90},
		},
	},
	{
		ID:   FieldSocialLaw,
		Name: "Social and behavioural sciences and law", ShortName: "Social Sci & Law",
		LabourForceMember: 17, IncomeMember: 97, GraduateMember: 20,
		Subfields: map[string]SubfieldRef{
			"22. Legal professions (Law)":      {LabourForceMember: 21, IncomeMember: 119},
			"42. Psychology":                   {LabourForceMember: 23, IncomeMember: 143},
			"45. Social sciences":              {LabourForceMember: 24, IncomeMember: 148},
			"45.06 Economics":                  {IncomeMember: 154},
			"09. Communication, journalism":    {LabourForceMember: 19, IncomeMember: 102},
		},
	},
	{
		ID:   FieldBusiness,
		Name: "Business, management and public administration", ShortName: "Business",
		LabourForceMember: 25, IncomeMember: 163, GraduateMember: 14,
		Subfields: map[string]SubfieldRef{
			"52. Business, management, marketing": {LabourForceMember: 28, IncomeMember: 172},
			"52.01 Business/commerce, general":    {IncomeMember: 173},
			"52.03 Accounting":                    {IncomeMember: 175},
			"52.08 Finance":                       {IncomeMember: 180},
			"52.14 Marketing":                     {IncomeMember: 186},
			"44. Public administration":           {LabourForceMember: 27, IncomeMember: 165},
		},
	},
	{
		ID:   FieldLifeSciences,
		Name: "Physical and life sciences and technologies", ShortName: "Life Sciences",
		LabourForceMember: 29, IncomeMember: 195, GraduateMember: 3,
		Subfields: map[string]SubfieldRef{
			"26. Biological and biomedical sciences": {LabourForceMember: 30, IncomeMember: 196},
			"40. Physical sciences":                  {LabourForceMember: 33, IncomeMember: 225},
		},
	},
	{
		ID:   FieldMathCS,
		Name: "Mathematics, computer and information sciences", ShortName: "Math & CS",
		LabourForceMember: 35, IncomeMember: 241, GraduateMember: 10,
		Subfields: map[string]SubfieldRef{
			"11. Computer and information sciences": {LabourForceMember: 36, IncomeMember: 242},
			"11.02 Computer programming":            {IncomeMember: 244},
			"11.04 Information science/studies":     {IncomeMember: 246},
			"11.07 Computer science":                {IncomeMember: 249},
			"11.09 Computer systems networking":     {IncomeMember: 251},
			"11.10 Computer/IT administration":      {IncomeMember: 252},
			"27. Mathematics and statistics":        {LabourForceMember: 38, IncomeMember: 258},
			"27.01 Mathematics":                     {IncomeMember: 259},
			"27.05 Statistics":                      {IncomeMember: 261},
			"30.70 Data science":                    {IncomeMember: 271},
			"30.71 Data analytics":                  {IncomeMember: 272},
		},
	},
	{
		ID:   FieldEngineering,
		Name: "Architecture, engineering, and related trades", ShortName: "Engineering",
		LabourForceMember: 40, IncomeMember: 273, GraduateMember: 7,
		Subfields: map[string]SubfieldRef{
			"04. Architecture":             {LabourForceMember: 41, IncomeMember: 274},
			"14. Engineering":              {LabourForceMember: 42, IncomeMember: 284},
			"14.07 Chemical engineering":   {IncomeMember: 291},
			"14.08 Civil engineering":      {IncomeMember: 292},
			"14.09 Computer engineering":   {IncomeMember: 293},
			"14.10 Electrical engineering": {IncomeMember: 294},
			"14.19 Mechanical engineering": {IncomeMember: 300},
			"15. Engineering technologies": {LabourForceMember: 43, IncomeMember: 326},
		},
	},
	{
		ID:   FieldAgriculture,
		Name: "Agriculture, natural resources and conservation", ShortName: "Agriculture",
		LabourForceMember: 48, IncomeMember: 371, GraduateMember: 36,
		Subfields: map[string]SubfieldRef{
			"01. Agricultural and veterinary sciences": {LabourForceMember: 49, IncomeMember: 372},
			"03. Natural resources and conservation":   {LabourForceMember: 50, IncomeMember: 392},
		},
	},
	{
		ID: FieldHealth, Name: "Health and related fields", ShortName: "Health",
		LabourForceMember: 51, IncomeMember: 399, GraduateMember: 28,
		Subfields: map[string]SubfieldRef{
			"51. Health professions":                  {LabourForceMember: 54, IncomeMember: 407},
			"51.12 Medicine":                          {IncomeMember: 419},
			"51.20 Pharmacy":                          {IncomeMember: 424},
			"51.38 Nursing":                           {IncomeMember: 436},
			"31. Parks, recreation, leisure, fitness": {LabourForceMember: 53, IncomeMember: 401},
		},
	},
	{
		ID:   FieldServices,
		Name: "Personal, protective and transportation services", ShortName: "Services",
		LabourForceMember: 57, IncomeMember: 476, GraduateMember: 38,
		Subfields: map[string]SubfieldRef{
			"12. Culinary, entertainment, personal services": {LabourForceMember: 58, IncomeMember: 477},
			"43. Security and protective services":           {LabourForceMember: 61, IncomeMember: 487},
		},
	},
}

// Fields returns the eleven broad fields in dimension order.
func Fields() []Field {
	return fields
}

// FieldByID returns the field with the given stable ID.
func FieldByID(id types.FieldID) (Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// FieldByName returns the field with the given full display name.
func FieldByName(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ShortNames returns the full-name to short-display-name lookup used for
// quadrant labeling.
func ShortNames() map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.ShortName
	}
	return out
}
