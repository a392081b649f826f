package catalog

import "github.com/jonathan/career-insights/internal/types"

// cipToBroad maps 2-digit CIP series to the broad field they roll up to.
// Series 02, 06-08, etc. are unused in CIP Canada 2021.
var cipToBroad = map[string]types.FieldID{
	"01": FieldAgriculture,
	"03": FieldAgriculture,
	"04": FieldEngineering,
	"05": FieldSocialLaw,
	"09": FieldSocialLaw,
	"10": FieldArtsMedia,
	"11": FieldMathCS,
	"12": FieldServices,
	"13": FieldEducation,
	"14": FieldEngineering,
	"15": FieldEngineering,
	"16": FieldHumanities,
	"19": FieldSocialLaw,
	"22": FieldSocialLaw,
	"23": FieldHumanities,
	"24": FieldHumanities,
	"25": FieldMathCS,
	"26": FieldLifeSciences,
	"27": FieldMathCS,
	"29": FieldEngineering,
	"30": FieldLifeSciences,
	"31": FieldHealth,
	"38": FieldHumanities,
	"39": FieldHumanities,
	"40": FieldLifeSciences,
	"41": FieldLifeSciences,
	"42": FieldSocialLaw,
	"43": FieldServices,
	"44": FieldBusiness,
	"45": FieldSocialLaw,
	"46": FieldEngineering,
	"47": FieldEngineering,
	"48": FieldEngineering,
	"49": FieldServices,
	"50": FieldArtsMedia,
	"51": FieldHealth,
	"52": FieldBusiness,
	"54": FieldHumanities,
	"55": FieldHumanities,
	"60": FieldHealth,
	"61": FieldHealth,
}

// CIPEntry is one entry of the CIP Canada 2021 classification.
type CIPEntry struct {
	Code string
	Name string
}

// cipCodes is a curated subset of CIP Canada 2021: every 2-digit series in
// use plus the 6-digit classes the income table reports separately.
var cipCodes = []CIPEntry{
	{"01", "Agricultural and veterinary sciences"},
	{"03", "Natural resources and conservation"},
	{"04", "Architecture and related services"},
	{"05", "Area, ethnic, cultural, gender and group studies"},
	{"09", "Communication, journalism and related programs"},
	{"10", "Communications technologies and support services"},
	{"11", "Computer and information sciences"},
	{"12", "Culinary, entertainment and personal services"},
	{"13", "Education"},
	{"14", "Engineering"},
	{"15", "Engineering technologies"},
	{"16", "Indigenous and foreign languages, literatures and linguistics"},
	{"19", "Family and consumer sciences"},
	{"22", "Legal professions and studies"},
	{"23", "English language and literature"},
	{"24", "Liberal arts and sciences, general studies and humanities"},
	{"25", "Library science"},
	{"26", "Biological and biomedical sciences"},
	{"27", "Mathematics and statistics"},
	{"29", "Military technologies and applied sciences"},
	{"30", "Multidisciplinary and interdisciplinary studies"},
	{"31", "Parks, recreation, leisure and fitness studies"},
	{"38", "Philosophy and religious studies"},
	{"39", "Theology and religious vocations"},
	{"40", "Physical sciences"},
	{"41", "Science technologies and technicians"},
	{"42", "Psychology"},
	{"43", "Security and protective services"},
	{"44", "Public administration and social service professions"},
	{"45", "Social sciences"},
	{"46", "Construction trades"},
	{"47", "Mechanic and repair technologies"},
	{"48", "Precision production"},
	{"49", "Transportation and materials moving"},
	{"50", "Visual and performing arts"},
	{"51", "Health professions and related programs"},
	{"52", "Business, management, marketing and related support services"},
	{"54", "History"},
	{"55", "French language and literature"},
	{"60", "Dental, medical and veterinary residency programs"},
	{"61", "Health professions residency and fellowship programs"},
	{"04.0201", "Architecture"},
	{"09.0401", "Journalism"},
	{"11.0201", "Computer programming"},
	{"11.0401", "Information science/studies"},
	{"11.0701", "Computer science"},
	{"11.0901", "Computer systems networking and telecommunications"},
	{"11.1001", "Computer/information technology administration"},
	{"13.0101", "Education, general"},
	{"14.0701", "Chemical engineering"},
	{"14.0801", "Civil engineering"},
	{"14.0901", "Computer engineering"},
	{"14.1001", "Electrical and electronics engineering"},
	{"14.1901", "Mechanical engineering"},
	{"22.0101", "Law"},
	{"23.0101", "English language and literature, general"},
	{"26.0101", "Biology, general"},
	{"27.0101", "Mathematics, general"},
	{"27.0501", "Statistics, general"},
	{"30.7001", "Data science, general"},
	{"30.7101", "Data analytics, general"},
	{"40.0501", "Chemistry, general"},
	{"40.0801", "Physics, general"},
	{"42.0101", "Psychology, general"},
	{"45.0601", "Economics, general"},
	{"50.0701", "Art, general"},
	{"51.1201", "Medicine"},
	{"51.2001", "Pharmacy"},
	{"51.3801", "Registered nursing"},
	{"52.0301", "Accounting"},
	{"52.0801", "Finance, general"},
	{"52.1401", "Marketing/marketing management, general"},
	{"54.0101", "History, general"},
}

// CIPCodes returns the curated CIP universe.
func CIPCodes() []CIPEntry {
	return cipCodes
}

// BroadFieldForCIP maps a CIP code to its broad field via the 2-digit series.
func BroadFieldForCIP(code string) (Field, bool) {
	if len(code) < 2 {
		return Field{}, false
	}
	id, ok := cipToBroad[code[:2]]
	if !ok {
		return Field{}, false
	}
	return FieldByID(id)
}
