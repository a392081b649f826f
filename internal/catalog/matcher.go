package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/career-insights/internal/types"
)

// MaxMatches caps how many field-of-study matches a query returns.
const MaxMatches = 8

// Match is one candidate field-of-study resolution for a free-text query.
type Match struct {
	Score        float64       `json:"score"`
	CIPCode      string        `json:"cip_code,omitempty"`
	CIPName      string        `json:"cip_name,omitempty"`
	BroadField   string        `json:"broad_field"`
	BroadFieldID types.FieldID `json:"broad_field_id"`
	Subfield     string        `json:"subfield,omitempty"`
	DisplayName  string        `json:"display_name"`
	MatchType    string        `json:"match_type"` // "cip", "keyword", or "fuzzy"
}

var cipQueryPattern = regexp.MustCompile(`^\d{1,2}\.?\d{0,4}$`)

// fuzzyFloor is the minimum similarity ratio for a fuzzy match to qualify.
const fuzzyFloor = 0.40

// MatchFields searches the CIP universe and the broad fields for a free-text
// query, in three tiers: CIP code prefix, case-insensitive keyword substring,
// and fuzzy similarity. Returns up to MaxMatches results sorted by score.
func MatchFields(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	queryLower := strings.ToLower(query)
	isCIPQuery := cipQueryPattern.MatchString(query)

	var scored []Match
	for _, cand := range buildCandidates() {
		match, ok := scoreCandidate(cand, query, queryLower, isCIPQuery)
		if ok {
			scored = append(scored, match)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > MaxMatches {
		scored = scored[:MaxMatches]
	}
	return scored
}

func scoreCandidate(cand Match, query, queryLower string, isCIPQuery bool) (Match, bool) {
	if cand.CIPCode == "" {
		// Broad-field candidate: never matched by a CIP-code query.
		if isCIPQuery {
			return cand, false
		}
		broadLower := strings.ToLower(cand.BroadField)
		if strings.Contains(broadLower, queryLower) {
			cand.Score = 0.55
			cand.MatchType = "keyword"
			return cand, true
		}
		ratio := similarityRatio(queryLower, broadLower)
		if ratio < fuzzyFloor {
			return cand, false
		}
		cand.Score = roundRatio(ratio * 0.45)
		cand.MatchType = "fuzzy"
		return cand, true
	}

	nameLower := strings.ToLower(cand.CIPName)
	switch {
	case isCIPQuery:
		if !cipPrefixMatch(cand.CIPCode, queryLower) {
			return cand, false
		}
		switch {
		case cand.CIPCode == queryLower:
			cand.Score = 0.99
		case strings.Contains(query, ".") && strings.HasPrefix(cand.CIPCode, query):
			cand.Score = 0.95
		default:
			cand.Score = 0.88
		}
		cand.MatchType = "cip"
	case strings.Contains(nameLower, queryLower):
		if strings.HasPrefix(nameLower, queryLower) {
			cand.Score = 0.85
		} else {
			cand.Score = 0.75
		}
		cand.MatchType = "keyword"
	case strings.Contains(strings.ToLower(cand.BroadField), queryLower):
		cand.Score = 0.60
		cand.MatchType = "keyword"
	default:
		ratio := similarityRatio(queryLower, nameLower)
		if ratio < fuzzyFloor {
			return cand, false
		}
		cand.Score = roundRatio(ratio * 0.55)
		cand.MatchType = "fuzzy"
	}
	return cand, true
}

// cipPrefixMatch reports whether a CIP code matches a code-style query, with
// or without the dot ("14.08" and "1408" both match "14.0801").
func cipPrefixMatch(code, query string) bool {
	if strings.HasPrefix(code, query) {
		return true
	}
	codeDigits := strings.ReplaceAll(code, ".", "")
	queryDigits := strings.ReplaceAll(query, ".", "")
	return strings.HasPrefix(codeDigits, queryDigits)
}

// buildCandidates assembles the searchable universe: every curated CIP entry
// resolved to its nearest subfield and broad field, plus the eleven broad
// fields themselves.
func buildCandidates() []Match {
	var candidates []Match
	for _, entry := range CIPCodes() {
		broad, ok := BroadFieldForCIP(entry.Code)
		if !ok {
			continue
		}
		subfield, resolved := resolveSubfield(entry.Code, broad)
		candidates = append(candidates, Match{
			CIPCode:      entry.Code,
			CIPName:      entry.Name,
			BroadField:   resolved.Name,
			BroadFieldID: resolved.ID,
			Subfield:     subfield,
			DisplayName:  fmt.Sprintf("[CIP %s] %s — %s", entry.Code, entry.Name, resolved.Name),
		})
	}
	for _, f := range Fields() {
		candidates = append(candidates, Match{
			BroadField:   f.Name,
			BroadFieldID: f.ID,
			DisplayName:  f.Name,
		})
	}
	return candidates
}

var subfieldPrefixPattern = regexp.MustCompile(`^\d{2}\.\s`)

// resolveSubfield maps a CIP code to the nearest known subfield key.
//
// Lookup chain, first match wins: exact 6-digit key, the 4-digit parent
// ("14.0801" resolves via "14.08"), then the 2-digit series key. Each step
// is tried first in the code's own broad field, then across fields for the
// exact levels, then across fields for the series level.
func resolveSubfield(code string, broad Field) (string, Field) {
	parent4 := ""
	if len(code) >= 5 {
		parent4 = code[:5]
	}
	prefix2 := code[:2] + "."

	search := func(f Field) (string, string) {
		keys := make([]string, 0, len(f.Subfields))
		for key := range f.Subfields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if key == code || strings.HasPrefix(key, code+" ") {
				return key, "exact6"
			}
		}
		if parent4 != "" {
			for _, key := range keys {
				if key == parent4 || strings.HasPrefix(key, parent4+" ") {
					return key, "exact4"
				}
			}
		}
		for _, key := range keys {
			if strings.HasPrefix(key, prefix2) && subfieldPrefixPattern.MatchString(key) {
				return key, "prefix2"
			}
		}
		return "", ""
	}

	if sub, _ := search(broad); sub != "" {
		return sub, broad
	}
	for _, other := range Fields() {
		if other.ID == broad.ID {
			continue
		}
		if sub, kind := search(other); sub != "" && (kind == "exact6" || kind == "exact4") {
			return sub, other
		}
	}
	for _, other := range Fields() {
		if other.ID == broad.ID {
			continue
		}
		if sub, kind := search(other); sub != "" && kind == "prefix2" {
			return sub, other
		}
	}
	return "", broad
}

func roundRatio(v float64) float64 {
	return float64(int(v*10000+0.5)) / 10000
}

// similarityRatio is the classic difflib ratio: twice the number of matching
// characters (summed over recursive longest common substrings) divided by
// the total length of both strings.
func similarityRatio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(matchingChars(a, b)) / float64(total)
}

func matchingChars(a, b string) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest common substring, preferring the
// earliest occurrence in a, then in b.
func longestCommonBlock(a, b string) (int, int, int) {
	bestA, bestB, bestSize := 0, 0, 0
	// lengths[j] is the length of the common suffix ending at a[i], b[j].
	lengths := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		prev := 0
		for j := 0; j < len(b); j++ {
			cur := lengths[j+1]
			if a[i] == b[j] {
				lengths[j+1] = prev + 1
				if lengths[j+1] > bestSize {
					bestSize = lengths[j+1]
					bestA = i - bestSize + 1
					bestB = j - bestSize + 1
				}
			} else {
				lengths[j+1] = 0
			}
			prev = cur
		}
	}
	return bestA, bestB, bestSize
}
