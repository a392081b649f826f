package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFields_CIPCode(t *testing.T) {
	matches := MatchFields("11.0701")
	require.NotEmpty(t, matches)

	top := matches[0]
	assert.Equal(t, "11.0701", top.CIPCode)
	assert.Equal(t, "Computer science", top.CIPName)
	assert.Equal(t, "cip", top.MatchType)
	assert.Equal(t, 0.99, top.Score)
	assert.Equal(t, FieldMathCS, top.BroadFieldID)
	assert.Equal(t, "11.07 Computer science", top.Subfield)
}

func TestMatchFields_CIPPrefix(t *testing.T) {
	matches := MatchFields("14.08")
	require.NotEmpty(t, matches)
	assert.Equal(t, "14.0801", matches[0].CIPCode)
	assert.Equal(t, "cip", matches[0].MatchType)

	// Dotless queries match the same codes.
	dotless := MatchFields("1408")
	require.NotEmpty(t, dotless)
	assert.Equal(t, "14.0801", dotless[0].CIPCode)
}

func TestMatchFields_CIPSeries(t *testing.T) {
	matches := MatchFields("51")
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.Equal(t, "cip", m.MatchType)
		assert.Equal(t, "51", m.CIPCode[:2])
	}
}

func TestMatchFields_Keyword(t *testing.T) {
	matches := MatchFields("computer science")
	require.NotEmpty(t, matches)

	top := matches[0]
	assert.Equal(t, "keyword", top.MatchType)
	assert.Equal(t, FieldMathCS, top.BroadFieldID)
	assert.Equal(t, "Computer science", top.CIPName)
}

func TestMatchFields_KeywordPrefixOutranksSubstring(t *testing.T) {
	matches := MatchFields("engineering")
	require.NotEmpty(t, matches)
	// "Engineering" the series name starts with the query; "Chemical
	// engineering" only contains it.
	assert.Equal(t, "14", matches[0].CIPCode)
	assert.Equal(t, 0.85, matches[0].Score)
}

func TestMatchFields_Fuzzy(t *testing.T) {
	matches := MatchFields("nursng")
	require.NotEmpty(t, matches)
	assert.Equal(t, "fuzzy", matches[0].MatchType)
	assert.Equal(t, FieldHealth, matches[0].BroadFieldID)
}

func TestMatchFields_CapsAtMaxMatches(t *testing.T) {
	matches := MatchFields("a")
	assert.LessOrEqual(t, len(matches), MaxMatches)
}

func TestMatchFields_EmptyAndNoMatch(t *testing.T) {
	assert.Nil(t, MatchFields(""))
	assert.Nil(t, MatchFields("   "))
	assert.Empty(t, MatchFields("zzzqqqxxx"))
}

func TestResolveSubfield_FourDigitParent(t *testing.T) {
	broad, ok := BroadFieldForCIP("14.0801")
	require.True(t, ok)

	subfield, resolved := resolveSubfield("14.0801", broad)
	assert.Equal(t, "14.08 Civil engineering", subfield)
	assert.Equal(t, broad.ID, resolved.ID)
}

func TestResolveSubfield_SeriesFallback(t *testing.T) {
	broad, ok := BroadFieldForCIP("13.0101")
	require.True(t, ok)

	subfield, resolved := resolveSubfield("13.0101", broad)
	assert.Equal(t, "13. Education", subfield)
	assert.Equal(t, FieldEducation, resolved.ID)
}

func TestResolveSubfield_CrossFieldExact(t *testing.T) {
	// Economics sits in the income table under social sciences even though
	// some classifications place it elsewhere; the exact key wins wherever
	// it lives.
	broad, ok := BroadFieldForCIP("45.0601")
	require.True(t, ok)

	subfield, resolved := resolveSubfield("45.0601", broad)
	assert.Equal(t, "45.06 Economics", subfield)
	assert.Equal(t, FieldSocialLaw, resolved.ID)
}

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, similarityRatio("history", "history"))
	assert.Greater(t, similarityRatio("histori", "history"), 0.7)
	assert.Less(t, similarityRatio("xyz", "history"), fuzzyFloor)
}
