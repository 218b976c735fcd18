package datatable

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RankTier orders how well a value matches a query. Higher is better.
type RankTier int

// Rank tiers, worst to best.
const (
	TierNoMatch RankTier = iota
	TierMatches
	TierAcronym
	TierContains
	TierWordStartsWith
	TierStartsWith
	TierEqual
	TierCaseSensitiveEqual
)

// String returns the tier name.
func (t RankTier) String() string {
	switch t {
	case TierNoMatch:
		return "no-match"
	case TierMatches:
		return "matches"
	case TierAcronym:
		return "acronym"
	case TierContains:
		return "contains"
	case TierWordStartsWith:
		return "word-starts-with"
	case TierStartsWith:
		return "starts-with"
	case TierEqual:
		return "equal"
	case TierCaseSensitiveEqual:
		return "case-sensitive-equal"
	default:
		return "unknown"
	}
}

// Rank is the filter metadata attached to a row that survived filtering.
// Score only orders matches within TierMatches.
type Rank struct {
	Tier   RankTier
	Score  int
	Passed bool
}

// Better reports whether r ranks above other.
func (r Rank) Better(other Rank) bool {
	if r.Tier != other.Tier {
		return r.Tier > other.Tier
	}
	return r.Score > other.Score
}

// fzfInit guards the one-time setup of fzf's scoring tables.
var fzfInit sync.Once //nolint:gochecknoglobals // fzf keeps its bonus matrix in package state.

// RankItem ranks value against query. An empty query passes everything.
// Diacritics are ignored on both sides; case is ignored below TierCaseSensitiveEqual.
func RankItem(value, query string) Rank {
	if query == "" {
		if value == "" {
			return Rank{Tier: TierCaseSensitiveEqual, Passed: true}
		}
		return Rank{Tier: TierStartsWith, Passed: true}
	}

	value = stripDiacritics(value)
	query = stripDiacritics(query)

	if utf8.RuneCountInString(query) > utf8.RuneCountInString(value) {
		return Rank{Tier: TierNoMatch}
	}
	if value == query {
		return Rank{Tier: TierCaseSensitiveEqual, Passed: true}
	}

	lowerValue := strings.ToLower(value)
	lowerQuery := strings.ToLower(query)

	switch {
	case lowerValue == lowerQuery:
		return Rank{Tier: TierEqual, Passed: true}
	case strings.HasPrefix(lowerValue, lowerQuery):
		return Rank{Tier: TierStartsWith, Passed: true}
	case strings.Contains(lowerValue, " "+lowerQuery):
		return Rank{Tier: TierWordStartsWith, Passed: true}
	case strings.Contains(lowerValue, lowerQuery):
		return Rank{Tier: TierContains, Passed: true}
	case utf8.RuneCountInString(lowerQuery) == 1:
		// A single character that is not a substring cannot match fuzzily either.
		return Rank{Tier: TierNoMatch}
	case strings.Contains(acronym(lowerValue), lowerQuery):
		return Rank{Tier: TierAcronym, Passed: true}
	}

	return fuzzyRank(lowerValue, lowerQuery)
}

// fuzzyRank scores an in-order character match with fzf's V2 algorithm.
// Both arguments must already be lower-cased.
func fuzzyRank(value, query string) Rank {
	fzfInit.Do(func() { algo.Init("default") })

	chars := util.ToChars([]byte(value))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, []rune(query), false, nil)
	if result.Start < 0 {
		return Rank{Tier: TierNoMatch}
	}
	return Rank{Tier: TierMatches, Score: result.Score, Passed: true}
}

// acronym returns the first letter of every space- or hyphen-separated word.
func acronym(s string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(s) {
		for _, part := range strings.Split(word, "-") {
			r, size := utf8.DecodeRuneInString(part)
			if size > 0 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// stripDiacritics removes combining marks so "Amnésia" matches "amnesia".
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
