// Package fuzzy approximate string matching: 0..100 similarity scorers and a
// deterministic ranking over a candidate list.
package fuzzy

import (
	"math"
	"sort"
	"strings"
)

// DefaultLimit Rank uchun limit ko'rsatilmaganda
const DefaultLimit = 5

// Scorer compares two raw strings and returns a similarity in [0,100].
type Scorer func(a, b string) int

// Match bitta nomzod va uning bali
type Match struct {
	Candidate string
	Score     int
	Index     int // nomzodning kirish ro'yxatidagi o'rni
}

// Ratio whole-string similarity, sensitive to token order.
// Computed as 2*LCS/(len(a)+len(b)) over normalized runes.
func Ratio(a, b string) int {
	return toScore(ratioRunes([]rune(Normalize(a)), []rune(Normalize(b))))
}

// PartialRatio best Ratio of the shorter string against every window of the
// longer string with the same length. Good for fragments like "s23" or a store prefix.
func PartialRatio(a, b string) int {
	ra, rb := []rune(Normalize(a)), []rune(Normalize(b))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == len(rb) {
		return toScore(ratioRunes(ra, rb))
	}
	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		r := ratioRunes(ra, rb[i:i+len(ra)])
		if r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return toScore(best)
}

// TokenSortRatio Ratio after sorting the tokens of both strings.
func TokenSortRatio(a, b string) int {
	return toScore(ratioRunes([]rune(sortedTokens(a)), []rune(sortedTokens(b))))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(Normalize(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ByName returns the scorer for a config name; unknown names fall back to Ratio.
func ByName(name string) Scorer {
	if scorer, ok := scorers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return scorer
	}
	return Ratio
}

// KnownScorer config qiymatini tekshirish uchun
func KnownScorer(name string) bool {
	_, ok := scorers[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

var scorers = map[string]Scorer{
	"ratio":            Ratio,
	"partial":          PartialRatio,
	"partial_ratio":    PartialRatio,
	"token_sort":       TokenSortRatio,
	"token_sort_ratio": TokenSortRatio,
}

// Rank scores every candidate against query and returns at most limit matches,
// highest score first. Equal scores keep the input order.
func Rank(query string, candidates []string, limit int, scorer Scorer) []Match {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if scorer == nil {
		scorer = Ratio
	}
	matches := make([]Match, 0, len(candidates))
	for i, c := range candidates {
		matches = append(matches, Match{Candidate: c, Score: scorer(query, c), Index: i})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Extract is Rank filtered to matches scoring at least cutoff.
func Extract(query string, candidates []string, limit int, cutoff int, scorer Scorer) []Match {
	ranked := Rank(query, candidates, limit, scorer)
	out := ranked[:0]
	for _, m := range ranked {
		if m.Score >= cutoff {
			out = append(out, m)
		}
	}
	return out
}

// Best returns the top match, if any candidate exists.
func Best(query string, candidates []string, scorer Scorer) (Match, bool) {
	ranked := Rank(query, candidates, 1, scorer)
	if len(ranked) == 0 {
		return Match{}, false
	}
	return ranked[0], true
}

func toScore(r float64) int {
	return int(math.Round(r * 100))
}

func ratioRunes(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 || len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 2 * float64(lcsLength(a, b)) / float64(total)
}

// lcsLength longest common subsequence, two-row DP.
func lcsLength(a, b []rune) int {
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
