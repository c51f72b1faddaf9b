package analyst

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchThreshold is the acceptance threshold for fuzzy entity resolution:
// a candidate is accepted only if its similarity score is strictly above it.
const MatchThreshold = 80

// Similarity scores how close two strings are, on a 0-100 scale where 100 is
// an exact match. Any implementation plugged here must keep the scale so the
// acceptance threshold stays meaningful.
type Similarity func(a, b string) int

// Ratio is the default Similarity: a normalized edit-distance measure over
// case-folded, space-trimmed input.
func Ratio(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 100
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 - (100*dist)/longest
}

// Match is the outcome of a successful entity resolution: the canonical
// entity name and the confidence score that selected it. It is not persisted.
type Match struct {
	Name  string
	Score int
}

// Resolver fuzzy-matches free-text names against the distinct entity names
// of a ledger dimension. The zero value uses Ratio and MatchThreshold.
type Resolver struct {
	Similarity Similarity
	Threshold  int
}

// Resolve selects the single best-scoring candidate for the query among the
// distinct names of the dimension. It accepts only a score strictly above
// the threshold; otherwise it fails with a NoMatchError carrying the best
// rejected candidate.
//
// Ties on the maximum score are broken by keeping the first candidate in the
// ledger's first-appearance order. This is a fixed, reproducible policy.
// Resolve is a pure function of (dimension, query, ledger).
func (rs Resolver) Resolve(dim Dimension, query string, l *Ledger) (Match, error) {
	sim := rs.Similarity
	if sim == nil {
		sim = Ratio
	}
	threshold := rs.Threshold
	if threshold == 0 {
		threshold = MatchThreshold
	}

	best := Match{Score: -1}
	for name := range l.Names(dim) {
		// Strictly greater keeps the first encountered candidate on ties.
		if score := sim(query, name); score > best.Score {
			best = Match{Name: name, Score: score}
		}
	}
	if best.Score <= threshold {
		score := best.Score
		if score < 0 {
			score = 0
		}
		return Match{}, &NoMatchError{Dimension: dim, Query: query, Best: best.Name, Score: score}
	}
	return best, nil
}

// Resolve resolves a free-text name with the default similarity measure and
// acceptance threshold.
func Resolve(dim Dimension, query string, l *Ledger) (Match, error) {
	return Resolver{}.Resolve(dim, query, l)
}
