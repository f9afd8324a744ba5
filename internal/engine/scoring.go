package engine

import (
	"math"
	"sort"

	"github.com/hyperjump/kensaku/internal/distance"
	"github.com/hyperjump/kensaku/internal/index"
)

// Composite score weights: coverage of the query terms dominates, positional
// ordering fidelity refines.
const (
	tokenWeight = 0.75
	orderWeight = 0.25
)

// hit is one matched occurrence together with the term that matched it.
type hit struct {
	term string
	occ  index.Occurrence
}

// scoreMatches fans the matched records out by originating document and
// computes the per-document composite score:
//
//	score = 0.75*tokenScore + 0.25*orderScore
//	tokenScore = min(searched, sum of occurrence scores) / searched
//	orderScore = (searched - termDistance(query, matchedByPosition)) / searched
//
// Matched terms are sanitized the same way the scorers sanitized them during
// the tree walk, so the order distance compares like against like, and
// deduplicated by term before the order distance when there are more matches
// than query terms. Zero-scoring documents are dropped and the rest sorted by
// descending score (ties broken by document ID so equal inputs always rank
// identically).
func scoreMatches(queryTerms []string, matches []*index.Record, sanitize Sanitizer) []DocResult {
	searched := float64(len(queryTerms))
	byDoc := make(map[string][]hit)
	for _, rec := range matches {
		if rec == nil {
			continue
		}
		term := sanitize(rec.Term().String())
		for _, occ := range rec.Occurrences() {
			byDoc[occ.Document] = append(byDoc[occ.Document], hit{term: term, occ: occ})
		}
	}

	results := make([]DocResult, 0, len(byDoc))
	for doc, hits := range byDoc {
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].occ.Position < hits[j].occ.Position
		})
		var sum float64
		matched := make([]string, 0, len(hits))
		for _, h := range hits {
			sum += h.occ.Score
			matched = append(matched, h.term)
		}
		if len(matched) > len(queryTerms) {
			matched = dedupeTerms(matched)
		}
		tokenScore := math.Min(searched, sum) / searched
		var orderScore float64
		if d, err := distance.Terms(queryTerms, matched); err == nil {
			orderScore = (searched - float64(d)) / searched
		}
		score := tokenWeight*tokenScore + orderWeight*orderScore
		if score <= 0 {
			continue
		}
		results = append(results, DocResult{Document: doc, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document < results[j].Document
	})
	return results
}

// dedupeTerms keeps the first appearance of each term, preserving position
// order.
func dedupeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0:0]
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
