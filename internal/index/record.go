package index

import "errors"

// ErrIncompatibleMerge is returned by Record.Merge when both records are
// present but carry different terms. The tree only merges after confirming
// term equality, so seeing this error indicates a bug in the caller.
var ErrIncompatibleMerge = errors.New("index: cannot merge records with different terms")

// Occurrence records one appearance of a term: the owning document, the
// zero-based position inside it, an optional weight, and the score the last
// search assigned to the match. Occurrences are values; a search never
// mutates a stored occurrence, it copies the record with new scores.
type Occurrence struct {
	Document string
	Position int
	Weight   float64
	Score    float64
}

// Record associates one term with a non-empty list of occurrences. A nil
// *Record is the absent variant: no term, no occurrences. Identity and
// ordering are defined solely by the term; occurrences are payload.
type Record struct {
	term Term
	occs []Occurrence
}

// NewRecord returns a present record holding a single occurrence.
func NewRecord(term Term, occ Occurrence) *Record {
	return &Record{term: term, occs: []Occurrence{occ}}
}

// Term returns the record's term. Only valid on present records.
func (r *Record) Term() Term {
	return r.term
}

// Occurrences returns the record's occurrence list. The returned slice is
// shared with the record and must not be modified.
func (r *Record) Occurrences() []Occurrence {
	if r == nil {
		return nil
	}
	return r.occs
}

// Compare orders r against other by term. Both records must be present;
// the tree never compares absent records.
func (r *Record) Compare(other *Record) int {
	return r.term.Compare(other.term)
}

// Merge unions two records for the same term. Merging with the absent record
// returns the present operand unchanged. The merged occurrence list holds r's
// occurrences first, then other's, so repeated folds are associative
// element-for-element. Merge is additive: merging a record that duplicates
// existing occurrences doubles them.
func (r *Record) Merge(other *Record) (*Record, error) {
	if r == nil {
		return other, nil
	}
	if other == nil {
		return r, nil
	}
	if r.term != other.term {
		return nil, ErrIncompatibleMerge
	}
	occs := make([]Occurrence, 0, len(r.occs)+len(other.occs))
	occs = append(occs, r.occs...)
	occs = append(occs, other.occs...)
	return &Record{term: r.term, occs: occs}, nil
}

// WithScore returns a copy of the record with every occurrence's score set.
func (r *Record) WithScore(score float64) *Record {
	if r == nil {
		return nil
	}
	occs := make([]Occurrence, len(r.occs))
	copy(occs, r.occs)
	for i := range occs {
		occs[i].Score = score
	}
	return &Record{term: r.term, occs: occs}
}

// TotalScore sums the scores across all occurrences.
func (r *Record) TotalScore() float64 {
	if r == nil {
		return 0
	}
	var sum float64
	for _, occ := range r.occs {
		sum += occ.Score
	}
	return sum
}
