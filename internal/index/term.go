// Package index implements the in-memory term index: a persistent red-black
// tree keyed by term, holding one record of accumulated document occurrences
// per distinct term. Every mutating operation returns a new root and shares
// unmodified subtrees, so readers may traverse a snapshot while a writer
// builds the next one.
package index

import "strings"

// Term is a normalized index term. Ordering is byte-wise lexicographic and
// case-sensitive: two records occupy the same tree slot iff their terms are
// byte-equal.
type Term string

// Compare returns -1, 0, or +1 comparing t against other byte-wise.
func (t Term) Compare(other Term) int {
	return strings.Compare(string(t), string(other))
}

// Fold returns the case-normalized form of the term. The search descent
// heuristic compares folded forms even though the tree itself orders terms
// case-sensitively; see Tree.Search.
func (t Term) Fold() string {
	return strings.ToUpper(string(t))
}

func (t Term) String() string {
	return string(t)
}
