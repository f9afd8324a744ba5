// Package distance implements Levenshtein edit distance over strings and
// over ordered term sequences.
package distance

import "errors"

// ErrEmptyInput is returned when the reference (left) argument is empty.
// An empty right argument is fine and returns the reference's length.
var ErrEmptyInput = errors.New("distance: empty reference input")

// Distance returns the minimum number of single-character insertions,
// deletions, and substitutions required to turn a into b. Comparison is
// rune-based so multi-byte characters count as one edit. The reference
// argument a must be non-empty.
func Distance(a, b string) (int, error) {
	if a == "" {
		return 0, ErrEmptyInput
	}
	if a == b {
		return 0, nil
	}
	runesA := []rune(a)
	runesB := []rune(b)
	if len(runesB) == 0 {
		return len(runesA), nil
	}
	return compute(len(runesA), len(runesB), func(i, j int) bool {
		return runesA[i] == runesB[j]
	}), nil
}

// Terms returns the Levenshtein distance between two term sequences, using
// whole-term equality in place of character equality. The reference sequence
// a must be non-empty.
func Terms(a, b []string) (int, error) {
	if len(a) == 0 {
		return 0, ErrEmptyInput
	}
	if len(b) == 0 {
		return len(a), nil
	}
	return compute(len(a), len(b), func(i, j int) bool {
		return a[i] == b[j]
	}), nil
}

// compute fills the dynamic-programming table for the classic recurrence,
// keeping only two rows at a time. Base rows hold the remaining length of the
// non-empty side; each cell takes the minimum of deletion, insertion, and
// substitution.
func compute(lenA, lenB int, eq func(i, j int) bool) int {
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}
	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 1
			if eq(i-1, j-1) {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[lenB]
}
