package index

import (
	"errors"
	"testing"
)

func occ(doc string, pos int) Occurrence {
	return Occurrence{Document: doc, Position: pos}
}

func TestRecordMerge(t *testing.T) {
	a := NewRecord("HELLO", occ("doc-1", 0))
	b := NewRecord("HELLO", occ("doc-2", 3))

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	occs := merged.Occurrences()
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	// Left operand's occurrences come first.
	if occs[0].Document != "doc-1" || occs[1].Document != "doc-2" {
		t.Fatalf("unexpected occurrence order: %+v", occs)
	}
	// Operands are untouched.
	if len(a.Occurrences()) != 1 || len(b.Occurrences()) != 1 {
		t.Fatal("merge mutated an operand")
	}
}

func TestRecordMergeAbsent(t *testing.T) {
	rec := NewRecord("HELLO", occ("doc-1", 0))
	var absent *Record

	got, err := absent.Merge(rec)
	if err != nil || got != rec {
		t.Fatalf("absent.Merge(present) = (%v, %v), want the present record", got, err)
	}
	got, err = rec.Merge(absent)
	if err != nil || got != rec {
		t.Fatalf("present.Merge(absent) = (%v, %v), want the present record", got, err)
	}
	got, err = absent.Merge(nil)
	if err != nil || got != nil {
		t.Fatalf("absent.Merge(absent) = (%v, %v), want absent", got, err)
	}
}

func TestRecordMergeDifferentTerms(t *testing.T) {
	a := NewRecord("HELLO", occ("doc-1", 0))
	b := NewRecord("WORLD", occ("doc-1", 1))
	if _, err := a.Merge(b); !errors.Is(err, ErrIncompatibleMerge) {
		t.Fatalf("expected ErrIncompatibleMerge, got %v", err)
	}
}

func TestRecordMergeAdditive(t *testing.T) {
	rec := NewRecord("HELLO", occ("doc-1", 0))
	merged, err := rec.Merge(rec)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(merged.Occurrences()) != 2 {
		t.Fatalf("self-merge should double occurrences, got %d", len(merged.Occurrences()))
	}
}

func TestRecordWithScore(t *testing.T) {
	rec := NewRecord("HELLO", occ("doc-1", 0))
	rec, _ = rec.Merge(NewRecord("HELLO", occ("doc-2", 5)))

	scored := rec.WithScore(0.5)
	for _, o := range scored.Occurrences() {
		if o.Score != 0.5 {
			t.Fatalf("expected score 0.5 on every occurrence, got %+v", o)
		}
	}
	// Original is untouched.
	for _, o := range rec.Occurrences() {
		if o.Score != 0 {
			t.Fatalf("WithScore mutated the original: %+v", o)
		}
	}
	if got := scored.TotalScore(); got != 1.0 {
		t.Fatalf("TotalScore = %v, want 1.0", got)
	}
}

func TestRecordAbsentAccessors(t *testing.T) {
	var absent *Record
	if absent.Occurrences() != nil {
		t.Fatal("absent record should have no occurrences")
	}
	if absent.TotalScore() != 0 {
		t.Fatal("absent record should score 0")
	}
	if absent.WithScore(1.0) != nil {
		t.Fatal("scoring the absent record should stay absent")
	}
}
