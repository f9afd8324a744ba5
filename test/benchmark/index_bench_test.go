package benchmark

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/hyperjump/kensaku/internal/engine"
	"github.com/hyperjump/kensaku/internal/index"
	"github.com/hyperjump/kensaku/internal/tokenizer"
)

func randomTerms(rng *rand.Rand, n, vocab int) []string {
	terms := make([]string, n)
	for i := range terms {
		terms[i] = fmt.Sprintf("TERM%04d", rng.Intn(vocab))
	}
	return terms
}

func BenchmarkTreeInsert(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	recs := make([]*index.Record, 1000)
	for i := range recs {
		recs[i] = index.NewRecord(
			index.Term(fmt.Sprintf("TERM%04d", rng.Intn(2000))),
			index.Occurrence{Document: "doc", Position: i},
		)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := index.New()
		for _, rec := range recs {
			tr = tr.Insert(rec)
		}
	}
}

func BenchmarkTreeSearch(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	tr := index.New()
	for i := 0; i < 5000; i++ {
		tr = tr.Insert(index.NewRecord(
			index.Term(fmt.Sprintf("TERM%04d", rng.Intn(5000))),
			index.Occurrence{Document: "doc", Position: i},
		))
	}
	query := index.NewRecord("TERM2500", index.Occurrence{})
	scorer := func(q, candidate *index.Record) (bool, *index.Record) {
		if candidate.Term() == q.Term() {
			return true, candidate.WithScore(1)
		}
		return false, nil
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.Search(scorer, query)
	}
}

func BenchmarkEngineIndex(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	docs := make([][]string, 100)
	for i := range docs {
		docs[i] = randomTerms(rng, 200, 3000)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := engine.New()
		for d, terms := range docs {
			e.Index(fmt.Sprintf("doc-%d", d), terms)
		}
	}
}

func BenchmarkExactMatch(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	e := engine.New()
	for d := 0; d < 500; d++ {
		e.Index(fmt.Sprintf("doc-%d", d), randomTerms(rng, 100, 3000))
	}
	query := []string{"TERM0001", "TERM0100", "TERM1000", "TERM2000"}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.ExactMatch(ctx, query, engine.Identity)
	}
}

func BenchmarkFuzzy(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	e := engine.New()
	for d := 0; d < 500; d++ {
		e.Index(fmt.Sprintf("doc-%d", d), randomTerms(rng, 100, 3000))
	}
	query := []string{"TREM0001", "TERM100"}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Fuzzy(ctx, query, engine.Identity)
	}
}

func BenchmarkTokenize(b *testing.B) {
	text := "The quick brown fox, jumping over 42 lazy dogs; again and again and again!"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tokenizer.Tokenize(text)
	}
}
