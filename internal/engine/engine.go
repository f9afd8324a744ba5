// Package engine orchestrates indexing and query execution over the term
// index: per-document tree builds unioned into a global snapshot, and the
// exact and fuzzy query modes with per-document relevance scoring.
package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/hyperjump/kensaku/internal/distance"
	"github.com/hyperjump/kensaku/internal/index"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoDocuments is returned by queries against an empty index. Callers
	// should treat it as an ordinary "no results" response.
	ErrNoDocuments = errors.New("engine: no documents indexed")
	// ErrEmptyQuery is returned when the query holds no usable terms.
	ErrEmptyQuery = errors.New("engine: empty query")
)

// Sanitizer normalizes an indexed term before it is compared against a query
// term. Identity leaves matching fully case-sensitive.
type Sanitizer func(string) string

// Identity returns the term unchanged.
func Identity(term string) string { return term }

// DocResult is one scored document in a ranked query result.
type DocResult struct {
	Document string  `json:"document"`
	Score    float64 `json:"score"`
}

// Engine owns the global term index. Readers work on an atomically published
// snapshot; writers serialize on a mutex, build the next root, and publish it
// with a single pointer swap.
type Engine struct {
	mu     sync.Mutex // serializes writers
	root   atomic.Pointer[index.Tree]
	logger *zap.Logger // optional; when set, logs debug events
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a logger for debug output (documents indexed, query stats).
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an engine with an empty index.
func New(opts ...Option) *Engine {
	e := &Engine{}
	empty := index.New()
	e.root.Store(&empty)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index adds a document's term sequence to the global index. Each term is
// tagged with its zero-based position, folded into a per-document tree, and
// the tree is unioned into the global one. Indexing is cumulative: indexing
// the same document twice duplicates its occurrences rather than replacing
// them, so callers that re-index must rebuild.
func (e *Engine) Index(docID string, terms []string) {
	doc := index.New()
	for pos, term := range terms {
		if term == "" {
			continue
		}
		doc = doc.Insert(index.NewRecord(index.Term(term), index.Occurrence{
			Document: docID,
			Position: pos,
		}))
	}
	e.mu.Lock()
	merged := e.root.Load().Union(doc)
	e.root.Store(&merged)
	e.mu.Unlock()
	if e.logger != nil {
		e.logger.Debug("document indexed",
			zap.String("doc_id", docID),
			zap.Int("terms", len(terms)),
			zap.Int("distinct_terms", doc.Len()),
		)
	}
}

// RemoveTerm deletes a term's record from the global index.
func (e *Engine) RemoveTerm(term string) {
	e.mu.Lock()
	next := e.root.Load().Remove(index.Term(term))
	e.root.Store(&next)
	e.mu.Unlock()
}

// Reset replaces the global index with an empty one.
func (e *Engine) Reset() {
	e.mu.Lock()
	empty := index.New()
	e.root.Store(&empty)
	e.mu.Unlock()
}

// Snapshot returns the current published index. The snapshot is immutable
// and stays valid while later writes publish new roots.
func (e *Engine) Snapshot() index.Tree {
	return *e.root.Load()
}

// TermCount returns the number of distinct terms in the current index.
func (e *Engine) TermCount() int {
	return e.Snapshot().Len()
}

// ExactMatch runs the query terms against the index requiring term equality
// after applying sanitize to the indexed term, and returns documents ranked
// by descending score. Returns ErrNoDocuments when the index is empty and
// ErrEmptyQuery when no usable query terms remain.
func (e *Engine) ExactMatch(ctx context.Context, terms []string, sanitize Sanitizer) ([]DocResult, error) {
	return e.query(ctx, terms, sanitize, func(snap index.Tree, query *index.Record) *index.Record {
		return snap.Search(exactScorer(sanitize), query)
	})
}

// Fuzzy runs the query terms against the index scoring candidates by edit
// distance proximity. Terms longer than five runes are truncated to their
// first five on both sides of the comparison. Each term keeps a running best
// candidate across the whole walk; only a perfect (distance zero) hit stops
// early.
func (e *Engine) Fuzzy(ctx context.Context, terms []string, sanitize Sanitizer) ([]DocResult, error) {
	return e.query(ctx, terms, sanitize, func(snap index.Tree, query *index.Record) *index.Record {
		scorer, best := fuzzyScorer(sanitize)
		if match := snap.Search(scorer, query); match != nil {
			return match
		}
		// The descent can dead-end on an empty subtree and drop the local
		// candidate; the scorer's running best still has it.
		return best()
	})
}

// query fans the terms out over one snapshot, one goroutine per term, then
// groups and scores the matches per document. Result slots are preallocated
// per query position so no shared state crosses goroutines.
func (e *Engine) query(ctx context.Context, terms []string, sanitize Sanitizer, search func(index.Tree, *index.Record) *index.Record) ([]DocResult, error) {
	snap := e.Snapshot()
	if snap.Empty() {
		return nil, ErrNoDocuments
	}
	queried := make([]string, 0, len(terms))
	for _, term := range terms {
		if term != "" {
			queried = append(queried, term)
		}
	}
	if len(queried) == 0 {
		return nil, ErrEmptyQuery
	}

	matches := make([]*index.Record, len(queried))
	g, gctx := errgroup.WithContext(ctx)
	for i, term := range queried {
		i, term := i, term
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			query := index.NewRecord(index.Term(term), index.Occurrence{Position: i})
			matches[i] = search(snap, query)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := scoreMatches(queried, matches, sanitize)
	if e.logger != nil {
		e.logger.Debug("query executed",
			zap.Int("terms", len(queried)),
			zap.Int("documents", len(results)),
		)
	}
	return results, nil
}

// exactScorer stops on the first indexed term whose sanitized form equals the
// query term, assigning score 1.0.
func exactScorer(sanitize Sanitizer) index.Scorer {
	return func(query, candidate *index.Record) (bool, *index.Record) {
		if sanitize(candidate.Term().String()) == query.Term().String() {
			return true, candidate.WithScore(1.0)
		}
		return false, nil
	}
}

// fuzzyScorer keeps the best-scoring candidate seen so far for one query
// term. A distance of zero stops the search with score 1.0; otherwise the
// candidate scores (len - distance) / len over the truncated sanitized
// indexed term and is kept only if it beats the running best.
func fuzzyScorer(sanitize Sanitizer) (index.Scorer, func() *index.Record) {
	var best *index.Record
	var bestScore float64
	scorer := func(query, candidate *index.Record) (bool, *index.Record) {
		q := truncateTerm(query.Term().String())
		indexed := truncateTerm(sanitize(candidate.Term().String()))
		d, err := distance.Distance(q, indexed)
		if err != nil {
			return false, best
		}
		if d == 0 {
			best = candidate.WithScore(1.0)
			bestScore = 1.0
			return true, best
		}
		length := len([]rune(indexed))
		if length == 0 {
			return false, best
		}
		score := float64(length-d) / float64(length)
		if score > bestScore {
			best = candidate.WithScore(score)
			bestScore = score
		}
		return false, best
	}
	return scorer, func() *index.Record { return best }
}

// fuzzyPrefixLen caps term length for fuzzy comparison; longer terms compare
// by their first five runes on both the query and the indexed side.
const fuzzyPrefixLen = 5

func truncateTerm(term string) string {
	runes := []rune(term)
	if len(runes) <= fuzzyPrefixLen {
		return term
	}
	return string(runes[:fuzzyPrefixLen])
}
