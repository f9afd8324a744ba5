// Package indexer ties the document loader to the registry and the in-memory
// term index: extraction, tokenization, persistence, and index rebuilds.
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/kensaku/internal/engine"
	"github.com/hyperjump/kensaku/internal/extract"
	"github.com/hyperjump/kensaku/internal/fileid"
	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/storage"
	"github.com/hyperjump/kensaku/internal/tokenizer"
	"go.uber.org/zap"
)

const (
	metaKeySourcePath  = "source_path"
	metaKeySourceMtime = "source_mtime"
	metaKeySourceSize  = "source_size"
)

// indexDirConcurrency bounds parallel file indexing during directory walks.
const indexDirConcurrency = 4

// Indexer indexes documents into the registry and the term index.
type Indexer struct {
	storage   storage.Storage
	engine    *engine.Engine
	extractor *extract.Extractor
	logger    *zap.Logger // optional; when set, logs debug events

	// mu serializes registry writes and the engine updates that mirror
	// them, so a rebuild never interleaves with another document mutation.
	mu sync.Mutex
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets a logger for debug output (file indexed, document deleted).
func WithLogger(l *zap.Logger) Option {
	return func(idx *Indexer) { idx.logger = l }
}

// NewIndexer creates an indexer with the given dependencies. extractor may be
// nil; when nil, IndexFile treats all files as plain text.
func NewIndexer(store storage.Storage, eng *engine.Engine, extractor *extract.Extractor, opts ...Option) *Indexer {
	idx := &Indexer{
		storage:   store,
		engine:    eng,
		extractor: extractor,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// IndexDocument tokenizes the input content, stores the document and its term
// sequence, and adds it to the in-memory index. It returns the document ID,
// generated when the input carries none. Re-indexing an existing document
// triggers a rebuild, because the term tree only ever accumulates occurrences.
func (idx *Indexer) IndexDocument(ctx context.Context, input *models.DocumentInput) (string, error) {
	doc := &models.Document{
		ID:   input.ID,
		Name: input.Name,
	}
	if err := idx.indexDocument(ctx, doc, input.Content); err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (idx *Indexer) indexDocument(ctx context.Context, doc *models.Document, content string) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	terms := tokenizer.Tokenize(content)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	_, err := idx.storage.GetDocument(ctx, doc.ID)
	existed := err == nil

	if err := idx.storage.SaveDocument(ctx, doc, terms); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	if existed {
		if err := idx.rebuildLocked(ctx); err != nil {
			return fmt.Errorf("failed to rebuild after re-index: %w", err)
		}
	} else {
		idx.engine.Index(doc.ID, terms)
	}
	if idx.logger != nil {
		idx.logger.Debug("document indexed",
			zap.String("id", doc.ID),
			zap.String("name", doc.Name),
			zap.Int("terms", len(terms)),
			zap.Bool("rebuilt", existed),
		)
	}
	return nil
}

// IndexFile reads a file from path and indexes it. The document ID is derived
// from the absolute path so re-indexing updates the same document. If
// allowedExts is non-empty the file's extension must be in the list
// (case-insensitive). Unchanged files (same mtime and size as last indexed)
// are skipped.
func (idx *Indexer) IndexFile(ctx context.Context, path string, allowedExts []string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
		return fmt.Errorf("extension %q not in allowed list", ext)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", absPath)
	}
	docID := fileid.FileDocID(absPath)
	if idx.shouldSkipFile(ctx, absPath, docID, info) {
		if idx.logger != nil {
			idx.logger.Debug("skipping unchanged file", zap.String("path", absPath))
		}
		return nil
	}
	text, err := idx.extractContent(absPath)
	if err != nil {
		return fmt.Errorf("extract content: %w", err)
	}
	doc := &models.Document{
		ID:   docID,
		Name: filepath.Base(absPath),
		Path: absPath,
		Metadata: map[string]string{
			metaKeySourcePath:  absPath,
			metaKeySourceMtime: strconv.FormatInt(info.ModTime().UnixNano(), 10),
			metaKeySourceSize:  strconv.FormatInt(info.Size(), 10),
		},
	}
	return idx.indexDocument(ctx, doc, text)
}

// shouldSkipFile reports whether the file is already indexed with the same
// mtime and size.
func (idx *Indexer) shouldSkipFile(ctx context.Context, absPath, docID string, info os.FileInfo) bool {
	doc, err := idx.storage.GetDocument(ctx, docID)
	if err != nil || doc.Metadata == nil {
		return false
	}
	if doc.Metadata[metaKeySourcePath] != absPath {
		return false
	}
	// Stored as strings: UnixNano does not fit JSON's float64 precision.
	mtime, _ := strconv.ParseInt(doc.Metadata[metaKeySourceMtime], 10, 64)
	size, _ := strconv.ParseInt(doc.Metadata[metaKeySourceSize], 10, 64)
	return mtime == info.ModTime().UnixNano() && size == info.Size()
}

// IndexDirectory walks dir recursively and indexes each regular file whose
// extension is allowed, a few files at a time. Returns the number of files
// indexed and the first error encountered.
func (idx *Indexer) IndexDirectory(ctx context.Context, dir string, allowedExts []string) (int, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return 0, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("not a directory: %s", absDir)
	}

	var indexed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(indexDirConcurrency)
	walkErr := filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if len(allowedExts) > 0 && !extensionAllowed(strings.ToLower(filepath.Ext(path)), allowedExts) {
			return nil
		}
		// Resolve symlinks so only regular files are indexed.
		finfo, statErr := os.Stat(path)
		if statErr != nil || !finfo.Mode().IsRegular() {
			return nil
		}
		g.Go(func() error {
			if err := idx.IndexFile(gctx, path, allowedExts); err != nil {
				return err
			}
			indexed.Add(1)
			return nil
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return int(indexed.Load()), err
	}
	return int(indexed.Load()), walkErr
}

// DeleteDocument removes a document from the registry and rebuilds the term
// index from the remaining documents. The tree itself only removes whole
// terms, so a per-document delete is a rebuild.
func (idx *Indexer) DeleteDocument(ctx context.Context, id string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if err := idx.storage.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if err := idx.rebuildLocked(ctx); err != nil {
		return fmt.Errorf("failed to rebuild after delete: %w", err)
	}
	if idx.logger != nil {
		idx.logger.Debug("document deleted", zap.String("id", id))
	}
	return nil
}

// Rebuild resets the in-memory index and re-indexes every document in the
// registry. Called at startup and after any destructive registry change.
func (idx *Indexer) Rebuild(ctx context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.rebuildLocked(ctx)
}

func (idx *Indexer) rebuildLocked(ctx context.Context) error {
	idx.engine.Reset()
	const pageSize = 200
	for offset := 0; ; offset += pageSize {
		docs, err := idx.storage.ListDocuments(ctx, offset, pageSize)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		for _, doc := range docs {
			terms, err := idx.storage.GetTerms(ctx, doc.ID)
			if err != nil {
				return fmt.Errorf("failed to load terms for %s: %w", doc.ID, err)
			}
			idx.engine.Index(doc.ID, terms)
		}
		if len(docs) < pageSize {
			return nil
		}
	}
}

func (idx *Indexer) extractContent(path string) (string, error) {
	if idx.extractor != nil {
		return idx.extractor.Extract(path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func extensionAllowed(ext string, allowed []string) bool {
	extNorm := strings.TrimPrefix(ext, ".")
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == extNorm {
			return true
		}
	}
	return false
}
