// Package storage defines the persistence interface for the document
// registry: documents and their tokenized term sequences. The registry is the
// source of truth for rebuilding the in-memory term index at startup and
// after document deletion; the index itself is never persisted.
package storage

import (
	"context"

	"github.com/hyperjump/kensaku/internal/models"
)

// Storage defines document and term-sequence persistence operations.
type Storage interface {
	// SaveDocument inserts or replaces a document together with its ordered
	// term sequence, atomically.
	SaveDocument(ctx context.Context, doc *models.Document, terms []string) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	GetTerms(ctx context.Context, docID string) ([]string, error)
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, offset, limit int) ([]*models.Document, error)

	// Stats
	CountDocuments(ctx context.Context) (int64, error)
	CountTerms(ctx context.Context) (int64, error)

	Close() error
}
