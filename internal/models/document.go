// Package models defines core data structures for documents, queries, and
// search results.
package models

import "time"

// Document is a registered document: its identity and source metadata. The
// term sequence itself lives in storage and, once indexed, in the in-memory
// term tree.
type Document struct {
	ID        string            `json:"id" db:"id"`
	Name      string            `json:"name" db:"name"`
	Path      string            `json:"path,omitempty" db:"path"`
	TermCount int               `json:"term_count" db:"term_count"`
	Metadata  map[string]string `json:"metadata,omitempty" db:"metadata"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// DocumentInput is the input for indexing a document through the API.
type DocumentInput struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}
