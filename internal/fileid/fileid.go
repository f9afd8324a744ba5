// Package fileid maps filesystem paths to index document IDs. Watched files
// are indexed under an ID derived from their path rather than a generated
// one, so a change event updates the existing document and a remove event can
// locate it without a registry lookup.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// IDs carry a scheme prefix so path-derived documents are distinguishable
// from API-submitted ones in the registry.
const scheme = "file:"

// FileDocID returns the document ID for path. Equivalent paths map to the
// same ID regardless of redundant separators, "." or ".." segments, or the
// platform's separator character.
func FileDocID(path string) string {
	digest := sha256.Sum256([]byte(normalize(path)))
	return scheme + hex.EncodeToString(digest[:])
}

// normalize reduces a path to its canonical slash-separated form so the
// derived ID does not depend on how the caller spelled the path.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
