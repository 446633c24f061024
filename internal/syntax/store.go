// Package syntax serves pre-built input-deck snippets from the persisted
// syntax map, directly and over HTTP.
package syntax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/agentic-research/moosepick/internal/catalog"
)

// ErrEmptyRequest is returned when Render is called with no objects.
var ErrEmptyRequest = errors.New("empty object list")

// NotFoundError reports every requested identifier missing from the map,
// never just the first.
type NotFoundError struct {
	Missing []string
}

func (e *NotFoundError) Error() string {
	return "objects not found in syntax map: " + strings.Join(e.Missing, ", ")
}

// Store is the load-once, read-only snippet map. Once constructed it is safe
// for unbounded concurrent readers.
type Store struct {
	snippets map[string]string
}

// NewStore wraps an already-loaded map. An empty map is a construction
// error: the process cannot serve anything useful without snippets.
func NewStore(snippets map[string]string) (*Store, error) {
	if len(snippets) == 0 {
		return nil, errors.New("syntax map is empty")
	}
	return &Store{snippets: snippets}, nil
}

// Load reads the persisted syntax map and wraps it in a Store. Any failure
// here is a startup-time fatal error, not a per-request one.
func Load(fsys billy.Filesystem, path string) (*Store, error) {
	snippets, err := catalog.LoadSyntaxMap(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("load syntax store: %w", err)
	}
	return NewStore(snippets)
}

// Len reports the number of snippets held.
func (s *Store) Len() int {
	return len(s.snippets)
}

// Render concatenates the snippets for objects in caller-supplied order, one
// per line-separated block. Returns ErrEmptyRequest for an empty list and a
// *NotFoundError naming every unknown identifier.
func (s *Store) Render(objects []string) (string, error) {
	if len(objects) == 0 {
		return "", ErrEmptyRequest
	}

	var missing []string
	for _, o := range objects {
		if _, ok := s.snippets[o]; !ok {
			missing = append(missing, o)
		}
	}
	if len(missing) > 0 {
		return "", &NotFoundError{Missing: missing}
	}

	blocks := make([]string, len(objects))
	for i, o := range objects {
		blocks[i] = s.snippets[o]
	}
	return strings.Join(blocks, "\n"), nil
}
