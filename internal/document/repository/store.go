package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
)

// MaxLimit bounds every Find regardless of the requested limit.
const MaxLimit = 1000

// maxStatusCollections caps the collection names reported by Status.
const maxStatusCollections = 20

var ErrUnavailable = errors.New("document store unavailable")

// PersistenceError wraps a lower-level store fault on an otherwise valid
// operation.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the generic persistence layer shared by every entity type.
// Insert is the only mutating operation.
type Store interface {
	Insert(ctx context.Context, collection string, rec document.Record) (string, error)
	Find(ctx context.Context, collection string, f query.Filter, limit int) ([]document.Record, error)
	Status(ctx context.Context) Status
}

// Status describes store connectivity for diagnostics.
type Status struct {
	Backend     string
	Configured  bool
	Connected   bool
	Database    string
	Collections []string
	Err         error
}

// ClampLimit maps a requested limit onto [1, MaxLimit]; non-positive means
// MaxLimit.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
