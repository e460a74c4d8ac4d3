package repository

import (
	"context"
	"fmt"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
)

// Unavailable stands in when no store is configured or the startup
// connection failed. Every operation fails with ErrUnavailable.
type Unavailable struct {
	reason error
}

// NewUnavailable returns a placeholder store. A nil reason means the store
// was never configured.
func NewUnavailable(reason error) *Unavailable {
	return &Unavailable{reason: reason}
}

func (u *Unavailable) err() error {
	if u.reason == nil {
		return fmt.Errorf("%w: not configured", ErrUnavailable)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, u.reason)
}

func (u *Unavailable) Insert(ctx context.Context, collection string, rec document.Record) (string, error) {
	return "", u.err()
}

func (u *Unavailable) Find(ctx context.Context, collection string, f query.Filter, limit int) ([]document.Record, error) {
	return nil, u.err()
}

func (u *Unavailable) Status(ctx context.Context) Status {
	return Status{Backend: "none", Configured: u.reason != nil, Err: u.reason}
}
