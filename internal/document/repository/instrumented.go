package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
	"github.com/lexdesk/lexdesk/backend/go-services/pkg/metrics"
)

type instrumented struct {
	next Store
}

// Instrument wraps s so every Insert and Find is counted and timed.
func Instrument(s Store) Store {
	return &instrumented{next: s}
}

func (i *instrumented) Insert(ctx context.Context, collection string, rec document.Record) (string, error) {
	start := time.Now()
	id, err := i.next.Insert(ctx, collection, rec)
	observe("insert", collection, start, err)
	return id, err
}

func (i *instrumented) Find(ctx context.Context, collection string, f query.Filter, limit int) ([]document.Record, error) {
	start := time.Now()
	out, err := i.next.Find(ctx, collection, f, limit)
	observe("find", collection, start, err)
	return out, err
}

func (i *instrumented) Status(ctx context.Context) Status {
	return i.next.Status(ctx)
}

func observe(op, collection string, start time.Time, err error) {
	metrics.StoreDuration.WithLabelValues(op, collection).Observe(time.Since(start).Seconds())
	metrics.StoreOperations.WithLabelValues(op, collection, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
