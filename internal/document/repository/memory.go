package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps records in process. It backs unit tests and the
// STORE_BACKEND=memory mode; contents are lost on restart.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]document.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]document.Record)}
}

func (m *MemoryStore) Insert(ctx context.Context, collection string, rec document.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &PersistenceError{Op: "insert", Collection: collection, Err: err}
	}
	id := primitive.NewObjectID()
	stored := make(document.Record, len(rec)+1)
	for k, v := range rec {
		stored[k] = v
	}
	stored[document.FieldID] = id

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], stored)
	return id.Hex(), nil
}

func (m *MemoryStore) Find(ctx context.Context, collection string, f query.Filter, limit int) ([]document.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "find", Collection: collection, Err: err}
	}
	limit = ClampLimit(limit)

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []document.Record{}
	for _, rec := range m.collections[collection] {
		if len(out) == limit {
			break
		}
		if !f.Matches(rec) {
			continue
		}
		cp := make(document.Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *MemoryStore) Status(ctx context.Context) Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > maxStatusCollections {
		names = names[:maxStatusCollections]
	}
	return Status{Backend: "memory", Configured: true, Connected: true, Database: "memory", Collections: names}
}
