package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreInsertFind(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, "client", document.Record{"name": "Acme Corp", "status": "active"})
	require.NoError(t, err)
	require.Len(t, id, 24)

	list, err := s.Find(ctx, "client", query.Filter{}, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, id, document.IDString(list[0][document.FieldID]))
	require.Equal(t, "Acme Corp", list[0]["name"])

	// other collections are independent
	list, err = s.Find(ctx, "case", query.Filter{}, 50)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Len(t, list, 0)
}

func TestMemoryStoreInsertDoesNotAliasInput(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rec := document.Record{"name": "a"}
	_, err := s.Insert(ctx, "client", rec)
	require.NoError(t, err)
	rec["name"] = "changed"
	_, hasID := rec[document.FieldID]
	require.False(t, hasID)

	list, err := s.Find(ctx, "client", query.Filter{}, 0)
	require.NoError(t, err)
	require.Equal(t, "a", list[0]["name"])
}

func TestMemoryStoreLimitAndFilter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		status := "open"
		if i%2 == 1 {
			status = "closed"
		}
		_, err := s.Insert(ctx, "case", document.Record{"title": fmt.Sprintf("Merger %d", i), "status": status})
		require.NoError(t, err)
	}

	list, err := s.Find(ctx, "case", query.Filter{}, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)

	f := query.Build("merger", []string{"title"}, []query.Condition{{Field: "status", Value: "closed"}})
	list, err = s.Find(ctx, "case", f, 50)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for _, rec := range list {
		require.Equal(t, "closed", rec["status"])
	}
}

func TestMemoryStoreConcurrentInserts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	ids := make([]string, 20)
	errs := make([]error, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = s.Insert(ctx, "task", document.Record{"title": "t"})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for _, id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	list, err := s.Find(ctx, "task", query.Filter{}, 100)
	require.NoError(t, err)
	require.Len(t, list, 20)
}

func TestMemoryStoreStatus(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Insert(context.Background(), "task", document.Record{})
	require.NoError(t, err)
	_, err = s.Insert(context.Background(), "client", document.Record{})
	require.NoError(t, err)

	st := s.Status(context.Background())
	require.True(t, st.Connected)
	require.Equal(t, []string{"client", "task"}, st.Collections)
}

func TestClampLimit(t *testing.T) {
	require.Equal(t, MaxLimit, ClampLimit(0))
	require.Equal(t, MaxLimit, ClampLimit(-3))
	require.Equal(t, MaxLimit, ClampLimit(MaxLimit+1))
	require.Equal(t, 25, ClampLimit(25))
}

func TestUnavailableStore(t *testing.T) {
	ctx := context.Background()

	s := NewUnavailable(nil)
	_, err := s.Insert(ctx, "client", document.Record{"name": "x"})
	require.ErrorIs(t, err, ErrUnavailable)
	_, err = s.Find(ctx, "client", query.Filter{}, 10)
	require.ErrorIs(t, err, ErrUnavailable)
	st := s.Status(ctx)
	require.False(t, st.Configured)
	require.False(t, st.Connected)

	s = NewUnavailable(fmt.Errorf("mongo ping: connection refused"))
	st = s.Status(ctx)
	require.True(t, st.Configured)
	require.False(t, st.Connected)
	require.ErrorContains(t, st.Err, "connection refused")
}
