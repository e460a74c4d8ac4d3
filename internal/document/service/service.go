package service

import (
	"context"
	"fmt"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/repository"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/schema"
	"github.com/lexdesk/lexdesk/backend/go-services/pkg/logger"
)

// ListParams are the parsed inputs of a list request. A non-positive Limit
// selects the entity's default.
type ListParams struct {
	Term       string
	Conditions []query.Condition
	Limit      int
}

// Service applies the validate-then-insert and filter-then-find operations
// to any registered entity.
type Service struct {
	registry *schema.Registry
	store    repository.Store
}

func New(registry *schema.Registry, store repository.Store) *Service {
	return &Service{registry: registry, store: store}
}

func (s *Service) Registry() *schema.Registry { return s.registry }

func (s *Service) entity(name string) (*schema.Entity, error) {
	e, ok := s.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnknownEntity, name)
	}
	return e, nil
}

// Create validates raw against the entity schema and persists it, returning
// the generated identifier. Nothing is stored when validation fails.
func (s *Service) Create(ctx context.Context, entity string, raw []byte) (string, error) {
	e, err := s.entity(entity)
	if err != nil {
		return "", err
	}
	rec, err := s.registry.Validate(e.Name, raw)
	if err != nil {
		return "", err
	}
	id, err := s.store.Insert(ctx, e.Collection, rec)
	if err != nil {
		return "", err
	}
	logger.Debugf("created %s %s", e.Collection, id)
	return id, nil
}

// List returns at most the effective limit of matching records, each with
// its identifier under "id". The search term is ignored for entities that
// are not searchable.
func (s *Service) List(ctx context.Context, entity string, p ListParams) ([]document.Record, error) {
	e, err := s.entity(entity)
	if err != nil {
		return nil, err
	}
	limit := p.Limit
	if limit <= 0 {
		limit = e.DefaultLimit
	}
	limit = repository.ClampLimit(limit)

	var fields []string
	if e.Searchable {
		fields = schema.SearchFields
	}
	f := query.Build(p.Term, fields, p.Conditions)
	recs, err := s.store.Find(ctx, e.Collection, f, limit)
	if err != nil {
		return nil, err
	}
	out := make([]document.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, document.Present(r))
	}
	return out, nil
}

// Status reports store connectivity.
func (s *Service) Status(ctx context.Context) repository.Status {
	return s.store.Status(ctx)
}
