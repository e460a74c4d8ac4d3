package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/models"
)

// FilterKind tells the router how to parse an equality filter parameter.
type FilterKind int

const (
	FilterString FilterKind = iota
	FilterInt
)

// FilterField is a query parameter accepted as an exact-match constraint on
// the field of the same name.
type FilterField struct {
	Name string
	Kind FilterKind
}

// Entity describes one registered entity type.
type Entity struct {
	Name         string
	Collection   string
	Filters      []FilterField
	Searchable   bool
	DefaultLimit int

	newModel func() models.Model
}

// SearchFields are matched by free-text search. Fields a given entity does
// not have simply never match.
var SearchFields = []string{"title", "name", "description", "content"}

// Registry maps entity names to their descriptors and validates payloads.
type Registry struct {
	entities map[string]*Entity
	order    []string
	validate *validator.Validate
	now      func() time.Time
}

// CollectionName derives the storage collection from an entity name.
func CollectionName(entity string) string {
	return strings.ToLower(entity)
}

// NewRegistry returns a registry holding the seven practice entities.
func NewRegistry() *Registry {
	r := &Registry{
		entities: map[string]*Entity{},
		validate: newValidator(),
		now:      time.Now,
	}
	r.Register(Entity{Name: "Client", Searchable: true, DefaultLimit: 50,
		newModel: func() models.Model { return models.NewClient() }})
	r.Register(Entity{Name: "Case", Searchable: true, DefaultLimit: 50,
		Filters:  []FilterField{{Name: "client_id"}, {Name: "status"}},
		newModel: func() models.Model { return models.NewCase() }})
	r.Register(Entity{Name: "Task", DefaultLimit: 50,
		Filters:  []FilterField{{Name: "case_id"}, {Name: "status"}, {Name: "assignee_id"}},
		newModel: func() models.Model { return models.NewTask() }})
	r.Register(Entity{Name: "Invoice", DefaultLimit: 50,
		Filters:  []FilterField{{Name: "client_id"}, {Name: "case_id"}, {Name: "status"}},
		newModel: func() models.Model { return models.NewInvoice() }})
	r.Register(Entity{Name: "Setting", DefaultLimit: 100,
		Filters:  []FilterField{{Name: "scope"}, {Name: "user_id"}},
		newModel: func() models.Model { return models.NewSetting() }})
	r.Register(Entity{Name: "LegalDocument", Searchable: true, DefaultLimit: 50,
		Filters:  []FilterField{{Name: "practice_area"}, {Name: "jurisdiction"}, {Name: "year", Kind: FilterInt}},
		newModel: func() models.Model { return models.NewLegalDocument() }})
	r.Register(Entity{Name: "AssistantMessage", DefaultLimit: 100,
		Filters:  []FilterField{{Name: "conversation_id"}, {Name: "related_case_id"}},
		newModel: func() models.Model { return models.NewAssistantMessage() }})
	return r
}

// Register adds an entity. The collection name is always derived from the
// entity name. Registering the same name twice panics.
func (r *Registry) Register(e Entity) {
	if _, dup := r.entities[e.Name]; dup {
		panic(fmt.Sprintf("schema: entity %q registered twice", e.Name))
	}
	if e.newModel == nil {
		panic(fmt.Sprintf("schema: entity %q has no model constructor", e.Name))
	}
	e.Collection = CollectionName(e.Name)
	r.entities[e.Name] = &e
	r.order = append(r.order, e.Name)
}

// Lookup returns the descriptor for an entity name.
func (r *Registry) Lookup(name string) (*Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Entities returns descriptors in registration order.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.entities[n])
	}
	return out
}

// Collections returns collection names in registration order.
func (r *Registry) Collections() []string {
	out := make([]string, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.entities[n].Collection)
	}
	return out
}
