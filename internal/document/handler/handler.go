package handler

import (
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/repository"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/schema"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/service"
	"github.com/lexdesk/lexdesk/backend/go-services/pkg/logger"
)

// maxBodyBytes caps create payloads.
const maxBodyBytes = 1 << 20

// detailLimit bounds store error text returned to clients.
const detailLimit = 120

// Route binds an entity type to its URL path.
type Route struct {
	Path   string
	Entity string
}

// Routes lists the create/list endpoints, one pair per entity.
var Routes = []Route{
	{Path: "/clients", Entity: "Client"},
	{Path: "/cases", Entity: "Case"},
	{Path: "/tasks", Entity: "Task"},
	{Path: "/invoices", Entity: "Invoice"},
	{Path: "/settings", Entity: "Setting"},
	{Path: "/legal-docs", Entity: "LegalDocument"},
	{Path: "/assistant/messages", Entity: "AssistantMessage"},
}

// RegisterDocumentRoutes registers POST (create) and GET (list) for every
// route. It panics if a route names an entity the registry does not know.
func RegisterDocumentRoutes(r gin.IRouter, svc *service.Service) {
	for _, rt := range Routes {
		e, ok := svc.Registry().Lookup(rt.Entity)
		if !ok {
			panic("handler: route " + rt.Path + " references unknown entity " + rt.Entity)
		}
		r.POST(rt.Path, createHandler(svc, e))
		r.GET(rt.Path, listHandler(svc, e))
	}
}

func createHandler(svc *service.Service, e *schema.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		raw, err := c.GetRawData()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := svc.Create(c.Request.Context(), e.Name, raw)
		if err != nil {
			writeError(c, e, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func listHandler(svc *service.Service, e *schema.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p service.ListParams
		if e.Searchable {
			p.Term = c.Query("q")
			if !utf8.ValidString(p.Term) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid q: must be valid UTF-8"})
				return
			}
		}
		for _, ff := range e.Filters {
			v := c.Query(ff.Name)
			if v == "" {
				continue
			}
			switch ff.Kind {
			case schema.FilterInt:
				n, err := strconv.Atoi(v)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + ff.Name + ": must be an integer"})
					return
				}
				if n == 0 {
					continue
				}
				p.Conditions = append(p.Conditions, query.Condition{Field: ff.Name, Value: n})
			default:
				if !utf8.ValidString(v) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + ff.Name + ": must be valid UTF-8"})
					return
				}
				p.Conditions = append(p.Conditions, query.Condition{Field: ff.Name, Value: v})
			}
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: must be an integer"})
				return
			}
			p.Limit = n
		}

		list, err := svc.List(c.Request.Context(), e.Name, p)
		if err != nil {
			writeError(c, e, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func writeError(c *gin.Context, e *schema.Entity, err error) {
	var verr *schema.ValidationError
	var perr *repository.PersistenceError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, schema.ErrMalformedPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrUnavailable):
		logger.Warnf("%s %s: %v", c.Request.Method, e.Collection, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document store unavailable"})
	case errors.As(err, &perr):
		logger.Errorf("%s %s: %v", c.Request.Method, e.Collection, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence error", "detail": Truncate(perr.Err.Error(), detailLimit)})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, e.Collection, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "detail": Truncate(err.Error(), detailLimit)})
	}
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
