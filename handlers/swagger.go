package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/handler"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/schema"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON built from the entity registry
func RegisterSwagger(rg gin.IRouter, reg *schema.Registry) {
	doc := openAPIDoc(reg)

	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>lexdesk - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

func queryParam(name, typ, desc string) gin.H {
	return gin.H{"name": name, "in": "query", "required": false, "description": desc, "schema": gin.H{"type": typ}}
}

func openAPIDoc(reg *schema.Registry) gin.H {
	paths := gin.H{
		"/":       gin.H{"get": gin.H{"summary": "Liveness message", "responses": gin.H{"200": gin.H{"description": "running"}}}},
		"/test":   gin.H{"get": gin.H{"summary": "Document store diagnostic", "responses": gin.H{"200": gin.H{"description": "diagnostic report"}}}},
		"/schema": gin.H{"get": gin.H{"summary": "Registered collection names", "responses": gin.H{"200": gin.H{"description": "collections"}}}},
	}
	for _, rt := range handler.Routes {
		e, ok := reg.Lookup(rt.Entity)
		if !ok {
			continue
		}
		params := []gin.H{}
		if e.Searchable {
			params = append(params, queryParam("q", "string", "case-insensitive substring over title, name, description, content"))
		}
		for _, f := range e.Filters {
			typ := "string"
			if f.Kind == schema.FilterInt {
				typ = "integer"
			}
			params = append(params, queryParam(f.Name, typ, "exact match"))
		}
		params = append(params, queryParam("limit", "integer", "maximum number of records"))

		paths[rt.Path] = gin.H{
			"post": gin.H{
				"summary":     "Create " + e.Name,
				"requestBody": gin.H{"required": true, "content": gin.H{"application/json": gin.H{"schema": gin.H{"type": "object"}}}},
				"responses": gin.H{
					"200": gin.H{"description": "created; body is {id}"},
					"400": gin.H{"description": "malformed JSON"},
					"422": gin.H{"description": "validation failed"},
					"503": gin.H{"description": "document store unavailable"},
				},
			},
			"get": gin.H{
				"summary":    "List " + e.Name + " records",
				"parameters": params,
				"responses": gin.H{
					"200": gin.H{"description": "array of records"},
					"503": gin.H{"description": "document store unavailable"},
				},
			},
		}
	}
	return gin.H{
		"openapi": "3.0.0",
		"info":    gin.H{"title": "lexdesk", "version": "v0.1.0"},
		"paths":   paths,
	}
}
