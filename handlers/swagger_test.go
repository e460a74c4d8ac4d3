package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/schema"
	"github.com/stretchr/testify/require"
)

func TestSwaggerEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterSwagger(g, schema.NewRegistry())

	req := httptest.NewRequest("GET", "/swagger/index.html", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), "swagger-ui")

	req2 := httptest.NewRequest("GET", "/swagger/doc.json", nil)
	w2 := httptest.NewRecorder()
	g.ServeHTTP(w2, req2)
	require.Equal(t, 200, w2.Code)
	require.Contains(t, w2.Body.String(), "openapi")
	// every entity route is documented
	for _, p := range []string{"/clients", "/cases", "/tasks", "/invoices", "/settings", "/legal-docs", "/assistant/messages"} {
		require.Contains(t, w2.Body.String(), `"`+p+`"`)
	}
	require.Contains(t, w2.Body.String(), `"practice_area"`)
}
