package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/config"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/handler"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/repository"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/service"
	"github.com/lexdesk/lexdesk/backend/go-services/pkg/logger"
)

// statusTimeout bounds the store probe made by diagnostic endpoints.
const statusTimeout = 5 * time.Second

// DiagnosticResponse is the body of GET /test.
type DiagnosticResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// RegisterSystemRoutes registers the liveness, diagnostic, readiness and
// schema endpoints. None of them mutate state.
func RegisterSystemRoutes(r gin.IRouter, cfg *config.Config, svc *service.Service, startTime time.Time) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Legal Management System Backend Running"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, diagnose(c.Request.Context(), cfg, svc))
	})

	// readiness: 200 only when the document store answers
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), statusTimeout)
		defer cancel()
		st := svc.Status(ctx)
		ready := st.Connected && st.Err == nil
		body := gin.H{
			"status": "ready",
			"deps":   gin.H{"store": ready},
			"store":  st.Backend,
			"uptime": time.Since(startTime).String(),
		}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	})

	r.GET("/schema", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"collections": svc.Registry().Collections()})
	})
}

// diagnose never fails: store errors, and panics raised while probing the
// store, are reported in the Database field.
func diagnose(ctx context.Context, cfg *config.Config, svc *service.Service) (resp DiagnosticResponse) {
	resp = DiagnosticResponse{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      "not set",
		DatabaseName:     cfg.Database.Name,
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}
	if cfg.Database.URL != "" {
		resp.DatabaseURL = "set"
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("store diagnostic panicked: %v", r)
			resp.Database = "error: " + handler.Truncate(fmt.Sprint(r), 120)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	st := svc.Status(ctx)
	switch {
	case !st.Configured:
		resp.Database = "not configured"
	case !st.Connected:
		resp.Database = "error: " + errText(st)
	case st.Err != nil:
		resp.ConnectionStatus = "connected"
		resp.Database = "connected but error: " + errText(st)
	default:
		resp.ConnectionStatus = "connected"
		resp.Database = "connected & working"
		if st.Collections != nil {
			resp.Collections = st.Collections
		}
	}
	return resp
}

func errText(st repository.Status) string {
	if st.Err == nil {
		return "unknown"
	}
	return handler.Truncate(st.Err.Error(), 120)
}
