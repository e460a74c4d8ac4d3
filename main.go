package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexdesk/lexdesk/backend/go-services/handlers"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/config"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/database"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/handler"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/repository"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/schema"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/service"
	"github.com/lexdesk/lexdesk/backend/go-services/pkg/logger"
	"github.com/lexdesk/lexdesk/backend/go-services/pkg/metrics"
	"github.com/lexdesk/lexdesk/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = logger.Sync() }()
	logger.Infof("config loaded: backend=%s mongo=%v redis=%v", cfg.Database.Backend, cfg.Database.URL != "", cfg.Redis.Host != "")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.CORS(cfg.CORS.AllowOrigins))

	// Optional global rate limiter, per client IP.
	if cfg.RateLimit.Enabled {
		var rdb *redis.Client
		if cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
			rdb = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warnf("failed to connect to Redis (%s:%s), using in-process limiter: %v", cfg.Redis.Host, cfg.Redis.Port, err)
				_ = rdb.Close()
				rdb = nil
			} else {
				defer func() { _ = rdb.Close() }()
				logger.Infof("rate limiter backed by Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
			}
		}
		if rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	registry := schema.NewRegistry()
	store, client := openStore(ctx, cfg, registry)
	if client != nil {
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
	}
	svc := service.New(registry, repository.Instrument(store))

	handlers.RegisterSystemRoutes(r, cfg, svc, startTime)
	handler.RegisterDocumentRoutes(r, svc)
	handlers.RegisterSwagger(r, registry)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Starting records service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// openStore selects the document store once at startup. A missing or
// unreachable database yields a store that reports itself unavailable, so
// the process still serves diagnostics.
func openStore(ctx context.Context, cfg *config.Config, registry *schema.Registry) (repository.Store, *mongo.Client) {
	if cfg.Database.Backend == "memory" {
		logger.Warnf("using process-local memory store; records are lost on exit")
		return repository.NewMemoryStore(), nil
	}
	if cfg.Database.URL == "" {
		logger.Warnf("DATABASE_URL not set; data endpoints will report the store unavailable")
		return repository.NewUnavailable(nil), nil
	}

	client, err := database.ConnectMongo(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		logger.Errorf("could not connect to MongoDB: %v", err)
		return repository.NewUnavailable(err), nil
	}
	store := repository.NewMongoStore(client.Database(cfg.Database.Name))

	ictx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()
	for _, e := range registry.Entities() {
		fields := make([]string, 0, len(e.Filters))
		for _, f := range e.Filters {
			fields = append(fields, f.Name)
		}
		if err := store.EnsureIndexes(ictx, e.Collection, fields); err != nil {
			logger.Warnf("index setup for %s failed: %v", e.Collection, err)
		}
	}
	logger.Infof("connected to MongoDB database %s", cfg.Database.Name)
	return store, client
}
