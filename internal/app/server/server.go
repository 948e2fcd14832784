package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfhub/internal/domain/analytics"
	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/org"
	"perfhub/internal/platform/config"
	"perfhub/internal/platform/db"
	"perfhub/internal/platform/metrics"
	"perfhub/internal/transport/http/api"
	analyticshandler "perfhub/internal/transport/http/handlers/analytics"
	audithandler "perfhub/internal/transport/http/handlers/audit"
	authhandler "perfhub/internal/transport/http/handlers/auth"
	orghandler "perfhub/internal/transport/http/handlers/org"
	"perfhub/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	collector := metrics.New()
	app := &App{
		Config:  cfg,
		DB:      pool,
		Metrics: collector,
	}
	app.Router = buildRouter(cfg, pool, collector)
	return app, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("perfhub server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func buildRouter(cfg config.Config, pool *pgxpool.Pool, collector *metrics.Collector) http.Handler {
	orgStore := org.NewStore(pool)
	auditSvc := audit.New(pool)
	analyticsSvc := analytics.NewService(analytics.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		loginHandler := authhandler.NewHandler(orgStore, cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/login", loginHandler.HandleLogin)

		dashHandler := analyticshandler.NewHandler(analyticsSvc, orgStore, auditSvc, collector, cfg.SeedOrgName)
		dashHandler.RegisterRoutes(r)

		auditHandler := audithandler.NewHandler(auditSvc)
		auditHandler.RegisterRoutes(r)

		directoryHandler := orghandler.NewHandler(orgStore)
		directoryHandler.RegisterRoutes(r)

		if cfg.MetricsEnabled {
			r.With(middleware.RequireRoles(auth.RoleAdmin)).Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(req.Context()))
			})
		}
	})

	return router
}
