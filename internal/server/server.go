// Package server assembles the homedash service from a Config and runs it.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/txn2/homedash/pkg/api"
	"github.com/txn2/homedash/pkg/api/docs"
	"github.com/txn2/homedash/pkg/audit"
	auditpg "github.com/txn2/homedash/pkg/audit/postgres"
	"github.com/txn2/homedash/pkg/auth"
	"github.com/txn2/homedash/pkg/config"
	"github.com/txn2/homedash/pkg/dashboard"
	dashboardpg "github.com/txn2/homedash/pkg/dashboard/postgres"
	"github.com/txn2/homedash/pkg/database/migrate"
	"github.com/txn2/homedash/pkg/editlock"
	"github.com/txn2/homedash/pkg/health"
	"github.com/txn2/homedash/pkg/session"
)

// Version is set at build time.
var Version = "dev"

// auditCleanupInterval is how often the Postgres audit store prunes events
// past retention.
const auditCleanupInterval = time.Hour

// Server owns every long-lived component of a running homedash.
type Server struct {
	cfg *config.Config

	db         *sql.DB
	registry   *editlock.Registry
	reaper     *editlock.Reaper
	sessions   *session.Manager
	dashboards dashboard.Store
	auditStore audit.Store
	recorder   *audit.Recorder
	health     *health.Checker
	metrics    *prometheus.Registry

	handler http.Handler
}

// New builds a Server. Background routines (reaper, session cleanup, audit
// recorder) start here; Close stops them.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		health:  health.NewChecker(),
		metrics: prometheus.NewRegistry(),
	}

	if err := s.openDatabase(ctx); err != nil {
		return nil, err
	}
	if err := s.initEditLock(); err != nil {
		s.closeDatabase()
		return nil, err
	}
	s.initStores()

	authn, err := newAuthenticator(cfg.Auth)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	s.handler = s.routes(api.NewHandler(api.Deps{
		Registry:   s.registry,
		Sessions:   s.sessions,
		Dashboards: s.dashboards,
		Audit:      s.auditStore,
	}, auth.Middleware(authn)))

	return s, nil
}

func (s *Server) openDatabase(ctx context.Context) error {
	if s.cfg.Database.DSN == "" {
		slog.Info("no database configured, using in-memory stores")
		return nil
	}

	db, err := sql.Open("postgres", s.cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(s.cfg.Database.MaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("pinging database: %w", err)
	}
	if s.cfg.Database.AutoMigrate {
		if err := migrate.Run(db); err != nil {
			_ = db.Close()
			return err
		}
	}

	s.db = db
	s.health.AddCheck("database", db.PingContext)
	return nil
}

func (s *Server) closeDatabase() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *Server) initEditLock() error {
	m := editlock.NewMetrics()
	s.registry = editlock.NewRegistry(editlock.RegistryConfig{Metrics: m})

	if err := m.Register(s.metrics, s.registry); err != nil {
		return err
	}
	if err := s.registerRuntimeMetrics(); err != nil {
		return err
	}

	s.reaper = editlock.NewReaper(s.registry, s.cfg.EditLock.ReapInterval)
	s.reaper.Start(context.Background())

	s.sessions = session.NewManager(session.ManagerConfig{
		Registry:    s.registry,
		IdleTimeout: s.cfg.Session.IdleTimeout,
	})
	s.sessions.StartCleanupRoutine(s.cfg.Session.CleanupInterval)
	return nil
}

func (s *Server) registerRuntimeMetrics() error {
	sessions := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "homedash",
		Subsystem: "session",
		Name:      "open",
		Help:      "Client sessions currently open.",
	}, func() float64 {
		if s.sessions == nil {
			return 0
		}
		return float64(s.sessions.Len())
	})

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		sessions,
	} {
		if err := s.metrics.Register(c); err != nil {
			return fmt.Errorf("registering runtime metric: %w", err)
		}
	}
	return nil
}

func (s *Server) initStores() {
	if s.db != nil {
		s.dashboards = dashboardpg.New(s.db)
	} else {
		s.dashboards = dashboard.NewMemoryStore()
	}

	if !s.cfg.Audit.Enabled {
		return
	}
	if s.db != nil {
		pg := auditpg.New(s.db, auditpg.Config{RetentionDays: s.cfg.Audit.RetentionDays})
		pg.StartCleanupRoutine(auditCleanupInterval)
		s.auditStore = pg
	} else {
		s.auditStore = audit.NewMemoryStore(0)
	}

	s.recorder = audit.NewRecorder(audit.RecorderConfig{
		Store:      s.auditStore,
		Notifier:   s.registry.Notifier(),
		Clock:      s.registry,
		BufferSize: s.cfg.Audit.BufferSize,
	})
	s.recorder.Start()
}

// newAuthenticator builds the request authenticator from config.
func newAuthenticator(cfg config.AuthConfig) (auth.Authenticator, error) {
	var authns []auth.Authenticator

	if cfg.APIKeys.Enabled {
		keys := make([]auth.APIKey, 0, len(cfg.APIKeys.Keys))
		for _, k := range cfg.APIKeys.Keys {
			keys = append(keys, auth.APIKey{
				Key:         k.Key,
				KeyHash:     k.KeyHash,
				Name:        k.Name,
				DisplayName: k.DisplayName,
				Roles:       k.Roles,
			})
		}
		authns = append(authns, auth.NewAPIKeyAuthenticator(auth.APIKeyConfig{Keys: keys}))
	}

	if cfg.JWT.Enabled {
		j, err := auth.NewJWTAuthenticator(auth.JWTConfig{
			Issuer:        cfg.JWT.Issuer,
			SigningKey:    []byte(cfg.JWT.SigningKey),
			RoleClaimPath: cfg.JWT.RoleClaimPath,
			NameClaimPath: cfg.JWT.NameClaimPath,
		})
		if err != nil {
			return nil, fmt.Errorf("creating JWT authenticator: %w", err)
		}
		authns = append(authns, j)
	}

	return auth.NewChainedAuthenticator(auth.ChainedAuthConfig{AllowAnonymous: cfg.AllowAnonymous}, authns...), nil
}

// routes mounts the API next to the operational endpoints.
func (s *Server) routes(apiHandler http.Handler) http.Handler {
	docs.SwaggerInfo.Version = Version

	mux := http.NewServeMux()
	mux.Handle("/api/", otelhttp.NewHandler(apiHandler, "homedash.api"))
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	mux.Handle("GET /healthz", s.health.LivenessHandler())
	mux.Handle("GET /readyz", s.health.ReadinessHandler())
	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Path, promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}
	return mux
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Health returns the readiness checker.
func (s *Server) Health() *health.Checker {
	return s.health
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests within server.shutdown_timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("homedash listening", "address", ln.Addr().String(), "version", Version)
		s.health.SetReady()

		var err error
		if tls := s.cfg.Server.TLS; tls.Enabled {
			err = srv.ServeTLS(ln, tls.CertFile, tls.KeyFile)
		} else {
			err = srv.Serve(ln)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	})
	g.Go(func() error {
		<-gctx.Done()
		s.health.SetDraining()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http: %w", err)
		}
		slog.Info("homedash stopped")
		return nil
	})

	return g.Wait()
}

// Close stops background routines and releases resources. Open sessions
// are closed first so their lock releases reach the audit trail.
func (s *Server) Close() error {
	var errs []error
	closeAll := []io.Closer{}
	if s.sessions != nil {
		closeAll = append(closeAll, s.sessions)
	}
	if s.reaper != nil {
		closeAll = append(closeAll, s.reaper)
	}
	if s.recorder != nil {
		closeAll = append(closeAll, s.recorder)
	}
	if s.auditStore != nil {
		closeAll = append(closeAll, s.auditStore)
	}
	for _, c := range closeAll {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closeDatabase()
	return errors.Join(errs...)
}
