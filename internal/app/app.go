package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/advocates/internal/config"
	"github.com/simp-lee/advocates/internal/domain"
	"github.com/simp-lee/advocates/internal/middleware"
	"github.com/simp-lee/advocates/internal/module/advocate"
	"github.com/simp-lee/advocates/internal/pkg"
)

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	shutdownTimeout     = 5 * time.Second
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	read, write := defaultReadTimeout, defaultWriteTimeout
	if timeout > 0 {
		read, write = timeout, timeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       read,
		WriteTimeout:      write,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, the advocate repository, service and
// handler, middleware and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	listing, err := listingOptions(&cfg.Listing)
	if err != nil {
		return nil, err
	}
	corsConfig, err := resolveCORSConfig(cfg.Server.Mode, &cfg.Server.CORS)
	if err != nil {
		return nil, err
	}
	timeout, err := parseOptionalDuration(cfg.Server.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid server.timeout: %w", err)
	}

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		closeDB(db)
	}()

	if cfg.ShouldAutoMigrate() {
		if err := db.AutoMigrate(&domain.Advocate{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	repo := advocate.NewAdvocateRepository(db)
	svc := advocate.NewAdvocateService(repo)
	handler := advocate.NewAdvocateHandler(svc, listing)

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: cfg.Server.TrustRequestID,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{advocate.NewModule(handler)},
		DB:      db,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	if timeout > 0 {
		log.Info("server timeout configured", slog.Duration("timeout", timeout))
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.engine
}

// DB returns the database handle owned by the app.
func (a *App) DB() *gorm.DB {
	return a.db
}

// listingOptions converts the listing config into handler options. The
// default column must be one of the sortable advocate columns.
func listingOptions(cfg *config.ListingConfig) (pkg.ListingOptions, error) {
	opts := pkg.DefaultListingOptions()
	if cfg.DefaultColumn != "" {
		if !advocate.Columns.Allowed(cfg.DefaultColumn) {
			return opts, fmt.Errorf("invalid listing.default_column %q: must be one of %v", cfg.DefaultColumn, advocate.Columns.Names())
		}
		opts.DefaultColumn = cfg.DefaultColumn
	}
	if d := domain.SortDirection(cfg.DefaultSort); d.Valid() {
		opts.DefaultSort = d
	}
	if cfg.DefaultPageSize > 0 {
		opts.DefaultPageSize = cfg.DefaultPageSize
	}
	if cfg.MaxPageSize > 0 {
		opts.MaxPageSize = cfg.MaxPageSize
	}
	opts.StrictCursor = cfg.StrictCursor
	return opts, nil
}

// resolveCORSConfig builds the CORS middleware config. Without an explicit
// allowlist, release mode denies cross-origin requests and other modes allow
// any origin.
func resolveCORSConfig(mode string, cfg *config.CORSConfig) (middleware.CORSConfig, error) {
	corsConfig := middleware.DefaultCORSConfig()

	switch {
	case len(cfg.AllowOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowOrigins
	case mode == gin.ReleaseMode:
		corsConfig.AllowOrigins = []string{}
	}
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	corsConfig.AllowCredentials = cfg.AllowCredentials

	maxAge, err := parseOptionalDuration(cfg.MaxAge)
	if err != nil {
		return corsConfig, fmt.Errorf("invalid server.cors.max_age: %w", err)
	}
	if maxAge > 0 {
		corsConfig.MaxAge = maxAge
	}

	return corsConfig, nil
}

func parseOptionalDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("database close error", slog.Any("error", err))
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It shuts down gracefully within five seconds, then closes the database and
// the logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	timeout, err := parseOptionalDuration(a.cfg.Server.Timeout)
	if err != nil {
		return fmt.Errorf("invalid server.timeout: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, timeout)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		closeDB(a.db)
		log.Info("database connection closed")
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}
