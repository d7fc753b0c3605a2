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

	httpapi "github.com/aussiebroadwan/gatekeeper/internal/auth/http"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application encapsulates the gatekeeper service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	secret jwtx.SecretSource
	codec  *jwtx.Codec

	// Services
	authService    *service.AuthService
	identityLookup *service.IdentityLookup

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatekeeper",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}
	app.logger.Debug("loaded config", "config", cfg.String())

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initSigning(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	if err := app.initUsers(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("gatekeeper starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatekeeper...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	return app.Close()
}

// Close releases the database without touching the HTTP server.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gatekeeper stopped")
	return nil
}

// initSigning loads the HMAC secret and builds the token codec
func (app *Application) initSigning() error {
	secret, err := jwtx.NewStaticSecret([]byte(app.cfg.Secret))
	if err != nil {
		return fmt.Errorf("failed to load signing secret: %w", err)
	}
	app.secret = secret

	codec, err := jwtx.NewCodec(jwtx.CodecOptions{
		Secret: secret,
		TTL:    app.cfg.TokenTTL,
		Issuer: app.cfg.Issuer,
		Leeway: app.cfg.ClockSkew,
	})
	if err != nil {
		return fmt.Errorf("failed to build token codec: %w", err)
	}
	app.codec = codec

	app.logger.Info("token signing ready", "alg", "HS256", "ttl", app.cfg.TokenTTL, "issuer", app.cfg.Issuer)
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := OpenDatabase(app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully")
	return nil
}

// OpenDatabase opens the configured SQLite file and brings its schema up to
// date. Only the database fields of cfg are used.
func OpenDatabase(cfg Config) (*sqlite.Store, error) {
	dsn := cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	hasher, err := cryptox.NewHasher(app.cfg.PasswordHasher, app.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to build password hasher: %w", err)
	}

	timeout := app.cfg.StoreTimeout
	credentials, err := service.NewCredentialVerifier(app.db, hasher, timeout)
	if err != nil {
		return fmt.Errorf("failed to build credential verifier: %w", err)
	}
	app.authService = &service.AuthService{
		Credentials: credentials,
		Tokens:  app.codec,
		Store:   app.db,
		Hasher:  hasher,
		Timeout: timeout,
	}
	app.identityLookup = &service.IdentityLookup{Store: app.db, Timeout: timeout}
	return nil
}

// initUsers seeds the demo accounts when enabled and warns about an empty
// user table otherwise
func (app *Application) initUsers() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	if app.cfg.SeedDemoUsers {
		if err := app.authService.Seed(ctx, service.DemoUsers); err != nil {
			return fmt.Errorf("failed to seed demo users: %w", err)
		}
		return nil
	}

	sctx, cancel := context.WithTimeout(ctx, app.cfg.StoreTimeout)
	defer cancel()
	empty, err := app.db.Users().IsEmpty(sctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if empty {
		app.logger.Warn("no users exist; register one and promote it with set-role, or set AUTH_SEED_DEMO_USERS=true")
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		app.secret,
		app.cfg.HeaderScheme,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.IdentityLookup = app.identityLookup
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
