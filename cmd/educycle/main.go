package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/redis/go-redis/v9"

	"github.com/erazemk/educycle/internal/api"
	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/config"
	"github.com/erazemk/educycle/internal/db"
	"github.com/erazemk/educycle/internal/quote"
	"github.com/erazemk/educycle/internal/store"
	"github.com/erazemk/educycle/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	min    slog.Level
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.min
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		min:    lr.min,
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		min:    lr.min,
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging at the given level. If logPath is
// non-empty, every record is also written to that file. The returned cleanup
// closes the file and is nil when no file was opened.
func setupLogger(level slog.Level, logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: level}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		min:    level,
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// openBackend connects the configured store. The returned close func releases
// the underlying connection.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		slog.Info("store ready", "backend", "redis", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return store.NewRedis(client, cfg.Redis.Prefix), client.Close, nil

	default:
		database, err := db.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.EnsureSchema(database); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("ensuring database schema: %w", err)
		}
		slog.Info("store ready", "backend", "sqlite", "path", cfg.Storage.Path)
		return store.NewSQLite(database), database.Close, nil
	}
}

func main() {
	fs := flag.NewFlagSet("educycle", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var envFile string
	fs.StringVar(&envFile, "env", ".env", "")
	fs.StringVar(&envFile, "e", ".env", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var reset bool
	fs.BoolVar(&reset, "reset", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: educycle [flags]

Flags:
  -c, -config <path>      YAML config file (default: none)
  -e, -env <path>         dotenv file (default: .env, skipped if missing)
  -d, -db <path>          SQLite database path (default: educycle.db)
  -a, -addr <host:port>   listen address (default: localhost:8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -reset              restore the demo users and items, then serve
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over file and environment.
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if logPath != "" {
		cfg.Logging.File = logPath
	}

	closeLog, err := setupLogger(cfg.Level(), cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	ctx := context.Background()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	// JWT secret lives in the store (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(ctx, backend)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	if cfg.Gemini.APIKey == "" {
		slog.Warn("no Gemini API key configured, leaderboard quotes will show a fallback")
	}
	quotes := quote.NewFetcher(nil, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Endpoint)

	a := app.New(store.NewRecords(backend), quotes)
	if reset {
		if err := a.Reset(ctx); err != nil {
			slog.Error("failed to reset data", "error", err)
			os.Exit(1)
		}
		slog.Info("demo data restored")
	} else if err := a.Init(ctx); err != nil {
		slog.Error("failed to initialize data", "error", err)
		os.Exit(1)
	}

	if p, err := a.Permission(ctx); err == nil {
		slog.Info("storage permission", "permission", p)
	}

	// Set up routers.
	apiRouter := api.NewRouter(a, backend, jwtSecret, cfg.Server.AllowedOrigins)
	webRouter, err := web.NewRouter(a)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	handler := alice.New(api.RecoverPanic, api.LoggingMiddleware, api.SecureHeaders).Then(mux)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing store")
}
