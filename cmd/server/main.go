package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mlakar/wishbox/internal/api"
	"github.com/mlakar/wishbox/internal/assets"
	"github.com/mlakar/wishbox/internal/config"
	"github.com/mlakar/wishbox/internal/db"
	"github.com/mlakar/wishbox/web"
)

// setupLogger builds the process logger at the configured level.
func setupLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func main() {
	cfg := config.Load()

	fs := flag.NewFlagSet("wishbox", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", cfg.DBPath, "")
	fs.StringVar(&dbPath, "d", cfg.DBPath, "")

	var addr string
	fs.StringVar(&addr, "addr", cfg.Addr, "")
	fs.StringVar(&addr, "a", cfg.Addr, "")

	var logLevel string
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "")
	fs.StringVar(&logLevel, "l", cfg.LogLevel, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: wishbox [flags]

Flags:
  -d, -db <path>           SQLite database path (default: wishbox.sqlite3)
  -a, -addr <host:port>    listen address (default: :8080)
  -l, -log-level <level>   log level: debug, info, warn, error (default: info)
  -h, -help                show this help and exit

Flag defaults can also be set through the environment (WISHBOX_DB,
WISHBOX_ADDR, WISHBOX_LOG_LEVEL), including via a .env file.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	logger, err := setupLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	firstRun := false
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		firstRun = true
	}

	database, err := db.Open(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	// Run migrations (idempotent).
	if err := db.Migrate(database); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	logger.Info("database ready", zap.String("path", dbPath), zap.Bool("created", firstRun))

	// Fingerprint the embedded frontend once; the manifest is read-only from
	// here on.
	staticFS, err := web.StaticFS()
	if err != nil {
		logger.Fatal("failed to load embedded assets", zap.Error(err))
	}
	manifest, err := assets.Build(staticFS, "index.html")
	if err != nil {
		logger.Fatal("failed to build asset manifest", zap.Error(err))
	}

	handler := api.RequestLogger(logger)(api.NewRouter(database, manifest, logger))

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}
}
