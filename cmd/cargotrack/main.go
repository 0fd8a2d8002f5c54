package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/erazemk/cargotrack/internal/api"
	"github.com/erazemk/cargotrack/internal/app"
	"github.com/erazemk/cargotrack/internal/auth"
	"github.com/erazemk/cargotrack/internal/listing"
	"github.com/erazemk/cargotrack/internal/web"
)

// envOr returns the environment variable key, or def when it is unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func main() {
	// A missing .env is fine; the environment and flags still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: loading .env: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("cargotrack", flag.ContinueOnError)

	defAddr := envOr("CARGOTRACK_ADDR", ":8080")
	var addr string
	fs.StringVar(&addr, "addr", defAddr, "")
	fs.StringVar(&addr, "a", defAddr, "")

	defLog := envOr("CARGOTRACK_LOG", "")
	var logPath string
	fs.StringVar(&logPath, "log", defLog, "")
	fs.StringVar(&logPath, "l", defLog, "")

	defStore := envOr("CARGOTRACK_STORE", app.BackendMemory)
	var backend string
	fs.StringVar(&backend, "store", defStore, "")
	fs.StringVar(&backend, "s", defStore, "")

	defPageSize, err := strconv.Atoi(envOr("CARGOTRACK_PAGE_SIZE", strconv.Itoa(listing.DefaultPageSize)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: CARGOTRACK_PAGE_SIZE: %v\n", err)
		os.Exit(1)
	}
	var pageSize int
	fs.IntVar(&pageSize, "page-size", defPageSize, "")
	fs.IntVar(&pageSize, "p", defPageSize, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: cargotrack [flags]

Flags:
  -a, -addr <host:port>   listen address (default: :8080, env CARGOTRACK_ADDR)
  -s, -store <backend>    record store: memory or sqlite (default: memory, env CARGOTRACK_STORE)
  -p, -page-size <n>      records per page (default: 4, env CARGOTRACK_PAGE_SIZE)
  -l, -log <path>         log file path (default: stdout/stderr only, env CARGOTRACK_LOG)
  -h, -help               show this help and exit

Environment:
  CARGOTRACK_SESSION_SECRET   session signing key (default: random per run)
  ALLOWED_ORIGINS             comma-separated CORS origins for the API
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
	if pageSize < 1 {
		fmt.Fprintf(os.Stderr, "error: page size must be at least 1, got %d\n", pageSize)
		os.Exit(1)
	}

	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	secret := os.Getenv("CARGOTRACK_SESSION_SECRET")
	if secret == "" {
		secret, err = auth.NewSecret()
		if err != nil {
			slog.Error("failed to generate session secret", "error", err)
			os.Exit(1)
		}
		slog.Warn("CARGOTRACK_SESSION_SECRET not set, sessions end on restart")
	}

	a, err := app.New(context.Background(), app.Config{Backend: backend, PageSize: pageSize})
	if err != nil {
		slog.Error("failed to set up stores", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	webRouter, err := web.NewRouter(a, secret)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// API routes take priority, web routes handle the rest.
	r := chi.NewRouter()
	r.Use(api.RequestID)
	r.Use(api.LoggingMiddleware)
	r.Use(api.Recoverer)
	r.Use(api.CORS(os.Getenv("ALLOWED_ORIGINS")))
	r.Mount("/api", api.NewRouter(a, secret))
	r.Mount("/", webRouter)

	server := &http.Server{
		Addr:              addr,
		Handler:           r,
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

	slog.Info("server started", "addr", addr, "store", backend, "page_size", pageSize)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
