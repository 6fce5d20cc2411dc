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

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/randalmurphal/pagekit/maintenance"
)

type serveConfig struct {
	addr       string
	configPath string
	envFile    string
	root       string
	watch      bool
	verbose    bool
}

func runServe(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg serveConfig
	fs.StringVar(&cfg.addr, "addr", ":8080", "listen address")
	fs.StringVar(&cfg.configPath, "config", "", "maintenance options file (.yaml, .toml or .json)")
	fs.StringVar(&cfg.envFile, "env", ".env", "dotenv file with MAINTENANCE_* overrides; ignored if missing")
	fs.StringVar(&cfg.root, "root", "", "directory to serve as the site; a placeholder page if empty")
	fs.BoolVar(&cfg.watch, "watch", false, "reload the options file when it changes")
	fs.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.watch && cfg.configPath == "" {
		return errors.New("-watch requires -config")
	}

	logger := newLogger(stderr, cfg.verbose)

	if err := godotenv.Load(cfg.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", cfg.envFile, err)
	}

	opts, err := loadServeOptions(cfg.configPath)
	if err != nil {
		return err
	}

	gate := maintenance.NewGate(opts, maintenance.NewRenderer(logger), logger)
	router := newRouter(gate, cfg.root)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.watch {
		watcher := maintenance.NewWatcher(cfg.configPath, gate.SetOptions, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("options watcher stopped", slog.Any("error", err))
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", slog.String("addr", cfg.addr), slog.Bool("maintenance", opts.Enabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// loadServeOptions loads options from path, or uses defaults when path is
// empty, then applies MAINTENANCE_* environment overrides.
func loadServeOptions(path string) (maintenance.Options, error) {
	opts := maintenance.DefaultOptions()
	if path != "" {
		var err error
		if opts, err = maintenance.LoadOptions(path); err != nil {
			return opts, err
		}
	}
	if err := opts.ApplyEnv(os.LookupEnv); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// newRouter routes every request through the maintenance gate to the site.
func newRouter(gate *maintenance.Gate, root string) *mux.Router {
	router := mux.NewRouter()
	router.Use(gate.Middleware)

	var site http.Handler = http.HandlerFunc(placeholder)
	if root != "" {
		site = http.FileServer(http.Dir(root))
	}
	router.PathPrefix("/").Handler(site)
	return router
}

func placeholder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "site is up: %s\n", r.URL.Path)
}
