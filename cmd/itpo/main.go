// cmd/itpo/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GrantKop/is-the-port-open/pkg/api"
	"github.com/GrantKop/is-the-port-open/pkg/config"
	"github.com/GrantKop/is-the-port-open/pkg/monitor"
	"github.com/GrantKop/is-the-port-open/pkg/registry"
	"github.com/GrantKop/is-the-port-open/pkg/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.Printf("Starting itpo...")

	// Command line flags
	listenAddr := flag.String("listen", ":8090", "HTTP listen address")
	statePath := flag.String("state", "", "Path to state file (default: user config dir)")
	dbPath := flag.String("db", "", "Path to sqlite results database (empty: in-memory only)")
	flag.Parse()

	// Create main context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := *statePath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Fatalf("Failed to resolve state path: %v", err)
		}
	}

	state, err := config.LoadState(path)
	if err != nil {
		log.Fatalf("Failed to load state from %s: %v", path, err)
	}

	reg := registry.New()
	reg.Replace(state.Targets)

	settings := monitor.NewSettingsStore(state.Settings)

	results, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open results store: %v", err)
	}

	hub := api.NewHub()

	engine := monitor.NewService(reg, settings, monitor.NewStoreSink(results), hub)

	server := api.NewServer(reg, settings, engine, results, hub, func() {
		if err := config.SaveState(path, &config.State{
			Settings: settings.Get(),
			Targets:  reg.Snapshot(),
		}); err != nil {
			log.Printf("Failed to save state: %v", err)
		}
	})

	httpServer := &http.Server{
		Addr:              *listenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting HTTP server on %s", *listenAddr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Start the engine; this kicks off the initial scan and drives
	// auto-refresh until ctx is cancelled.
	go func() {
		if err := engine.Start(ctx); err != nil && ctx.Err() == nil {
			errChan <- err
		}
	}()

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Server error: %v, initiating shutdown", err)
	}

	// Begin graceful shutdown
	log.Printf("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Printf("Error stopping engine: %v", err)
	}

	cancel()

	hub.Close()

	if err := results.Close(); err != nil {
		log.Printf("Error closing results store: %v", err)
	}

	log.Printf("Shutdown complete")
}

func openStore(dbPath string) (store.Store, error) {
	if dbPath == "" {
		return store.NewInMemoryStore(), nil
	}

	return store.NewSQLiteStore(dbPath)
}
