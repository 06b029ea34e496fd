// Package app wires storage, the scene service, and the MCP server
// together and owns process lifecycle: startup, the events listener,
// and the final snapshot flush on shutdown.
package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	mcpserver "sketchboard/internal/mcp"
	"sketchboard/internal/scene"
	"sketchboard/internal/service"
	"sketchboard/internal/storage"
)

// Config holds the runtime options resolved from flags.
type Config struct {
	// DataDir is where the snapshot and settings database live.
	// Empty means ~/.local/share/sketchboard.
	DataDir string

	// SaveDelay is the debounce quiet window for snapshot writes.
	SaveDelay time.Duration

	// EventsAddr, when set, starts an HTTP listener serving the
	// /events WebSocket so renderers can follow scene changes live.
	EventsAddr string
}

func (c Config) dataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "sketchboard"), nil
}

// ServeMCP runs the scene engine as an MCP server on stdin/stdout
// until the host disconnects or the process is interrupted.
func ServeMCP(cfg Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dataDir, err := cfg.dataDir()
	if err != nil {
		return err
	}

	db, err := storage.New(filepath.Join(dataDir, "sketchboard.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	snapshots, err := storage.NewSnapshotStore(filepath.Join(dataDir, "scene.json"))
	if err != nil {
		return err
	}

	hub := NewEventHub()
	defer hub.Close()

	scenes := service.NewSceneService(
		scene.NewStore(),
		snapshots,
		storage.NewSettingsStore(db),
		hub,
		cfg.SaveDelay,
	)
	if err := scenes.Load(); err != nil {
		return err
	}
	// Pending debounced writes must land before the process exits.
	defer scenes.Flush()

	watcher, err := service.NewSnapshotWatcher(scenes)
	if err != nil {
		return err
	}
	watcher.Start(ctx)
	defer watcher.Stop()

	if cfg.EventsAddr != "" {
		startEventsListener(ctx, cfg.EventsAddr, hub)
	}

	srv := mcpserver.New(mcpserver.Deps{Scenes: scenes})

	done := make(chan error, 1)
	go func() { done <- srv.ServeStdio() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Println("[app] interrupted, flushing scene")
		return nil
	}
}

// startEventsListener serves the WebSocket event hub in the background.
// A listener failure is logged, not fatal: the stdio surface keeps
// working without live events.
func startEventsListener(ctx context.Context, addr string, hub *EventHub) {
	mux := http.NewServeMux()
	mux.Handle("/events", hub)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Printf("[events] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[events] listener failed: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
}
