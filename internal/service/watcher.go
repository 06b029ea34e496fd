package service

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ─────────────────────────────────────────────────────────────
// Snapshot Watcher — picks up external edits to the scene file
// ─────────────────────────────────────────────────────────────

// SnapshotWatcher watches the snapshot file for writes made by other
// processes (the host GUI saving, the user editing the JSON by hand)
// and reloads the store when one lands. Our own debounced writes are
// recognized by fingerprint and skipped.
type SnapshotWatcher struct {
	svc     *SceneService
	watcher *fsnotify.Watcher
	stop    chan struct{}
}

// NewSnapshotWatcher creates a watcher for the service's snapshot file.
func NewSnapshotWatcher(svc *SceneService) (*SnapshotWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors and atomic renames replace the file
	// inode, which silently detaches a direct file watch.
	if err := w.Add(filepath.Dir(svc.snapshots.Path())); err != nil {
		w.Close()
		return nil, err
	}
	return &SnapshotWatcher{svc: svc, watcher: w, stop: make(chan struct{})}, nil
}

// Start begins watching. Runs until Stop or ctx cancellation.
func (sw *SnapshotWatcher) Start(ctx context.Context) {
	go sw.loop(ctx)
}

// Stop terminates the watch loop and releases the OS watch.
func (sw *SnapshotWatcher) Stop() {
	close(sw.stop)
	sw.watcher.Close()
}

func (sw *SnapshotWatcher) loop(ctx context.Context) {
	target := sw.svc.snapshots.Path()

	// Small settle delay so we read after the writer finishes, and so a
	// burst of events for one save collapses into one reload.
	var pending *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			sw.reload(ctx)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] %v", err)
		case <-sw.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (sw *SnapshotWatcher) reload(ctx context.Context) {
	doc, err := sw.svc.snapshots.Load()
	if err != nil {
		log.Printf("[watcher] reload failed: %v", err)
		return
	}
	if sw.svc.isOwnDocument(doc) {
		return
	}
	if err := sw.svc.store.Replace(doc.Elements); err != nil {
		log.Printf("[watcher] external snapshot rejected: %v", err)
		return
	}
	sw.svc.rememberSaved(doc)
	log.Printf("[watcher] external snapshot applied (%d elements)", len(doc.Elements))
	sw.svc.emitter.Emit(ctx, EventSceneChanged, map[string]any{
		"elements": len(doc.Elements),
		"source":   "external",
	})
}
