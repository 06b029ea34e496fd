package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"

	"sketchboard/internal/connector"
	"sketchboard/internal/domain"
	"sketchboard/internal/layout"
	"sketchboard/internal/scene"
	"sketchboard/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Scene Service — store mutations + debounced persistence
// ─────────────────────────────────────────────────────────────

// EventSceneChanged is emitted after every committed scene mutation.
const EventSceneChanged = "scene:changed"

// SceneService is the single mutation path for the scene: every write
// goes through it, so persistence scheduling and change events cannot
// be bypassed. Reads are delegated straight to the store.
type SceneService struct {
	store     *scene.Store
	snapshots *storage.SnapshotStore
	settings  *storage.SettingsStore
	layout    *layout.Engine
	emitter   EventEmitter

	debounced func(func())

	mu        sync.Mutex
	lastSaved [32]byte // hash of the last snapshot this process wrote
}

// NewSceneService creates a SceneService. saveDelay is the debounce
// quiet window; rapid successive mutations coalesce into one write of
// the latest snapshot.
func NewSceneService(
	store *scene.Store,
	snapshots *storage.SnapshotStore,
	settings *storage.SettingsStore,
	emitter EventEmitter,
	saveDelay time.Duration,
) *SceneService {
	if saveDelay <= 0 {
		saveDelay = 300 * time.Millisecond
	}
	return &SceneService{
		store:     store,
		snapshots: snapshots,
		settings:  settings,
		layout:    layout.NewEngine(),
		emitter:   emitter,
		debounced: debounce.New(saveDelay),
	}
}

// Store exposes the underlying scene store for read paths.
func (s *SceneService) Store() *scene.Store {
	return s.store
}

// Load reads the persisted snapshot into the store. Called once at
// session start; a missing snapshot leaves the scene empty.
func (s *SceneService) Load() error {
	doc, err := s.snapshots.Load()
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	if err := s.store.Replace(doc.Elements); err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	s.rememberSaved(doc)
	return nil
}

// ── Mutations ──────────────────────────────────────────────

// ReplaceScene swaps the whole scene.
func (s *SceneService) ReplaceScene(ctx context.Context, elements []domain.Element) error {
	if err := s.store.Replace(elements); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// AddElements appends elements with fresh ids; colliding ids are
// reported back, never overwritten.
func (s *SceneService) AddElements(ctx context.Context, elements []domain.Element) (created, duplicates []string) {
	created, duplicates = s.store.Add(elements)
	if len(created) > 0 {
		s.changed(ctx)
	}
	return created, duplicates
}

// UpdateElements applies patches; missing targets are reported.
func (s *SceneService) UpdateElements(ctx context.Context, patches []scene.Patch) (updated int, notFound []string) {
	updated, notFound = s.store.Update(patches)
	if updated > 0 {
		s.changed(ctx)
	}
	return updated, notFound
}

// RemoveElements deletes elements; missing ids are reported.
func (s *SceneService) RemoveElements(ctx context.Context, ids []string) (removed, notFound []string) {
	removed, notFound = s.store.Remove(ids)
	if len(removed) > 0 {
		s.changed(ctx)
	}
	return removed, notFound
}

// SetLabel binds label text to an element.
func (s *SceneService) SetLabel(ctx context.Context, id, text string) scene.LabelOutcome {
	outcome := s.store.SetLabel(id, text)
	if outcome == scene.LabelSet {
		s.changed(ctx)
	}
	return outcome
}

// ConnectElements builds bound arrows for each request and commits the
// successful ones. Failures never abort the batch.
func (s *SceneService) ConnectElements(ctx context.Context, reqs []connector.Request) connector.Result {
	res := connector.Connect(s.store, reqs)
	if len(res.Created) > 0 {
		s.store.Add(res.Created)
		s.changed(ctx)
	}
	return res
}

// LayoutGrid arranges the named elements in a grid at origin. Missing
// ids are reported and the rest are still laid out.
func (s *SceneService) LayoutGrid(ctx context.Context, ids []string, origin domain.Box, cols int, gapX, gapY float64) (laidOut, notFound []string) {
	var found []domain.Element
	for _, id := range ids {
		e, ok := s.store.Get(id)
		if !ok {
			notFound = append(notFound, id)
			continue
		}
		found = append(found, e)
	}

	placements := s.layout.ArrangeGrid(found, origin, cols, gapX, gapY)
	patches := make([]scene.Patch, len(placements))
	for i, p := range placements {
		patches[i] = scene.Patch{ID: p.ID, Props: map[string]any{"x": p.X, "y": p.Y}}
		laidOut = append(laidOut, p.ID)
	}
	if len(patches) > 0 {
		s.store.Update(patches)
		s.changed(ctx)
	}
	return laidOut, notFound
}

// SuggestPosition returns the next free grid-snapped spot for an
// element of the given size.
func (s *SceneService) SuggestPosition(w, h float64) (float64, float64) {
	return s.layout.NextPosition(s.store.All(), w, h)
}

// ── Viewport (settings namespace) ──────────────────────────

const settingViewport = "viewport"

// Viewport returns the saved camera state, defaulting to zoom 1 at the
// origin.
func (s *SceneService) Viewport() (domain.Viewport, error) {
	vp := domain.Viewport{Zoom: 1}
	if s.settings == nil {
		return vp, nil
	}
	raw, err := s.settings.Get(settingViewport)
	if err != nil {
		return vp, err
	}
	if raw == "" {
		return vp, nil
	}
	if err := json.Unmarshal([]byte(raw), &vp); err != nil {
		return domain.Viewport{Zoom: 1}, fmt.Errorf("parse viewport: %w", err)
	}
	return vp, nil
}

// SetViewport persists the camera state.
func (s *SceneService) SetViewport(vp domain.Viewport) error {
	if s.settings == nil {
		return fmt.Errorf("viewport: no settings store")
	}
	data, err := json.Marshal(vp)
	if err != nil {
		return err
	}
	return s.settings.Set(settingViewport, string(data))
}

// ── Persistence ────────────────────────────────────────────

// changed schedules a debounced snapshot write and notifies listeners.
// A save already in flight is not cancelled; the debounce guarantees
// exactly one more trailing write for the latest state.
func (s *SceneService) changed(ctx context.Context) {
	s.debounced(s.save)
	s.emitter.Emit(ctx, EventSceneChanged, map[string]any{"elements": s.store.Len()})
}

func (s *SceneService) save() {
	doc := s.store.Document()
	if err := s.snapshots.Save(doc); err != nil {
		log.Printf("[store] snapshot save failed: %v", err)
		return
	}
	s.rememberSaved(doc)
}

// Flush writes the current snapshot immediately. Called on teardown so
// the trailing debounce window cannot drop the last mutations.
func (s *SceneService) Flush() {
	s.save()
}

// rememberSaved records the fingerprint of what this process wrote, so
// the snapshot watcher can tell our own writes from external ones.
func (s *SceneService) rememberSaved(doc domain.SceneDocument) {
	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.lastSaved = sha256.Sum256(data)
	s.mu.Unlock()
}

// isOwnDocument reports whether doc matches the last snapshot this
// process persisted.
func (s *SceneService) isOwnDocument(doc domain.SceneDocument) bool {
	data, err := json.Marshal(doc)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	return sum == s.lastSaved
}
