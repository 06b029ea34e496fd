package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"sketchboard/internal/connector"
	"sketchboard/internal/domain"
	"sketchboard/internal/scene"
	"sketchboard/internal/storage"
)

func newTestService(t *testing.T, delay time.Duration) (*SceneService, *MockEmitter) {
	t.Helper()
	snapshots, err := storage.NewSnapshotStore(filepath.Join(t.TempDir(), "scene.json"))
	if err != nil {
		t.Fatal(err)
	}
	emitter := &MockEmitter{}
	svc := NewSceneService(scene.NewStore(), snapshots, nil, emitter, delay)
	return svc, emitter
}

func rect(id string, x, y float64) domain.Element {
	return domain.Element{ID: id, Type: domain.TypeRectangle, X: x, Y: y, Width: 100, Height: 50}
}

func TestSceneService_AddEmitsAndPersists(t *testing.T) {
	svc, emitter := newTestService(t, 10*time.Millisecond)
	ctx := context.Background()

	created, dups := svc.AddElements(ctx, []domain.Element{rect("a", 0, 0)})
	if len(created) != 1 || len(dups) != 0 {
		t.Fatalf("created=%v dups=%v", created, dups)
	}
	if len(emitter.Events) != 1 || emitter.Events[0].Event != EventSceneChanged {
		t.Errorf("events = %+v, want one %s", emitter.Events, EventSceneChanged)
	}

	// Debounced write lands after the quiet window
	time.Sleep(50 * time.Millisecond)
	doc, err := svc.snapshots.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Elements) != 1 || doc.Elements[0].ID != "a" {
		t.Errorf("persisted doc = %+v", doc)
	}
}

func TestSceneService_DebounceCoalesces(t *testing.T) {
	svc, _ := newTestService(t, 30*time.Millisecond)
	ctx := context.Background()

	// Burst of mutations inside one quiet window
	for i := 0; i < 5; i++ {
		svc.AddElements(ctx, []domain.Element{rect(string(rune('a'+i)), float64(i), 0)})
	}

	// Before the window elapses nothing is on disk yet
	doc, _ := svc.snapshots.Load()
	if len(doc.Elements) != 0 {
		t.Errorf("snapshot written before quiet window elapsed: %d elements", len(doc.Elements))
	}

	time.Sleep(100 * time.Millisecond)
	doc, err := svc.snapshots.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Elements) != 5 {
		t.Errorf("coalesced write has %d elements, want all 5", len(doc.Elements))
	}
}

func TestSceneService_FlushWritesImmediately(t *testing.T) {
	svc, _ := newTestService(t, time.Hour) // window never elapses on its own
	ctx := context.Background()

	svc.AddElements(ctx, []domain.Element{rect("a", 0, 0)})
	svc.Flush()

	doc, err := svc.snapshots.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Elements) != 1 {
		t.Errorf("flush did not persist: %d elements", len(doc.Elements))
	}
}

func TestSceneService_LoadRestoresScene(t *testing.T) {
	dir := t.TempDir()
	snapshots, _ := storage.NewSnapshotStore(filepath.Join(dir, "scene.json"))
	snapshots.Save(domain.SceneDocument{Elements: []domain.Element{rect("saved", 5, 5)}})

	svc := NewSceneService(scene.NewStore(), snapshots, nil, &MockEmitter{}, 0)
	if err := svc.Load(); err != nil {
		t.Fatal(err)
	}
	if _, ok := svc.Store().Get("saved"); !ok {
		t.Error("loaded scene missing persisted element")
	}
}

func TestSceneService_ConnectCommitsArrows(t *testing.T) {
	svc, emitter := newTestService(t, 10*time.Millisecond)
	ctx := context.Background()
	svc.AddElements(ctx, []domain.Element{rect("a", 0, 0), rect("b", 300, 0)})
	emitter.Events = nil

	res := svc.ConnectElements(ctx, []connector.Request{
		{FromID: "a", ToID: "b"},
		{FromID: "a", ToID: "ghost"},
	})
	if len(res.Created) != 1 || len(res.Failed) != 1 {
		t.Fatalf("result = %+v", res)
	}

	// The created arrow is committed to the store
	if _, ok := svc.Store().Get(res.Created[0].ID); !ok {
		t.Error("created arrow not in store")
	}
	if len(emitter.Events) != 1 {
		t.Errorf("expected one change event, got %d", len(emitter.Events))
	}
}

func TestSceneService_LayoutGrid(t *testing.T) {
	svc, _ := newTestService(t, 10*time.Millisecond)
	ctx := context.Background()
	svc.AddElements(ctx, []domain.Element{rect("a", 900, 900), rect("b", 0, 0), rect("c", 5, 5)})

	laidOut, notFound := svc.LayoutGrid(ctx, []string{"a", "b", "ghost"},
		domain.Box{X: 0, Y: 0}, 2, 20, 20)

	if len(laidOut) != 2 {
		t.Errorf("laidOut = %v, want [a b]", laidOut)
	}
	if len(notFound) != 1 || notFound[0] != "ghost" {
		t.Errorf("notFound = %v, want [ghost]", notFound)
	}

	a, _ := svc.Store().Get("a")
	if a.X != 0 || a.Y != 0 {
		t.Errorf("a not moved to grid origin: (%v, %v)", a.X, a.Y)
	}
	b, _ := svc.Store().Get("b")
	if b.X != 120 || b.Y != 0 {
		t.Errorf("b = (%v, %v), want (120, 0)", b.X, b.Y)
	}
	c, _ := svc.Store().Get("c")
	if c.X != 5 || c.Y != 5 {
		t.Errorf("element outside batch moved: %+v", c)
	}
}

func TestSceneService_UpdateDoesNotEmitWhenNothingChanged(t *testing.T) {
	svc, emitter := newTestService(t, 10*time.Millisecond)
	ctx := context.Background()

	_, notFound := svc.UpdateElements(ctx, []scene.Patch{{ID: "ghost", Props: map[string]any{"x": 1.0}}})
	if len(notFound) != 1 {
		t.Fatalf("notFound = %v", notFound)
	}
	if len(emitter.Events) != 0 {
		t.Errorf("no-op update emitted events: %+v", emitter.Events)
	}
}

func TestSnapshotWatcher_AppliesExternalWrite(t *testing.T) {
	svc, emitter := newTestService(t, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := NewSnapshotWatcher(svc)
	if err != nil {
		t.Fatal(err)
	}
	watcher.Start(ctx)
	defer watcher.Stop()

	// Simulate another process replacing the snapshot
	external := domain.SceneDocument{Elements: []domain.Element{rect("external", 1, 2)}}
	if err := svc.snapshots.Save(external); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if _, ok := svc.Store().Get("external"); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("external snapshot never applied")
		case <-time.After(20 * time.Millisecond):
		}
	}

	found := false
	for _, ev := range emitter.Events {
		if ev.Event == EventSceneChanged {
			found = true
		}
	}
	if !found {
		t.Error("external reload emitted no change event")
	}
}

func TestSceneService_ViewportWithoutSettingsStore(t *testing.T) {
	svc, _ := newTestService(t, 0)
	vp, err := svc.Viewport()
	if err != nil {
		t.Fatal(err)
	}
	if vp.Zoom != 1 {
		t.Errorf("default zoom = %v, want 1", vp.Zoom)
	}
	if err := svc.SetViewport(domain.Viewport{Zoom: 2}); err == nil {
		t.Error("SetViewport without settings store should fail")
	}
}
