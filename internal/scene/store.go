// Package scene owns the authoritative ordered element collection.
//
// Every operation is total: malformed ids are reported outcomes, never
// errors or panics. Validation of untrusted input happens before the
// store is reached (see internal/schema); Replace is the one operation
// that checks structure itself because it installs a whole document.
package scene

import (
	"fmt"
	"strings"
	"sync"

	"sketchboard/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Scene Store — ordered elements, z-order preserved
// ─────────────────────────────────────────────────────────────

// Store holds the scene: an ordered slice (z-order, later draws on top)
// plus an id index. A single Store instance is created per session and
// exclusively owned by the tool dispatcher; the mutex makes concurrent
// reads from the event hub safe without a second mutation path.
type Store struct {
	mu       sync.RWMutex
	elements []domain.Element
	index    map[string]int // id -> position in elements
}

// NewStore creates an empty scene store.
func NewStore() *Store {
	return &Store{index: map[string]int{}}
}

// All returns a deep copy of every element in z-order.
func (s *Store) All() []domain.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.Clone()
	}
	return out
}

// Get returns a copy of the element with the given id.
func (s *Store) Get(id string) (domain.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return domain.Element{}, false
	}
	return s.elements[i].Clone(), true
}

// Len returns the number of elements in the scene.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

// Replace swaps the whole scene for the given elements. It fails if any
// element lacks an id or two elements share one; on failure the current
// scene is left untouched.
func (s *Store) Replace(elements []domain.Element) error {
	index := make(map[string]int, len(elements))
	for i, e := range elements {
		if e.ID == "" {
			return fmt.Errorf("element at position %d has no id", i)
		}
		if prev, dup := index[e.ID]; dup {
			return fmt.Errorf("duplicate id %q at positions %d and %d", e.ID, prev, i)
		}
		index[e.ID] = i
	}

	copied := make([]domain.Element, len(elements))
	for i, e := range elements {
		copied[i] = e.Clone()
	}

	s.mu.Lock()
	s.elements = copied
	s.index = index
	s.mu.Unlock()
	return nil
}

// Add appends elements whose ids are new and reports the rest as
// duplicates. Creation is deliberately distinct from update: an id
// collision never silently overwrites (use Update for that).
func (s *Store) Add(elements []domain.Element) (created, duplicates []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	for _, e := range elements {
		if e.ID == "" || seen[e.ID] {
			duplicates = append(duplicates, e.ID)
			continue
		}
		if _, exists := s.index[e.ID]; exists {
			duplicates = append(duplicates, e.ID)
			continue
		}
		seen[e.ID] = true
		s.index[e.ID] = len(s.elements)
		s.elements = append(s.elements, e.Clone())
		created = append(created, e.ID)
	}
	return created, duplicates
}

// Patch is one update_elements entry: a target id plus the properties
// to shallow-merge onto it.
type Patch struct {
	ID    string
	Props map[string]any
}

// Update applies each patch to its target element. Missing targets are
// collected in notFound; the remaining patches still apply.
func (s *Store) Update(patches []Patch) (updated int, notFound []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range patches {
		i, ok := s.index[p.ID]
		if !ok {
			notFound = append(notFound, p.ID)
			continue
		}
		s.elements[i].ApplyPatch(p.Props)
		updated++
	}
	return updated, notFound
}

// Remove deletes the elements with the given ids, preserving the order
// of the remainder. Bindings and frame children that referenced a
// removed element are dropped so no dangling reference survives.
func (s *Store) Remove(ids []string) (removed, notFound []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := map[string]bool{}
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			doomed[id] = true
			removed = append(removed, id)
		} else {
			notFound = append(notFound, id)
		}
	}
	if len(doomed) == 0 {
		return removed, notFound
	}

	kept := make([]domain.Element, 0, len(s.elements))
	for _, e := range s.elements {
		if doomed[e.ID] {
			continue
		}
		if e.Start != nil && doomed[e.Start.ElementID] {
			e.Start = nil
		}
		if e.End != nil && doomed[e.End.ElementID] {
			e.End = nil
		}
		if len(e.Children) > 0 {
			children := e.Children[:0]
			for _, c := range e.Children {
				if !doomed[c] {
					children = append(children, c)
				}
			}
			e.Children = children
		}
		kept = append(kept, e)
	}
	s.elements = kept
	s.reindex()
	return removed, notFound
}

// Query filters elements by type, text substring, and bounding box.
// All criteria are optional and combined with AND.
type Query struct {
	Type         domain.ElementType
	TextIncludes string
	Within       *domain.Box
}

// Find returns copies of every element matching the query, in z-order.
func (s *Store) Find(q Query) []domain.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Element
	for _, e := range s.elements {
		if q.Type != "" && e.Type != q.Type {
			continue
		}
		if q.TextIncludes != "" &&
			!strings.Contains(strings.ToLower(e.DisplayText()), strings.ToLower(q.TextIncludes)) {
			continue
		}
		if q.Within != nil {
			bounds := domain.Box{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
			if !q.Within.Intersects(bounds) && !q.Within.Contains(e.X, e.Y) {
				continue
			}
		}
		out = append(out, e.Clone())
	}
	return out
}

// LabelOutcome reports how SetLabel resolved.
type LabelOutcome int

const (
	LabelSet LabelOutcome = iota
	LabelNotFound
	LabelUnsupportedType
)

// SetLabel binds a text label to a container-capable element. Text
// elements have their text replaced directly.
func (s *Store) SetLabel(id, text string) LabelOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return LabelNotFound
	}
	e := &s.elements[i]
	if e.Type == domain.TypeText {
		e.Text = text
		return LabelSet
	}
	if !e.Type.CanContainLabel() {
		return LabelUnsupportedType
	}
	if e.Label == nil {
		e.Label = &domain.Label{}
	}
	e.Label.Text = text
	return LabelSet
}

// Document returns the persistable snapshot of the scene.
func (s *Store) Document() domain.SceneDocument {
	return domain.SceneDocument{Elements: s.All()}
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.elements))
	for i, e := range s.elements {
		s.index[e.ID] = i
	}
}
