// SPDX-License-Identifier: EPL-2.0

package track

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Library is a registry of tracks keyed by id. A track disposed directly
// leaves the library on its own.
type Library struct {
	mu     sync.RWMutex
	tracks map[uuid.UUID]*Track
	order  []uuid.UUID
}

func NewLibrary() *Library {
	return &Library{
		tracks: make(map[uuid.UUID]*Track),
	}
}

// Add registers t. Adding a disposed track or one already present is a no-op.
func (l *Library) Add(t *Track) {
	if t.Disposed() {
		return
	}

	l.mu.Lock()
	if _, ok := l.tracks[t.ID()]; ok {
		l.mu.Unlock()
		return
	}
	l.tracks[t.ID()] = t
	l.order = append(l.order, t.ID())
	l.mu.Unlock()

	id := t.ID()
	t.OnDispose(func() { l.forget(id) })
}

func (l *Library) Get(id uuid.UUID) (*Track, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, ok := l.tracks[id]
	return t, ok
}

// Lookup parses id and returns the matching track.
func (l *Library) Lookup(id string) (*Track, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrNotFound, id, err)
	}

	t, ok := l.Get(uid)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uid)
	}
	return t, nil
}

// List returns the tracks in insertion order.
func (l *Library) List() []*Track {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Track, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.tracks[id])
	}
	return out
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.tracks)
}

// Remove disposes and forgets the track with id.
func (l *Library) Remove(id uuid.UUID) bool {
	t, ok := l.Get(id)
	if !ok {
		return false
	}
	t.Dispose()
	return true
}

// Close disposes every track.
func (l *Library) Close() {
	for _, t := range l.List() {
		t.Dispose()
	}
}

func (l *Library) forget(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.tracks, id)
	l.order = slices.DeleteFunc(l.order, func(x uuid.UUID) bool { return x == id })
}
