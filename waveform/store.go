// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Store is a fixed capacity, append only array of windows at one base
// resolution.
//
// Append calls are serialized. Readers take no lock: a slot is written
// before the filled counter is published, so every slot below Size() is
// complete and never changes again.
type Store struct {
	windowSize uint64
	slots      []Window
	filled     atomic.Uint32

	wmu sync.Mutex
}

// NewStore allocates a store for capacity windows of windowSize samples each.
func NewStore(capacity uint32, windowSize uint64) (*Store, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("%w: store window size must be positive", ErrInvalidArgument)
	}

	return &Store{
		windowSize: windowSize,
		slots:      make([]Window, capacity),
	}, nil
}

func (s *Store) WindowSize() uint64 { return s.windowSize }
func (s *Store) Capacity() uint32   { return uint32(len(s.slots)) }

// Size returns the number of windows appended so far.
func (s *Store) Size() uint32 { return s.filled.Load() }

// Append stores w in the next free slot.
func (s *Store) Append(w Window) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	n := s.filled.Load()
	if int(n) >= len(s.slots) {
		return fmt.Errorf("%w: %d windows", ErrCapacityExceeded, len(s.slots))
	}

	s.slots[n] = w
	s.filled.Store(n + 1)

	return nil
}

// Query returns up to count windows of targetWindowSize samples each,
// starting at the raw sample offset sampleIndex. Every returned window is
// aggregated from targetWindowSize/WindowSize() stored windows.
//
// targetWindowSize must be a positive multiple of WindowSize(). When the
// requested span reaches past the stored windows the result is truncated
// to the complete windows available, possibly to an empty slice.
func (s *Store) Query(sampleIndex, targetWindowSize uint64, count int) ([]Window, error) {
	switch {
	case count < 0:
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, count)
	case targetWindowSize < s.windowSize:
		return nil, fmt.Errorf("%w: target window size %d below base %d",
			ErrInvalidArgument, targetWindowSize, s.windowSize)
	case targetWindowSize%s.windowSize != 0:
		return nil, fmt.Errorf("%w: target window size %d is not a multiple of %d",
			ErrInvalidArgument, targetWindowSize, s.windowSize)
	}

	delta := targetWindowSize / s.windowSize
	base := sampleIndex / s.windowSize
	size := uint64(s.filled.Load())

	if base >= size || count == 0 {
		return []Window{}, nil
	}

	n := min((size-base)/delta, uint64(count))
	out := make([]Window, n)
	for i := range out {
		start := base + uint64(i)*delta
		w := s.slots[start]
		for _, next := range s.slots[start+1 : start+delta] {
			w = w.Merge(next)
		}
		out[i] = w
	}

	return out, nil
}
