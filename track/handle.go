// SPDX-License-Identifier: EPL-2.0

package track

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ik5/audwave/waveform"
)

// Handle is a counted reference to a track's trace cache. It stays valid
// until Release or until the track is disposed, whichever comes first.
type Handle struct {
	track    *Track
	cache    *waveform.Cache
	released atomic.Bool
}

func (h *Handle) Track() *Track { return h.track }

// Windows returns up to count windows of targetWindowSize samples of
// channel starting at sampleIndex. See waveform.Cache.Windows.
func (h *Handle) Windows(channel int, sampleIndex, targetWindowSize uint64, count int) ([]waveform.Window, error) {
	if err := h.check(); err != nil {
		return nil, err
	}

	ws, err := h.cache.Windows(channel, sampleIndex, targetWindowSize, count)
	if err != nil {
		return nil, h.translate(err)
	}
	return ws, nil
}

// Progress reports filled and total windows of channel.
func (h *Handle) Progress(channel int) (filled, capacity uint32, err error) {
	if err := h.check(); err != nil {
		return 0, 0, err
	}

	filled, capacity, err = h.cache.Progress(channel)
	return filled, capacity, h.translate(err)
}

func (h *Handle) State() waveform.State  { return h.cache.State() }
func (h *Handle) BaseWindowSize() uint64 { return h.cache.BaseWindowSize() }
func (h *Handle) Done() <-chan struct{}  { return h.cache.Done() }

// Wait blocks until population ends and returns its error.
func (h *Handle) Wait(ctx context.Context) error {
	if err := h.check(); err != nil {
		return err
	}
	return h.translate(h.cache.Wait(ctx))
}

// Release drops the reference. Further calls on h fail with ErrReleased.
// Release is idempotent.
func (h *Handle) Release() {
	if h.released.CompareAndSwap(false, true) {
		h.track.release(h.cache)
	}
}

func (h *Handle) check() error {
	if h.released.Load() {
		return ErrReleased
	}
	return nil
}

func (h *Handle) translate(err error) error {
	if errors.Is(err, waveform.ErrDisposed) && h.track.Disposed() {
		return ErrTrackDisposed
	}
	return err
}
