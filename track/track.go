// SPDX-License-Identifier: EPL-2.0

package track

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/logging"

	"github.com/ik5/audwave/audio"
	wlog "github.com/ik5/audwave/internal/logging"
	"github.com/ik5/audwave/waveform"
)

// Option configures a Track.
type Option func(*Track)

// WithBaseWindowSize sets the base resolution of the trace cache.
func WithBaseWindowSize(n uint64) Option {
	return func(t *Track) { t.baseWindow = n }
}

// WithFormat records the encoding the samples were decoded from.
func WithFormat(f audio.Format) Option {
	return func(t *Track) { t.format = f }
}

func WithLogger(l logging.LeveledLogger) Option {
	return func(t *Track) { t.log = l }
}

// Track is one decoded audio track. It exclusively owns its trace cache:
// the cache is created on first acquisition, reclaimed when the last
// handle is released and destroyed with the track.
type Track struct {
	id         uuid.UUID
	name       string
	src        audio.SampleSource
	format     audio.Format
	baseWindow uint64
	log        logging.LeveledLogger

	// mu serializes cache creation, reclamation and disposal.
	mu        sync.Mutex
	cache     *waveform.Cache
	cancel    context.CancelFunc
	refs      int
	disposed  bool
	listeners []func()
}

func New(name string, src audio.SampleSource, opts ...Option) (*Track, error) {
	if src == nil || src.Channels() < 1 {
		return nil, fmt.Errorf("track %q: %w", name, audio.ErrNoChannels)
	}

	t := &Track{
		id:         uuid.New(),
		name:       name,
		src:        src,
		baseWindow: waveform.DefaultBaseWindowSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = wlog.NewLogger("audwave/track")
	}
	if t.baseWindow < 2 {
		return nil, fmt.Errorf("track %q: %w: base window size %d", name, waveform.ErrInvalidArgument, t.baseWindow)
	}

	return t, nil
}

func (t *Track) ID() uuid.UUID              { return t.id }
func (t *Track) Name() string               { return t.name }
func (t *Track) Format() audio.Format       { return t.format }
func (t *Track) Source() audio.SampleSource { return t.src }
func (t *Track) Channels() int              { return t.src.Channels() }
func (t *Track) BaseWindowSize() uint64     { return t.baseWindow }

// Frames returns the sample count of the longest channel.
func (t *Track) Frames() uint64 {
	var n uint64
	for ch := range t.src.Channels() {
		n = max(n, t.src.SampleCount(ch))
	}
	return n
}

func (t *Track) Disposed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.disposed
}

// Refs returns the number of unreleased handles.
func (t *Track) Refs() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.refs
}

// AcquireTraceCache returns a handle to the track's trace cache, creating
// the cache and starting its population in the background when no handle
// is held. Every handle must be released.
func (t *Track) AcquireTraceCache() (*Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return nil, ErrTrackDisposed
	}

	if t.cache == nil {
		c, err := waveform.NewCache(t.src,
			waveform.WithBaseWindowSize(t.baseWindow),
			waveform.WithLogger(t.log))
		if err != nil {
			return nil, fmt.Errorf("track %s: %w", t.id, err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		t.cache, t.cancel = c, cancel

		// Failures are recorded on the cache and surface through Handle.Wait.
		go func() { _ = c.Init(ctx) }()

		t.log.Debugf("track %s (%s): trace cache created", t.id, t.name)
	}

	t.refs++

	return &Handle{track: t, cache: t.cache}, nil
}

// release drops one reference to c. Handles of an already reclaimed cache
// are ignored.
func (t *Track) release(c *waveform.Cache) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cache != c {
		return
	}

	t.refs--
	if t.refs > 0 {
		return
	}

	t.dropCache()
	t.log.Debugf("track %s (%s): trace cache reclaimed", t.id, t.name)
}

// dropCache must be called with mu held.
func (t *Track) dropCache() {
	if t.cache == nil {
		return
	}

	t.cancel()
	t.cache.Dispose()
	t.cache, t.cancel = nil, nil
	t.refs = 0
}

// OnDispose registers fn to run once the track is disposed. On an already
// disposed track fn runs immediately.
func (t *Track) OnDispose(fn func()) {
	t.mu.Lock()
	if !t.disposed {
		t.listeners = append(t.listeners, fn)
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	fn()
}

// Dispose destroys the trace cache, invalidates every handle and notifies
// OnDispose listeners. It is idempotent.
func (t *Track) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	t.dropCache()
	listeners := t.listeners
	t.listeners = nil
	t.mu.Unlock()

	t.log.Debugf("track %s (%s): disposed", t.id, t.name)

	for _, fn := range listeners {
		fn()
	}
}
