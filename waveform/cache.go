// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/pion/logging"

	"github.com/ik5/audwave/audio"
	wlog "github.com/ik5/audwave/internal/logging"
)

// DefaultBaseWindowSize is the number of raw samples summarized by every
// stored window when no WithBaseWindowSize option is given.
const DefaultBaseWindowSize uint64 = 64

// frames between cancellation checks while populating
const checkInterval = 1 << 14

// State is the lifecycle stage of a Cache.
type State int32

const (
	StateUninitialized State = iota
	StatePopulating
	StateReady
	// StateFailed means population stopped early. Windows appended
	// before the failure remain queryable.
	StateFailed
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePopulating:
		return "populating"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Option configures a Cache.
type Option func(*Cache)

// WithBaseWindowSize sets the number of samples per stored window.
func WithBaseWindowSize(n uint64) Option {
	return func(c *Cache) { c.baseWindow = n }
}

// WithLogger sets the logger used for population events.
func WithLogger(l logging.LeveledLogger) Option {
	return func(c *Cache) { c.log = l }
}

// Cache holds one Store per channel of a SampleSource and fills them from
// the source once, in the background, while serving queries.
type Cache struct {
	src        audio.SampleSource
	channels   int
	baseWindow uint64
	log        logging.LeveledLogger

	// mu guards stores, disposed and err. Queries and appends hold it for
	// reading; Dispose holds it for writing.
	mu       sync.RWMutex
	stores   []*Store
	disposed bool
	err      error

	state    atomic.Int32
	done     chan struct{}
	doneOnce sync.Once
}

// NewCache sizes one store per channel of src to
// ceil(SampleCount(ch) / base window size) windows. Population starts with Init.
func NewCache(src audio.SampleSource, opts ...Option) (*Cache, error) {
	c := &Cache{
		src:        src,
		baseWindow: DefaultBaseWindowSize,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = wlog.NewLogger("audwave/waveform")
	}

	if c.baseWindow < 2 {
		return nil, fmt.Errorf("%w: base window size %d < 2", ErrInvalidArgument, c.baseWindow)
	}

	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, audio.ErrNoChannels)
	}

	c.channels = channels
	c.stores = make([]*Store, channels)
	for ch := range channels {
		capacity := ceilDiv(src.SampleCount(ch), c.baseWindow)
		if capacity > math.MaxUint32 {
			return nil, fmt.Errorf("%w: channel %d needs %d windows", ErrInvalidArgument, ch, capacity)
		}

		store, err := NewStore(uint32(capacity), c.baseWindow)
		if err != nil {
			return nil, err
		}
		c.stores[ch] = store
	}

	return c, nil
}

func ceilDiv(n, d uint64) uint64 {
	if n == 0 {
		return 0
	}
	return (n-1)/d + 1
}

func (c *Cache) BaseWindowSize() uint64 { return c.baseWindow }
func (c *Cache) Channels() int          { return c.channels }
func (c *Cache) State() State           { return State(c.state.Load()) }

// Done is closed once population has ended, for any reason, or the cache
// was disposed before population started.
func (c *Cache) Done() <-chan struct{} { return c.done }

// Err returns the error that stopped population, if any.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.err
}

// Wait blocks until Done is closed or ctx ends. It returns the population
// error, ErrDisposed for a disposed cache, or nil once the cache is ready.
func (c *Cache) Wait(ctx context.Context) error {
	select {
	case <-c.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if c.State() == StateDisposed {
		return ErrDisposed
	}
	return c.Err()
}

// Progress reports how many windows of channel are filled out of the
// precomputed capacity.
func (c *Cache) Progress(channel int) (filled, capacity uint32, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	store, err := c.store(channel)
	if err != nil {
		return 0, 0, err
	}
	return store.Size(), store.Capacity(), nil
}

// Windows returns up to count windows of targetWindowSize samples of
// channel starting at sampleIndex. While the cache is populating the
// result covers only what has been computed so far.
func (c *Cache) Windows(channel int, sampleIndex, targetWindowSize uint64, count int) ([]Window, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	store, err := c.store(channel)
	if err != nil {
		return nil, err
	}
	return store.Query(sampleIndex, targetWindowSize, count)
}

// store must be called with mu held.
func (c *Cache) store(channel int) (*Store, error) {
	if c.disposed {
		return nil, ErrDisposed
	}
	if channel < 0 || channel >= len(c.stores) {
		return nil, fmt.Errorf("%w: channel %d out of range [0, %d)", ErrInvalidArgument, channel, len(c.stores))
	}
	return c.stores[channel], nil
}

// Init populates every store from the source. It runs until all samples
// are summarized, the cache is disposed (ErrDisposed) or ctx ends. It may
// be called only once.
func (c *Cache) Init(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateUninitialized), int32(StatePopulating)) {
		if c.State() == StateDisposed {
			return ErrDisposed
		}
		return ErrAlreadyInitialized
	}
	defer c.closeDone()

	c.log.Debugf("populating %d channel(s), base window %d", c.channels, c.baseWindow)

	err := c.populate(ctx)
	switch {
	case err == nil:
		if c.state.CompareAndSwap(int32(StatePopulating), int32(StateReady)) {
			c.log.Debugf("trace cache ready")
		}
	case errors.Is(err, ErrDisposed):
		c.log.Debugf("population stopped: cache disposed")
	default:
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		c.state.CompareAndSwap(int32(StatePopulating), int32(StateFailed))
		c.log.Errorf("population failed: %v", err)
	}

	return err
}

func (c *Cache) populate(ctx context.Context) error {
	channels := c.channels
	reducers := make([]*Reducer, channels)
	counts := make([]uint64, channels)

	var frames uint64
	for ch := range channels {
		r, err := NewReducer(c.baseWindow)
		if err != nil {
			return err
		}
		reducers[ch] = r
		counts[ch] = c.src.SampleCount(ch)
		frames = max(frames, counts[ch])
	}

	for i := range frames {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("populating at sample %d: %w", i, err)
			}
			if c.isDisposed() {
				return ErrDisposed
			}
		}

		for ch, r := range reducers {
			if i >= counts[ch] {
				continue
			}
			if w, ok := r.Push(c.src.SampleFloat(ch, i)); ok {
				if err := c.append(ch, w); err != nil {
					return err
				}
			}
		}
	}

	for ch, r := range reducers {
		if w, ok := r.Flush(); ok {
			if err := c.append(ch, w); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *Cache) append(channel int, w Window) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.disposed {
		return ErrDisposed
	}
	if err := c.stores[channel].Append(w); err != nil {
		return fmt.Errorf("channel %d: %w", channel, err)
	}
	return nil
}

func (c *Cache) isDisposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.disposed
}

// Dispose releases the stores. Every later call fails with ErrDisposed and
// a running Init stops at its next append. Dispose is idempotent.
func (c *Cache) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.stores = nil
	prev := State(c.state.Swap(int32(StateDisposed)))
	c.mu.Unlock()

	// A running Init closes done itself when it returns.
	if prev != StatePopulating {
		c.closeDone()
	}
	c.log.Debugf("trace cache disposed (was %s)", prev)
}

func (c *Cache) closeDone() {
	c.doneOnce.Do(func() { close(c.done) })
}
