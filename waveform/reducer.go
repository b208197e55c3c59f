// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"math"
)

// Sentinels lie outside the normalized range, so the first sample of a
// window always replaces them.
const (
	minSentinel float32 = 2.0
	maxSentinel float32 = -2.0
)

// Reducer folds a sample stream into fixed size min/max windows using
// constant memory. It is not safe for concurrent use.
type Reducer struct {
	runningMin float32
	runningMax float32
	count      uint64
	windowSize uint64
}

// NewReducer returns a Reducer emitting a window every windowSize samples.
// windowSize must be at least 2.
func NewReducer(windowSize uint64) (*Reducer, error) {
	if windowSize < 2 {
		return nil, fmt.Errorf("%w: reducer window size %d < 2", ErrInvalidArgument, windowSize)
	}

	r := &Reducer{windowSize: windowSize}
	r.reset()

	return r, nil
}

func (r *Reducer) WindowSize() uint64 { return r.windowSize }

// Pending returns the number of samples accumulated since the last window.
func (r *Reducer) Pending() uint64 { return r.count }

// Push adds sample to the running window. Once windowSize samples have been
// pushed the window is returned with ok set and the reducer starts over.
func (r *Reducer) Push(sample float32) (w Window, ok bool) {
	sample = sanitize(sample)

	if sample < r.runningMin {
		r.runningMin = sample
	}
	if sample > r.runningMax {
		r.runningMax = sample
	}
	r.count++

	if r.count < r.windowSize {
		return Window{}, false
	}

	return r.emit(), true
}

// Flush returns the partial window of the trailing samples, if any.
// It must be called once after the last Push.
func (r *Reducer) Flush() (w Window, ok bool) {
	if r.count == 0 {
		return Window{}, false
	}
	return r.emit(), true
}

func (r *Reducer) emit() Window {
	w := Window{min: r.runningMin, max: r.runningMax}
	r.reset()
	return w
}

func (r *Reducer) reset() {
	r.runningMin = minSentinel
	r.runningMax = maxSentinel
	r.count = 0
}

// sanitize maps NaN to silence and clamps to [-1, 1].
func sanitize(v float32) float32 {
	switch {
	case math.IsNaN(float64(v)):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
