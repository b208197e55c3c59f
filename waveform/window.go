// SPDX-License-Identifier: EPL-2.0

package waveform

import "fmt"

// Window is the extreme sample values seen over a run of samples.
type Window struct {
	min float32
	max float32
}

// NewWindow returns the window (lo, hi). Callers are expected to pass
// lo <= hi.
func NewWindow(lo, hi float32) Window {
	return Window{min: lo, max: hi}
}

func (w Window) Min() float32 { return w.min }
func (w Window) Max() float32 { return w.max }

// Merge returns the window covering both w and o.
func (w Window) Merge(o Window) Window {
	return Window{
		min: min(w.min, o.min),
		max: max(w.max, o.max),
	}
}

func (w Window) String() string {
	return fmt.Sprintf("(%g, %g)", w.min, w.max)
}
