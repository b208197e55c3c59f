// SPDX-License-Identifier: EPL-2.0

package track

import (
	"errors"
	"fmt"

	"github.com/ik5/audwave/waveform"
)

var (
	// ErrTrackDisposed is returned after the owning track was disposed.
	ErrTrackDisposed = fmt.Errorf("track disposed: %w", waveform.ErrDisposed)
	// ErrReleased is returned by a Handle after Release.
	ErrReleased = fmt.Errorf("trace cache handle released: %w", waveform.ErrDisposed)
	// ErrNotFound is returned by Library lookups for unknown ids.
	ErrNotFound = errors.New("track not found")
)
