// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/waveform"
)

// Summarize streams src once and returns, per channel, one window for every
// windowSize samples, the last one possibly covering fewer. Unlike a
// waveform.Cache it needs no random access and keeps no samples, but the
// result has a single resolution. src is not closed.
//
// As with audio.ReadAll, reads need not be frame aligned and a trailing
// incomplete frame is dropped.
func Summarize(src audio.Source, windowSize uint64) ([][]waveform.Window, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, audio.ErrNoChannels
	}

	reducers := make([]*waveform.Reducer, channels)
	out := make([][]waveform.Window, channels)
	for c := range reducers {
		r, err := waveform.NewReducer(windowSize)
		if err != nil {
			return nil, err
		}
		reducers[c] = r
	}

	if l, ok := src.(audio.Lengther); ok && l.Frames() > 0 {
		frames := uint64(min(l.Frames(), audio.MaxPreallocFrames))
		hint := (frames + windowSize - 1) / windowSize
		for c := range out {
			out[c] = make([]waveform.Window, 0, hint)
		}
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	buf := make([]float32, bufSize-bufSize%channels)
	frame := make([]float32, 0, channels)

	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			frame = append(frame, v)
			if len(frame) < channels {
				continue
			}
			for c, s := range frame {
				if w, ok := reducers[c].Push(s); ok {
					out[c] = append(out[c], w)
				}
			}
			frame = frame[:0]
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("summarizing: %w", err)
		}
		if n == 0 {
			break
		}
	}

	for c, r := range reducers {
		if w, ok := r.Flush(); ok {
			out[c] = append(out[c], w)
		}
	}

	return out, nil
}
