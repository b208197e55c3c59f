// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Buffer is a deinterleaved, in-memory SampleSource.
type Buffer struct {
	sampleRate int
	data       [][]float32
}

var _ SampleSource = (*Buffer)(nil)

// NewBuffer wraps per-channel sample slices. The slices are not copied.
func NewBuffer(sampleRate int, channels ...[]float32) *Buffer {
	return &Buffer{
		sampleRate: sampleRate,
		data:       channels,
	}
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.data) }

// SampleCount returns the number of samples on channel, 0 for an unknown channel.
func (b *Buffer) SampleCount(channel int) uint64 {
	if channel < 0 || channel >= len(b.data) {
		return 0
	}
	return uint64(len(b.data[channel]))
}

// SampleFloat panics when channel or index is out of range, like a slice index.
func (b *Buffer) SampleFloat(channel int, index uint64) float32 {
	return b.data[channel][index]
}

// Frames returns the length of the longest channel.
func (b *Buffer) Frames() int64 {
	var n int
	for _, ch := range b.data {
		n = max(n, len(ch))
	}
	return int64(n)
}

// MaxPreallocFrames bounds how much of a declared length is allocated up
// front. Headers can overstate the stream, so longer inputs grow as read.
const MaxPreallocFrames = 1 << 20

// ReadAll drains src into a Buffer. src is not closed.
//
// Reads need not be frame aligned: a partial frame is completed by the next
// read, and one still incomplete at the end of the stream is dropped.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}

	var hint int
	if l, ok := src.(Lengther); ok && l.Frames() > 0 {
		hint = int(min(l.Frames(), MaxPreallocFrames))
	}

	b := &Buffer{
		sampleRate: src.SampleRate(),
		data:       make([][]float32, channels),
	}
	for c := range b.data {
		b.data[c] = make([]float32, 0, hint)
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels
	buf := make([]float32, bufSize)
	frame := make([]float32, 0, channels)

	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			frame = append(frame, v)
			if len(frame) < channels {
				continue
			}
			for c, s := range frame {
				b.data[c] = append(b.data[c], s)
			}
			frame = frame[:0]
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			// Sources that signal the end with (0, nil)
			break
		}
	}

	return b, nil
}
