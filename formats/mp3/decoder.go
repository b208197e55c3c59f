// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audwave/audio"
)

// go-mp3 always emits 16-bit little endian stereo
const (
	outChannels = 2
	frameBytes  = outChannels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	// Length is the decoded size in bytes, or -1 when unknown.
	Length() int64
}

type source struct {
	dec    mp3Reader
	format audio.Format
	buf    []byte
	// odd holds a trailing byte split across reads
	odd    []byte
}

func (s *source) SampleRate() int      { return s.format.SampleRate }
func (s *source) Channels() int        { return s.format.Channels }
func (s *source) Close() error         { return nil }
func (s *source) BufSize() int         { return cap(s.buf) / 2 } // return sample capacity, not bytes
func (s *source) Format() audio.Format { return s.format }

// Frames returns the decoded length, or -1 when the input could not be
// measured up front.
func (s *source) Frames() int64 {
	l := s.dec.Length()
	if l < 0 {
		return -1
	}
	return l / frameBytes
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	off := copy(s.buf, s.odd)
	s.odd = s.odd[:0]

	n, err := s.dec.Read(s.buf[off:])
	n += off
	if n < 2 {
		s.odd = append(s.odd, s.buf[:n]...)
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768.0
	}
	if n%2 == 1 {
		s.odd = append(s.odd, s.buf[n-1])
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3 header: %w", err)
	}

	format, err := audio.PCM16(outChannels, dec.SampleRate())
	if err != nil {
		return nil, err
	}

	return &source{
		dec:    dec,
		format: format,
		buf:    make([]byte, 8192),
		odd:    make([]byte, 0, 1),
	}, nil
}
