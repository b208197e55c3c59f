// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/utils"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of values decoded, not frames.
	Read([]float32) (int, error)
	// Length is in frames, 0 when unknown.
	Length() int64
}

type source struct {
	dec    oggReader
	format audio.Format
	bufLen int
}

func (s *source) SampleRate() int      { return s.format.SampleRate }
func (s *source) Channels() int        { return s.format.Channels }
func (s *source) Close() error         { return nil }
func (s *source) BufSize() int         { return s.bufLen }
func (s *source) Format() audio.Format { return s.format }

func (s *source) Frames() int64 {
	if l := s.dec.Length(); l > 0 {
		return l
	}
	return -1
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	// Whole frames only
	dst = dst[:len(dst)-len(dst)%s.format.Channels]
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	// Decoded floats can overshoot slightly
	for i := range n {
		dst[i] = utils.Clamp(dst[i])
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg vorbis stream: %w", err)
	}

	format, err := audio.NewFormat(dec.Channels(), dec.SampleRate(), 4, true,
		audio.CodingFloat, binary.LittleEndian)
	if err != nil {
		return nil, err
	}

	return &source{
		dec:    dec,
		format: format,
		bufLen: 4096 - 4096%format.Channels,
	}, nil
}
