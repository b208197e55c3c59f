// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/utils"
)

const formatPCM = 1

// pcmReader is the part of wav.Decoder the source reads from, so tests can
// feed it directly.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec    pcmReader
	format audio.Format
	frames int64
	intBuf *goaudio.IntBuffer
}

func (s *source) SampleRate() int      { return s.format.SampleRate }
func (s *source) Channels() int        { return s.format.Channels }
func (s *source) Close() error         { return nil }
func (s *source) Format() audio.Format { return s.format }

// Frames is derived from the data chunk size.
func (s *source) Frames() int64 { return s.frames }

func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, len(dst))}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("reading WAV samples: %w", err)
		}
		return 0, io.EOF
	}

	depth := s.format.BitDepth()
	for i, v := range s.intBuf.Data[:n] {
		dst[i] = utils.PCMToFloat32(v, depth, s.format.Signed)
	}

	return n, nil
}

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits.
// 8-bit data is unsigned, wider data is signed, as WAV defines it.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio seeks between chunks
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading WAV data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedCoding, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format, err := audio.NewFormat(int(dec.NumChans), int(dec.SampleRate), bitDepth/8,
		bitDepth != 8, audio.CodingPCM, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	// Streamed recordings leave a placeholder data size, often 0xFFFFFFFF.
	pcmLen := dec.PCMLen()
	if left, ok := remaining(rs); ok {
		pcmLen = min(pcmLen, left)
	}

	var frames int64
	if frameSize := int64(format.BytesPerSample * format.Channels); frameSize > 0 {
		frames = pcmLen / frameSize
	}

	return &source{
		dec:    dec,
		format: format,
		frames: frames,
	}, nil
}

// remaining reports the bytes between the current offset of rs and its end,
// leaving the offset unchanged.
func remaining(rs io.Seeker) (int64, bool) {
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, false
	}
	if _, err := rs.Seek(cur, io.SeekStart); err != nil {
		return 0, false
	}
	return max(end-cur, 0), true
}
