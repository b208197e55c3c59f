// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds audio sources for tests. It does not import the
// audio package, the types satisfy its interfaces structurally.
package audiotest

import (
	"io"
	"math"
	"sync"
)

// Waveform generates the value of sample on channel.
type Waveform func(sample int, channel int) float32

// MockSource is a streaming source that generates audio data for testing.
// It implements audio.Source and audio.Lengther.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     Waveform
}

// NewMockSource creates a new streaming mock source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Sine(sampleRate, frequency))
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Constant(value))
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }
func (m *MockSource) Frames() int64   { return int64(m.totalSamples) }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Sine returns a waveform of a sine at frequency.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Constant returns a waveform that is always value.
func Constant(value float32) Waveform {
	return func(int, int) float32 { return value }
}

// Ramp returns a waveform rising linearly from -1 to 1 over period samples.
func Ramp(period int) Waveform {
	return func(sample int, channel int) float32 {
		return -1 + 2*float32(sample%period)/float32(period-1)
	}
}

// Stream replays fixed interleaved values, at most chunk values per read
// and without regard for frame boundaries. It implements audio.Source and
// audio.Lengther.
type Stream struct {
	sampleRate int
	channels   int
	values     []float32
	chunk      int
	frames     int64
	pos        int
}

// NewStream streams values in reads of up to chunk values. A chunk below 1
// fills every read.
func NewStream(sampleRate, channels, chunk int, values ...float32) *Stream {
	return &Stream{
		sampleRate: sampleRate,
		channels:   channels,
		values:     values,
		chunk:      chunk,
		frames:     int64(len(values) / max(channels, 1)),
	}
}

// ReportFrames makes Frames return n, as a header declaring the wrong
// length would.
func (s *Stream) ReportFrames(n int64) *Stream {
	s.frames = n
	return s
}

func (s *Stream) SampleRate() int { return s.sampleRate }
func (s *Stream) Channels() int   { return s.channels }
func (s *Stream) BufSize() int    { return 4096 }
func (s *Stream) Close() error    { return nil }
func (s *Stream) Frames() int64   { return s.frames }

func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.values) {
		return 0, io.EOF
	}
	if s.chunk > 0 && len(dst) > s.chunk {
		dst = dst[:s.chunk]
	}

	n := copy(dst, s.values[s.pos:])
	s.pos += n
	return n, nil
}

// Samples is a random access source over fixed per-channel data.
// It implements audio.SampleSource.
type Samples struct {
	data [][]float32
	// count overrides the reported length when set.
	count []uint64
}

// NewSamples wraps per-channel data.
func NewSamples(channels ...[]float32) *Samples {
	return &Samples{data: channels}
}

// Generate builds a Samples of n samples per channel from waveform.
func Generate(channels, n int, waveform Waveform) *Samples {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, n)
		for i := range n {
			data[c][i] = waveform(i, c)
		}
	}
	return NewSamples(data...)
}

// ReportCount makes SampleCount return count for channel regardless of the
// data actually held, to simulate a source lying about its length.
// Reads past the real data return silence.
func (s *Samples) ReportCount(channel int, count uint64) *Samples {
	if s.count == nil {
		s.count = make([]uint64, len(s.data))
		for c := range s.data {
			s.count[c] = uint64(len(s.data[c]))
		}
	}
	s.count[channel] = count
	return s
}

func (s *Samples) Channels() int { return len(s.data) }

func (s *Samples) SampleCount(channel int) uint64 {
	if s.count != nil {
		return s.count[channel]
	}
	return uint64(len(s.data[channel]))
}

func (s *Samples) SampleFloat(channel int, index uint64) float32 {
	if index >= uint64(len(s.data[channel])) {
		return 0
	}
	return s.data[channel][index]
}

// GatedSamples wraps a Samples and blocks every read at or past gate until
// Open is called. It lets tests observe a cache mid population.
type GatedSamples struct {
	*Samples

	gate   uint64
	once   sync.Once
	opened chan struct{}
	// reached is closed the first time a read hits the gate.
	reached     chan struct{}
	reachedOnce sync.Once
}

func NewGatedSamples(s *Samples, gate uint64) *GatedSamples {
	return &GatedSamples{
		Samples: s,
		gate:    gate,
		opened:  make(chan struct{}),
		reached: make(chan struct{}),
	}
}

func (g *GatedSamples) SampleFloat(channel int, index uint64) float32 {
	if index >= g.gate {
		g.reachedOnce.Do(func() { close(g.reached) })
		<-g.opened
	}
	return g.Samples.SampleFloat(channel, index)
}

// Reached is closed once a reader is blocked on the gate.
func (g *GatedSamples) Reached() <-chan struct{} { return g.reached }

// Open releases all blocked and future reads.
func (g *GatedSamples) Open() {
	g.once.Do(func() { close(g.opened) })
}
