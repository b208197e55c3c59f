// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audwave/audio"
)

func encode(t *testing.T, sampleRate, channels, bitDepth int, samples []int) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := WritePCM(buf, sampleRate, channels, bitDepth, samples); err != nil {
		t.Fatalf("WritePCM() error = %v", err)
	}
	return buf.Bytes()
}

func TestDecoder_Properties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		bitDepth   int
		samples    int
		signed     bool
	}{
		{"mono 16-bit", 8000, 1, 16, 6, true},
		{"stereo 16-bit", 44100, 2, 16, 6, true},
		{"mono 8-bit", 11025, 1, 8, 4, false},
		{"stereo 24-bit", 48000, 2, 24, 8, true},
		{"quad 32-bit", 96000, 4, 32, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := encode(t, tt.sampleRate, tt.channels, tt.bitDepth, make([]int, tt.samples))
			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if src.SampleRate() != tt.sampleRate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.sampleRate)
			}
			if src.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", src.Channels(), tt.channels)
			}

			f := src.(interface{ Format() audio.Format }).Format()
			if f.BitDepth() != tt.bitDepth || f.Signed != tt.signed || f.Coding != audio.CodingPCM {
				t.Errorf("Format() = %v", f)
			}
			if f.ByteOrder != binary.LittleEndian {
				t.Errorf("ByteOrder = %v, want little endian", f.ByteOrder)
			}

			frames := src.(audio.Lengther).Frames()
			if want := int64(tt.samples / tt.channels); frames != want {
				t.Errorf("Frames() = %d, want %d", frames, want)
			}
		})
	}
}

func TestDecoder_Samples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		samples  []int
		want     []float32
	}{
		{"16-bit", 16, []int{0, 16384, -16384, -32768}, []float32{0, 0.5, -0.5, -1}},
		{"8-bit unsigned", 8, []int{128, 192, 64, 0}, []float32{0, 0.5, -0.5, -1}},
		{"24-bit", 24, []int{0, 4194304, -8388608}, []float32{0, 0.5, -1}},
		{"32-bit", 32, []int{-1073741824, 536870912}, []float32{-0.5, 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := encode(t, 8000, 1, tt.bitDepth, tt.samples)
			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			dst := make([]float32, 16)
			n, err := src.ReadSamples(dst)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != len(tt.want) {
				t.Fatalf("ReadSamples() n = %d, want %d", n, len(tt.want))
			}
			for i, want := range tt.want {
				if dst[i] != want {
					t.Errorf("sample[%d] = %v, want %v", i, dst[i], want)
				}
			}

			if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
				t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := encode(t, 22050, 2, 16, []int{1, 2, 3, 4})

	// bytes.Buffer has no Seek method
	src, err := Decoder{}.Decode(bytes.NewBuffer(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", buf.Frames())
	}
}

func TestDecoder_PlaceholderDataSize(t *testing.T) {
	t.Parallel()

	data := encode(t, 8000, 1, 8, []int{128, 192, 64, 255})
	binary.LittleEndian.PutUint32(data[40:44], 0xFFFFFFF0)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := src.(audio.Lengther).Frames(); got != 4 {
		t.Errorf("Frames() = %d, want 4", got)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 4 {
		t.Errorf("ReadAll() frames = %d, want 4", buf.Frames())
	}
	if got := buf.SampleFloat(0, 1); got != 0.5 {
		t.Errorf("SampleFloat(0, 1) = %v, want 0.5", got)
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("NOT A WAV FILE DATA")},
		{"truncated", []byte("RIFF\x00")},
		{"bad WAVE marker", []byte("RIFF\x24\x00\x00\x00NOPE")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotWavFile) && !errors.Is(err, ErrUnsupportedWavLayout) {
				t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func TestDecoder_FloatCodingRejected(t *testing.T) {
	t.Parallel()

	data := encode(t, 8000, 1, 32, []int{0, 0})
	// IEEE float format tag
	binary.LittleEndian.PutUint16(data[20:22], 3)

	if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
		t.Error("Decode() error = nil, want error for float WAV")
	}
}

type failingPCM struct{ err error }

func (f failingPCM) PCMBuffer(*goaudio.IntBuffer) (int, error) { return 0, f.err }

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	format, _ := audio.NewFormat(1, 8000, 2, true, audio.CodingPCM, binary.LittleEndian)
	src := &source{dec: failingPCM{err: boom}, format: format}

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}

	src.dec = failingPCM{err: io.EOF}
	if n, err := src.ReadSamples(make([]float32, 8)); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(encode(t, 8000, 1, 16, []int{1})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func BenchmarkDecoder_ReadSamples(b *testing.B) {
	samples := make([]int, 44100*2)
	for i := range samples {
		samples[i] = i % 1000
	}
	buf := new(bytes.Buffer)
	_ = WritePCM(buf, 44100, 2, 16, samples)
	data := buf.Bytes()
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src, _ := Decoder{}.Decode(bytes.NewReader(data))
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
