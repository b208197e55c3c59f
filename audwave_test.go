// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/track"
)

func wavFixture(t *testing.T, channels int, samples []int16) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := wav.WriteWAV16(buf, 8000, channels, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	return buf.Bytes()
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if got := DefaultRegistry().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"song.wav":             "wav",
		"/tmp/Take 3.AIFF":     "aiff",
		"archive.tar.ogg":      "ogg",
		"no_extension":         "",
		"dir.mp3/trailingdot.": "",
	}

	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoadTrack(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*300)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = int16(i * 50)
		} else {
			samples[i] = -16384
		}
	}

	tr, err := LoadTrack(DefaultRegistry(), "stereo.wav", "wav", bytes.NewReader(wavFixture(t, 2, samples)),
		track.WithBaseWindowSize(16))
	if err != nil {
		t.Fatalf("LoadTrack() error = %v", err)
	}
	defer tr.Dispose()

	if tr.Name() != "stereo.wav" || tr.Channels() != 2 || tr.Frames() != 300 {
		t.Errorf("track = %q, %d ch, %d frames", tr.Name(), tr.Channels(), tr.Frames())
	}
	if got := tr.Format().String(); got != "PCM 16-bit signed LE, 2 ch @ 8000 Hz" {
		t.Errorf("Format() = %q", got)
	}

	h, err := tr.AcquireTraceCache()
	if err != nil {
		t.Fatalf("AcquireTraceCache() error = %v", err)
	}
	defer h.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	right, err := h.Windows(1, 0, 64, 100)
	if err != nil {
		t.Fatalf("Windows() error = %v", err)
	}
	// 300 frames at base 16 is 19 windows, 4 per 64-sample window
	if len(right) != 4 {
		t.Fatalf("Windows() returned %d windows, want 4", len(right))
	}
	for i, w := range right {
		if w.Min() != -0.5 || w.Max() != -0.5 {
			t.Errorf("right[%d] = %v, want (-0.5, -0.5)", i, w)
		}
	}
}

func TestLoadTrack_PlaceholderDataSize(t *testing.T) {
	t.Parallel()

	data := wavFixture(t, 2, []int16{16384, -16384, 8192, -8192})
	binary.LittleEndian.PutUint32(data[40:44], 0xFFFFFFF0)

	tr, err := LoadTrack(DefaultRegistry(), "live.wav", "wav", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadTrack() error = %v", err)
	}
	defer tr.Dispose()

	if tr.Channels() != 2 || tr.Frames() != 2 {
		t.Errorf("track = %d ch, %d frames, want 2 ch, 2 frames", tr.Channels(), tr.Frames())
	}
}

func TestLoadTrack_Errors(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	if _, err := LoadTrack(reg, "x.flac", "flac", bytes.NewReader(nil)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadTrack(flac) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := LoadTrack(reg, "bad.wav", "wav", bytes.NewReader([]byte("junk"))); !errors.Is(err, wav.ErrNotWavFile) {
		t.Errorf("LoadTrack(junk) error = %v, want ErrNotWavFile", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Mono.WAV")
	if err := os.WriteFile(path, wavFixture(t, 1, []int16{1, 2, 3, 4}), 0o600); err != nil {
		t.Fatal(err)
	}

	tr, err := LoadFile(DefaultRegistry(), path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	defer tr.Dispose()

	if tr.Name() != "Mono.WAV" || tr.Frames() != 4 {
		t.Errorf("track = %q with %d frames, want Mono.WAV with 4", tr.Name(), tr.Frames())
	}

	if _, err := LoadFile(DefaultRegistry(), filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestMono16(t *testing.T) {
	t.Parallel()

	src, err := wav.Decoder{}.Decode(bytes.NewReader(wavFixture(t, 2, []int16{16384, 0, -32768, -32768, 100, 100})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	pcm, rate, err := Mono16(src)
	if err != nil {
		t.Fatalf("Mono16() error = %v", err)
	}

	want := []int16{8191, -32767, 99}
	if rate != 8000 || !slices.Equal(pcm, want) {
		t.Errorf("Mono16() = %v @ %d, want %v @ 8000", pcm, rate, want)
	}
}

var _ audio.Source = (*failingSource)(nil)
