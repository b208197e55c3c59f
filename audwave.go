// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/formats/aiff"
	"github.com/ik5/audwave/formats/mp3"
	"github.com/ik5/audwave/formats/vorbis"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/track"
)

// ErrUnsupportedFormat is returned when no decoder is registered for a format key.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// DefaultRegistry returns a registry with every bundled decoder, keyed by
// file extension.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// FormatOf returns the registry key for path: its lower cased extension
// without the dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// LoadTrack decodes r with the decoder registered for format, reads it
// fully into memory and wraps it in a Track named name. The decoder's
// Format, when it reports one, is attached to the track unless opts set
// another.
func LoadTrack(reg *audio.Registry, name, format string, r io.Reader, opts ...track.Option) (*track.Track, error) {
	dec, ok := reg.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	if f, ok := src.(interface{ Format() audio.Format }); ok {
		opts = append([]track.Option{track.WithFormat(f.Format())}, opts...)
	}

	return track.New(name, buf, opts...)
}

// LoadFile opens path and loads it with the decoder matching its extension.
// The track is named after the file.
func LoadFile(reg *audio.Registry, path string, opts ...track.Option) (*track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadTrack(reg, filepath.Base(path), FormatOf(path), f, opts...)
}
