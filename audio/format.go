// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
)

// Coding is the sample encoding of a PCM stream.
type Coding int

const (
	CodingPCM Coding = iota
	CodingFloat
)

func (c Coding) String() string {
	switch c {
	case CodingPCM:
		return "PCM"
	case CodingFloat:
		return "IEEE-float"
	default:
		return fmt.Sprintf("Coding(%d)", int(c))
	}
}

// Format describes how a track was encoded before normalization.
type Format struct {
	Channels       int
	SampleRate     int
	BytesPerSample int
	Signed         bool
	Coding         Coding
	ByteOrder      binary.ByteOrder
}

// NewFormat validates and returns a Format. A nil order defaults to
// little endian.
func NewFormat(channels, sampleRate, bytesPerSample int, signed bool, coding Coding, order binary.ByteOrder) (Format, error) {
	switch {
	case channels < 1:
		return Format{}, fmt.Errorf("%w: channels = %d", ErrInvalidFormat, channels)
	case sampleRate < 1:
		return Format{}, fmt.Errorf("%w: sample rate = %d", ErrInvalidFormat, sampleRate)
	case bytesPerSample < 1:
		return Format{}, fmt.Errorf("%w: bytes per sample = %d", ErrInvalidFormat, bytesPerSample)
	case coding != CodingPCM && coding != CodingFloat:
		return Format{}, fmt.Errorf("%w: %s", ErrInvalidFormat, coding)
	case coding == CodingFloat && !signed:
		return Format{}, ErrFloatMustBeSigned
	}

	if order == nil {
		order = binary.LittleEndian
	}

	return Format{
		Channels:       channels,
		SampleRate:     sampleRate,
		BytesPerSample: bytesPerSample,
		Signed:         signed,
		Coding:         coding,
		ByteOrder:      order,
	}, nil
}

// PCM16 returns the signed 16-bit little endian format most decoders emit.
func PCM16(channels, sampleRate int) (Format, error) {
	return NewFormat(channels, sampleRate, 2, true, CodingPCM, binary.LittleEndian)
}

// BitDepth returns the sample width in bits.
func (f Format) BitDepth() int { return f.BytesPerSample * 8 }

func (f Format) String() string {
	sign := "unsigned"
	if f.Signed {
		sign = "signed"
	}
	order := "LE"
	if f.ByteOrder == binary.BigEndian {
		order = "BE"
	}

	return fmt.Sprintf("%s %d-bit %s %s, %d ch @ %d Hz",
		f.Coding, f.BitDepth(), sign, order, f.Channels, f.SampleRate)
}
