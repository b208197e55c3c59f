// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const headerSize = 44

// samples per write
const chunkSize = 8192

// WriteWAV16 writes interleaved 16-bit PCM as a canonical WAV file.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(s)
	}
	return WritePCM(w, sampleRate, channels, 16, ints)
}

// WritePCM writes interleaved integer PCM of bitDepth bits (8, 16, 24 or 32)
// as a canonical WAV file. 8-bit values are written as given, so they must
// already be unsigned.
func WritePCM(w io.Writer, sampleRate, channels, bitDepth int, samples []int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}

	bps := bitDepth / 8
	dataSize := uint32(len(samples) * bps)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], headerSize-8+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*channels*bps))
	binary.LittleEndian.PutUint16(header[32:34], uint16(channels*bps))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing WAV header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*bps)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*bps]

		for j, s := range chunk {
			putSample(out[j*bps:(j+1)*bps], s)
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing WAV data: %w", err)
		}
	}

	return nil
}

// putSample stores the low len(b) bytes of v little endian.
func putSample(b []byte, v int) {
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
}
