// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes integer PCM WAV files.
//
// Decoding is done by github.com/go-audio/wav. Supported files are PCM
// (format tag 1) at 8, 16, 24 or 32 bits with any channel count and sample
// rate. 8-bit samples are unsigned, all others signed, and every sample is
// normalized to [-1, 1]:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadAll(src)
//
// The returned source also reports the encoding through Format and the
// declared length through Frames, so audio.ReadAll can size its buffers up
// front. Readers that cannot seek are read into memory first.
//
// WriteWAV16 and WritePCM emit canonical 44-byte header files, mostly
// useful for fixtures:
//
//	err := wav.WriteWAV16(w, 44100, 2, interleaved)
package wav
