// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files through
// github.com/go-audio/aiff.
//
// Samples are signed big endian PCM of 16, 24 or 32 bits, any channel
// count and any sample rate. They come out normalized to [-1, 1]:
//
//	src, err := aiff.Decoder{}.Decode(f)
//
// The source reports its encoding through Format and the COMM chunk frame
// count through Frames. Readers that cannot seek are buffered in memory,
// since go-audio moves between chunks.
package aiff
