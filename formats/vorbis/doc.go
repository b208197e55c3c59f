// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to 32-bit floats, so the reported Format has float
// coding. Values are clamped to [-1, 1] and reads are kept frame aligned:
//
//	src, err := vorbis.Decoder{}.Decode(f)
//
// Frames is known only when the input is an io.Seeker, -1 otherwise.
package vorbis
