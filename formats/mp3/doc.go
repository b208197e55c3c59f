// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so mono files come out with both
// channels equal. Samples are normalized to [-1, 1]:
//
//	src, err := mp3.Decoder{}.Decode(f)
//
// Frames reports the decoded length when the input is an io.Seeker, and
// -1 otherwise.
package mp3
