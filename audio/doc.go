// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample plumbing shared by decoders and the
// waveform cache.
//
// A Source streams interleaved float32 samples in [-1, 1], the way every
// decoder in formats/ produces them. A SampleSource gives random access by
// channel and index, which is what the waveform cache consumes. ReadAll
// turns the first into the second:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf, err := audio.ReadAll(src)
//
// Sources that know their length implement Lengther so ReadAll can size its
// buffers once. Decoders also report the stored encoding as a Format.
//
// NewMonoView presents any SampleSource as one averaged channel.
//
// A Registry maps format keys such as "wav" to Decoders and is safe for
// concurrent use.
package audio
