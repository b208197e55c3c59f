// SPDX-License-Identifier: EPL-2.0

// Package audwave renders long audio tracks as min/max waveforms at any zoom
// level without rescanning the raw samples.
//
// The work happens in the subpackages:
//   - waveform holds the Reducer, the append-only Store and the per-track
//     Cache that populates stores in the background while serving queries
//   - track ties a decoded track to its lazily created, reference counted
//     Cache and to its disposal
//   - audio defines the Source and SampleSource interfaces, the decoder
//     Registry and in-memory buffers
//   - formats/wav, formats/aiff, formats/mp3 and formats/vorbis decode files
//
// This package wires them together:
//
//	tr, err := audwave.LoadFile(audwave.DefaultRegistry(), "take3.wav")
//	if err != nil {
//	    return err
//	}
//	defer tr.Dispose()
//
//	h, err := tr.AcquireTraceCache()
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
//
//	// 800 pixels, 1024 samples each, from the start of channel 0.
//	// While the cache is still populating the result may be shorter.
//	windows, err := h.Windows(0, 0, 1024, 800)
//
// Summarize is a single pass alternative for when one resolution is enough
// and the track need not stay in memory.
package audwave
