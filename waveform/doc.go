// SPDX-License-Identifier: EPL-2.0

// Package waveform summarizes audio into min/max windows and answers
// zoomed waveform queries without rescanning raw samples.
//
// # Pipeline
//
// Samples flow one way:
//
//	audio.SampleSource -> Reducer -> Store <- Cache.Windows <- renderer
//
// A Reducer folds a sample stream into Windows of a fixed base size. A
// Store keeps those windows in a bounded, append only array and aggregates
// runs of them on demand. A Cache owns one Store per channel and fills
// them from a SampleSource once.
//
// # Querying
//
// Windows are requested in raw sample units:
//
//	cache, _ := waveform.NewCache(src, waveform.WithBaseWindowSize(64))
//	go cache.Init(ctx)
//
//	// 800 pixels, 1024 samples per pixel, starting at sample 0
//	ws, err := cache.Windows(0, 0, 1024, 800)
//
// The target window size must be a multiple of the base window size. While
// the cache is still populating the result holds fewer windows than
// requested; callers render what they get and ask again later.
//
// # Errors
//
//   - ErrInvalidArgument: malformed parameters, state is untouched
//   - ErrCapacityExceeded: the source produced more windows than its
//     reported length allowed; population stops, cached windows stay readable
//   - ErrDisposed: the cache was disposed
package waveform
