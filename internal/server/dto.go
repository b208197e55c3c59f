// SPDX-License-Identifier: EPL-2.0

package server

import (
	"github.com/ik5/audwave/track"
	"github.com/ik5/audwave/utils"
	"github.com/ik5/audwave/waveform"
)

type ChannelProgress struct {
	Filled   uint32 `json:"filled"`
	Capacity uint32 `json:"capacity"`
}

// CacheInfo is absent from TrackInfo until the server holds the track's cache.
type CacheInfo struct {
	State    string            `json:"state"`
	Channels []ChannelProgress `json:"channels"`
}

type TrackInfo struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Channels       int        `json:"channels"`
	Frames         uint64     `json:"frames"`
	SampleRate     int        `json:"sample_rate,omitempty"`
	Format         string     `json:"format,omitempty"`
	BaseWindowSize uint64     `json:"base_window_size"`
	Cache          *CacheInfo `json:"cache,omitempty"`
}

// WindowsResponse carries Length windows as interleaved min, max pairs.
// With Bits 16 the values are scaled to int16, otherwise they are floats
// in [-1, 1].
type WindowsResponse struct {
	Channel          int    `json:"channel"`
	Start            uint64 `json:"start"`
	SamplesPerWindow uint64 `json:"samples_per_window"`
	State            string `json:"state"`
	Bits             int    `json:"bits"`
	Length           int    `json:"length"`
	Data             any    `json:"data"`
}

func newTrackInfo(t *track.Track, h *track.Handle) TrackInfo {
	info := TrackInfo{
		ID:             t.ID().String(),
		Name:           t.Name(),
		Channels:       t.Channels(),
		Frames:         t.Frames(),
		BaseWindowSize: t.BaseWindowSize(),
	}

	if f := t.Format(); f.Channels > 0 {
		info.SampleRate = f.SampleRate
		info.Format = f.String()
	}

	if h != nil {
		ci := &CacheInfo{State: h.State().String()}
		for ch := range t.Channels() {
			filled, capacity, err := h.Progress(ch)
			if err != nil {
				break
			}
			ci.Channels = append(ci.Channels, ChannelProgress{Filled: filled, Capacity: capacity})
		}
		info.Cache = ci
	}

	return info
}

func interleave(ws []waveform.Window, bits int) any {
	if bits == 16 {
		out := make([]int16, 0, 2*len(ws))
		for _, w := range ws {
			out = append(out, utils.Float32ToInt16(w.Min()), utils.Float32ToInt16(w.Max()))
		}
		return out
	}

	out := make([]float32, 0, 2*len(ws))
	for _, w := range ws {
		out = append(out, w.Min(), w.Max())
	}
	return out
}
