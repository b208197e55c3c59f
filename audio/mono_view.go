// SPDX-License-Identifier: EPL-2.0

package audio

// MonoView presents a multi-channel SampleSource as a single channel by
// averaging every channel at each index. Channels shorter than the longest
// one contribute silence past their end.
type MonoView struct {
	src         SampleSource
	channels    int
	invChannels float32
	count       uint64
}

var _ SampleSource = (*MonoView)(nil)

func NewMonoView(src SampleSource) *MonoView {
	channels := src.Channels()

	var count uint64
	for c := range channels {
		count = max(count, src.SampleCount(c))
	}

	inv := float32(1)
	if channels > 0 {
		inv = float32(1.0) / float32(channels)
	}

	return &MonoView{
		src:         src,
		channels:    channels,
		invChannels: inv,
		count:       count,
	}
}

func (m *MonoView) Channels() int { return 1 }

func (m *MonoView) SampleCount(channel int) uint64 {
	if channel != 0 {
		return 0
	}
	return m.count
}

func (m *MonoView) SampleFloat(channel int, index uint64) float32 {
	if m.channels == 1 {
		// Pass-through
		return m.src.SampleFloat(0, index)
	}

	if m.channels == 2 &&
		index < m.src.SampleCount(0) && index < m.src.SampleCount(1) {
		return (m.src.SampleFloat(0, index) + m.src.SampleFloat(1, index)) * 0.5
	}

	sum := float32(0)
	for c := range m.channels {
		if index < m.src.SampleCount(c) {
			sum += m.src.SampleFloat(c, index)
		}
	}

	return sum * m.invChannels
}
