// SPDX-License-Identifier: EPL-2.0

package audwave_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/track"
)

// Example_zoomLevels loads a track and reads its waveform at two zoom
// levels from the same cache.
func Example_zoomLevels() {
	samples := make([]int16, 1024)
	for i := range samples {
		samples[i] = int16((i%256 - 128) * 256)
	}
	data := new(bytes.Buffer)
	_ = wav.WriteWAV16(data, 8000, 1, samples)

	tr, err := audwave.LoadTrack(audwave.DefaultRegistry(), "saw.wav", "wav", data,
		track.WithBaseWindowSize(64))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer tr.Dispose()

	h, _ := tr.AcquireTraceCache()
	defer h.Release()
	_ = h.Wait(context.Background())

	fine, _ := h.Windows(0, 0, 64, 4)
	coarse, _ := h.Windows(0, 0, 512, 4)
	fmt.Println(fine)
	fmt.Println(coarse)
	// Output:
	// [(-1, -0.5078125) (-0.5, -0.0078125) (0, 0.4921875) (0.5, 0.9921875)]
	// [(-1, 0.9921875) (-1, 0.9921875)]
}

func ExampleSummarize() {
	data := new(bytes.Buffer)
	_ = wav.WriteWAV16(data, 8000, 2, []int16{0, 0, 16384, -16384, -32768, 8192})

	src, _ := wav.Decoder{}.Decode(data)
	defer src.Close()

	windows, _ := audwave.Summarize(src, 2)
	fmt.Println("left:", windows[0])
	fmt.Println("right:", windows[1])
	// Output:
	// left: [(0, 0.5) (-1, -1)]
	// right: [(-0.5, 0) (0.25, 0.25)]
}
