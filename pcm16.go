// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"fmt"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/utils"
)

// Mono16 downmixes src to mono and collects it as 16-bit PCM at the source
// sample rate. src is not closed.
func Mono16(src audio.Source) ([]int16, int, error) {
	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, 0, fmt.Errorf("collecting samples: %w", err)
	}

	mono := audio.NewMonoView(buf)
	pcm16 := make([]int16, mono.SampleCount(0))
	for i := range pcm16 {
		pcm16[i] = utils.Float32ToInt16(mono.SampleFloat(0, uint64(i)))
	}

	return pcm16, src.SampleRate(), nil
}
