// SPDX-License-Identifier: EPL-2.0

package utils

// PCMToFloat32 normalizes an integer PCM sample of bitDepth bits to [-1, 1].
// Unsigned samples are offset binary, as in 8-bit WAV.
// Unknown depths are treated as 16-bit.
func PCMToFloat32(v int, bitDepth int, signed bool) float32 {
	var full float32
	switch bitDepth {
	case 8:
		full = 128.0
	case 16:
		full = 32768.0
	case 24:
		full = 8388608.0
	case 32:
		full = 2147483648.0
	default:
		bitDepth = 16
		full = 32768.0
	}

	if !signed {
		v -= 1 << (bitDepth - 1)
	}

	return Clamp(float32(v) / full)
}
