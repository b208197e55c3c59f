// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 scales a normalized sample to 16-bit PCM, clamping to [-1, 1].
func Float32ToInt16(x float32) int16 {
	x = Clamp(x)

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Clamp limits x to the normalized range [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}
	return x
}
