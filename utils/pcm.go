// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FullScale returns the magnitude of the most negative integer sample at
// bitDepth, e.g. 32768 for 16-bit PCM.
func FullScale(bitDepth int) int {
	if bitDepth <= 1 || bitDepth > 32 {
		return 1
	}

	return 1 << (bitDepth - 1)
}

// PCMToFloat scales an integer sample at bitDepth into [-1, 1).
// For 16- and 24-bit input the result is exact in float32.
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(FullScale(bitDepth)))
}

// FloatToPCM is the inverse of PCMToFloat. Values outside [-1, 1] are
// clamped to the integer range of bitDepth.
func FloatToPCM(x float32, bitDepth int) int {
	scale := FullScale(bitDepth)

	v := int(math.Round(float64(x) * float64(scale)))
	if v > scale-1 {
		return scale - 1
	}
	if v < -scale {
		return -scale
	}

	return v
}
