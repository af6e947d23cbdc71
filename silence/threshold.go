// SPDX-License-Identifier: EPL-2.0

package silence

import "math"

// DefaultEnergy is the default energy threshold in dB.
const DefaultEnergy = 55.0

// AmplitudeFromEnergy converts an energy threshold in dB on the 16-bit
// scale to an amplitude: round(10^(eth/20)). 55 dB gives 562.
func AmplitudeFromEnergy(eth float64) int {
	if eth <= 0 {
		return 0
	}

	return int(math.Round(math.Pow(10, eth/20)))
}

// ScaleThreshold rescales a 16-bit amplitude to bitDepth.
func ScaleThreshold(threshold16, bitDepth int) int {
	switch {
	case bitDepth > 16:
		return threshold16 << (bitDepth - 16)
	case bitDepth < 16 && bitDepth > 0:
		return threshold16 >> (16 - bitDepth)
	default:
		return threshold16
	}
}

// Peak returns the largest sample magnitude.
func Peak(samples []int) int {
	peak := 0
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}

	return peak
}

// NormalizedThreshold maps a threshold meant for a peak-normalized signal
// back onto the raw samples, so detection can run on the original data.
// A silent signal (peak 0) keeps the threshold unchanged.
func NormalizedThreshold(threshold, peak, fullScale int) int {
	if peak <= 0 || fullScale <= 0 {
		return threshold
	}

	return int(int64(threshold) * int64(peak) / int64(fullScale))
}
