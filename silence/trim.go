// SPDX-License-Identifier: EPL-2.0

package silence

// Bounds is the kept region of a waveform: samples[Start:End].
// Start is the first loud sample and End is one past the last loud sample.
type Bounds struct {
	Start int
	End   int
}

// Len returns the number of kept samples.
func (b Bounds) Len() int { return b.End - b.Start }

// Params tunes Scan. Zero limits are disabled.
type Params struct {
	// Threshold is the amplitude magnitude at or below which a sample is
	// silent.
	Threshold int
	// MaxSilence ends the region at the first run of more than MaxSilence
	// silent samples after the start.
	MaxSilence int
	// MaxLength keeps only loud samples with index < Start+MaxLength.
	MaxLength int
}

func loud(s, threshold int) bool {
	if s < 0 {
		s = -s
	}

	return s > threshold
}

// Detect returns the trim bounds of samples: the first and last samples
// whose magnitude exceeds threshold. ok is false when no sample does,
// including for empty input.
func Detect(samples []int, threshold int) (Bounds, bool) {
	start := -1
	for i, s := range samples {
		if loud(s, threshold) {
			start = i
			break
		}
	}
	if start < 0 {
		return Bounds{}, false
	}

	end := start
	for i := len(samples) - 1; i > start; i-- {
		if loud(samples[i], threshold) {
			end = i
			break
		}
	}

	return Bounds{Start: start, End: end + 1}, true
}

// Scan is Detect with the optional MaxSilence and MaxLength limits.
// With both limits disabled it is identical to Detect.
func Scan(samples []int, p Params) (Bounds, bool) {
	if p.MaxSilence <= 0 && p.MaxLength <= 0 {
		return Detect(samples, p.Threshold)
	}

	b, ok := Detect(samples, p.Threshold)
	if !ok {
		return b, false
	}

	limit := b.End
	if p.MaxLength > 0 {
		limit = min(limit, b.Start+p.MaxLength)
	}

	last := b.Start
	gap := 0
	for i := b.Start + 1; i < limit; i++ {
		if !loud(samples[i], p.Threshold) {
			gap++
			if p.MaxSilence > 0 && gap > p.MaxSilence {
				break
			}
			continue
		}

		gap = 0
		last = i
	}

	return Bounds{Start: b.Start, End: last + 1}, true
}

// Trim returns the sub-slice of samples between the trim bounds. An
// entirely silent or empty input yields an empty slice.
func Trim(samples []int, threshold int) []int {
	b, ok := Detect(samples, threshold)
	if !ok {
		return samples[:0]
	}

	return samples[b.Start:b.End]
}
