// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/ik5/wavtrim/utils"
)

// DefaultBufferSize is the read size used when none is given.
const DefaultBufferSize = 4096

// maxEmptyReads bounds consecutive (0, nil) reads before giving up.
const maxEmptyReads = 100

// Waveform is a fully decoded single-channel PCM signal.
type Waveform struct {
	// Samples are signed integers in the range of BitDepth.
	Samples    []int
	SampleRate int
	BitDepth   int
}

// Len returns the number of samples.
func (w Waveform) Len() int { return len(w.Samples) }

// Duration of the waveform at its sample rate.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}

	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// Slice returns the sub-waveform [start, end). The samples share memory
// with w.
func (w Waveform) Slice(start, end int) Waveform {
	return Waveform{
		Samples:    w.Samples[start:end],
		SampleRate: w.SampleRate,
		BitDepth:   w.BitDepth,
	}
}

// SamplesFor converts a duration to a sample count at the waveform rate.
func (w Waveform) SamplesFor(d time.Duration) int {
	if d <= 0 || w.SampleRate <= 0 {
		return 0
	}

	return int(d * time.Duration(w.SampleRate) / time.Second)
}

// ReadWaveform drains src, downmixes it to mono and converts the samples
// back to integer PCM at the bit depth of src.
//
// For 16- and 24-bit sources the float32 trip is lossless, so a waveform
// read from a mono file holds exactly the samples stored in it.
//
// src is not closed.
func ReadWaveform(src Source, bufferSize int) (Waveform, error) {
	bitDepth := src.BitDepth()
	if bitDepth != 16 && bitDepth != 24 {
		return Waveform{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if src.SampleRate() <= 0 {
		return Waveform{}, ErrInvalidSampleRate
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	mono := NewMonoMixer(src)
	buf := make([]float32, bufferSize)
	samples := make([]int, 0, src.SampleRate())

	empty := 0
	for {
		n, err := mono.ReadSamples(buf)
		if n == 0 && err == nil {
			empty++
			if empty > maxEmptyReads {
				return Waveform{}, fmt.Errorf("read samples: %w", io.ErrNoProgress)
			}
			continue
		}
		empty = 0

		for i := range n {
			samples = append(samples, utils.FloatToPCM(buf[i], bitDepth))
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return Waveform{}, fmt.Errorf("read samples: %w", err)
		}
	}

	return Waveform{
		Samples:    samples,
		SampleRate: src.SampleRate(),
		BitDepth:   bitDepth,
	}, nil
}
