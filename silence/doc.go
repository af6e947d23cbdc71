// SPDX-License-Identifier: EPL-2.0

// Package silence finds and removes leading and trailing silence in a
// single-channel integer waveform.
//
// A sample is silent when its magnitude is at or below the threshold.
// Detect scans forward for the first loud sample and backward for the last
// one; Trim returns the samples in between. Entirely silent input trims to
// an empty slice. Trimming is idempotent: the first and last kept samples
// are loud, so a second pass keeps everything.
//
//	b, ok := silence.Detect(samples, 562)
//	kept := samples[b.Start:b.End]
//
// Scan adds two optional limits: MaxSilence keeps only the first utterance
// and MaxLength caps how far past the start the region may reach.
//
// Thresholds are usually given as an energy in dB on the 16-bit scale:
//
//	thr := silence.ScaleThreshold(silence.AmplitudeFromEnergy(55), 24)
package silence
