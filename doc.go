// SPDX-License-Identifier: EPL-2.0

// Package wavtrim trims leading and trailing silence from audio files.
//
// A file is decoded through an audio.Registry, downmixed to mono and
// converted to integer PCM at its own bit depth. silence.Scan finds the
// first and last samples whose magnitude exceeds the threshold, and the
// samples between them are written as a mono PCM WAV with the input
// sample rate and bit depth. Nothing is resampled, so for 16- and 24-bit
// mono WAV input the kept samples are byte-identical to the original.
//
// # Quick Start
//
//	res, err := wavtrim.TrimFile(wavtrim.DefaultRegistry(),
//	    "speech.wav", wavtrim.DefaultOutputPath("speech.wav"),
//	    wavtrim.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Bounds.Start, res.Bounds.End)
//
// # Threshold
//
// Options.Threshold is an amplitude on the 16-bit scale and is rescaled
// for 24-bit input. DefaultThreshold (562) is the 55 dB energy threshold
// converted with silence.AmplitudeFromEnergy. A sample equal to the
// threshold counts as silence.
//
// # Silent Input
//
// An input with no sample above the threshold is trimmed to nothing.
// TrimFile then writes a header-only WAV, or returns ErrSilent without
// writing when Options.SkipSilent is set.
//
// # Formats
//
// DefaultRegistry decodes WAV (16/24-bit PCM), AIFF (16/24-bit), MP3 and
// Ogg Vorbis. MP3 and Vorbis are written as 16-bit WAV. Output is always
// WAV.
package wavtrim
