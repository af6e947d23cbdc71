// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a RIFF/WAVE file
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrOnlyPCMSupported indicates a compressed or float WAV
	ErrOnlyPCMSupported = errors.New("only PCM WAV is supported")

	// ErrUnsupportedBitDepth indicates a PCM bit depth other than 16 or 24
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrInvalidSampleRate indicates a waveform without a positive rate
	ErrInvalidSampleRate = errors.New("invalid WAV sample rate")
)
