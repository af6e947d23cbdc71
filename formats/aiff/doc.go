// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files. Only
// uncompressed 16- and 24-bit PCM is accepted; other depths return
// ErrUnsupportedBitDepth.
//
//	f, _ := os.Open("take1.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//
// The decoder returns an audio.Source with float32 samples in [-1.0, 1.0]
// and the bit depth of the file, so trimmed output keeps the input
// resolution when written as WAV.
package aiff
