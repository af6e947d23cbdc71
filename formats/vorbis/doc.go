// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes to
// floating point, so the source reports a bit depth of 16 and trimmed
// output is written as 16-bit PCM WAV.
//
//	f, _ := os.Open("field.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if errors.Is(err, vorbis.ErrNotVorbisFile) {
//	    // not an Ogg Vorbis stream
//	}
package vorbis
