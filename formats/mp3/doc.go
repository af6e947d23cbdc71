// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3, which always produces
// interleaved stereo 16-bit PCM. The returned audio.Source therefore
// reports two channels and a bit depth of 16 regardless of the encoded
// stream, and mono MP3 files come out with identical left and right
// channels.
//
//	f, _ := os.Open("interview.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if errors.Is(err, mp3.ErrNotMP3File) {
//	    // no MPEG audio frames found
//	}
//
// Trimming an MP3 produces a 16-bit WAV; MP3 output is not supported.
package mp3
