// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files.
//
// Decoding uses github.com/go-audio/wav and accepts integer PCM at 16 or
// 24 bits per sample, including WAVE_FORMAT_EXTENSIBLE headers and files
// with extra chunks before the audio data. Samples are delivered as
// float32 values in [-1.0, 1.0] through audio.Source.
//
//	f, _ := os.Open("speech.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrUnsupportedBitDepth) {
//	    // 8- or 32-bit input
//	}
//
// Encode writes a mono audio.Waveform with a canonical 44-byte header.
// The output keeps the bit depth of the waveform, so a 16-bit mono file
// decoded with ReadWaveform and encoded again is byte-identical in its data
// chunk. Encode needs only an io.Writer and writes a header for an empty
// waveform.
//
//	err := wav.Encode(out, audio.Waveform{
//	    Samples:    samples,
//	    SampleRate: 16000,
//	    BitDepth:   16,
//	})
package wav
