// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level sample plumbing used by wavtrim.
//
// This package contains:
//   - Source interface for decoded audio input
//   - MonoMixer for channel mixing
//   - Waveform, an in-memory single-channel integer PCM buffer
//   - Format registry for decoder lookup by file extension
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    BitDepth() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All format decoders return a Source. ReadSamples yields interleaved float32
// samples in [-1.0, 1.0] and io.EOF once the stream is finished.
//
// # Channel Mixing
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// # Waveforms
//
// ReadWaveform drains a Source through a MonoMixer and converts it back to
// integer PCM at the source bit depth:
//
//	wf, err := audio.ReadWaveform(source, audio.DefaultBufferSize)
//	// wf.Samples, wf.SampleRate, wf.BitDepth
//
// 16- and 24-bit samples survive the float32 trip unchanged, so slicing a
// waveform and encoding it again reproduces the original sample data.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.DecoderFor("take1.WAV")
//
// Keys are case-insensitive and a leading dot is ignored.
package audio
