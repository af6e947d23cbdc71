// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavtrim/audio"
	"github.com/ik5/wavtrim/internal/audiotest"
)

// mockPCMReader simulates wav.Decoder for testing
type mockPCMReader struct {
	sampleRate int
	channels   int
	samples    []int
	offset     int
	err        error
}

func (m *mockPCMReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	// go-audio signals the end of the data chunk with (0, nil)
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func decodeBytes(t *testing.T, data []byte) audio.Source {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	return src
}

func readAll(t *testing.T, src audio.Source) audio.Waveform {
	t.Helper()

	wf, err := audio.ReadWaveform(src, 64)
	if err != nil {
		t.Fatalf("ReadWaveform() error = %v, want nil", err)
	}

	return wf
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int{0, 100, -100, 32767, -32768, 0}
	src := decodeBytes(t, audiotest.WAVBytes(8000, 1, 16, samples, false))

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
	if src.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", src.BitDepth())
	}

	wf := readAll(t, src)
	if !slices.Equal(wf.Samples, samples) {
		t.Errorf("samples = %v, want %v", wf.Samples, samples)
	}
}

func TestDecoder_24Bit(t *testing.T) {
	t.Parallel()

	samples := []int{0, 1, -1, 8388607, -8388608, 123456, -654321}
	src := decodeBytes(t, audiotest.WAVBytes(48000, 1, 24, samples, false))

	if src.BitDepth() != 24 {
		t.Fatalf("BitDepth() = %d, want 24", src.BitDepth())
	}

	wf := readAll(t, src)
	if !slices.Equal(wf.Samples, samples) {
		t.Errorf("samples = %v, want %v", wf.Samples, samples)
	}
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	// L/R frames
	samples := []int{1000, 3000, -2000, -4000, 0, 0}
	src := decodeBytes(t, audiotest.WAVBytes(44100, 2, 16, samples, false))

	if src.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", src.Channels())
	}

	wf := readAll(t, src)
	want := []int{2000, -3000, 0}
	if !slices.Equal(wf.Samples, want) {
		t.Errorf("downmixed samples = %v, want %v", wf.Samples, want)
	}
}

func TestDecoder_WithUnknownChunks(t *testing.T) {
	t.Parallel()

	samples := []int{5, -5, 500, -500}
	src := decodeBytes(t, audiotest.WAVBytes(16000, 1, 16, samples, true))

	wf := readAll(t, src)
	if !slices.Equal(wf.Samples, samples) {
		t.Errorf("samples = %v, want %v", wf.Samples, samples)
	}
}

func TestDecoder_HeaderOnly(t *testing.T) {
	t.Parallel()

	src := decodeBytes(t, audiotest.WAVBytes(8000, 1, 16, nil, false))

	wf := readAll(t, src)
	if wf.Len() != 0 {
		t.Errorf("Len() = %d, want 0", wf.Len())
	}
	if wf.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", wf.SampleRate)
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	samples := []int{7, 8, 9}
	data := audiotest.WAVBytes(8000, 1, 16, samples, false)

	// io.MultiReader hides Seek
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	wf := readAll(t, src)
	if !slices.Equal(wf.Samples, samples) {
		t.Errorf("samples = %v, want %v", wf.Samples, samples)
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	valid := audiotest.WAVBytes(8000, 1, 16, []int{1, 2, 3}, false)

	badMarker := slices.Clone(valid)
	copy(badMarker[0:4], "RIFX")

	floatTag := slices.Clone(valid)
	floatTag[20] = 3

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty", data: nil, wantErr: ErrNotWavFile},
		{name: "text", data: []byte("This is not WAV data at all, just text"), wantErr: ErrNotWavFile},
		{name: "bad RIFF marker", data: badMarker, wantErr: ErrNotWavFile},
		{name: "truncated header", data: valid[:20], wantErr: ErrNotWavFile},
		{name: "float format tag", data: floatTag, wantErr: ErrOnlyPCMSupported},
		{name: "8-bit", data: audiotest.WAVBytes(8000, 1, 8, []int{1, 2}, false), wantErr: ErrUnsupportedBitDepth},
		{name: "32-bit", data: audiotest.WAVBytes(8000, 1, 32, []int{1, 2}, false), wantErr: ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	mock := &mockPCMReader{sampleRate: 8000, channels: 1, samples: []int{16384, -16384, 0}}
	src := &source{dec: mock, sampleRate: 8000, channels: 1, bitDepth: 16}

	buf := make([]float32, 2)
	n, err := src.ReadSamples(buf)
	if err != nil || n != 2 {
		t.Fatalf("ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}
	if buf[0] != 0.5 || buf[1] != -0.5 {
		t.Errorf("samples = %v, want [0.5 -0.5]", buf)
	}

	n, err = src.ReadSamples(buf)
	if err != nil || n != 1 {
		t.Fatalf("ReadSamples() = (%d, %v), want (1, nil)", n, err)
	}

	for range 2 {
		n, err = src.ReadSamples(buf)
		if n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() at end = (%d, %v), want (0, EOF)", n, err)
		}
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockPCMReader{samples: []int{1}}, bitDepth: 16}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockPCMReader{err: io.ErrUnexpectedEOF}, bitDepth: 16}

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestSource_BufSize(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockPCMReader{samples: make([]int, 10)}, bitDepth: 16}
	if src.BufSize() != audio.DefaultBufferSize {
		t.Errorf("BufSize() = %d, want %d", src.BufSize(), audio.DefaultBufferSize)
	}

	_, _ = src.ReadSamples(make([]float32, 512))
	if src.BufSize() != 512 {
		t.Errorf("BufSize() after read = %d, want 512", src.BufSize())
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 11025, 16000, 22050, 44100, 48000, 96000} {
		src := decodeBytes(t, audiotest.WAVBytes(rate, 1, 16, []int{1}, false))
		if src.SampleRate() != rate {
			t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), rate)
		}
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	data := audiotest.WAVBytes(44100, 2, 16, audiotest.Tone(44100, 1000), false)

	for b.Loop() {
		_, _ = Decoder{}.Decode(bytes.NewReader(data))
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := audiotest.WAVBytes(44100, 1, 16, audiotest.Tone(44100, 1000), false)
	buf := make([]float32, 4096)

	for b.Loop() {
		src, _ := Decoder{}.Decode(bytes.NewReader(data))
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
