// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/wavtrim/audio"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate   int
	data         []byte // little-endian int16 PCM
	offset       int
	maxRead      int // bytes per Read, 0 for unlimited
	returnErrors bool
}

func newMockMP3Reader(sampleRate int, samples []int16) *mockMP3Reader {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	return &mockMP3Reader{sampleRate: sampleRate, data: data}
}

func (m *mockMP3Reader) SampleRate() int {
	return m.sampleRate
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.data) {
		return 0, io.EOF
	}

	if m.maxRead > 0 && len(buf) > m.maxRead {
		buf = buf[:m.maxRead]
	}

	n := copy(buf, m.data[m.offset:])
	m.offset += n

	if m.offset >= len(m.data) {
		return n, io.EOF
	}

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "text", data: []byte("This is not MP3 data")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotMP3File) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNotMP3File)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockMP3Reader(44100, nil), sampleRate: 44100}

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", src.BitDepth())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockMP3Reader(44100, []int16{0, 16384, -16384, -32768}), sampleRate: 44100}

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}

	want := []float32{0, 0.5, -0.5, -1}
	if n != 4 || !slices.Equal(dst, want) {
		t.Errorf("ReadSamples() = %d %v, want 4 %v", n, dst, want)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockMP3Reader(44100, []int16{1, 2})}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadSamples_SplitFrames(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, -1000, 2000, -2000, 3000, -3000}
	mock := newMockMP3Reader(22050, samples)
	mock.maxRead = 3

	src := &source{dec: mock, sampleRate: 22050}
	wf, err := audio.ReadWaveform(src, 2)
	if err != nil {
		t.Fatalf("ReadWaveform() error = %v, want nil", err)
	}

	// stereo frames average to zero
	want := []int{0, 0, 0}
	if !slices.Equal(wf.Samples, want) {
		t.Errorf("samples = %v, want %v", wf.Samples, want)
	}
}

func TestSource_ReadSamples_OddBuffer(t *testing.T) {
	t.Parallel()

	samples := []int16{100, 200, 300, 400, 500, 600, 700, 800}
	src := &source{dec: newMockMP3Reader(8000, samples), sampleRate: 8000}

	var got []float32
	dst := make([]float32, 3)
	for {
		n, err := src.ReadSamples(dst)
		if n%outChannels != 0 {
			t.Fatalf("ReadSamples() n = %d, want whole frames", n)
		}
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := make([]float32, len(samples))
	for i, s := range samples {
		want[i] = float32(s) / 32768
	}
	if !slices.Equal(got, want) {
		t.Errorf("samples = %v, want %v", got, want)
	}
}

func TestSource_ReadSamples_ShortBuffer(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockMP3Reader(8000, []int16{1, 2}), sampleRate: 8000}

	n, err := src.ReadSamples(make([]float32, 1))
	if n != 0 || !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("ReadSamples() = (%d, %v), want (0, %v)", n, err, io.ErrShortBuffer)
	}

	n, err = src.ReadSamples(make([]float32, 2))
	if n != 2 || err != io.EOF {
		t.Errorf("ReadSamples() after short buffer = (%d, %v), want (2, EOF)", n, err)
	}
}

func TestSource_PendingLongerThanBuffer(t *testing.T) {
	t.Parallel()

	mock := newMockMP3Reader(8000, []int16{7, 8})
	src := &source{dec: mock, sampleRate: 8000, pending: []byte{1, 0, 2, 0, 3, 0, 4, 0, 5, 0}}

	dst := make([]float32, 2)
	n, err := src.ReadSamples(dst)
	if n != 2 || err != nil {
		t.Fatalf("ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}
	if mock.offset != 0 {
		t.Errorf("decoder read %d bytes, want 0 while pending bytes remain", mock.offset)
	}
	if want := []byte{3, 0, 4, 0, 5, 0}; !slices.Equal(src.pending, want) {
		t.Errorf("pending = %v, want %v", src.pending, want)
	}
}

func TestSource_StereoDownmix(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockMP3Reader(8000, []int16{100, 300, -500, -700}), sampleRate: 8000}

	wf, err := audio.ReadWaveform(src, 0)
	if err != nil {
		t.Fatalf("ReadWaveform() error = %v, want nil", err)
	}

	want := []int{200, -600}
	if !slices.Equal(wf.Samples, want) {
		t.Errorf("samples = %v, want %v", wf.Samples, want)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockMP3Reader{returnErrors: true}}

	_, err := src.ReadSamples(make([]float32, 10))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestSource_BufferResize(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockMP3Reader(44100, make([]int16, 10000)), buf: make([]byte, 8)}

	_, _ = src.ReadSamples(make([]float32, 2048))
	if src.BufSize() < 2048 {
		t.Errorf("BufSize() = %d, want >= 2048", src.BufSize())
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 8192)
	for i := range samples {
		samples[i] = int16(i)
	}
	mock := newMockMP3Reader(44100, samples)
	src := &source{dec: mock, sampleRate: 44100}
	dst := make([]float32, 1024)

	for b.Loop() {
		mock.offset = 0
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
