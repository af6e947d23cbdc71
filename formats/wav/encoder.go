// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/wavtrim/audio"
)

// HeaderSize is the size of the canonical header written by Encode.
const HeaderSize = 44

// chunkSize is the number of samples converted per Write.
const chunkSize = 8192

// Encode writes wf as a mono PCM WAV with a canonical 44-byte header.
// wf.BitDepth must be 16 or 24. Samples outside the range of the bit depth
// are clamped. An empty waveform produces a header-only file.
func Encode(w io.Writer, wf audio.Waveform) error {
	if wf.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, wf.SampleRate)
	}

	bytesPerSample := wf.BitDepth / 8
	if wf.BitDepth != 16 && wf.BitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, wf.BitDepth)
	}

	if _, err := w.Write(header(wf.SampleRate, wf.BitDepth, len(wf.Samples))); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	if len(wf.Samples) == 0 {
		return nil
	}

	lo, hi := -(1 << (wf.BitDepth - 1)), (1<<(wf.BitDepth-1))-1
	buf := make([]byte, min(len(wf.Samples), chunkSize)*bytesPerSample)

	for i := 0; i < len(wf.Samples); i += chunkSize {
		chunk := wf.Samples[i:min(i+chunkSize, len(wf.Samples))]
		buf = buf[:len(chunk)*bytesPerSample]

		for j, s := range chunk {
			s = max(lo, min(hi, s))
			off := j * bytesPerSample
			if bytesPerSample == 2 {
				binary.LittleEndian.PutUint16(buf[off:off+2], uint16(int16(s)))
				continue
			}
			buf[off] = byte(s)
			buf[off+1] = byte(s >> 8)
			buf[off+2] = byte(s >> 16)
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}

	return nil
}

func header(sampleRate, bitDepth, numSamples int) []byte {
	const numChannels = 1
	blockAlign := numChannels * bitDepth / 8
	dataSize := uint32(numSamples * blockAlign)

	h := make([]byte, HeaderSize)

	// RIFF header
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")

	// fmt chunk
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], formatPCM)
	binary.LittleEndian.PutUint16(h[22:24], numChannels)
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], uint16(bitDepth))

	// data chunk header
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}
