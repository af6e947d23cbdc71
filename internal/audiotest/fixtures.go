// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"os"
)

// Padded returns body surrounded by lead and trail zero samples.
func Padded(lead int, body []int, trail int) []int {
	out := make([]int, 0, lead+len(body)+trail)
	out = append(out, make([]int, lead)...)
	out = append(out, body...)
	out = append(out, make([]int, trail)...)

	return out
}

// Tone returns n samples alternating between +amp and -amp.
func Tone(n, amp int) []int {
	out := make([]int, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = amp
		} else {
			out[i] = -amp
		}
	}

	return out
}

// WAVBytes builds a PCM WAV file independently of formats/wav so decoders
// can be tested against a known layout. Samples are interleaved; bitDepth
// must be 8, 16, 24 or 32. When junkChunk is set an unknown JUNK chunk is
// placed before the fmt chunk.
func WAVBytes(sampleRate, channels, bitDepth int, samples []int, junkChunk bool) []byte {
	buf := new(bytes.Buffer)

	bytesPerSample := bitDepth / 8
	dataSize := uint32(len(samples) * bytesPerSample)

	var junk []byte
	if junkChunk {
		junk = append([]byte("JUNK"), 4, 0, 0, 0, 0, 0, 0, 0)
	}
	riffSize := 36 + uint32(len(junk)) + dataSize

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")
	buf.Write(junk)

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(channels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(bitDepth))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	for _, s := range samples {
		switch bitDepth {
		case 8:
			buf.WriteByte(byte(s + 128))
		case 16:
			binary.Write(buf, binary.LittleEndian, int16(s))
		case 24:
			buf.Write([]byte{byte(s), byte(s >> 8), byte(s >> 16)})
		case 32:
			binary.Write(buf, binary.LittleEndian, int32(s))
		}
	}

	return buf.Bytes()
}

// WriteWAVFile writes a mono WAV fixture to path.
func WriteWAVFile(path string, sampleRate, bitDepth int, samples []int) error {
	return os.WriteFile(path, WAVBytes(sampleRate, 1, bitDepth, samples, false), 0o600)
}

// DataChunk returns the bytes after the canonical 44-byte header.
func DataChunk(wav []byte) []byte {
	if len(wav) < 44 {
		return nil
	}

	return wav[44:]
}
