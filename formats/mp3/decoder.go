// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/wavtrim/audio"
	"github.com/ik5/wavtrim/utils"
)

const (
	// go-mp3 always produces interleaved stereo 16-bit little-endian PCM
	outChannels = 2
	outBitDepth = 16
	frameBytes  = outChannels * outBitDepth / 8
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	pending    []byte // undecoded bytes carried from the previous read
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outChannels }
func (s *source) BitDepth() int   { return outBitDepth }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // samples, not bytes

// ReadSamples fills dst with whole interleaved stereo frames. A dst shorter
// than one frame returns io.ErrShortBuffer.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if len(dst) < outChannels {
		return 0, io.ErrShortBuffer
	}

	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	carried := copy(s.buf, s.pending)
	rest := s.pending[carried:]

	var (
		n   int
		err error
	)
	if carried < len(s.buf) {
		n, err = s.dec.Read(s.buf[carried:])
	}
	n += carried

	usable := n - n%frameBytes
	samples := usable / 2
	for i := range samples {
		v := int(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
		dst[i] = utils.PCMToFloat(v, outBitDepth)
	}

	// bytes not yet decoded: the tail of buf, then whatever did not fit
	next := make([]byte, 0, n-usable+len(rest))
	next = append(next, s.buf[usable:n]...)
	s.pending = append(next, rest...)

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("decode mp3: %w", err)
	}

	return samples, err
}

// Decoder decodes MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
