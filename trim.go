// SPDX-License-Identifier: EPL-2.0

package wavtrim

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/wavtrim/audio"
	"github.com/ik5/wavtrim/formats/aiff"
	"github.com/ik5/wavtrim/formats/mp3"
	"github.com/ik5/wavtrim/formats/vorbis"
	"github.com/ik5/wavtrim/formats/wav"
	"github.com/ik5/wavtrim/silence"
	"github.com/ik5/wavtrim/utils"
)

// DefaultThreshold is silence.DefaultEnergy as a 16-bit amplitude.
var DefaultThreshold = silence.AmplitudeFromEnergy(silence.DefaultEnergy)

// OutputSuffix is appended to the input base name by DefaultOutputPath.
const OutputSuffix = "_out"

// Options controls how a waveform is trimmed.
type Options struct {
	// Threshold is the silence amplitude on the 16-bit scale. It is
	// rescaled to the bit depth of each input.
	Threshold int
	// Normalize applies Threshold to the peak-normalized signal.
	Normalize bool
	// MaxDuration caps the kept region measured from its first loud sample.
	// Zero disables the cap.
	MaxDuration time.Duration
	// MaxSilence ends the kept region at the first pause longer than this.
	// Zero disables it.
	MaxSilence time.Duration
	// SkipSilent makes TrimFile return ErrSilent instead of writing an
	// empty file for an entirely silent input.
	SkipSilent bool
	// BufferSize is the decode read size in samples.
	BufferSize int
}

// DefaultOptions returns Options with DefaultThreshold and nothing else set.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// Result describes one trimmed file.
type Result struct {
	Input         string
	Output        string
	SampleRate    int
	BitDepth      int
	Bounds        silence.Bounds
	InputSamples  int
	OutputSamples int
	// Silent is set when no sample exceeded the threshold.
	Silent bool
}

// Removed returns the number of samples cut from the input.
func (r Result) Removed() int { return r.InputSamples - r.OutputSamples }

// DefaultRegistry returns a registry with every decoder in formats/.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// DefaultOutputPath returns in with its extension replaced by "_out.wav".
func DefaultOutputPath(in string) string {
	return OutputPath(in, "", OutputSuffix)
}

// OutputPath returns dir/<base of in><suffix>.wav. An empty dir keeps the
// directory of in.
func OutputPath(in, dir, suffix string) string {
	if dir == "" {
		dir = filepath.Dir(in)
	}
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))

	return filepath.Join(dir, base+suffix+".wav")
}

// TrimSource reads src to the end and returns the trimmed mono waveform
// with its bounds in the original sample indices. An entirely silent or
// empty source yields an empty waveform and zero bounds.
//
// src is not closed.
func TrimSource(src audio.Source, opts Options) (audio.Waveform, silence.Bounds, error) {
	wf, err := audio.ReadWaveform(src, opts.BufferSize)
	if err != nil {
		return audio.Waveform{}, silence.Bounds{}, err
	}

	trimmed, b := TrimWaveform(wf, opts)

	return trimmed, b, nil
}

// TrimWaveform trims an already decoded waveform. The result shares
// memory with wf.
func TrimWaveform(wf audio.Waveform, opts Options) (audio.Waveform, silence.Bounds) {
	b, ok := silence.Scan(wf.Samples, params(wf, opts))
	if !ok {
		return wf.Slice(0, 0), silence.Bounds{}
	}

	return wf.Slice(b.Start, b.End), b
}

func params(wf audio.Waveform, opts Options) silence.Params {
	threshold := silence.ScaleThreshold(opts.Threshold, wf.BitDepth)
	if opts.Normalize {
		threshold = silence.NormalizedThreshold(threshold, silence.Peak(wf.Samples), utils.FullScale(wf.BitDepth))
	}

	return silence.Params{
		Threshold:  threshold,
		MaxSilence: wf.SamplesFor(opts.MaxSilence),
		MaxLength:  wf.SamplesFor(opts.MaxDuration),
	}
}

// TrimFile decodes inPath with the decoder registered for its extension,
// trims it and writes the result to outPath as a mono PCM WAV at the input
// sample rate and bit depth.
//
// An entirely silent input produces a header-only WAV, or ErrSilent and no
// file when opts.SkipSilent is set. outPath may equal inPath: the input is
// fully read first and the output replaces it only once completely written.
func TrimFile(reg *audio.Registry, inPath, outPath string, opts Options) (Result, error) {
	res := Result{Input: inPath, Output: outPath}

	dec, ok := reg.DecoderFor(inPath)
	if !ok {
		return res, fmt.Errorf("%s: %w %q", inPath, ErrUnsupportedFormat, filepath.Ext(inPath))
	}

	wf, err := readFile(dec, inPath, opts.BufferSize)
	if err != nil {
		return res, err
	}

	trimmed, b := TrimWaveform(wf, opts)

	res.SampleRate = trimmed.SampleRate
	res.BitDepth = trimmed.BitDepth
	res.Bounds = b
	res.InputSamples = wf.Len()
	res.OutputSamples = trimmed.Len()
	res.Silent = trimmed.Len() == 0

	if res.Silent && opts.SkipSilent {
		res.Output = ""
		return res, fmt.Errorf("%s: %w", inPath, ErrSilent)
	}

	if err := writeWAV(outPath, trimmed); err != nil {
		return res, err
	}

	return res, nil
}

func readFile(dec audio.Decoder, path string, bufferSize int) (audio.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("decode %s: %w", path, err)
	}
	defer src.Close()

	wf, err := audio.ReadWaveform(src, bufferSize)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("read %s: %w", path, err)
	}

	return wf, nil
}

// writeWAV encodes wf into a temporary file next to path and renames it
// over path, so a failed write never touches an existing file.
func writeWAV(path string, wf audio.Waveform) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	if err := wav.Encode(w, wf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	return nil
}
