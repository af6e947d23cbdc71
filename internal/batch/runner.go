// SPDX-License-Identifier: EPL-2.0

// Package batch drives wavtrim over a single file or a whole directory.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ik5/wavtrim"
	"github.com/ik5/wavtrim/audio"
)

// DirOptions controls directory mode.
type DirOptions struct {
	// Suffix is appended to each output base name before ".wav".
	Suffix string
	// Verbose logs progress every Verbose files. Zero disables it.
	Verbose int
	// ErrorsFile is the name of the failure list written into the input
	// directory. Empty disables it.
	ErrorsFile string
}

// DefaultDirOptions returns the options used when none are configured.
func DefaultDirOptions() DirOptions {
	return DirOptions{Suffix: wavtrim.OutputSuffix, ErrorsFile: "errors.txt"}
}

// Failure records one input that could not be trimmed.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes a directory run.
type Report struct {
	Processed []string
	Written   []wavtrim.Result
	Failed    []Failure
	// ErrorsFile is the path of the written failure list, if any.
	ErrorsFile string
}

// Err returns ErrFilesFailed when any input failed.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d of %d", ErrFilesFailed, len(r.Failed), len(r.Processed))
}

// Runner trims files with a shared registry and options.
type Runner struct {
	Registry *audio.Registry
	Options  wavtrim.Options
	Logger   *slog.Logger
}

// NewRunner creates a Runner with the default registry.
func NewRunner(opts wavtrim.Options, logger *slog.Logger) *Runner {
	return &Runner{
		Registry: wavtrim.DefaultRegistry(),
		Options:  opts,
		Logger:   logger,
	}
}

// File trims a single file. An empty out writes next to in using
// wavtrim.DefaultOutputPath.
func (r *Runner) File(ctx context.Context, in, out string) (wavtrim.Result, error) {
	if err := ctx.Err(); err != nil {
		return wavtrim.Result{Input: in}, err
	}

	if out == "" {
		out = wavtrim.DefaultOutputPath(in)
	}

	res, err := wavtrim.TrimFile(r.Registry, in, out, r.Options)
	if err != nil {
		return res, err
	}

	r.logResult(res)

	return res, nil
}

func (r *Runner) logResult(res wavtrim.Result) {
	r.Logger.Debug("file trimmed",
		slog.String("file", res.Input),
		slog.String("output", res.Output),
		slog.Int("start", res.Bounds.Start),
		slog.Int("end", res.Bounds.End),
		slog.Int("removed", res.Removed()),
		slog.Bool("silent", res.Silent),
	)
}

// Dir trims every decodable file in inDir into outDir, creating outDir
// when needed. A failing file is logged and skipped; the run continues.
// Inputs mapping to an output already written in this run fail with
// ErrOutputCollision. The context is checked between files; a canceled
// run still writes the errors file for the failures seen so far.
func (r *Runner) Dir(ctx context.Context, inDir, outDir string, opts DirOptions) (*Report, error) {
	files, err := r.inputs(inDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	report := &Report{}
	total := len(files)
	written := make(map[string]string, total)
	r.Logger.Info("processing files", slog.Int("count", total), slog.String("dir", inDir))

	for i, in := range files {
		if err := ctx.Err(); err != nil {
			return report, errors.Join(err, r.writeErrorsFile(inDir, opts, report))
		}

		report.Processed = append(report.Processed, in)

		out := wavtrim.OutputPath(in, outDir, opts.Suffix)
		if prev, ok := written[out]; ok {
			err := fmt.Errorf("%w: %s also written from %s", ErrOutputCollision, out, prev)
			r.fail(report, in, err)
		} else if res, err := wavtrim.TrimFile(r.Registry, in, out, r.Options); err != nil {
			r.fail(report, in, err)
		} else {
			written[out] = in
			r.logResult(res)
			report.Written = append(report.Written, res)
		}

		if opts.Verbose > 0 && (i+1)%opts.Verbose == 0 {
			r.Logger.Info("files processed", slog.Int("done", i+1), slog.Int("total", total))
		}
	}

	r.Logger.Info("processing completed",
		slog.Int("saved", len(report.Written)),
		slog.String("dir", outDir),
	)

	if err := r.writeErrorsFile(inDir, opts, report); err != nil {
		return report, err
	}

	return report, nil
}

func (r *Runner) fail(report *Report, in string, err error) {
	r.Logger.Warn("file failed", slog.String("file", in), slog.Any("error", err))
	report.Failed = append(report.Failed, Failure{Path: in, Err: err})
}

// writeErrorsFile lists the failed inputs in inDir when there are any.
func (r *Runner) writeErrorsFile(inDir string, opts DirOptions, report *Report) error {
	if len(report.Failed) == 0 || opts.ErrorsFile == "" {
		return nil
	}

	path := filepath.Join(inDir, opts.ErrorsFile)
	if err := writeFailures(path, report.Failed); err != nil {
		return err
	}
	report.ErrorsFile = path

	r.Logger.Warn("erroneous files identified",
		slog.Int("count", len(report.Failed)),
		slog.String("errors_file", path),
	)

	return nil
}

// inputs lists regular files in dir with a registered decoder, by name.
func (r *Runner) inputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, ok := r.Registry.DecoderFor(path); ok {
			files = append(files, path)
		}
	}
	slices.Sort(files)

	return files, nil
}

func writeFailures(path string, failed []Failure) error {
	var sb strings.Builder
	for _, f := range failed {
		sb.WriteString(f.Path)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write errors file: %w", err)
	}

	return nil
}
