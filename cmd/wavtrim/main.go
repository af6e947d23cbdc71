// SPDX-License-Identifier: EPL-2.0

// Command wavtrim trims leading and trailing silence from audio files.
//
//	wavtrim wav <path> [--out <path>]
//	wavtrim dir <in_dir> <out_dir> [--suffix _out] [--verbose n]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/wavtrim/internal/batch"
	"github.com/ik5/wavtrim/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd.ExecuteContext(ctx)
}

// flags mirrors the command line. Only flags set by the user override the
// loaded configuration.
type flags struct {
	configPath string
	eth        float64
	threshold  int
	normalize  bool
	maxDur     float64
	maxSilence float64
	skipSilent bool
	logLevel   string
	logFormat  string

	out        string
	suffix     string
	verbose    int
	errorsFile string
}

// app is built once the command line is parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	runner *batch.Runner
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var (
		f flags
		a app
	)

	root := &cobra.Command{
		Use:           "wavtrim",
		Short:         "Trim leading and trailing silence from audio files",
		Long:          `wavtrim removes silence before the first and after the last sample louder than a threshold, and writes the result as mono PCM WAV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context(), f.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = cfg.NewLogger(stderr)
			a.runner = batch.NewRunner(cfg.TrimOptions(), a.logger)
			a.logger.Debug("configuration loaded", slog.Any("config", cfg))

			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML configuration file")
	pf.Float64Var(&f.eth, "eth", 55, "energy threshold in dB that separates silence from sound")
	pf.IntVar(&f.threshold, "threshold", 0, "raw 16-bit amplitude threshold, overrides --eth")
	pf.BoolVar(&f.normalize, "normalize", false, "apply the threshold to the peak-normalized signal")
	pf.Float64Var(&f.maxDur, "max-dur", 0, "keep at most this many seconds after the first sound (0 disables)")
	pf.Float64Var(&f.maxSilence, "max-silence", 0, "stop at the first pause longer than this many seconds (0 disables)")
	pf.BoolVar(&f.skipSilent, "skip-silent", false, "treat entirely silent inputs as errors instead of writing empty files")
	pf.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&f.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(newWavCmd(&f, &a), newDirCmd(&f, &a))

	return root
}

func newWavCmd(f *flags, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wav <path>",
		Short: "Trim a single file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.runner.File(cmd.Context(), args[0], f.out)
			if err != nil {
				return err
			}

			a.logger.Info("file saved",
				slog.String("file", res.Input),
				slog.String("output", res.Output),
				slog.Int("start", res.Bounds.Start),
				slog.Int("end", res.Bounds.End),
				slog.Bool("silent", res.Silent),
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&f.out, "out", "", "output path (default <name>_out.wav next to the input)")

	return cmd
}

func newDirCmd(f *flags, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir <in_dir> <out_dir>",
		Short: "Trim every audio file in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.runner.Dir(cmd.Context(), args[0], args[1], a.cfg.DirOptions())
			if err != nil {
				return err
			}

			return report.Err()
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.suffix, "suffix", "_out", "suffix added to output file names")
	fl.IntVar(&f.verbose, "verbose", 0, "log progress every n files (0 disables)")
	fl.StringVar(&f.errorsFile, "errors-file", "errors.txt", "failure list written into the input directory (empty disables)")

	return cmd
}

// apply copies the flags the user set onto cfg.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("eth") {
		cfg.Eth = f.eth
		if !changed("threshold") {
			cfg.Threshold = 0
		}
	}
	if changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if changed("normalize") {
		cfg.Normalize = f.normalize
	}
	if changed("max-dur") {
		cfg.MaxDuration = seconds(f.maxDur)
	}
	if changed("max-silence") {
		cfg.MaxSilence = seconds(f.maxSilence)
	}
	if changed("skip-silent") {
		cfg.SkipSilent = f.skipSilent
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if changed("suffix") {
		cfg.Suffix = f.suffix
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("errors-file") {
		cfg.ErrorsFile = f.errorsFile
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
