// This tool scans a WAVE file and prints its container layout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/wave"
	"github.com/cwbudde/wave/internal/config"
	"github.com/cwbudde/wave/internal/logging"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:          "wave <file>",
		Short:        "Print the chunks of a RIFF/WAVE file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if verbose {
				cfg.Log.Level = "debug"
			}

			logger, err := logging.New(cfg.Log.Level, errOut)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return &wave.IoError{Op: "open " + args[0], Kind: wave.ErrNotFound, Err: err}
			}
			defer file.Close()

			s := wave.NewScanner(file)
			s.Logger = logger
			s.MaxChunkSize = cfg.Scan.MaxChunkSize

			f, err := s.Scan()
			if err != nil {
				return err
			}

			if err := wave.CheckConformance(f.Fmt); err != nil {
				logger.WithError(err).Warn("fmt chunk fields disagree")
			}

			printFile(out, f)

			return nil
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every chunk")

	return cmd
}

func printFile(out io.Writer, f *wave.File) {
	fmt.Fprintf(out, "riff: size=%d format=%s\n", f.Riff.Size, f.Riff.Format[:])
	fmt.Fprintf(out, "fmt: audio_format=%d channels=%d sample_rate=%d byte_rate=%d block_align=%d bits_per_sample=%d\n",
		f.Fmt.AudioFormat, f.Fmt.NumChannels, f.Fmt.SampleRate, f.Fmt.ByteRate, f.Fmt.BlockAlign, f.Fmt.BitsPerSample)

	for _, ch := range f.Skipped {
		fmt.Fprintf(out, "skipped: %s size=%d offset=%d\n", ch.ID[:], ch.Size, ch.Offset)
	}

	fmt.Fprintf(out, "data: size=%d\n", f.Data.Size)

	if f.Stop != nil {
		fmt.Fprintf(out, "stopped at: %q offset=%d\n", f.Stop.ID[:], f.Stop.Offset)
	}

	fmt.Fprintf(out, "nsamples=%d, nseconds=%d\n", f.NumSamples(), f.Seconds())
}
