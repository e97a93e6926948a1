// This tool pans a 16-bit stereo wav file between its channels and writes
// the result to a new file.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cwbudde/wave/internal/config"
	"github.com/cwbudde/wave/internal/logging"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	period     time.Duration
	overflow   string
	identity   bool
	verbose    bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "wavepan <output> <input>",
		Short:        "Pan the samples of a 16-bit stereo wav file",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Log.Level, errOut)
			if err != nil {
				return err
			}

			p, err := cfg.ToPipeline(logger)
			if err != nil {
				return err
			}

			outPath, inPath := args[0], args[1]
			if err := p.ProcessFile(outPath, inPath); err != nil {
				return err
			}

			fmt.Fprintf(out, "wrote %s\n", outPath)

			return nil
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	flags.DurationVar(&opts.period, "period", 0, "pan period, overrides transform.period")
	flags.StringVar(&opts.overflow, "overflow", "", "saturate or wrap, overrides transform.overflow")
	flags.BoolVar(&opts.identity, "identity", false, "copy the samples without panning")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every chunk")

	return cmd
}

// loadConfig applies the flags that were set on top of the config file.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()

	if flags.Changed("period") {
		cfg.Transform.Period = opts.period
	}

	if flags.Changed("overflow") {
		cfg.Transform.Overflow = opts.overflow
	}

	if opts.identity {
		cfg.Transform.Enabled = false
	}

	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}
