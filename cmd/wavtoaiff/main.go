// This tool converts a 16-bit stereo wav file into an aiff file stored in
// the same folder as the source, optionally panning it on the way.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wave"
	"github.com/cwbudde/wave/internal/logging"
	"github.com/go-audio/aiff"
)

func main() {
	logger, err := logging.New("info", os.Stderr)
	if err != nil {
		panic(err)
	}

	err = run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		logger.Fatal("You must set the -path flag")
	}

	logger.WithError(err).Fatal("conversion failed")
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	path := flagSet.String("path", "", "The path to the wav file to convert to aiff")
	pan := flagSet.Bool("pan", false, "Pan the samples between the channels before converting")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errMissingPath
	}

	sourcePath, err := expandHome(*path)
	if err != nil {
		return err
	}

	f, err := wave.ReadFile(sourcePath)
	if err != nil {
		return err
	}

	if err := wave.Validate(f.Fmt); err != nil {
		return err
	}

	if *pan {
		if err := wave.Apply(f.Fmt, f.Data, wave.DefaultPan, wave.Saturate); err != nil {
			return err
		}
	}

	buf, err := f.IntBuffer()
	if err != nil {
		return err
	}

	outPath := aiffPath(sourcePath)

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, int(f.Fmt.SampleRate), int(f.Fmt.BitsPerSample), int(f.Fmt.NumChannels))

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", outPath, err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", outPath, err)
	}

	fmt.Fprintf(out, "Wav file converted to %s\n", outPath)

	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get the user home directory: %w", err)
	}

	return filepath.Join(home, path[2:]), nil
}

func aiffPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".aif"
}
