package wave

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Pipeline scans one input, validates it, transforms its samples and writes
// the result.
type Pipeline struct {
	// Profile gates the fmt chunk. The zero value means StereoPCM16.
	Profile Profile
	// Multiplier is applied to every sample. Nil leaves the samples alone.
	Multiplier Multiplier
	Overflow   Overflow
	Logger     logrus.FieldLogger
	// MaxChunkSize is handed to the scanner. Zero keeps its default.
	MaxChunkSize uint32
}

// NewPipeline returns a pipeline accepting 16-bit stereo PCM and applying
// DefaultPan with saturation.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Profile:    StereoPCM16,
		Multiplier: DefaultPan,
		Overflow:   Saturate,
	}
}

// Scan reads and validates r without transforming it.
func (p *Pipeline) Scan(r io.ReadSeeker) (*File, error) {
	s := NewScanner(r)
	s.Logger = p.logger()

	if p.MaxChunkSize > 0 {
		s.MaxChunkSize = p.MaxChunkSize
	}

	f, err := s.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}

	profile := p.Profile
	if profile == (Profile{}) {
		profile = StereoPCM16
	}

	if err := profile.Validate(f.Fmt); err != nil {
		return nil, err
	}

	if err := CheckConformance(f.Fmt); err != nil {
		p.logger().WithError(err).Warn("fmt chunk fields disagree")
	}

	return f, nil
}

// Transform applies the multiplier to the data chunk of f in place.
func (p *Pipeline) Transform(f *File) error {
	err := Apply(f.Fmt, f.Data, p.Multiplier, p.Overflow)
	if err != nil {
		return fmt.Errorf("failed to transform samples: %w", err)
	}

	p.logger().WithFields(logrus.Fields{
		"nsamples": f.NumSamples(),
		"nseconds": f.Seconds(),
		"overflow": p.Overflow,
	}).Debug("samples transformed")

	return nil
}

// Process runs the whole pipeline from r to w.
func (p *Pipeline) Process(r io.ReadSeeker, w io.Writer) (*File, error) {
	f, err := p.Scan(r)
	if err != nil {
		return nil, err
	}

	if err := p.Transform(f); err != nil {
		return nil, err
	}

	if err := NewEncoder(w).Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode: %w", err)
	}

	return f, nil
}

// ProcessFile runs the pipeline from inPath to outPath. The output is only
// created once the input scanned, validated and transformed.
func (p *Pipeline) ProcessFile(outPath, inPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return &IoError{Op: "open " + inPath, Kind: ErrNotFound, Err: err}
	}
	defer in.Close()

	f, err := p.Scan(in)
	if err != nil {
		return err
	}

	if err := p.Transform(f); err != nil {
		return err
	}

	if err := WriteFile(outPath, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return nil
}

// IsFormatError reports whether err comes from the content of the input
// rather than from I/O.
func IsFormatError(err error) bool {
	var fe *FormatError

	return errors.As(err, &fe)
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}

	return p.Logger
}
