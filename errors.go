package wave

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the input can't be opened.
	ErrNotFound = errors.New("source not found")
	// ErrTruncated is returned when a read returns fewer bytes than requested
	// or a chunk claims more bytes than the stream holds.
	ErrTruncated = errors.New("truncated input")
	// ErrNotWave is returned when the RIFF form type isn't WAVE.
	ErrNotWave = errors.New("riff form type is not WAVE")
	// ErrUnsupported is returned when the fmt chunk is outside the accepted profile.
	ErrUnsupported = errors.New("unsupported format")
	// ErrUnknownChunk is returned when the scan stopped on an unrecognized
	// chunk before any data chunk was found.
	ErrUnknownChunk = errors.New("unknown chunk")
	// ErrInvalidSize is returned for chunk sizes that can't be honored.
	ErrInvalidSize = errors.New("invalid chunk size")
	// ErrMissingFmt is returned when no fmt chunk was found.
	ErrMissingFmt = errors.New("fmt chunk not found")
	// ErrMissingData is returned when no data chunk was found.
	ErrMissingData = errors.New("data chunk not found")
	// ErrNonConformant reports fmt fields that disagree with each other.
	ErrNonConformant = errors.New("non conformant fmt chunk")
)

// IoError wraps a failed open, seek, read or write.
type IoError struct {
	Op     string
	Offset int64
	// Kind is ErrNotFound, ErrTruncated or nil.
	Kind error
	Err  error
}

func (e *IoError) Error() string {
	msg := fmt.Sprintf("%s at offset %d", e.Op, e.Offset)
	if e.Kind != nil {
		msg += ": " + e.Kind.Error()
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *IoError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// FormatError reports a structurally valid stream whose content can't be
// processed.
type FormatError struct {
	Kind   error
	ID     [4]byte
	Offset int64

	// Set for ErrUnsupported and ErrNonConformant.
	AudioFormat   uint16
	NumChannels   uint16
	BitsPerSample uint16
}

func (e *FormatError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrUnsupported), errors.Is(e.Kind, ErrNonConformant):
		return fmt.Sprintf("%v: audio format %d, %d channel(s), %d bits per sample",
			e.Kind, e.AudioFormat, e.NumChannels, e.BitsPerSample)
	case e.ID != [4]byte{}:
		return fmt.Sprintf("%v: chunk %q at offset %d", e.Kind, e.ID[:], e.Offset)
	default:
		return e.Kind.Error()
	}
}

func (e *FormatError) Unwrap() error {
	return e.Kind
}

func truncatedError(op string, offset int64, err error) error {
	return &IoError{Op: op, Offset: offset, Kind: ErrTruncated, Err: err}
}
