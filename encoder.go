package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/riff"
)

var (
	errNilEncoder = errors.New("can't write a nil encoder")
	errNilWriter  = errors.New("can't write to a nil writer")
	errNilFile    = errors.New("can't encode a nil file")
	errTooLarge   = errors.New("container exceeds 4 GiB")
)

// Encoder serializes a scanned file back into a WAVE container holding the
// riff, fmt and data chunks, in that order.
type Encoder struct {
	w io.Writer

	WrittenBytes int
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return &IoError{Op: "write", Offset: int64(e.WrittenBytes), Err: err}
	}

	return nil
}

func (e *Encoder) write(p []byte) error {
	n, err := e.w.Write(p)
	e.WrittenBytes += n

	if err != nil {
		return &IoError{Op: "write", Offset: int64(e.WrittenBytes), Err: err}
	}

	return nil
}

// RiffSize is the RIFF size field for a container holding exactly the
// passed fmt and data chunks.
func RiffSize(f *FmtHeader, d *DataChunk) (uint32, error) {
	size := uint64(4) + chunkHeaderSize + uint64(f.EncodedSize()) + chunkHeaderSize + uint64(len(d.Data))
	if size > math.MaxUint32 {
		return 0, errTooLarge
	}

	return uint32(size), nil
}

// Encode writes the container. The RIFF size and the fmt and data sizes
// are derived from what is written, not copied from the input.
func (e *Encoder) Encode(f *File) error {
	if e == nil {
		return errNilEncoder
	}

	if e.w == nil {
		return errNilWriter
	}

	if f == nil {
		return errNilFile
	}

	if f.Fmt == nil {
		return &FormatError{Kind: ErrMissingFmt}
	}

	if f.Data == nil {
		return &FormatError{Kind: ErrMissingData}
	}

	size, err := RiffSize(f.Fmt, f.Data)
	if err != nil {
		return err
	}

	if err := e.AddLE(riff.RiffID); err != nil {
		return fmt.Errorf("error encoding riff id: %w", err)
	}

	if err := e.AddLE(size); err != nil {
		return fmt.Errorf("error encoding riff size: %w", err)
	}

	if err := e.AddLE(riff.WavFormatID); err != nil {
		return fmt.Errorf("error encoding riff form type: %w", err)
	}

	if err := e.write(appendFmtHeader(nil, f.Fmt)); err != nil {
		return fmt.Errorf("error encoding fmt chunk: %w", err)
	}

	if err := e.AddLE(riff.DataFormatID); err != nil {
		return fmt.Errorf("error encoding data chunk id: %w", err)
	}

	if err := e.AddLE(uint32(len(f.Data.Data))); err != nil {
		return fmt.Errorf("error encoding data chunk size: %w", err)
	}

	if err := e.write(f.Data.Data); err != nil {
		return fmt.Errorf("error encoding PCM data: %w", err)
	}

	return nil
}

// WriteFile encodes f into path. The content goes to a temporary file in
// the same directory first and is renamed over path only once complete.
func WriteFile(path string, f *File) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &IoError{Op: "create " + path, Err: err}
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return &IoError{Op: "chmod " + tmp.Name(), Err: err}
	}

	if err = NewEncoder(tmp).Encode(f); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return &IoError{Op: "sync " + tmp.Name(), Err: err}
	}

	if err = tmp.Close(); err != nil {
		return &IoError{Op: "close " + tmp.Name(), Err: err}
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return &IoError{Op: "rename to " + path, Err: err}
	}

	return nil
}
