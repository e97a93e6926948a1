package wave

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/riff"
	"github.com/sirupsen/logrus"
)

// DefaultMaxChunkSize bounds the size a single chunk may declare.
const DefaultMaxChunkSize = 1 << 30

var errNilReader = errors.New("can't scan a nil reader")

// Scanner walks a RIFF/WAVE stream chunk by chunk.
// Every read is positional: the scanner seeks to the chunk offset first, so
// the reader position is unspecified after a scan.
type Scanner struct {
	r      io.ReadSeeker
	chunks *ChunkRegistry
	end    int64

	// Logger receives one debug entry per chunk. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger
	// MaxChunkSize is the largest size a chunk may declare.
	MaxChunkSize uint32
}

// NewScanner creates a scanner for the passed reader.
func NewScanner(r io.ReadSeeker) *Scanner {
	return &Scanner{
		r:            r,
		chunks:       newDefaultChunkRegistry(),
		MaxChunkSize: DefaultMaxChunkSize,
	}
}

// RegisterHandler adds a chunk handler consulted after the built-in ones.
func (s *Scanner) RegisterHandler(handler ChunkHandler) {
	if s.chunks == nil {
		s.chunks = newDefaultChunkRegistry()
	}

	s.chunks.Register(handler)
}

// ReadFile opens, scans and closes the file at path.
func ReadFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Op: "open " + path, Kind: ErrNotFound, Err: err}
	}
	defer file.Close()

	return NewScanner(file).Scan()
}

// Scan reads the container until the end of the RIFF chunk or the first
// unrecognized chunk.
func (s *Scanner) Scan() (*File, error) {
	if s == nil || s.r == nil {
		return nil, errNilReader
	}

	if s.chunks == nil {
		s.chunks = newDefaultChunkRegistry()
	}

	end, err := s.r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, &IoError{Op: "seek to end", Err: err}
	}

	s.end = end

	var (
		f        = &File{}
		cursor   int64
		riffSeen bool
	)

	for !riffSeen || cursor < int64(f.Riff.Size)+chunkHeaderSize {
		ch, err := s.peek(cursor)
		if err != nil {
			return nil, err
		}

		s.logger().WithFields(logrus.Fields{
			"id":     string(ch.ID[:]),
			"size":   ch.Size,
			"offset": ch.Offset,
		}).Debug("chunk")

		handler := s.chunks.Lookup(ch.ID)
		if handler == nil {
			f.Stop = &ch

			break
		}

		n, err := handler.Scan(s, f, ch)
		if err != nil {
			return nil, err
		}

		if n <= 0 {
			return nil, &FormatError{Kind: ErrInvalidSize, ID: ch.ID, Offset: ch.Offset}
		}

		if ch.ID == riff.RiffID {
			riffSeen = true
		}

		cursor += n
	}

	if f.Stop != nil && (f.Fmt == nil || f.Data == nil) {
		return nil, &FormatError{Kind: ErrUnknownChunk, ID: f.Stop.ID, Offset: f.Stop.Offset}
	}

	if f.Fmt == nil {
		return nil, &FormatError{Kind: ErrMissingFmt}
	}

	if f.Data == nil {
		return nil, &FormatError{Kind: ErrMissingData}
	}

	return f, nil
}

// ReadAt reads len(p) bytes at the absolute offset off for custom chunk
// handlers. A short read returns the bytes read with an ErrTruncated error.
func (s *Scanner) ReadAt(p []byte, off int64) (int, error) {
	return s.read(p, off, "read")
}

func (s *Scanner) peek(offset int64) (Chunk, error) {
	var b [chunkHeaderSize]byte
	if err := s.readFull(b[:], offset, "read chunk header"); err != nil {
		return Chunk{}, err
	}

	return decodeChunk(b[:], offset), nil
}

func (s *Scanner) readFull(p []byte, offset int64, op string) error {
	_, err := s.read(p, offset, op)
	return err
}

func (s *Scanner) read(p []byte, offset int64, op string) (int, error) {
	if _, err := s.r.Seek(offset, io.SeekStart); err != nil {
		return 0, &IoError{Op: "seek", Offset: offset, Err: err}
	}

	n, err := io.ReadFull(s.r, p)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, truncatedError(op, offset, err)
	default:
		return n, &IoError{Op: op, Offset: offset, Err: err}
	}
}

// checkLimit rejects chunks declaring more than MaxChunkSize. Only chunks
// that get allocated go through it.
func (s *Scanner) checkLimit(ch Chunk) error {
	if s.MaxChunkSize > 0 && ch.Size > s.MaxChunkSize {
		return &FormatError{Kind: ErrInvalidSize, ID: ch.ID, Offset: ch.Offset}
	}

	return nil
}

// checkBounds rejects chunks running past the end of the stream.
func (s *Scanner) checkBounds(ch Chunk) error {
	remaining := s.end - ch.Offset - chunkHeaderSize
	if int64(ch.Size) > remaining {
		return truncatedError(fmt.Sprintf("chunk %q declares %d bytes, %d left", ch.ID[:], ch.Size, max(remaining, 0)), ch.Offset, nil)
	}

	return nil
}

func (s *Scanner) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}

	return s.Logger
}
