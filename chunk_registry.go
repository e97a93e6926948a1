package wave

import (
	"fmt"

	"github.com/go-audio/riff"
	"github.com/sirupsen/logrus"
)

// ChunkHandler decodes one kind of chunk during a scan.
// Scan returns how far the cursor advances past ch.Offset.
type ChunkHandler interface {
	CanHandle(chunkID [4]byte) bool
	Scan(s *Scanner, f *File, ch Chunk) (int64, error)
}

// ChunkRegistry resolves chunks to handlers.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

func newDefaultChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&riffChunkHandler{},
			&fmtChunkHandler{},
			&listChunkHandler{},
			&dataChunkHandler{},
		},
	}
}

// Register appends a handler to the registry.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Lookup returns the first handler accepting the chunk ID, or nil.
func (r *ChunkRegistry) Lookup(chunkID [4]byte) ChunkHandler {
	if r == nil {
		return nil
	}

	for _, handler := range r.handlers {
		if handler.CanHandle(chunkID) {
			return handler
		}
	}

	return nil
}

// riffChunkHandler reads the 12-byte container header. It advances by the
// header width only since the other chunks are nested inside it.
type riffChunkHandler struct{}

func (h *riffChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == riff.RiffID
}

func (h *riffChunkHandler) Scan(s *Scanner, f *File, ch Chunk) (int64, error) {
	var b [riffHeaderSize]byte
	if err := s.readFull(b[:], ch.Offset, "read riff header"); err != nil {
		return 0, err
	}

	hdr := decodeRiffHeader(b[:])
	s.logger().WithField("format", string(hdr.Format[:])).Debug("riff header")

	if !hdr.IsWave() {
		return 0, &FormatError{Kind: ErrNotWave, ID: hdr.Format, Offset: ch.Offset}
	}

	f.Riff = hdr

	return riffHeaderSize, nil
}

// fmtChunkHandler reads the typed fmt chunk. The cursor moves by the
// declared size so vendor extension bytes are stepped over.
type fmtChunkHandler struct{}

func (h *fmtChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == riff.FmtID
}

func (h *fmtChunkHandler) Scan(s *Scanner, f *File, ch Chunk) (int64, error) {
	if ch.Size < fmtPayloadSize {
		return 0, &FormatError{Kind: ErrInvalidSize, ID: ch.ID, Offset: ch.Offset}
	}

	if err := s.checkLimit(ch); err != nil {
		return 0, err
	}

	if err := s.checkBounds(ch); err != nil {
		return 0, err
	}

	b := make([]byte, chunkHeaderSize+int(ch.Size))
	if err := s.readFull(b, ch.Offset, "read fmt chunk"); err != nil {
		return 0, err
	}

	hdr := decodeFmtHeader(b[:fmtHeaderSize])
	if ch.Size > fmtPayloadSize {
		hdr.Extra = b[fmtHeaderSize:]
	}

	s.logger().WithFields(logrus.Fields{
		"audio_format":    hdr.AudioFormat,
		"num_channels":    hdr.NumChannels,
		"sample_rate":     hdr.SampleRate,
		"byte_rate":       hdr.ByteRate,
		"block_align":     hdr.BlockAlign,
		"bits_per_sample": hdr.BitsPerSample,
	}).Debug("fmt chunk")

	f.Fmt = hdr

	return chunkHeaderSize + int64(ch.Size), nil
}

// listChunkHandler steps over LIST chunks without reading their content.
type listChunkHandler struct{}

func (h *listChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDList
}

func (h *listChunkHandler) Scan(s *Scanner, f *File, ch Chunk) (int64, error) {
	if err := s.checkBounds(ch); err != nil {
		return 0, err
	}

	f.Skipped = append(f.Skipped, ch)

	return chunkHeaderSize + int64(ch.Size), nil
}

type dataChunkHandler struct{}

func (h *dataChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == riff.DataFormatID
}

func (h *dataChunkHandler) Scan(s *Scanner, f *File, ch Chunk) (int64, error) {
	if err := s.checkLimit(ch); err != nil {
		return 0, err
	}

	if err := s.checkBounds(ch); err != nil {
		return 0, err
	}

	if f.Data != nil {
		s.logger().WithField("offset", ch.Offset).Warn("more than one data chunk, keeping the last one")
	}

	data := make([]byte, ch.Size)
	if err := s.readFull(data, ch.Offset+chunkHeaderSize, "read data chunk"); err != nil {
		return 0, fmt.Errorf("failed to read %d bytes of PCM data: %w", ch.Size, err)
	}

	f.Data = &DataChunk{ID: ch.ID, Size: ch.Size, Data: data}

	return chunkHeaderSize + int64(ch.Size), nil
}
