package wave

import (
	"encoding/binary"

	"github.com/go-audio/riff"
)

const (
	// chunkHeaderSize is the width of a tag+size record.
	chunkHeaderSize = 8
	// riffHeaderSize is the width of the RIFF header: tag, size, form type.
	riffHeaderSize = 12
)

// CIDList is the chunk ID for a LIST chunk.
var CIDList = [4]byte{'L', 'I', 'S', 'T'}

// Chunk is the tag+size record peeked before a chunk is decoded.
type Chunk struct {
	ID   [4]byte
	Size uint32
	// Offset is the absolute position of the record in the stream.
	Offset int64
}

func decodeChunk(b []byte, offset int64) Chunk {
	var ch Chunk
	copy(ch.ID[:], b[0:4])
	ch.Size = binary.LittleEndian.Uint32(b[4:8])
	ch.Offset = offset

	return ch
}

// RiffHeader is the container header. Size excludes the 8 bytes of tag and
// size, so the whole container spans Size+8 bytes.
type RiffHeader struct {
	ID     [4]byte
	Size   uint32
	Format [4]byte
}

func decodeRiffHeader(b []byte) RiffHeader {
	var h RiffHeader
	copy(h.ID[:], b[0:4])
	h.Size = binary.LittleEndian.Uint32(b[4:8])
	copy(h.Format[:], b[8:12])

	return h
}

// IsWave reports whether the form type is WAVE.
func (h RiffHeader) IsWave() bool {
	return h.Format == riff.WavFormatID
}

// DataChunk holds the raw interleaved sample payload.
type DataChunk struct {
	ID   [4]byte
	Size uint32
	Data []byte
}

// Clone returns a deep copy of the chunk.
func (d *DataChunk) Clone() *DataChunk {
	if d == nil {
		return nil
	}

	out := *d
	out.Data = append([]byte(nil), d.Data...)

	return &out
}
