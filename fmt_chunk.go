package wave

import (
	"encoding/binary"

	"github.com/go-audio/riff"
)

const (
	// fmtHeaderSize is the width of the tag, size and the 16 canonical bytes.
	fmtHeaderSize = 24
	// fmtPayloadSize is the canonical PCM payload of a fmt chunk.
	fmtPayloadSize = 16

	wavFormatPCM = 1
)

// FmtHeader stores the parsed fmt chunk. Extra keeps any bytes past the 16
// canonical payload bytes so they can be written back unchanged.
type FmtHeader struct {
	ID            [4]byte
	Size          uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Extra         []byte
}

// Clone returns a deep copy of the header.
func (f *FmtHeader) Clone() *FmtHeader {
	if f == nil {
		return nil
	}

	out := *f
	out.Extra = append([]byte(nil), f.Extra...)

	return &out
}

// BytesPerSample is the byte width of one sample of one channel.
func (f *FmtHeader) BytesPerSample() int {
	if f == nil {
		return 0
	}

	return int(f.BitsPerSample) / 8
}

// EncodedSize is the payload size the header serializes to.
func (f *FmtHeader) EncodedSize() uint32 {
	return fmtPayloadSize + uint32(len(f.Extra))
}

func decodeFmtHeader(b []byte) *FmtHeader {
	f := &FmtHeader{}
	copy(f.ID[:], b[0:4])
	f.Size = binary.LittleEndian.Uint32(b[4:8])
	f.AudioFormat = binary.LittleEndian.Uint16(b[8:10])
	f.NumChannels = binary.LittleEndian.Uint16(b[10:12])
	f.SampleRate = binary.LittleEndian.Uint32(b[12:16])
	f.ByteRate = binary.LittleEndian.Uint32(b[16:20])
	f.BlockAlign = binary.LittleEndian.Uint16(b[20:22])
	f.BitsPerSample = binary.LittleEndian.Uint16(b[22:24])

	return f
}

// appendFmtHeader serializes the header, its declared size derived from
// the canonical payload and Extra.
func appendFmtHeader(b []byte, f *FmtHeader) []byte {
	b = append(b, riff.FmtID[:]...)
	b = binary.LittleEndian.AppendUint32(b, f.EncodedSize())
	b = binary.LittleEndian.AppendUint16(b, f.AudioFormat)
	b = binary.LittleEndian.AppendUint16(b, f.NumChannels)
	b = binary.LittleEndian.AppendUint32(b, f.SampleRate)
	b = binary.LittleEndian.AppendUint32(b, f.ByteRate)
	b = binary.LittleEndian.AppendUint16(b, f.BlockAlign)
	b = binary.LittleEndian.AppendUint16(b, f.BitsPerSample)

	return append(b, f.Extra...)
}

// NewPCMHeader builds a conformant integer PCM fmt header.
func NewPCMHeader(numChans uint16, sampleRate uint32, bitDepth uint16) *FmtHeader {
	blockAlign := numChans * (bitDepth / 8)

	return &FmtHeader{
		ID:            riff.FmtID,
		Size:          fmtPayloadSize,
		AudioFormat:   wavFormatPCM,
		NumChannels:   numChans,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: bitDepth,
	}
}
