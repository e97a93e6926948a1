package wave

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

// wavBuilder assembles RIFF streams for tests. The riff size is patched in
// by bytes() unless riffSize is set.
type wavBuilder struct {
	form     string
	riffSize *uint32
	chunks   []testChunk
}

func newWavBuilder() *wavBuilder {
	return &wavBuilder{form: "WAVE"}
}

func (b *wavBuilder) chunk(id string, payload []byte) *wavBuilder {
	b.chunks = append(b.chunks, testChunk{id: id, size: uint32(len(payload)), data: payload})
	return b
}

// rawChunk declares size independently of the payload length.
func (b *wavBuilder) rawChunk(id string, size uint32, payload []byte) *wavBuilder {
	b.chunks = append(b.chunks, testChunk{id: id, size: size, data: payload})
	return b
}

func (b *wavBuilder) fmtChunk(audioFormat, numChans uint16, sampleRate uint32, bitDepth uint16, extra ...byte) *wavBuilder {
	return b.chunk("fmt ", fmtPayload(audioFormat, numChans, sampleRate, bitDepth, extra...))
}

func (b *wavBuilder) bytes(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("RIFF")

	err := binary.Write(&buf, binary.LittleEndian, uint32(0))
	if err != nil {
		t.Fatalf("write riff size placeholder: %v", err)
	}

	buf.WriteString(b.form)

	for _, ch := range b.chunks {
		if len(ch.id) != 4 {
			t.Fatalf("chunk id must be 4 bytes, got %q", ch.id)
		}

		buf.WriteString(ch.id)

		if err := binary.Write(&buf, binary.LittleEndian, ch.size); err != nil {
			t.Fatalf("write chunk size for %q: %v", ch.id, err)
		}

		buf.Write(ch.data)
	}

	out := buf.Bytes()
	size := uint32(len(out) - 8)

	if b.riffSize != nil {
		size = *b.riffSize
	}

	binary.LittleEndian.PutUint32(out[4:8], size)

	return out
}

func fmtPayload(audioFormat, numChans uint16, sampleRate uint32, bitDepth uint16, extra ...byte) []byte {
	blockAlign := numChans * bitDepth / 8

	payload := make([]byte, 16, 16+len(extra))
	binary.LittleEndian.PutUint16(payload[0:2], audioFormat)
	binary.LittleEndian.PutUint16(payload[2:4], numChans)
	binary.LittleEndian.PutUint32(payload[4:8], sampleRate)
	binary.LittleEndian.PutUint32(payload[8:12], sampleRate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(payload[12:14], blockAlign)
	binary.LittleEndian.PutUint16(payload[14:16], bitDepth)

	return append(payload, extra...)
}

func pcm16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}

	return out
}

func decodePCM16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}

	return out
}

// minimalWav is the 44-byte canonical header with an empty data chunk.
func minimalWav(t *testing.T) []byte {
	t.Helper()

	return newWavBuilder().
		fmtChunk(wavFormatPCM, 2, 44100, 16).
		chunk("data", nil).
		bytes(t)
}

func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errors.New("file too small")
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errors.New("invalid riff/wave header")
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("chunk %q exceeds file size", id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
	}

	return chunks, nil
}
