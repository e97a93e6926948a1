package wave

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// File is the result of a scan.
type File struct {
	Riff RiffHeader
	Fmt  *FmtHeader
	Data *DataChunk

	// Skipped lists the LIST chunks that were passed over.
	Skipped []Chunk
	// Stop is the unrecognized chunk that ended the scan, if any.
	Stop *Chunk
}

// NumSamples returns the number of sample frames in the data chunk.
// A trailing partial frame isn't counted.
func (f *File) NumSamples() int {
	if f == nil || f.Fmt == nil || f.Data == nil {
		return 0
	}

	k := f.Fmt.BytesPerSample()
	if f.Fmt.NumChannels == 0 || k == 0 {
		return 0
	}

	return int(f.Data.Size) / int(f.Fmt.NumChannels) / k
}

// Seconds returns the length of the audio rounded to whole seconds.
func (f *File) Seconds() int {
	if f == nil || f.Fmt == nil || f.Fmt.SampleRate == 0 {
		return 0
	}

	return int(math.Round(float64(f.NumSamples()) / float64(f.Fmt.SampleRate)))
}

// Duration returns the exact length of the audio.
func (f *File) Duration() time.Duration {
	if f == nil || f.Fmt == nil || f.Fmt.SampleRate == 0 {
		return 0
	}

	sec := float64(f.NumSamples()) / float64(f.Fmt.SampleRate)

	return time.Duration(sec * float64(time.Second))
}

// Format returns the audio format of the scanned content.
func (f *File) Format() *audio.Format {
	if f == nil || f.Fmt == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(f.Fmt.NumChannels),
		SampleRate:  int(f.Fmt.SampleRate),
	}
}

// IntBuffer decodes the 16-bit payload into an interleaved int buffer.
func (f *File) IntBuffer() (*audio.IntBuffer, error) {
	if f == nil || f.Fmt == nil {
		return nil, &FormatError{Kind: ErrMissingFmt}
	}

	if f.Data == nil {
		return nil, &FormatError{Kind: ErrMissingData}
	}

	if f.Fmt.BitsPerSample != 16 {
		return nil, unsupportedError(f.Fmt)
	}

	n := f.NumSamples() * int(f.Fmt.NumChannels)
	if len(f.Data.Data) < n*2 {
		return nil, &FormatError{Kind: ErrInvalidSize, ID: riff.DataFormatID}
	}

	buf := &audio.IntBuffer{
		Format:         f.Format(),
		Data:           make([]int, n),
		SourceBitDepth: 16,
	}

	for i := 0; i < n; i++ {
		buf.Data[i] = int(int16(binary.LittleEndian.Uint16(f.Data.Data[i*2:])))
	}

	return buf, nil
}

// String implements the Stringer interface.
func (f *File) String() string {
	if f == nil || f.Fmt == nil {
		return "empty wave file"
	}

	return fmt.Sprintf("%d Hz @ %d bits, %d channel(s), %d avg bytes/sec, duration: %s",
		f.Fmt.SampleRate, f.Fmt.BitsPerSample, f.Fmt.NumChannels, f.Fmt.ByteRate, f.Duration())
}
