package wave

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	minPCMInt16 = math.MinInt16
	maxPCMInt16 = math.MaxInt16
)

// Multiplier returns the gain applied to one sample. It must be a pure
// function of its arguments.
type Multiplier func(sampleIndex, channel int, sampleRate uint32) float64

// Overflow selects how out of range products are stored back as int16.
type Overflow int

const (
	// Saturate clamps to the int16 range.
	Saturate Overflow = iota
	// Wrap keeps the low 16 bits, two's complement.
	Wrap
)

func (o Overflow) String() string {
	switch o {
	case Saturate:
		return "saturate"
	case Wrap:
		return "wrap"
	default:
		return fmt.Sprintf("Overflow(%d)", int(o))
	}
}

// ParseOverflow parses "saturate" or "wrap".
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "saturate", "":
		return Saturate, nil
	case "wrap":
		return Wrap, nil
	default:
		return Saturate, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// DefaultPan pans between the two channels over a 2 second period.
var DefaultPan = PanMultiplier(2 * time.Second)

// PanMultiplier returns sin(2πi/(period·rate)) for channel 0 and the matching
// cosine for channel 1. Any other channel is left at unity gain.
func PanMultiplier(period time.Duration) Multiplier {
	seconds := period.Seconds()

	return func(sampleIndex, channel int, sampleRate uint32) float64 {
		if sampleRate == 0 || seconds <= 0 {
			return 1
		}

		phase := 2 * math.Pi * float64(sampleIndex) / (seconds * float64(sampleRate))

		switch channel {
		case 0:
			return math.Sin(phase)
		case 1:
			return math.Cos(phase)
		default:
			return 1
		}
	}
}

// Apply rewrites every 16-bit sample of d in place as round(sample·m).
// The data size and sample count never change; bytes of a trailing partial
// frame are left as they are.
func Apply(f *FmtHeader, d *DataChunk, m Multiplier, o Overflow) error {
	if f == nil {
		return &FormatError{Kind: ErrMissingFmt}
	}

	if d == nil {
		return &FormatError{Kind: ErrMissingData}
	}

	if f.BitsPerSample != 16 || f.NumChannels == 0 {
		return unsupportedError(f)
	}

	if m == nil {
		return nil
	}

	numChans := int(f.NumChannels)
	numSamples := int(d.Size) / numChans / 2

	if len(d.Data) < numSamples*numChans*2 {
		return &FormatError{Kind: ErrInvalidSize, ID: d.ID}
	}

	for i := 0; i < numSamples; i++ {
		for c := 0; c < numChans; c++ {
			off := (i*numChans + c) * 2
			sample := int16(binary.LittleEndian.Uint16(d.Data[off:]))
			v := math.Round(float64(sample) * m(i, c, f.SampleRate))
			binary.LittleEndian.PutUint16(d.Data[off:], uint16(toInt16(v, o)))
		}
	}

	return nil
}

func toInt16(v float64, o Overflow) int16 {
	if o == Wrap {
		// int64(v) is only defined inside the int64 range.
		v = math.Mod(v, 1<<16)
		if math.IsNaN(v) {
			return 0
		}

		return int16(int64(v))
	}

	if math.IsNaN(v) {
		return 0
	}

	switch {
	case v > maxPCMInt16:
		return maxPCMInt16
	case v < minPCMInt16:
		return minPCMInt16
	default:
		return int16(v)
	}
}
