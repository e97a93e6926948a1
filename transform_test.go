package wave

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stereoData(samples ...int16) (*FmtHeader, *DataChunk) {
	payload := pcm16(samples...)

	return NewPCMHeader(2, 8, 16), &DataChunk{ID: [4]byte{'d', 'a', 't', 'a'}, Size: uint32(len(payload)), Data: payload}
}

func TestDefaultPanIsPowerPreserving(t *testing.T) {
	for _, sampleRate := range []uint32{8000, 22050, 44100, 48000, 96000} {
		for _, i := range []int{0, 1, 7, 1000, 44100, 123456, 10_000_000} {
			l := DefaultPan(i, 0, sampleRate)
			r := DefaultPan(i, 1, sampleRate)

			if math.Abs(l*l+r*r-1) > 1e-9 {
				t.Fatalf("sin²+cos² != 1 for i=%d rate=%d: %f", i, sampleRate, l*l+r*r)
			}
		}
	}
}

func TestDefaultPanValues(t *testing.T) {
	const rate = 44100

	tests := []struct {
		name    string
		index   int
		channel int
		want    float64
	}{
		{"left at start", 0, 0, 0},
		{"right at start", 0, 1, 1},
		{"left at half a second", rate / 2, 0, 1},
		{"right at half a second", rate / 2, 1, 0},
		{"left at one second", rate, 0, 0},
		{"right at one second", rate, 1, -1},
		{"third channel", 1234, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DefaultPan(tt.index, tt.channel, rate), 1e-9)
		})
	}
}

func TestPanMultiplierPeriod(t *testing.T) {
	m := PanMultiplier(500 * time.Millisecond)

	// a quarter period in
	assert.InDelta(t, 1, m(2000, 0, 16000), 1e-9)
	assert.InDelta(t, 0, m(2000, 1, 16000), 1e-9)

	assert.Equal(t, 1.0, PanMultiplier(0)(10, 0, 16000))
	assert.Equal(t, 1.0, DefaultPan(10, 0, 0))
}

func TestApplyInPlace(t *testing.T) {
	f, d := stereoData(100, -100, 3, 5, 1000, 1000)
	buf := d.Data

	half := func(_, channel int, _ uint32) float64 {
		if channel == 0 {
			return 0.5
		}

		return -1.5
	}

	require.NoError(t, Apply(f, d, half, Saturate))

	assert.Equal(t, []int16{50, 150, 2, -8, 500, -1500}, decodePCM16(d.Data))
	assert.Equal(t, uint32(12), d.Size)
	assert.Len(t, d.Data, 12)
	assert.Same(t, &buf[0], &d.Data[0])
}

func TestApplyRoundsToNearest(t *testing.T) {
	f, d := stereoData(3, -3, 5, -5)

	require.NoError(t, Apply(f, d, func(int, int, uint32) float64 { return 0.5 }, Saturate))

	// half away from zero
	assert.Equal(t, []int16{2, -2, 3, -3}, decodePCM16(d.Data))
}

func TestApplyPassesIndexAndRate(t *testing.T) {
	f, d := stereoData(1, 1, 1, 1, 1, 1)

	type call struct {
		index, channel int
		rate           uint32
	}

	var calls []call

	err := Apply(f, d, func(i, c int, rate uint32) float64 {
		calls = append(calls, call{i, c, rate})
		return 1
	}, Saturate)
	require.NoError(t, err)

	assert.Equal(t, []call{{0, 0, 8}, {0, 1, 8}, {1, 0, 8}, {1, 1, 8}, {2, 0, 8}, {2, 1, 8}}, calls)
}

func TestApplyOverflow(t *testing.T) {
	double := func(int, int, uint32) float64 { return 2 }

	tests := []struct {
		name     string
		overflow Overflow
		want     []int16
	}{
		{"saturate", Saturate, []int16{math.MaxInt16, math.MinInt16, 200, -200}},
		{"wrap", Wrap, []int16{-2, 0, 200, -200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, d := stereoData(math.MaxInt16, math.MinInt16, 100, -100)

			if err := Apply(f, d, double, tt.overflow); err != nil {
				t.Fatalf("apply: %v", err)
			}

			got := decodePCM16(d.Data)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("sample[%d]=%d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestToInt16EdgeValues(t *testing.T) {
	assert.Equal(t, int16(0), toInt16(math.NaN(), Saturate))
	assert.Equal(t, int16(0), toInt16(math.NaN(), Wrap))
	assert.Equal(t, int16(math.MaxInt16), toInt16(math.Inf(1), Saturate))
	assert.Equal(t, int16(math.MinInt16), toInt16(math.Inf(-1), Saturate))
	assert.Equal(t, int16(0), toInt16(math.Inf(1), Wrap))
	assert.Equal(t, int16(1), toInt16(65537, Wrap))
	assert.Equal(t, int16(-1), toInt16(-65537, Wrap))
	assert.Equal(t, int16(-32768), toInt16(32768, Wrap))
}

func TestApplyLeavesTrailingBytes(t *testing.T) {
	f, d := stereoData(10, 10)
	d.Data = append(d.Data, 0x7F)
	d.Size = uint32(len(d.Data))

	require.NoError(t, Apply(f, d, func(int, int, uint32) float64 { return 0 }, Saturate))
	assert.Equal(t, []byte{0, 0, 0, 0, 0x7F}, d.Data)
}

func TestApplyNilMultiplierIsIdentity(t *testing.T) {
	f, d := stereoData(1, -2, 3, -4)
	before := append([]byte(nil), d.Data...)

	require.NoError(t, Apply(f, d, nil, Saturate))
	assert.Equal(t, before, d.Data)
}

func TestApplyRejectsUnsupported(t *testing.T) {
	f := NewPCMHeader(2, 8000, 8)
	d := &DataChunk{Size: 4, Data: []byte{1, 2, 3, 4}}

	err := Apply(f, d, DefaultPan, Saturate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Equal(t, []byte{1, 2, 3, 4}, d.Data)

	assert.True(t, errors.Is(Apply(nil, d, DefaultPan, Saturate), ErrMissingFmt))
	assert.True(t, errors.Is(Apply(NewPCMHeader(2, 8000, 16), nil, DefaultPan, Saturate), ErrMissingData))
}

func TestApplyRejectsShortBuffer(t *testing.T) {
	f, d := stereoData(1, 2)
	d.Size = 8

	err := Apply(f, d, DefaultPan, Saturate)
	assert.True(t, errors.Is(err, ErrInvalidSize))
}

func TestParseOverflow(t *testing.T) {
	tests := []struct {
		in      string
		want    Overflow
		wantErr bool
	}{
		{"saturate", Saturate, false},
		{"", Saturate, false},
		{" Wrap ", Wrap, false},
		{"clip", Saturate, true},
	}

	for _, tt := range tests {
		got, err := ParseOverflow(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseOverflow(%q) error=%v, wantErr %t", tt.in, err, tt.wantErr)
		}

		if got != tt.want {
			t.Fatalf("ParseOverflow(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}

	assert.Equal(t, "wrap", Wrap.String())
	assert.Equal(t, "Overflow(7)", Overflow(7).String())
}
