package wave

// Profile is the set of fmt values a consumer accepts.
type Profile struct {
	AudioFormat   uint16
	NumChannels   uint16
	BitsPerSample uint16
}

// StereoPCM16 is 16-bit stereo integer PCM, the layout the default pipeline
// accepts.
var StereoPCM16 = Profile{AudioFormat: wavFormatPCM, NumChannels: 2, BitsPerSample: 16}

// Validate accepts the header only if it matches the profile exactly.
func (p Profile) Validate(f *FmtHeader) error {
	if f == nil {
		return &FormatError{Kind: ErrMissingFmt}
	}

	if f.AudioFormat != p.AudioFormat || f.NumChannels != p.NumChannels || f.BitsPerSample != p.BitsPerSample {
		return unsupportedError(f)
	}

	return nil
}

// Validate checks the header against StereoPCM16.
func Validate(f *FmtHeader) error {
	return StereoPCM16.Validate(f)
}

// CheckConformance reports headers whose block alignment or byte rate
// disagree with the channel count, bit depth and sample rate. Nothing is
// recomputed.
func CheckConformance(f *FmtHeader) error {
	if f == nil {
		return &FormatError{Kind: ErrMissingFmt}
	}

	blockAlign := uint32(f.NumChannels) * uint32(f.BitsPerSample/8)

	if f.SampleRate == 0 ||
		uint32(f.BlockAlign) != blockAlign ||
		uint64(f.ByteRate) != uint64(f.SampleRate)*uint64(f.BlockAlign) {
		return &FormatError{
			Kind:          ErrNonConformant,
			AudioFormat:   f.AudioFormat,
			NumChannels:   f.NumChannels,
			BitsPerSample: f.BitsPerSample,
		}
	}

	return nil
}

func unsupportedError(f *FmtHeader) error {
	return &FormatError{
		Kind:          ErrUnsupported,
		AudioFormat:   f.AudioFormat,
		NumChannels:   f.NumChannels,
		BitsPerSample: f.BitsPerSample,
	}
}
