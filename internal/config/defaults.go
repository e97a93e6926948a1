package config

import (
	"time"

	"github.com/cwbudde/wave"
)

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Transform: TransformConfig{
			Enabled:  true,
			Period:   2 * time.Second,
			Overflow: wave.Saturate.String(),
		},
		Scan: ScanConfig{
			MaxChunkSize:  wave.DefaultMaxChunkSize,
			AudioFormat:   wave.StereoPCM16.AudioFormat,
			Channels:      wave.StereoPCM16.NumChannels,
			BitsPerSample: wave.StereoPCM16.BitsPerSample,
		},
		Log: LogConfig{
			Level: "warning",
		},
	}
}
