package config

import (
	"fmt"
	"time"

	"github.com/cwbudde/wave"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Transform TransformConfig `toml:"transform"`
	Scan      ScanConfig      `toml:"scan"`
	Log       LogConfig       `toml:"log"`
}

type TransformConfig struct {
	Enabled  bool          `toml:"enabled"`
	Period   time.Duration `toml:"period"`
	Overflow string        `toml:"overflow"` // "saturate", "wrap"
}

type ScanConfig struct {
	MaxChunkSize  uint32 `toml:"max_chunk_size"`
	AudioFormat   uint16 `toml:"audio_format"`
	Channels      uint16 `toml:"channels"`
	BitsPerSample uint16 `toml:"bits_per_sample"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func (c *Config) ToProfile() wave.Profile {
	return wave.Profile{
		AudioFormat:   c.Scan.AudioFormat,
		NumChannels:   c.Scan.Channels,
		BitsPerSample: c.Scan.BitsPerSample,
	}
}

func (c *Config) ToPipeline(logger logrus.FieldLogger) (*wave.Pipeline, error) {
	overflow, err := wave.ParseOverflow(c.Transform.Overflow)
	if err != nil {
		return nil, fmt.Errorf("invalid transform.overflow: %w", err)
	}

	p := &wave.Pipeline{
		Profile:      c.ToProfile(),
		Overflow:     overflow,
		Logger:       logger,
		MaxChunkSize: c.Scan.MaxChunkSize,
	}

	if c.Transform.Enabled {
		p.Multiplier = wave.PanMultiplier(c.Transform.Period)
	}

	return p, nil
}

func (c *Config) Validate() error {
	if c.Transform.Enabled && c.Transform.Period <= 0 {
		return fmt.Errorf("invalid transform.period: %v", c.Transform.Period)
	}
	if _, err := wave.ParseOverflow(c.Transform.Overflow); err != nil {
		return fmt.Errorf("invalid transform.overflow: %w", err)
	}

	if c.Scan.MaxChunkSize == 0 {
		return fmt.Errorf("invalid scan.max_chunk_size: 0")
	}
	if c.Scan.Channels != 2 {
		return fmt.Errorf("invalid scan.channels: %d (only stereo is supported)", c.Scan.Channels)
	}
	if c.Scan.BitsPerSample != 16 {
		return fmt.Errorf("invalid scan.bits_per_sample: %d (only 16 is supported)", c.Scan.BitsPerSample)
	}
	if c.Scan.AudioFormat != 1 {
		return fmt.Errorf("invalid scan.audio_format: %d (only integer PCM is supported)", c.Scan.AudioFormat)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}

	return nil
}
