package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDucking(); err != nil {
		return err
	}
	if err := c.validateLoudness(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateDucking() error {
	if c.Ducking.SpeechLevelDb > 0 {
		return fmt.Errorf("ducking.speech_level_db must not be positive, got %g", c.Ducking.SpeechLevelDb)
	}
	if c.Ducking.SilenceLevelDb > 0 {
		return fmt.Errorf("ducking.silence_level_db must not be positive, got %g", c.Ducking.SilenceLevelDb)
	}
	if c.Ducking.AttackMs < 0 {
		return errors.New("ducking.attack_ms must not be negative")
	}
	if c.Ducking.ReleaseMs < 0 {
		return errors.New("ducking.release_ms must not be negative")
	}
	if c.Ducking.NoiseFloorDb >= 0 {
		return fmt.Errorf("ducking.noise_floor_db must be negative, got %g", c.Ducking.NoiseFloorDb)
	}
	if c.Ducking.MinSilenceMs <= 0 {
		return errors.New("ducking.min_silence_ms must be positive")
	}
	if c.Ducking.MergeGapMs < 0 {
		return errors.New("ducking.merge_gap_ms must not be negative")
	}
	return nil
}

func (c *Config) validateLoudness() error {
	if c.Loudness.IntegratedLUFS >= 0 {
		return fmt.Errorf("loudness.integrated_lufs must be negative, got %g", c.Loudness.IntegratedLUFS)
	}
	if c.Loudness.TruePeakDb > 0 {
		return fmt.Errorf("loudness.true_peak_db must not be positive, got %g", c.Loudness.TruePeakDb)
	}
	if c.Loudness.RangeLU <= 0 {
		return fmt.Errorf("loudness.range_lu must be positive, got %g", c.Loudness.RangeLU)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.SampleRate <= 0 {
		return errors.New("output.sample_rate must be positive")
	}
	if c.Output.Channels <= 0 {
		return errors.New("output.channels must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}
