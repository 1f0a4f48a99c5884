package config

import (
	"fmt"

	"golang.org/x/text/language"
)

var validDevices = map[string]struct{}{
	"cpu":  {},
	"cuda": {},
}

var validComputeTypes = map[string]struct{}{
	"int8":         {},
	"int8_float16": {},
	"float16":      {},
	"float32":      {},
}

// Validate ensures the configuration is usable. It runs after
// normalization, so sentinels are already resolved.
func (c *Config) Validate() error {
	if err := c.validateWhisper(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateWhisper() error {
	if _, ok := validDevices[c.Whisper.Device]; !ok {
		return fmt.Errorf("whisper.device: unsupported value %q (use cpu, cuda, or auto)", c.Whisper.Device)
	}
	if _, ok := validComputeTypes[c.Whisper.ComputeType]; !ok {
		return fmt.Errorf("whisper.compute_type: unsupported value %q", c.Whisper.ComputeType)
	}
	if _, err := language.Parse(c.Whisper.Language); err != nil {
		return fmt.Errorf("whisper.language: invalid tag %q: %w", c.Whisper.Language, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
