package config

import (
	"fmt"

	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
	"github.com/leapstack-labs/leadsunifier/internal/sink"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file is required")
	}
	if c.SampleSize < 1 {
		return fmt.Errorf("sample_size must be at least 1, got %d", c.SampleSize)
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must not be negative, got %d", c.PreviewRows)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if _, err := sink.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}
	return nil
}

// SinkFormat returns the configured sink format, inferred from the output
// file when format is unset.
func (c *Config) SinkFormat() (sink.Format, error) {
	f, err := sink.ParseFormat(c.Format)
	if err != nil {
		return "", err
	}
	if f == "" {
		return sink.Infer(c.OutputFile), nil
	}
	return f, nil
}
