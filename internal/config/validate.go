package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if m.MinCandidateScore < 0 || m.MinCandidateScore > 100 {
		return errors.New("matching.min_candidate_score must be between 0 and 100")
	}
	if m.MediumThreshold < 0 || m.MediumThreshold > 100 {
		return errors.New("matching.medium_threshold must be between 0 and 100")
	}
	if m.HighThreshold < 0 || m.HighThreshold > 100 {
		return errors.New("matching.high_threshold must be between 0 and 100")
	}
	if m.MinCandidateScore > m.MediumThreshold || m.MediumThreshold > m.HighThreshold {
		return errors.New("matching thresholds must be ordered: min_candidate_score <= medium_threshold <= high_threshold")
	}
	if m.MaxCandidates < 1 {
		return errors.New("matching.max_candidates must be at least 1")
	}
	return nil
}

func (c *Config) validateImport() error {
	if utf8.RuneCountInString(c.Import.Delimiter) != 1 {
		return fmt.Errorf("import.delimiter must be a single character, got %q", c.Import.Delimiter)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Import.Delimiter)
	return r
}
