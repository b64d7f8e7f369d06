package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeImport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.MinCandidateScore == 0 {
		c.Matching.MinCandidateScore = defaultMinCandidateScore
	}
	if c.Matching.MediumThreshold == 0 {
		c.Matching.MediumThreshold = defaultMediumThreshold
	}
	if c.Matching.HighThreshold == 0 {
		c.Matching.HighThreshold = defaultHighThreshold
	}
	if c.Matching.MaxCandidates == 0 {
		c.Matching.MaxCandidates = defaultMaxCandidates
	}
}

func (c *Config) normalizeImport() {
	if strings.TrimSpace(c.Import.Delimiter) == "" {
		c.Import.Delimiter = defaultDelimiter
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
