package config

const (
	defaultDataDir           = "~/.local/share/rollmatch"
	defaultLogDir            = "~/.local/share/rollmatch/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultDelimiter         = ","
	defaultMinCandidateScore = 50
	defaultMediumThreshold   = 70
	defaultHighThreshold     = 85
	defaultMaxCandidates     = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			MinCandidateScore: defaultMinCandidateScore,
			MediumThreshold:   defaultMediumThreshold,
			HighThreshold:     defaultHighThreshold,
			MaxCandidates:     defaultMaxCandidates,
			IncludeInactive:   false,
		},
		Import: Import{
			Delimiter: defaultDelimiter,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
