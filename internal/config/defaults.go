package config

const (
	defaultConfigPath     = "~/.config/delugekit/config.toml"
	projectConfigName     = "delugekit.toml"
	defaultSampleDir      = "KITS"
	defaultCombinedName   = "combined"
	defaultPlaybackMode   = "once"
	defaultNameMaxLength  = 32
	minNameMaxLength      = 4
	defaultExtractWorkers = 4
	maxExtractWorkers     = 64
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	cardPathEnv           = "DELUGEKIT_CARD"
	logLevelEnv           = "DELUGEKIT_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Card: Card{
			SampleDir: defaultSampleDir,
		},
		Kit: Kit{
			CombinedName: defaultCombinedName,
			PlaybackMode: defaultPlaybackMode,
		},
		Naming: Naming{
			MaxLength: defaultNameMaxLength,
		},
		Extract: Extract{
			Workers: defaultExtractWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
