// Package config handles navtool configuration loading and management.
package config

// Config holds all navtool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Query   QueryConfig   `yaml:"query"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds nav file locations.
type DataConfig struct {
	// NavDir is prepended to bare map names, so "pl_badwater" resolves to
	// <NavDir>/pl_badwater.nav. Paths with separators are used as-is.
	NavDir string `yaml:"nav_dir"`
}

// QueryConfig holds height-query defaults.
type QueryConfig struct {
	// ZHint disambiguates overlapping surfaces when the height command is
	// invoked without an explicit hint.
	ZHint float64 `yaml:"z_hint"`
}

// OutputConfig holds listing output settings.
type OutputConfig struct {
	Limit int `yaml:"limit"` // 0 = unlimited
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			NavDir: ".",
		},
		Query: QueryConfig{
			ZHint: 0,
		},
		Output: OutputConfig{
			Limit: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
