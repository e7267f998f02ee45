package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagNavDir  = flag.String("nav-dir", "", "Directory containing .nav files")
	flagZHint   = flag.Float64("z-hint", 0, "Default height hint for queries")
	flagLimit   = flag.Int("limit", -1, "Limit listing output to N entries (0 = all)")
	flagLogFile = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagNavDir != "" {
		cfg.Data.NavDir = *flagNavDir
	}
	if *flagZHint != 0 {
		cfg.Query.ZHint = *flagZHint
	}
	if *flagLimit >= 0 {
		cfg.Output.Limit = *flagLimit
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
