package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// ProfilePath points at the profile document to inspect.
	ProfilePath string

	// VariablesPath, when set, lists the variable declarations of one
	// plugin file instead of inspecting a profile.
	VariablesPath string

	// Write rewrites the loaded profile in place after reconciliation,
	// normalizing its formatting.
	Write bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProfilePath == "" && cfg.VariablesPath == "" {
		return nil, errors.New("either a profile path or a plugin file is required")
	}
	if cfg.Write && cfg.ProfilePath == "" {
		return nil, errors.New("-write requires a profile path")
	}
	return &cfg, nil
}
