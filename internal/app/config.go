package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DBPath string // SQLite database file shared by all stages

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("DBPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
