package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Environment is the process environment the CLI reads outside of viper.
// GOOGLE_APPLICATION_CREDENTIALS is only checked for a debug hint; the SDK
// reads it itself.
type Environment struct {
	GoogleCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	AWSRegion         string `env:"AWS_REGION"`
	LogFile           string `env:"VOICEOVER_LOG_FILE"`
	ConfigHome        string `env:"VOICEOVER_CONFIG_HOME"`
	XDGConfigHome     string `env:"XDG_CONFIG_HOME"`
}

func parseEnvironment() (Environment, error) {
	e, err := env.ParseAs[Environment]()
	if err != nil {
		return Environment{}, fmt.Errorf("error parsing environment: %w", err)
	}
	return e, nil
}
