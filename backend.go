package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/movement-lab/voiceover/internal/tts"
	"github.com/movement-lab/voiceover/internal/tts/engines"
	"github.com/spf13/viper"
)

// engineConfig builds the engine configuration from viper, falling back to
// the process environment where viper has nothing.
func engineConfig(environment Environment) engines.Config {
	cfg := engines.Config{
		Google: engines.GoogleConfig{
			CredentialsFile:   expandPath(viper.GetString("google.credentials_file")),
			RequestsPerMinute: viper.GetInt("google.requests_per_minute"),
		},
		Polly: engines.PollyConfig{
			Region:     viper.GetString("polly.region"),
			Engine:     viper.GetString("polly.engine"),
			SampleRate: viper.GetInt("polly.sample_rate"),
		},
		Cache: engines.CacheConfig{
			Dir:              expandPath(viper.GetString("cache.dir")),
			MaxSizeMB:        viper.GetInt("cache.max_size"),
			CompressionLevel: viper.GetInt("cache.compression"),
		},
	}
	if cfg.Polly.Region == "" {
		cfg.Polly.Region = environment.AWSRegion
	}
	return cfg
}

// selectEngine resolves the engine to use. --dry-run always wins.
func selectEngine() (tts.EngineType, error) {
	if viper.GetBool("dry-run") {
		return tts.EngineMock, nil
	}
	return tts.ValidateEngineSelection(engineFlag, viper.GetString("engine"))
}

// validateEngineConfig checks the values engines would otherwise reject
// only after the first request.
func validateEngineConfig(engineType tts.EngineType, cfg engines.Config) error {
	if cfg.Cache.Dir != "" && (cfg.Cache.MaxSizeMB < 1 || cfg.Cache.MaxSizeMB > 10000) {
		return fmt.Errorf("cache max_size must be between 1 and 10000 MB, got %d", cfg.Cache.MaxSizeMB)
	}
	if cfg.Cache.Dir != "" && (cfg.Cache.CompressionLevel < 0 || cfg.Cache.CompressionLevel > 22) {
		return fmt.Errorf("cache compression must be between 0 and 22, got %d", cfg.Cache.CompressionLevel)
	}

	switch engineType {
	case tts.EngineGoogle:
		if cfg.Google.RequestsPerMinute < 0 {
			return fmt.Errorf("google requests_per_minute must not be negative, got %d", cfg.Google.RequestsPerMinute)
		}
	case tts.EnginePolly:
		if r := cfg.Polly.SampleRate; r != 8000 && r != 16000 {
			return fmt.Errorf("polly sample_rate must be 8000 or 16000, got %d", r)
		}
	}
	return nil
}

// newBatch opens the selected backend and returns a batch synthesizer
// around it. The caller closes the backend.
func newBatch(ctx context.Context) (*tts.Batch, tts.Backend, error) {
	environment, err := parseEnvironment()
	if err != nil {
		return nil, nil, err
	}

	engineType, err := selectEngine()
	if err != nil {
		return nil, nil, err
	}

	cfg := engineConfig(environment)
	if err := validateEngineConfig(engineType, cfg); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	if engineType == tts.EngineGoogle && cfg.Google.CredentialsFile == "" && environment.GoogleCredentials == "" {
		log.Debug("no credentials file configured, using application default credentials")
	}

	backend, err := engines.New(ctx, string(engineType), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to start %s engine: %w", engineType, err)
	}
	log.Debug("engine ready", "engine", backend.Name())
	return tts.NewBatch(backend), backend, nil
}

// expandPath expands environment variables and a leading "~" in path.
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if expanded, err := homedir.Expand(path); err == nil {
		return expanded
	}
	return path
}
