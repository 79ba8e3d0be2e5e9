package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# Synthesis engine: google, polly or mock
engine: "google"
# Voice used by manifests that do not name one
voice: "en-US-Wavenet-C"
# Directory clips are written to when --out or a manifest output_dir is not set
output_dir: ""

# Google Cloud Text-to-Speech
google:
  # Service account key; empty uses GOOGLE_APPLICATION_CREDENTIALS or gcloud
  credentials_file: ""
  # Pace requests to stay under the quota (0 disables)
  requests_per_minute: 300

# AWS Polly
polly:
  # Empty uses AWS_REGION or the shared AWS config
  region: ""
  # standard, neural, long-form or generative
  engine: "neural"
  # 8000 or 16000
  sample_rate: 16000

# Clip cache, so re-running a manifest does not call the service again
cache:
  # Empty disables the cache
  dir: ""
  # Maximum size in MB
  max_size: 100
  # zstd level 1 (fastest) to 22 (smallest); 0 stores clips uncompressed
  compression: 3
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the voiceover config file",
	Long:    paragraph(fmt.Sprintf("\n%s the voiceover config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("voiceover config\nvoiceover config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("voiceover", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o600); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
