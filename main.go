// Package main provides the entry point for the voiceover CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	engineFlag string
	logCloser  = func() error { return nil }

	rootCmd = &cobra.Command{
		Use:   "voiceover",
		Short: "Batch-generate instruction clips with cloud text-to-speech",
		Long: paragraph(
			fmt.Sprintf("\nTurn study instructions into %s, one WAV file per sentence.", keyword("voice clips")),
		),
		SilenceErrors:     false,
		SilenceUsage:      true,
		TraverseChildren:  true,
		PersistentPreRunE: prepare,
	}
)

// prepare runs before every command: it reads an explicit config file and
// sets up logging.
func prepare(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	environment, err := parseEnvironment()
	if err != nil {
		return err
	}
	logFile := viper.GetString("log-file")
	if logFile == "" {
		logFile = environment.LogFile
	}

	closer, err := setupLog(viper.GetBool("debug"), expandPath(logFile))
	if err != nil {
		return err
	}
	logCloser = closer

	log.SetDefault(log.Default().With("run", uuid.NewString()[:8]))
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
	}
	return nil
}

func main() {
	err := rootCmd.Execute()
	_ = logCloser()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	flags.StringVarP(&engineFlag, "engine", "e", "", "synthesis engine (google, polly, mock)")
	flags.Bool("dry-run", false, "write silent clips with the mock engine instead of calling a service")
	flags.Bool("debug", false, "log debug output")
	flags.String("log-file", "", "write logs to a file instead of stderr")

	// Config bindings
	_ = viper.BindPFlag("dry-run", flags.Lookup("dry-run"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("log-file", flags.Lookup("log-file"))

	viper.SetDefault("engine", "")
	viper.SetDefault("voice", "")
	viper.SetDefault("output_dir", "")
	viper.SetDefault("google.credentials_file", "")
	viper.SetDefault("google.requests_per_minute", 300)
	viper.SetDefault("polly.region", "")
	viper.SetDefault("polly.engine", "neural")
	viper.SetDefault("polly.sample_rate", 16000)
	viper.SetDefault("cache.dir", "")
	viper.SetDefault("cache.max_size", 100)
	viper.SetDefault("cache.compression", 3)

	rootCmd.AddCommand(synthCmd, runCmd, previewCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "voiceover")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	environment, err := parseEnvironment()
	if err != nil {
		log.Warn("Could not read environment", "err", err)
	}
	dirs = configDirs(dirs, environment)

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("voiceover")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("voiceover")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "voiceover.yml")
	}
}

// configDirs puts the directories named by the environment ahead of the
// platform defaults. VOICEOVER_CONFIG_HOME comes first.
func configDirs(defaults []string, environment Environment) []string {
	dirs := defaults
	if c := environment.XDGConfigHome; c != "" {
		dirs = append([]string{filepath.Join(c, "voiceover")}, dirs...)
	}
	if c := environment.ConfigHome; c != "" {
		dirs = append([]string{c}, dirs...)
	}
	return dirs
}
