package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/movement-lab/voiceover/internal/manifest"
	"github.com/movement-lab/voiceover/internal/tts"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	watch bool

	runCmd = &cobra.Command{
		Use:   "run MANIFEST",
		Short: "Synthesize every job in a manifest",
		Long: paragraph(fmt.Sprintf("\n%s the jobs of a YAML manifest in order. With --watch the manifest "+
			"is run again whenever it is saved.", keyword("Run"))),
		Example: paragraph("voiceover run instructions.yml\nvoiceover run --dry-run --watch instructions.yml"),
		Args:    cobra.ExactArgs(1),
		RunE:    runManifest,
	}
)

func init() {
	runCmd.Flags().BoolVarP(&watch, "watch", "w", false, "run again when the manifest changes")
}

func runManifest(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	batch, backend, err := newBatch(ctx)
	if err != nil {
		return err
	}
	defer backend.Close() //nolint:errcheck

	runOnce := func() error {
		return runManifestOnce(ctx, path, batch, cmd)
	}

	if !watch {
		return runOnce()
	}

	if err := runOnce(); err != nil {
		if interrupted(err) {
			return nil
		}
		log.Error("manifest run failed", "err", err)
	}

	w, err := manifest.NewWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close() //nolint:errcheck

	log.Info("Watching manifest", "path", path)
	if err := w.Run(ctx, runOnce); err != nil && !interrupted(err) {
		return err
	}
	return nil
}

func runManifestOnce(ctx context.Context, path string, synth tts.Synthesizer, cmd *cobra.Command) error {
	m, err := manifest.Load(path, manifestDefaults())
	if err != nil {
		return err
	}

	start := time.Now()
	files, err := m.Run(ctx, synth)
	printFiles(cmd.OutOrStdout(), files)
	if err != nil {
		return fmt.Errorf("run stopped after %d file(s): %w", len(files), err)
	}

	log.Info("Manifest done", "jobs", len(m.Jobs), "files", len(files), "took", time.Since(start).Round(time.Millisecond))
	return nil
}

// manifestDefaults returns the config file's voice and output directory,
// used by manifests that set neither.
func manifestDefaults() manifest.Defaults {
	return manifest.Defaults{
		Voice:     viper.GetString("voice"),
		OutputDir: expandPath(viper.GetString("output_dir")),
	}
}
