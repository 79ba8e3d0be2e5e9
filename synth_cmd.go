package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/movement-lab/voiceover/internal/tts"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	noSplit   bool
	outputDir string

	synthCmd = &cobra.Command{
		Use:   "synth VOICE LABEL [TEXT|-]",
		Short: "Synthesize one instruction",
		Long: paragraph(fmt.Sprintf("\n%s text into WAV clips named VOICE_LABEL_N.wav, one per sentence. "+
			"Use --no-split to write a single VOICE_LABEL.wav. Text is read from stdin when it is omitted or \"-\".", keyword("Synthesize"))),
		Example: paragraph("voiceover synth en-US-Wavenet-C avatar_calibration \"Please stand up straight. Look ahead.\"\n" +
			"voiceover synth --no-split --out clips en-US-Wavenet-C end_of_block - < end.txt"),
		Args: cobra.RangeArgs(2, 3),
		RunE: runSynth,
	}
)

func init() {
	synthCmd.Flags().BoolVar(&noSplit, "no-split", false, "write the whole text to a single clip")
	synthCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory (created if missing)")
	_ = viper.BindPFlag("output_dir", synthCmd.Flags().Lookup("out"))
}

func runSynth(cmd *cobra.Command, args []string) error {
	voice, label := args[0], args[1]

	text, err := synthText(args[2:], cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := tts.ValidateVoice(voice); errors.Is(err, tts.ErrEmptyVoice) {
		return err
	} else if err != nil {
		log.Warn("unusual voice name", "err", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	batch, backend, err := newBatch(ctx)
	if err != nil {
		return err
	}
	defer backend.Close() //nolint:errcheck

	opts := []tts.Option{tts.WithSentences(!noSplit)}
	if dir := expandPath(viper.GetString("output_dir")); dir != "" {
		opts = append(opts, tts.WithOutputDir(dir))
	}

	files, err := batch.Synthesize(ctx, voice, text, label, opts...)
	printFiles(cmd.OutOrStdout(), files)
	if err != nil {
		return fmt.Errorf("synthesis stopped after %d file(s): %w", len(files), err)
	}
	if len(files) == 0 {
		log.Warn("no sentences to synthesize", "label", label)
	}
	return nil
}

// synthText returns the text argument, or stdin when it is absent or "-".
func synthText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("unable to read from stdin: %w", err)
	}
	return string(b), nil
}

func printFiles(w io.Writer, files []string) {
	for _, f := range files {
		_, _ = fmt.Fprintln(w, f)
	}
}

// interrupted reports whether err is the result of the user stopping a run.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
