package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/movement-lab/voiceover/internal/audio"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview DIR [QUERY]",
	Short: "Play generated clips in order",
	Long: paragraph(fmt.Sprintf("\n%s the clips in DIR one after another, sentence by sentence. "+
		"QUERY fuzzy-matches clip names, e.g. \"calib\".", keyword("Play"))),
	Example: paragraph("voiceover preview generated_audio\nvoiceover preview generated_audio landmark"),
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var query string
		if len(args) > 1 {
			query = args[1]
		}

		clips, err := audio.FindClips(args[0], query)
		if err != nil {
			return err
		}
		if len(clips) == 0 {
			return errors.New("no matching clips found")
		}
		printFiles(cmd.OutOrStdout(), clips)

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		if err := audio.PlaySequentially(ctx, clips); err != nil && !interrupted(err) {
			return err
		}
		return nil
	},
}
