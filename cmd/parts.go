package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wfraser/pianoroll/midi"
	"github.com/wfraser/pianoroll/report"
)

func init() {
	rootCmd.AddCommand(partsCmd)
}

var partsCmd = &cobra.Command{
	Use:   "parts <input.mid>",
	Short: "List the tracks and parts a MIDI file offers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := midi.ReadFile(args[0])
		if err != nil {
			return err
		}
		report.PrintSong(os.Stdout, song)
		return nil
	},
}
