package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pianoroll",
	Short: "Piano roll conversion for MIDI files",
	Long: `Converts MIDI performances into punchable piano roll pages: picks parts
out of a file, merges them onto one physical keyboard, reports whatever
can't be played, and writes the page image plus a merged MIDI file.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
