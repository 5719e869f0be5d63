package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	rollOutput  string
	rollMidiOut string
	rollMixFile string
	rollFudge   uint64
	rollWatch   bool
)

func init() {
	rootCmd.AddCommand(rollCmd)
	rollCmd.Flags().StringVarP(&rollOutput, "output", "o", "", "page image path (default: input with a .png extension)")
	rollCmd.Flags().StringVar(&rollMidiOut, "midi-out", "", "merged MIDI path (default: input with a .roll.mid extension)")
	rollCmd.Flags().StringVar(&rollMixFile, "mix", "", "YAML mix file naming the selections")
	rollCmd.Flags().Uint64Var(&rollFudge, "fudge", 0, "conflict fudge window in ticks (0 means a third of a beat)")
	rollCmd.Flags().BoolVar(&rollWatch, "watch", false, "stay running and rebuild whenever the input changes")
}

var rollCmd = &cobra.Command{
	Use:   "roll <input.mid> [track,channel[+shift]]... [/divisor]",
	Short: "Convert a MIDI file into a roll page and a merged MIDI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := Config{
			Input:      args[0],
			Args:       args[1:],
			MixFile:    rollMixFile,
			Output:     rollOutput,
			MidiOut:    rollMidiOut,
			FudgeTicks: rollFudge,
		}
		if rollWatch {
			return watchRoll(cfg)
		}
		return runRoll(cfg)
	},
}

func runRoll(cfg Config) error {
	out, err := Convert(cfg)
	if err != nil {
		return err
	}
	PrintReport(os.Stdout, out)
	if err := WriteArtifacts(out); err != nil {
		return err
	}
	fmt.Printf("Wrote %v and %v\n", out.PagePath, out.MidiPath)
	return nil
}

// watchRoll reruns the conversion whenever the input's mtime moves.
// Rebuilds are debounced so editors that save in several steps only
// trigger one.
func watchRoll(cfg Config) error {
	if err := runRoll(cfg); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	rebuild := debounce.New(500 * time.Millisecond)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	last, err := modTime(cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "file", cfg.Input)

	for {
		select {
		case <-sig:
			logger.Info("stopping")
			return nil
		case <-ticker.C:
			mt, err := modTime(cfg.Input)
			if err != nil || !mt.After(last) {
				continue
			}
			last = mt
			rebuild(func() {
				logger.Info("input changed, rebuilding", "file", cfg.Input)
				if err := runRoll(cfg); err != nil {
					logger.Error("rebuild failed", "err", err)
				}
			})
		}
	}
}

func modTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}
