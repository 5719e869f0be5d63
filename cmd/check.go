package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	checkMixFile string
	checkFudge   uint64
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkMixFile, "mix", "", "YAML mix file naming the selections")
	checkCmd.Flags().Uint64Var(&checkFudge, "fudge", 0, "conflict fudge window in ticks (0 means a third of a beat)")
}

var checkCmd = &cobra.Command{
	Use:   "check <input.mid> [track,channel[+shift]]... [/divisor]",
	Short: "Run the merge and report conflicts without writing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := Convert(Config{
			Input:      args[0],
			Args:       args[1:],
			MixFile:    checkMixFile,
			FudgeTicks: checkFudge,
		})
		if err != nil {
			return err
		}
		PrintReport(os.Stdout, out)
		if n := len(out.Merged.Conflicts) + len(out.RangeErrors); n > 0 {
			fmt.Printf("%d problems found\n", n)
		}
		return nil
	},
}
