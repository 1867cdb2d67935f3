package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ocrolath/astar"
	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/lattice"
)

func (c *CLI) newAlignCommand() *cobra.Command {
	var text, textFile string

	cmd := &cobra.Command{
		Use:   "align lattice.fst",
		Short: "Align a line lattice with its ground-truth text",
		Long: `Align finds the cheapest path through the lattice that spells the ground
truth, pinned to the end of the line, and prints one row per character:
the character, the segment it consumed and its cost.`,
		Args: cobra.ExactArgs(1),
		Example: `  ocrolath align line-0001.fst --text "the cat"
  ocrolath align line-0001.fst --gt line-0001.gt.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if textFile != "" {
				data, err := os.ReadFile(textFile)
				if err != nil {
					return err
				}
				text = strings.TrimRight(string(data), "\r\n")
			}
			lat, err := fst.LoadStandard(args[0])
			if err != nil {
				return err
			}
			gt, err := lattice.FromText(text)
			if err != nil {
				return err
			}
			var opts []astar.Option
			if end, ok := lineEnd(lat); ok {
				opts = append(opts, astar.WithFinish(end))
			}
			p, ok, err := astar.SearchComposition(lat, gt, opts...)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("ground truth cannot be aligned with the lattice")
			}
			out := cmd.OutOrStdout()
			for i, l := range p.Outputs[:len(p.Outputs)-1] {
				if l == fst.Epsilon {
					continue
				}
				fmt.Fprintf(out, "%s\t%d\t%.4f\n", lattice.Text([]int{l}), p.Inputs[i], p.Costs[i])
			}
			fmt.Fprintf(out, "total\t\t%.4f\n", p.Cost())
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Ground-truth text")
	cmd.Flags().StringVar(&textFile, "gt", "", "File holding the ground-truth text")
	return cmd
}

// lineEnd returns the only accepting state of a line lattice.
func lineEnd(t fst.Transducer) (int, bool) {
	end := -1
	for v := 0; v < t.NStates(); v++ {
		if !fst.IsAccepting(t.AcceptCost(v)) {
			continue
		}
		if end >= 0 {
			return 0, false
		}
		end = v
	}
	return end, end >= 0
}
