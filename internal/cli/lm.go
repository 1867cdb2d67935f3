package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ocrolath/langmodel"
)

func (c *CLI) newLMCommand() *cobra.Command {
	var out, unknown string
	var scale, unknownCost, spaceCost float64

	cmd := &cobra.Command{
		Use:   "lm words.txt",
		Short: "Compile a word list into a language model transducer",
		Args:  cobra.ExactArgs(1),
		Example: `  # One "word [count]" per line
  ocrolath lm words.txt -o words.fst

  # Allow out-of-lexicon lowercase words at 6 per character
  ocrolath lm words.txt -o words.fst --unknown abcdefghijklmnopqrstuvwxyz --unknown-cost 6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []langmodel.Option{langmodel.WithScale(scale), langmodel.WithSpaceCost(spaceCost)}
			if unknown != "" {
				opts = append(opts, langmodel.WithUnknown(unknown, unknownCost))
			}
			lm, err := langmodel.Load(args[0], opts...)
			if err != nil {
				return err
			}
			if out == "" {
				out = args[0] + ".fst"
			}
			if err = lm.Save(out); err != nil {
				return err
			}
			slog.Debug("Language model written", "states", lm.NStates(), "arcs", lm.ArcCount(), "output", out)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: input + .fst)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "Multiply every cost by this factor")
	cmd.Flags().Float64Var(&spaceCost, "space-cost", 0, "Cost of each word boundary")
	cmd.Flags().StringVar(&unknown, "unknown", "", "Alphabet of out-of-lexicon words (empty disables them)")
	cmd.Flags().Float64Var(&unknownCost, "unknown-cost", 8, "Per-character cost of out-of-lexicon words")
	return cmd
}
