package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ocrolath/pipeline"
)

func (c *CLI) newSearchCommand() *cobra.Command {
	cfg := pipeline.DefaultConfig()
	var mode string
	var noWrite bool

	cmd := &cobra.Command{
		Use:   "search [lattice.fst...]",
		Short: "Find the best reading of each line lattice, optionally under a language model",
		Args:  cobra.MinimumNArgs(1),
		Example: `  # Beam search every lattice, writing line.txt and line.costs next to line.fst
  ocrolath search lines/*.fst

  # Exact A* under a scaled language model
  ocrolath search lines/*.fst --mode astar --lm words.fst --lm-scale 0.5

  # Stop at the first broken line
  ocrolath search lines/*.fst --abort`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Mode = pipeline.Mode(mode)
			lines := make([]pipeline.Line, len(args))
			for i, p := range args {
				lines[i] = pipeline.Line{ID: p, Path: p}
			}
			results, stats, err := pipeline.Run(cmd.Context(), lines, cfg)
			for _, res := range results {
				if res.Err != nil || res.Text == "" && res.Costs == nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.4f\n", res.ID, res.Text, res.Cost)
				if noWrite {
					continue
				}
				if werr := res.WriteFiles(strings.TrimSuffix(res.ID, filepath.Ext(res.ID))); werr != nil {
					return werr
				}
			}
			slog.Info("Search finished", "lines", stats.Lines, "recognized", stats.Recognized, "fallbacks", stats.Fallbacks, "failed", stats.Failed)
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(cfg.Mode), "Search algorithm: beam or astar")
	cmd.Flags().IntVar(&cfg.BeamWidth, "beam", cfg.BeamWidth, "Beam width")
	cmd.Flags().IntVar(&cfg.MaxExpansions, "max-expansions", 0, "A* expansion cap (0: unlimited)")
	cmd.Flags().StringVar(&cfg.LMPath, "lm", "", "Language model: encoded transducer or word list")
	cmd.Flags().Float64Var(&cfg.LMScale, "lm-scale", cfg.LMScale, "Language model cost scale")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "Parallel workers")
	cmd.Flags().BoolVar(&cfg.AbortOnError, "abort", false, "Abort on the first failed line")
	cmd.Flags().BoolVar(&noWrite, "no-write", false, "Print results only, do not write .txt/.costs files")
	return cmd
}
