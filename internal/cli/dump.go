package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/lattice"
)

func (c *CLI) newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump file.fst",
		Short: "List the states, accept costs and arcs of a transducer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := fst.LoadStandard(args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			fmt.Fprintf(w, "states %d start %d arcs %d\n", s.NStates(), s.Start(), s.ArcCount())
			for v := 0; v < s.NStates(); v++ {
				if ac := s.AcceptCost(v); fst.IsAccepting(ac) {
					fmt.Fprintf(w, "%d\taccept\t%g\n", v, ac)
				}
				a := s.Arcs(v)
				for k := 0; k < a.Len(); k++ {
					fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%g\n", v, a.Targets[k], a.Inputs[k], label(a.Outputs[k]), a.Costs[k])
				}
			}
			return w.Flush()
		},
	}
}

// label renders an output label readably.
func label(l int) string {
	switch l {
	case fst.Epsilon:
		return "<eps>"
	case ' ':
		return "<space>"
	case lattice.RejectLabel:
		return "<reject>"
	}
	if t := lattice.Text([]int{l}); t != "" {
		return t
	}
	return fmt.Sprint(l)
}
