package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ocrolath/hocr"
	"github.com/katalvlaran/ocrolath/recognize"
)

func (c *CLI) newLatticeCommand() *cobra.Command {
	var outDir string
	var minHeight int
	opts := hocr.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "lattice [image-or-hocr...]",
		Short: "Build recognition lattices from line images or hOCR files",
		Args:  cobra.MinimumNArgs(1),
		Example: `  # Recognize a line image with the registered engine
  ocrolath lattice line-0001.png

  # Convert existing Tesseract hOCR output, one lattice per line
  ocrolath lattice page.hocr -o lattices/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, in := range args {
				lines, err := readLines(cmd, in, minHeight)
				if err != nil {
					return fmt.Errorf("%s: %w", in, err)
				}
				base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
				dir := outDir
				if dir == "" {
					dir = filepath.Dir(in)
				}
				for i, l := range lines {
					s, err := l.Lattice(opts)
					if err != nil {
						return fmt.Errorf("%s line %d: %w", in, i, err)
					}
					name := base
					if len(lines) > 1 {
						name = fmt.Sprintf("%s-%03d", base, i+1)
					}
					out := filepath.Join(dir, name+".fst")
					if err = s.Save(out); err != nil {
						return err
					}
					slog.Debug("Lattice written", "input", in, "line", l.ID, "states", s.NStates(), "arcs", s.ArcCount(), "output", out)
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", out, l.Text())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: next to the input)")
	cmd.Flags().IntVar(&minHeight, "min-height", 48, "Upscale line images shorter than this many pixels")
	cmd.Flags().Float64Var(&opts.RejectCost, "reject-cost", opts.RejectCost, "Cost of the reject hypothesis per segment (negative disables)")
	cmd.Flags().Float64Var(&opts.SpaceCost, "space-cost", opts.SpaceCost, "Cost of keeping a space between words")
	cmd.Flags().Float64Var(&opts.NoSpaceCost, "nospace-cost", opts.NoSpaceCost, "Cost of dropping a space between words")
	return cmd
}

// readLines parses hOCR inputs directly and sends anything else through the
// default recognition engine.
func readLines(cmd *cobra.Command, path string, minHeight int) ([]hocr.Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hocr", ".html", ".htm", ".xhtml":
		return hocr.Parse(bytes.NewReader(data))
	}
	img, err := recognize.PrepareLine(data, minHeight)
	if err != nil {
		return nil, err
	}
	engine := recognize.Default()
	slog.Debug("Recognizing line", "input", path, "engine", engine.Name())
	return engine.Recognize(cmd.Context(), img)
}
