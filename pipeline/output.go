package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
)

// WriteFiles stores the recognized text in base+".txt" and the per-step
// cost vector, one value per line, in base+".costs".
func (res Result) WriteFiles(base string) error {
	if err := os.WriteFile(base+".txt", []byte(res.Text+"\n"), 0o644); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	f, err := os.Create(base + ".costs")
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, c := range res.Costs {
		w.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
		w.WriteByte('\n')
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("pipeline: %w", err)
	}
	return f.Close()
}
