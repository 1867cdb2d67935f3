package langmodel

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/lattice"
)

// Load reads a language model from path. An encoded transducer (see
// fst.Standard.Save) is used as is; anything else is parsed as a word list
// with one "word [count]" entry per line, blank lines and lines starting
// with '#' ignored. Options apply to both forms; for an encoded model only
// the scale is meaningful.
func Load(path string, opts ...Option) (*fst.Standard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("langmodel: %w", err)
	}
	if fst.IsEncoded(data) {
		cfg, err := buildOptions(opts)
		if err != nil {
			return nil, err
		}
		s := fst.NewStandard()
		if err = s.UnmarshalBinary(data); err != nil {
			return nil, fmt.Errorf("langmodel: %s: %w", path, err)
		}
		if cfg.Scale == 1 {
			return s, nil
		}
		return lattice.Scale(s, cfg.Scale)
	}
	entries, err := ParseWords(data)
	if err != nil {
		return nil, fmt.Errorf("langmodel: %s: %w", path, err)
	}
	return FromEntries(entries, opts...)
}

// ParseWords parses a word list: one "word [count]" entry per line.
func ParseWords(data []byte) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		e := Entry{Word: fields[0], Count: 1}
		switch len(fields) {
		case 1:
		case 2:
			c, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadEntry, line, err)
			}
			e.Count = c
		default:
			return nil, fmt.Errorf("%w: line %d: %d fields", ErrBadEntry, line, len(fields))
		}
		out = append(out, e)
	}
	return out, sc.Err()
}
