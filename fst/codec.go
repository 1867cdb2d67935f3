// File: codec.go
// Role: Persistence of Standard transducers.
// Format:
//   - magic "OFST1"
//   - protobuf wire records: 1=nStates (varint), 2=start (varint),
//     3=accept cost (fixed64, repeated once per state in state order),
//     4=arc (bytes: 1=from, 2=to, 3=input, 4=output varints, 5=cost fixed64)
//   - 32-byte BLAKE2b-256 digest of everything before it.
// Determinism:
//   - Arcs are written per state in arc-list order, so Save∘Load preserves
//     Arcs(from) exactly.

package fst

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	"google.golang.org/protobuf/encoding/protowire"
)

const codecMagic = "OFST1"

// acceptRecordSize is the encoded size of one accept cost: tag + fixed64.
const acceptRecordSize = 9

const (
	fieldStates protowire.Number = 1
	fieldStart  protowire.Number = 2
	fieldAccept protowire.Number = 3
	fieldArc    protowire.Number = 4
)

const (
	arcFrom protowire.Number = iota + 1
	arcTo
	arcInput
	arcOutput
	arcCost
)

// IsEncoded reports whether data starts like an encoded transducer.
func IsEncoded(data []byte) bool { return bytes.HasPrefix(data, []byte(codecMagic)) }

// MarshalBinary encodes the transducer.
func (s *Standard) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 16+len(s.accept)*acceptRecordSize+s.ArcCount()*20)
	b = append(b, codecMagic...)
	b = protowire.AppendTag(b, fieldStates, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(len(s.accept)))
	b = protowire.AppendTag(b, fieldStart, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.start))
	for _, c := range s.accept {
		b = protowire.AppendTag(b, fieldAccept, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(c))
	}
	var rec []byte
	for from := range s.arcs {
		l := &s.arcs[from]
		for k := range l.targets {
			rec = rec[:0]
			rec = protowire.AppendTag(rec, arcFrom, protowire.VarintType)
			rec = protowire.AppendVarint(rec, uint64(from))
			rec = protowire.AppendTag(rec, arcTo, protowire.VarintType)
			rec = protowire.AppendVarint(rec, uint64(l.targets[k]))
			rec = protowire.AppendTag(rec, arcInput, protowire.VarintType)
			rec = protowire.AppendVarint(rec, uint64(l.inputs[k]))
			rec = protowire.AppendTag(rec, arcOutput, protowire.VarintType)
			rec = protowire.AppendVarint(rec, uint64(l.outputs[k]))
			rec = protowire.AppendTag(rec, arcCost, protowire.Fixed64Type)
			rec = protowire.AppendFixed64(rec, math.Float64bits(l.costs[k]))
			b = protowire.AppendTag(b, fieldArc, protowire.BytesType)
			b = protowire.AppendBytes(b, rec)
		}
	}
	sum := blake2b.Sum256(b)
	return append(b, sum[:]...), nil
}

// UnmarshalBinary replaces the transducer with the decoded data.
// Any structural or checksum violation yields ErrCorrupt and leaves s unchanged.
func (s *Standard) UnmarshalBinary(data []byte) error {
	if len(data) < len(codecMagic)+blake2b.Size256 || string(data[:len(codecMagic)]) != codecMagic {
		return fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	body := data[:len(data)-blake2b.Size256]
	sum := blake2b.Sum256(body)
	if !bytes.Equal(sum[:], data[len(body):]) {
		return fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	out := NewStandard()
	var (
		nStates = -1
		start   = 0
		b       = body[len(codecMagic):]
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldStates && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 || nStates >= 0 || v > uint64(len(b)-m)/acceptRecordSize {
				return fmt.Errorf("%w: state count", ErrCorrupt)
			}
			nStates = int(v)
			out.accept = make([]float64, 0, nStates)
			out.arcs = make([]arcList, nStates)
			n = m
		case num == fieldStart && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 || v > math.MaxInt32 {
				return fmt.Errorf("%w: start", ErrCorrupt)
			}
			start = int(v)
			n = m
		case num == fieldAccept && typ == protowire.Fixed64Type:
			v, m := protowire.ConsumeFixed64(b)
			if m < 0 || len(out.accept) >= nStates {
				return fmt.Errorf("%w: accept vector", ErrCorrupt)
			}
			c := math.Float64frombits(v)
			if checkCost(c) != nil {
				return fmt.Errorf("%w: accept cost %g", ErrCorrupt, c)
			}
			out.accept = append(out.accept, c)
			n = m
		case num == fieldArc && typ == protowire.BytesType:
			rec, m := protowire.ConsumeBytes(b)
			if m < 0 || nStates < 0 {
				return fmt.Errorf("%w: arc record", ErrCorrupt)
			}
			if err := out.decodeArc(rec); err != nil {
				return err
			}
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
		}
		b = b[n:]
	}
	if nStates < 0 || len(out.accept) != nStates {
		return fmt.Errorf("%w: accept vector length %d, want %d", ErrCorrupt, len(out.accept), nStates)
	}
	if nStates > 0 && (start < 0 || start >= nStates) {
		return fmt.Errorf("%w: start %d", ErrCorrupt, start)
	}
	out.start = start
	*s = *out
	return nil
}

func (s *Standard) decodeArc(rec []byte) error {
	var (
		vals [5]uint64
		seen int
	)
	for len(rec) > 0 {
		num, typ, n := protowire.ConsumeTag(rec)
		if n < 0 || num < arcFrom || num > arcCost {
			return fmt.Errorf("%w: arc field", ErrCorrupt)
		}
		rec = rec[n:]
		if num == arcCost {
			if typ != protowire.Fixed64Type {
				return fmt.Errorf("%w: arc cost type", ErrCorrupt)
			}
			vals[num-1], n = protowire.ConsumeFixed64(rec)
		} else {
			if typ != protowire.VarintType {
				return fmt.Errorf("%w: arc field type", ErrCorrupt)
			}
			vals[num-1], n = protowire.ConsumeVarint(rec)
		}
		if n < 0 {
			return fmt.Errorf("%w: arc value", ErrCorrupt)
		}
		rec = rec[n:]
		seen |= 1 << (num - 1)
	}
	if seen != 0x1f {
		return fmt.Errorf("%w: incomplete arc", ErrCorrupt)
	}
	n := uint64(len(s.arcs))
	if vals[0] >= n || vals[1] >= n || vals[2] >= MaxLabel || vals[3] >= MaxLabel {
		return fmt.Errorf("%w: arc out of range", ErrCorrupt)
	}
	cost := math.Float64frombits(vals[4])
	if checkCost(cost) != nil {
		return fmt.Errorf("%w: arc cost %g", ErrCorrupt, cost)
	}
	l := &s.arcs[vals[0]]
	l.inputs = append(l.inputs, int(vals[2]))
	l.targets = append(l.targets, int(vals[1]))
	l.outputs = append(l.outputs, int(vals[3]))
	l.costs = append(l.costs, cost)
	return nil
}

// WriteTo writes the encoded transducer to w.
func (s *Standard) WriteTo(w io.Writer) (int64, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom replaces the transducer with one decoded from r.
func (s *Standard) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	return int64(len(data)), s.UnmarshalBinary(data)
}

// Save writes the transducer to path, replacing any existing file.
func (s *Standard) Save(path string) error {
	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fst-*")
	if err != nil {
		return fmt.Errorf("fst: save %s: %w", path, err)
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("fst: save %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("fst: save %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

// Load replaces the transducer with the one stored at path.
func (s *Standard) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fst: load %s: %w", path, err)
	}
	if err = s.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadStandard reads a Standard transducer from path.
func LoadStandard(path string) (*Standard, error) {
	s := NewStandard()
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}
