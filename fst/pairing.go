package fst

// Pairing maps a pair of operand states onto one combined state index in
// row-major order: combined = left*Right + right.
type Pairing struct {
	Right int // number of states of the right operand
}

// Combine returns the combined index of (left, right).
func (p Pairing) Combine(left, right int) int { return left*p.Right + right }

// Split inverts Combine.
func (p Pairing) Split(combined int) (left, right int) {
	return combined / p.Right, combined % p.Right
}
