package beam

import "github.com/katalvlaran/ocrolath/fst"

// Trail is one partial-path hypothesis. Trails are immutable: extending a
// trail allocates a child that shares its history through the parent
// pointer, so a beam step never copies whole label sequences.
type Trail struct {
	parent *Trail
	depth  int // arcs taken since the start

	Vertex int     // frontier state
	Cost   float64 // accumulated cost from the start

	// The arc that led to Vertex; unset on the root trail.
	Input  int
	Output int
	Step   float64
}

// root returns the trail standing on start with no arcs taken.
func root(start int) *Trail { return &Trail{Vertex: start} }

// Extend returns the trail that follows one more arc.
func (t *Trail) Extend(input, target, output int, cost float64) *Trail {
	return &Trail{
		parent: t,
		depth:  t.depth + 1,
		Vertex: target,
		Cost:   t.Cost + cost,
		Input:  input,
		Output: output,
		Step:   cost,
	}
}

// Len returns the number of arcs taken.
func (t *Trail) Len() int { return t.depth }

// Path materializes the trail and appends the accept jump costing
// acceptCost, using the same layout as A* results.
func (t *Trail) Path(acceptCost float64) fst.Path {
	n := t.depth + 1
	p := fst.Path{
		Inputs:   make([]int, n),
		Outputs:  make([]int, n),
		Costs:    make([]float64, n),
		Vertices: make([]int, n),
	}
	p.Costs[n-1] = acceptCost
	p.Vertices[n-1] = t.Vertex
	// Entry i-1 is the arc leaving the vertex of entry i-1, stored on the
	// trail at depth i.
	for cur, i := t, n-1; cur.parent != nil; cur, i = cur.parent, i-1 {
		p.Inputs[i-1] = cur.Input
		p.Outputs[i-1] = cur.Output
		p.Costs[i-1] = cur.Step
		p.Vertices[i-1] = cur.parent.Vertex
	}
	return p
}
