package beam

import "container/heap"

// nbest keeps the k cheapest trails with distinct frontier vertices.
//
// It is a max-heap on cost (the worst retained trail sits at the root) plus a
// vertex → heap position index kept current by Swap. Offering a trail whose
// vertex is already retained replaces the stored trail only when strictly
// cheaper; a new vertex enters while there is room, or evicts the root when
// strictly cheaper than it. Equal costs never displace: earlier offers win,
// which keeps results deterministic for a fixed arc order.
type nbest struct {
	k     int
	items []*Trail
	pos   map[int]int
}

func newNBest(k int) *nbest {
	return &nbest{k: k, items: make([]*Trail, 0, k), pos: make(map[int]int, k)}
}

func (b *nbest) Len() int { return len(b.items) }

// Less orders the heap worst first: higher cost, then larger vertex.
func (b *nbest) Less(i, j int) bool {
	if b.items[i].Cost != b.items[j].Cost {
		return b.items[i].Cost > b.items[j].Cost
	}
	return b.items[i].Vertex > b.items[j].Vertex
}

func (b *nbest) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.pos[b.items[i].Vertex] = i
	b.pos[b.items[j].Vertex] = j
}

func (b *nbest) Push(x any) {
	t := x.(*Trail)
	b.pos[t.Vertex] = len(b.items)
	b.items = append(b.items, t)
}

func (b *nbest) Pop() any {
	n := len(b.items) - 1
	t := b.items[n]
	b.items[n] = nil
	b.items = b.items[:n]
	delete(b.pos, t.Vertex)
	return t
}

// admits reports whether a trail reaching vertex at cost would be retained.
// Callers use it to avoid allocating trails that Offer would drop.
func (b *nbest) admits(vertex int, cost float64) bool {
	if i, ok := b.pos[vertex]; ok {
		return cost < b.items[i].Cost
	}
	return len(b.items) < b.k || cost < b.items[0].Cost
}

// Offer inserts t when admitted and reports whether it was kept.
func (b *nbest) Offer(t *Trail) bool {
	if i, ok := b.pos[t.Vertex]; ok {
		if t.Cost >= b.items[i].Cost {
			return false
		}
		b.items[i] = t
		heap.Fix(b, i)
		return true
	}
	if len(b.items) < b.k {
		heap.Push(b, t)
		return true
	}
	if t.Cost >= b.items[0].Cost {
		return false
	}
	delete(b.pos, b.items[0].Vertex)
	b.items[0] = t
	b.pos[t.Vertex] = 0
	heap.Fix(b, 0)
	return true
}

// Trails returns the retained trails ordered by cost, then vertex.
func (b *nbest) Trails() []*Trail {
	out := append([]*Trail(nil), b.items...)
	sortTrails(out)
	return out
}
