package astar

import "container/heap"

// nodeQueue is the heap.Interface behind indexedHeap. Swap keeps pos in step
// with the heap order, which is what lets heap.Fix act as decrease-key.
//
// Invariant: nodes[pos[v]] == v for every queued v; pos[v] == -1 otherwise.
type nodeQueue struct {
	nodes []int
	prio  []float64 // priority per node, valid while the node is queued
	pos   []int
}

func (q *nodeQueue) Len() int { return len(q.nodes) }

// Less breaks priority ties by the smaller node index, so pop order is
// deterministic.
func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.nodes[i], q.nodes[j]
	if q.prio[a] != q.prio[b] {
		return q.prio[a] < q.prio[b]
	}
	return a < b
}

func (q *nodeQueue) Swap(i, j int) {
	q.nodes[i], q.nodes[j] = q.nodes[j], q.nodes[i]
	q.pos[q.nodes[i]] = i
	q.pos[q.nodes[j]] = j
}

func (q *nodeQueue) Push(x any) {
	v := x.(int)
	q.pos[v] = len(q.nodes)
	q.nodes = append(q.nodes, v)
}

func (q *nodeQueue) Pop() any {
	n := len(q.nodes) - 1
	v := q.nodes[n]
	q.nodes = q.nodes[:n]
	q.pos[v] = -1
	return v
}

// indexedHeap is a min-heap over node indices with a position map, giving
// O(log n) push, pop and decrease-key.
type indexedHeap struct {
	q nodeQueue
}

func newIndexedHeap(n int) *indexedHeap {
	h := &indexedHeap{q: nodeQueue{
		nodes: make([]int, 0, 64),
		prio:  make([]float64, n),
		pos:   make([]int, n),
	}}
	for i := range h.q.pos {
		h.q.pos[i] = -1
	}
	return h
}

func (h *indexedHeap) Len() int { return h.q.Len() }

// Contains reports whether node is currently queued.
func (h *indexedHeap) Contains(node int) bool { return h.q.pos[node] >= 0 }

// Push inserts node, or lowers its priority if it is queued with a higher one.
// A queued node is never raised.
func (h *indexedHeap) Push(node int, p float64) {
	if i := h.q.pos[node]; i >= 0 {
		if p < h.q.prio[node] {
			h.q.prio[node] = p
			heap.Fix(&h.q, i)
		}
		return
	}
	h.q.prio[node] = p
	heap.Push(&h.q, node)
}

// Pop removes and returns the node with the least priority.
func (h *indexedHeap) Pop() (int, float64) {
	v := heap.Pop(&h.q).(int)
	return v, h.q.prio[v]
}
