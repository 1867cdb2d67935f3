// Package fst provides the weighted finite-state transducer core of the
// recognizer: a single read-only Transducer capability, the eager Standard
// implementation, and the lazy Composition view that pairs two transducers
// without materializing their product.
//
// Costs live in the tropical semiring: non-negative float64 values added
// along a path, with the cheapest path preferred. Label 0 is Epsilon.
// A state accepts when its accept cost is below AcceptThreshold; Inf marks
// non-accepting states.
//
// Core types:
//
//	Transducer  — NStates, Start, AcceptCost, Arcs (read-only contract)
//	Mutable     — NewState, SetStart, SetAccept, AddTransition, Rescore, Clear
//	Standard    — adjacency-list implementation of Mutable
//	Composition — virtual L∘R view, arcs merge-joined on L.output == R.input
//	Pairing     — Combine/Split between operand states and combined indices
//	Path        — parallel Inputs/Outputs/Costs/Vertices of a search result
//
// Composition arcs:
//
//	(i1,i2) --a:0/c-->  (j1,i2)   for L arcs i1 --a:0/c--> j1
//	(i1,i2) --0:b/c-->  (i1,j2)   for R arcs i2 --0:b/c--> j2
//	(i1,i2) --a:b/c+d-> (j1,j2)   for L arcs i1 --a:x/c--> j1 and R arcs i2 --x:b/d--> j2
//
// Persistence:
//
//	Standard.Save/Load (and MarshalBinary/UnmarshalBinary, WriteTo/ReadFrom)
//	round-trip states, start, accept costs and per-state arc order, guarded
//	by a BLAKE2b-256 checksum. A Composition cannot be persisted.
//
// Concurrency:
//
//	Nothing here is synchronized. A transducer is owned by one goroutine;
//	operands must not be mutated while a Composition over them is searched.
package fst
