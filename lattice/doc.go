// Package lattice builds and transforms recognition lattices: the
// Standard transducers a line recognizer produces and the search routines
// consume.
//
// Builders:
//
//   - LineBuilder: one state per segment boundary, one arc per character
//     choice with cost -log(posterior), an optional reject arc per segment
//     and competing space-yes/space-no arcs between words.
//   - FromText: the ground-truth transducer of a string, used for alignment.
//   - Bunch / Union: alternatives spliced between a common start and end.
//
// Transforms (all return fresh Standard transducers; inputs are only read):
//
//   - Insert:        splice a copy of one transducer between two states of another.
//   - PruneBestArcs: keep only the cheapest arc per (source, target) pair.
//   - Connect:       drop states not on any start → accept path.
//   - Scale:         multiply every cost by a factor (language-model weight).
//   - Sample:        draw random paths with probability ∝ exp(-cost).
//
// Labels: outputs are Unicode code points, except RejectLabel which marks an
// unrecognizable segment. Text renders a label sequence back to a string.
package lattice
