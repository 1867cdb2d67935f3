// Package ocrolath is a weighted finite-state toolkit for OCR line
// recognition: build a lattice of character hypotheses for a text line,
// combine it with a language model, and search for the cheapest reading.
//
// What is inside?
//
//	fst/        — Transducer contract, Standard adjacency lists, lazy Composition, binary codec
//	astar/      — exact A* best path with backward-distance heuristics, compositions and chains
//	beam/       — bounded beam search with an n-best frontier, for models too large for A*
//	lattice/    — line lattices, text acceptors, insert/union, pruning, scaling, trimming, sampling
//	langmodel/  — lexicon transducers from word lists with word-boundary and unknown-word costs
//	hocr/       — hOCR parsing into lines, words and per-character choices
//	recognize/  — line image preparation and the pluggable recognition Engine
//	pipeline/   — parallel per-line search over a worker pool
//
// Costs are negative log probabilities: they add along a path and the
// cheapest path wins. Label 0 is epsilon; outputs are Unicode code points.
//
// Quick example:
//
//	lat, _ := fst.LoadStandard("line-0001.fst")
//	lm, _ := langmodel.Load("words.txt", langmodel.WithScale(0.5))
//	p, ok, _ := beam.SearchComposition(lat, lm, beam.WithWidth(200))
//	if ok {
//		fmt.Println(lattice.Text(p.Labels()), p.Cost())
//	}
//
// The ocrolath command (cmd/ocrolath) wraps the same steps:
//
//	ocrolath lattice page.hocr -o lines/
//	ocrolath lm words.txt -o words.fst
//	ocrolath search lines/*.fst --lm words.fst
package ocrolath
