package outline

import (
	"log"
	"sort"
)

// assemble performs the final pass over the forest: each scope's children
// are sorted by ascending start position (the walk already produces this
// order; the sort guards against interleaving from synthetic expansion) and,
// when verification is enabled, containment invariants are checked.
func (e *Extractor) assemble(symbols []*Symbol) {
	sortForest(symbols)
	if e.verify {
		for _, sym := range symbols {
			verifyContainment(sym)
		}
	}
}

func sortForest(symbols []*Symbol) {
	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].Range.Before(symbols[j].Range)
	})
	for _, sym := range symbols {
		sortForest(sym.Children)
	}
}

// verifyContainment logs any symbol whose selection range escapes its full
// range, or whose child escapes the parent. Best-effort: violations are
// diagnostics, never failures.
func verifyContainment(sym *Symbol) {
	if !sym.Range.Contains(sym.SelectionRange) {
		log.Printf("outline: selection range of %q escapes its full range", sym.Name)
	}
	for _, child := range sym.Children {
		if !sym.Range.Contains(child.Range) {
			log.Printf("outline: child %q escapes parent %q", child.Name, sym.Name)
		}
		verifyContainment(child)
	}
}
