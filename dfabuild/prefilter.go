package dfabuild

import "github.com/nobigsoftware/dfalex-go/prefilter"

// LiteralPrefilter collects every tag in languages whose entire
// pattern list reduces to a single fixed literal, and compiles a
// prefilter.LiteralSet over them. The returned indexToTag maps a
// Literal.Index (and so a LiteralSet match) back to the originating
// tag. Tags with any non-literal pattern are left out entirely: they
// still have to go through the general DFA, so a caller combining this
// with match.StringSearcher must still fall back to the full build for
// anything this prefilter doesn't cover.
//
// Returns ok=false when fewer than prefilter.MinLiterals tags qualify;
// building the automaton wouldn't be worth it at that scale.
func (b *Builder[T]) LiteralPrefilter(languages []Language[T]) (set *prefilter.LiteralSet, indexToTag map[int]T, ok bool) {
	included := make(map[T]bool)
	for _, lang := range languages {
		for tag, in := range lang {
			if in {
				included[tag] = true
			}
		}
	}

	var lits []prefilter.Literal
	indexToTag = make(map[int]T)
	for i, tag := range b.order {
		if !included[tag] {
			continue
		}
		patList := b.lists[i]
		if len(patList) != 1 {
			continue
		}
		units, isLiteral := patList[0].Literal()
		if !isLiteral || len(units) == 0 {
			continue
		}
		idx := len(lits)
		lits = append(lits, prefilter.Literal{CodeUnits: units, Index: idx})
		indexToTag[idx] = tag
	}

	set, ok = prefilter.Build(lits)
	if !ok {
		return nil, nil, false
	}
	return set, indexToTag, true
}
