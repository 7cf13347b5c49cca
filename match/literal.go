package match

import "github.com/nobigsoftware/dfalex-go/prefilter"

// FindAllLiterals finds every non-overlapping occurrence of any literal
// in set, left to right, tagging each with indexToTag[set's matched
// index]. This is the fast path dfabuild.Builder.LiteralPrefilter sets
// up for keyword/operator tables where every tag reduces to a single
// fixed string: it never touches the DFA at all. Tags with any
// non-literal pattern are absent from indexToTag and so never appear
// here; a caller mixing literal and non-literal tags still needs
// StringSearcher.FindAll for the rest.
func FindAllLiterals[T comparable](set *prefilter.LiteralSet, indexToTag map[int]T, text []uint16) []Match[T] {
	var out []Match[T]
	for pos := 0; pos < len(text); {
		start, end, ok := set.FindFirst(text, pos)
		if !ok {
			break
		}
		idx, ok := set.Lookup(text, start, end)
		if !ok {
			pos = end
			continue
		}
		tag, ok := indexToTag[idx]
		if !ok {
			pos = end
			continue
		}
		out = append(out, Match[T]{Start: start, End: end, Tag: tag})
		pos = end
	}
	return out
}
