package match

import "github.com/nobigsoftware/dfalex-go/charset"

// Replacement rewrites one match. It appends to dest and returns the
// number of source code units to additionally skip past end, nonzero
// only for replacements that consume more of src than the match itself
// (e.g. to merge adjacent whitespace or reposition following text).
type Replacement func(dest *[]uint16, src []uint16, start, end int) (skip int)

// Ignore copies the match verbatim.
func Ignore(dest *[]uint16, src []uint16, start, end int) int {
	*dest = append(*dest, src[start:end]...)
	return 0
}

// Delete drops the match.
func Delete(dest *[]uint16, src []uint16, start, end int) int {
	return 0
}

// ToUpper case-folds every code unit of the match to upper case.
func ToUpper(dest *[]uint16, src []uint16, start, end int) int {
	for i := start; i < end; i++ {
		*dest = append(*dest, charset.ToUpper(src[i]))
	}
	return 0
}

// ToLower case-folds every code unit of the match to lower case.
func ToLower(dest *[]uint16, src []uint16, start, end int) int {
	for i := start; i < end; i++ {
		*dest = append(*dest, charset.ToLower(src[i]))
	}
	return 0
}

// SpaceOrNewline collapses the match to a single space, or a single
// newline if the match contains one.
func SpaceOrNewline(dest *[]uint16, src []uint16, start, end int) int {
	for i := start; i < end; i++ {
		if src[i] == '\n' {
			*dest = append(*dest, '\n')
			return 0
		}
	}
	*dest = append(*dest, ' ')
	return 0
}

// Literal returns a Replacement that emits str in place of every match.
func Literal(str []uint16) Replacement {
	return func(dest *[]uint16, src []uint16, start, end int) int {
		*dest = append(*dest, str...)
		return 0
	}
}

// Surround returns a Replacement that emits prefix, then inner's
// rewrite of the match, then suffix.
func Surround(prefix []uint16, inner Replacement, suffix []uint16) Replacement {
	return func(dest *[]uint16, src []uint16, start, end int) int {
		*dest = append(*dest, prefix...)
		skip := inner(dest, src, start, end)
		*dest = append(*dest, suffix...)
		return skip
	}
}

// SearchAndReplace runs searcher over text and rewrites each match with
// the Replacement resolve returns for its tag, copying unmatched spans
// through unchanged.
func SearchAndReplace[T comparable](searcher *StringSearcher[T], text []uint16, resolve func(tag T) Replacement) []uint16 {
	matches := searcher.FindAll(text)

	out := make([]uint16, 0, len(text))
	pos := 0
	for _, m := range matches {
		if m.Start < pos {
			continue
		}
		out = append(out, text[pos:m.Start]...)
		skip := resolve(m.Tag)(&out, text, m.Start, m.End)
		pos = m.End + skip
	}
	out = append(out, text[pos:]...)
	return out
}
