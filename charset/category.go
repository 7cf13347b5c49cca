package charset

import "unicode"

// decodeCategory expands a (delta-offset-alphabet, delta-index-string) pair
// into a CharRange. The alphabet lists the distinct gap widths used by the
// category in ascending order; the index string then walks those gaps by
// index, one character per gap, alternately toggling membership on and off
// starting from code unit 0. This is the same opaque encoding scheme
// dfalex's generated Unicode tables use: it turns long runs of unchanging
// gap widths (extremely common in Unicode block layout) into one alphabet
// entry reused many times, at the cost of an indirection through the
// alphabet on every step.
//
// alphabet[i] is the i'th distinct gap width. indexes[i] selects
// alphabet[indexes[i]] as the size of the i'th gap. The first gap is the
// distance from 0 to the first boundary.
func decodeCategory(alphabet []int32, indexes []byte) CharRange {
	b := NewBuilder()
	pos := int32(0)
	on := false
	for _, idx := range indexes {
		gap := alphabet[idx]
		if on {
			b.AddRange(Char(pos), Char(pos+gap-1))
		}
		pos += gap
		on = !on
	}
	return b.Build()
}

// asciiWordAlphabet and asciiWordIndex encode the ASCII word-character
// class (digits, letters, underscore) as a (gap-alphabet, index-string)
// pair. The gap widths, from code unit 0, alternately toggle a run off
// and on: 48 (off, to '0'), 10 (on, '0'-'9'), 7 (off), 26 (on, 'A'-'Z'),
// 4 (off), 1 (on, '_'), 1 (off), 26 (on, 'a'-'z'). Those widths
// deduplicate into the ascending alphabet [1, 4, 7, 10, 26, 48], indexed
// by position.
var asciiWordAlphabet = []int32{1, 4, 7, 10, 26, 48}
var asciiWordIndex = []byte{5, 3, 2, 4, 1, 0, 0, 4}

var (
	// ASCIIWord matches '0'-'9', 'A'-'Z', 'a'-'z', and '_'.
	ASCIIWord = decodeCategory(asciiWordAlphabet, asciiWordIndex)

	// ASCIIIdentifierStart matches the characters legal as the first
	// character of a C-style identifier: letters and underscore.
	ASCIIIdentifierStart = NewBuilder().
				AddRange('A', 'Z').
				AddRange('a', 'z').
				AddChar('_').
				Build()

	// ASCIIIdentifierPart matches the characters legal after the first
	// character of a C-style identifier.
	ASCIIIdentifierPart = ASCIIWord
)

// rangeTableToCharRange lowers a unicode.RangeTable into a CharRange,
// dropping any code point above MaxChar per this package's 16-bit code
// unit model (astral code points are outside the space CharRange
// represents; surrogate code units are kept like any other).
func rangeTableToCharRange(t *unicode.RangeTable) CharRange {
	b := NewBuilder()
	for _, r := range t.R16 {
		for c := uint32(r.Lo); c <= uint32(r.Hi); c += uint32(r.Stride) {
			b.AddChar(Char(c))
			if r.Stride == 0 {
				break
			}
		}
	}
	for _, r := range t.R32 {
		if r.Lo > uint32(MaxChar) {
			continue
		}
		hi := r.Hi
		if hi > uint32(MaxChar) {
			hi = uint32(MaxChar)
		}
		for c := r.Lo; c <= hi; c += r.Stride {
			b.AddChar(Char(c))
			if r.Stride == 0 {
				break
			}
		}
	}
	return b.Build()
}

// Broad Unicode category constants, built once at init from the standard
// library's category tables (see the stdlib-fallback note in the design
// notes for charset/category.go: no example repo or third-party package
// ships Unicode category data, so unicode.RangeTable is the only source).
var (
	L  = rangeTableToCharRange(unicode.L)
	Lu = rangeTableToCharRange(unicode.Lu)
	Ll = rangeTableToCharRange(unicode.Ll)
	Lt = rangeTableToCharRange(unicode.Lt)
	Nd = rangeTableToCharRange(unicode.Nd)
	N  = rangeTableToCharRange(unicode.N)
	P  = rangeTableToCharRange(unicode.P)
	S  = rangeTableToCharRange(unicode.S)
	Z  = rangeTableToCharRange(unicode.Z)
	M  = rangeTableToCharRange(unicode.M)
	C  = rangeTableToCharRange(unicode.C)

	// Word matches any letter, digit, or underscore, mirroring the
	// conventional regex \w class extended to the full Unicode letter and
	// digit categories.
	Word = NewBuilder().
		AddRanges(L).
		AddRanges(Nd).
		AddChar('_').
		Build()

	// Identifier matches Word plus the additional punctuation Unicode
	// allows to continue an identifier (connector punctuation, combining
	// marks).
	Identifier = NewBuilder().
			AddRanges(Word).
			AddRanges(rangeTableToCharRange(unicode.Pc)).
			AddRanges(M).
			Build()

	// IdentifierStart matches the characters legal to start an
	// identifier: letters and underscore, excluding digits and marks.
	IdentifierStart = NewBuilder().
				AddRanges(L).
				AddChar('_').
				Build()

	// IdentifierPart is an alias of Identifier, matching the characters
	// legal after the first character of an identifier.
	IdentifierPart = Identifier

	// HorizontalWhite matches the code units treated as horizontal
	// whitespace: tab, space, and the Unicode Zs category.
	HorizontalWhite = NewBuilder().
				AddChar('\t').
				AddRanges(rangeTableToCharRange(unicode.Zs)).
				Build()

	// VerticalWhite matches the code units treated as line breaks.
	VerticalWhite = AnyOf([]Char{'\n', '\v', '\f', '\r', 0x85, 0x2028, 0x2029})

	// White matches HorizontalWhite or VerticalWhite.
	White = NewBuilder().
		AddRanges(HorizontalWhite).
		AddRanges(VerticalWhite).
		Build()
)

// Category looks up one of the named Unicode category constants by the
// conventional short name ("L", "Lu", "Nd", "Word", "Identifier", ...).
// It reports false for unrecognized names.
func Category(name string) (CharRange, bool) {
	switch name {
	case "L":
		return L, true
	case "Lu":
		return Lu, true
	case "Ll":
		return Ll, true
	case "Lt":
		return Lt, true
	case "Nd":
		return Nd, true
	case "N":
		return N, true
	case "P":
		return P, true
	case "S":
		return S, true
	case "Z":
		return Z, true
	case "M":
		return M, true
	case "C":
		return C, true
	case "Word":
		return Word, true
	case "Identifier":
		return Identifier, true
	case "IdentifierStart":
		return IdentifierStart, true
	case "IdentifierPart":
		return IdentifierPart, true
	case "HorizontalWhite":
		return HorizontalWhite, true
	case "VerticalWhite":
		return VerticalWhite, true
	case "White":
		return White, true
	default:
		return None, false
	}
}
