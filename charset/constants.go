package charset

// Convenience CharRange constants for common ASCII classes, supplementing
// the Unicode category constants in category.go. Grounded on
// CharRange.java's public static final fields (Digits, OctalDigits,
// HexDigits, AsciiLower, AsciiUpper, AsciiWhite), which the distilled spec
// dropped but which every caller of the original library reaches for.
var (
	// Digits matches '0'-'9'.
	Digits = Range('0', '9')

	// OctalDigits matches '0'-'7'.
	OctalDigits = Range('0', '7')

	// HexDigits matches '0'-'9', 'A'-'F', and 'a'-'f'.
	HexDigits = NewBuilder().
			AddRange('0', '9').
			AddRange('A', 'F').
			AddRange('a', 'f').
			Build()

	// AsciiLower matches 'a'-'z'.
	AsciiLower = Range('a', 'z')

	// AsciiUpper matches 'A'-'Z'.
	AsciiUpper = Range('A', 'Z')

	// AsciiWhite matches the ASCII whitespace characters: space, tab,
	// newline, carriage return, form feed, and vertical tab.
	AsciiWhite = AnyOf([]Char{' ', '\t', '\n', '\r', '\f', '\v'})
)
