// Package charset implements CharRange, an immutable set of 16-bit code
// units, together with the Unicode category and case-folding tables that
// patterns build on.
//
// A CharRange is represented as a sorted list of boundary code units
// b0 < b1 < ...; a code unit c is a member iff the number of boundaries
// <= c is odd. This lets any subset of the 16-bit code-unit space be
// represented as a disjoint, ordered union of half-open ranges with no
// extra bookkeeping: complement adds or drops a leading 0 boundary, and
// membership is a binary search.
package charset

import "sort"

// Char is a single 16-bit code unit. Values in the surrogate range
// (0xD800-0xDFFF) are opaque to this package: they compare and match like
// any other code unit, exactly as they would in a UTF-16 code sequence
// scanned one unit at a time.
type Char = uint16

// MaxChar is the largest representable code unit.
const MaxChar Char = 0xFFFF

// CharRange is an immutable set of Chars.
//
// The zero value is not a valid CharRange; use None instead.
type CharRange struct {
	bounds []Char
}

// All matches every Char.
var All = CharRange{bounds: []Char{0}}

// None matches no Char.
var None = CharRange{}

// Single returns a CharRange that matches exactly c.
func Single(c Char) CharRange {
	return Range(c, c)
}

// Range returns a CharRange that matches every Char x with lo <= x <= hi.
// If hi < lo, the bounds are swapped.
func Range(lo, hi Char) CharRange {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi >= MaxChar {
		return CharRange{bounds: []Char{lo}}
	}
	return CharRange{bounds: []Char{lo, hi + 1}}
}

// AnyOf returns a CharRange matching any of the code units in chars, or
// None if chars is empty.
func AnyOf(chars []Char) CharRange {
	if len(chars) == 0 {
		return None
	}
	b := NewBuilder()
	for _, c := range chars {
		b.AddChar(c)
	}
	return b.Build()
}

// NotAnyOf returns a CharRange matching every code unit except those in
// chars, or All if chars is empty.
func NotAnyOf(chars []Char) CharRange {
	if len(chars) == 0 {
		return All
	}
	b := NewBuilder()
	for _, c := range chars {
		b.AddChar(c)
	}
	b.Invert()
	return b.Build()
}

// Contains reports whether c is a member of r.
func (r CharRange) Contains(c Char) bool {
	lo, hi := 0, len(r.bounds)
	for hi > lo {
		mid := lo + (hi-lo)>>1
		if r.bounds[mid] <= c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo&1 != 0
}

// IsEmpty reports whether r matches no code unit.
func (r CharRange) IsEmpty() bool {
	return len(r.bounds) == 0
}

// Complement returns the set of code units r does not match.
func (r CharRange) Complement() CharRange {
	switch {
	case len(r.bounds) == 0:
		return All
	case r.bounds[0] == 0:
		if len(r.bounds) == 1 {
			return None
		}
		out := make([]Char, len(r.bounds)-1)
		copy(out, r.bounds[1:])
		return CharRange{bounds: out}
	default:
		out := make([]Char, len(r.bounds)+1)
		copy(out[1:], r.bounds)
		return CharRange{bounds: out}
	}
}

// Union returns the set of code units matched by r or other.
func (r CharRange) Union(other CharRange) CharRange {
	return NewBuilder().AddRanges(r).AddRanges(other).Build()
}

// Intersect returns the set of code units matched by both r and other.
func (r CharRange) Intersect(other CharRange) CharRange {
	return NewBuilder().AddRanges(r).Intersect(other).Build()
}

// Exclude returns the set of code units matched by r but not other.
func (r CharRange) Exclude(other CharRange) CharRange {
	return NewBuilder().AddRanges(r).Exclude(other).Build()
}

// Equal reports whether r and other match exactly the same code units.
func (r CharRange) Equal(other CharRange) bool {
	if len(r.bounds) != len(other.bounds) {
		return false
	}
	for i, b := range r.bounds {
		if other.bounds[i] != b {
			return false
		}
	}
	return true
}

// Bounds returns the underlying boundary array. The caller must not
// modify the returned slice; it is shared with r.
func (r CharRange) Bounds() []Char {
	return r.bounds
}

// Ranges calls fn, in ascending order, once for every disjoint inclusive
// [lo, hi] range covered by r.
func (r CharRange) Ranges(fn func(lo, hi Char)) {
	for i := 0; i < len(r.bounds); i += 2 {
		lo := r.bounds[i]
		hi := MaxChar
		if i+1 < len(r.bounds) {
			hi = r.bounds[i+1] - 1
		}
		fn(lo, hi)
	}
}

// Builder incrementally constructs a CharRange.
//
// The zero value, once returned from NewBuilder, matches no characters.
// Methods like AddChar, AddRange, and Exclude add and remove characters;
// Build then produces an immutable CharRange. A Builder can keep being
// used (and produce more CharRanges) after Build is called.
type Builder struct {
	// inout holds a multiset of (code<<1)|kind breakpoints: kind 0 is an
	// "in" transition, kind 1 is an "out" transition. A code unit c is a
	// member of the set under construction when the number of "in"
	// transitions <= c exceeds the number of "out" transitions <= c.
	inout      []int32
	normalized bool
}

// NewBuilder returns a new, empty Builder.
func NewBuilder() *Builder {
	return &Builder{normalized: true}
}

// Clear resets b to match no characters.
func (b *Builder) Clear() *Builder {
	b.inout = b.inout[:0]
	b.normalized = true
	return b
}

// AddChar adds a single code unit to the set under construction.
func (b *Builder) AddChar(c Char) *Builder {
	return b.AddRange(c, c)
}

// AddChars adds every code unit in chars to the set under construction.
func (b *Builder) AddChars(chars []Char) *Builder {
	for _, c := range chars {
		b.AddRange(c, c)
	}
	return b
}

// AddRange adds every code unit x with first <= x <= last to the set
// under construction.
func (b *Builder) AddRange(first, last Char) *Builder {
	if first > last {
		first, last = last, first
	}
	b.normalized = false
	b.inout = append(b.inout, int32(first)<<1)
	if last < MaxChar {
		b.inout = append(b.inout, int32(last)<<1+3)
	}
	return b
}

// AddRanges adds every code unit matched by cr to the set under
// construction.
func (b *Builder) AddRanges(cr CharRange) *Builder {
	for i, bound := range cr.bounds {
		b.inout = append(b.inout, int32(bound)<<1|int32(i&1))
	}
	if len(cr.bounds) > 0 {
		b.normalized = false
	}
	return b
}

// Exclude removes every code unit matched by cr from the set under
// construction.
func (b *Builder) Exclude(cr CharRange) *Builder {
	b.Invert()
	b.AddRanges(cr)
	b.Invert()
	return b
}

// Intersect keeps only the code units also matched by cr.
func (b *Builder) Intersect(cr CharRange) *Builder {
	return b.Exclude(cr.Complement())
}

// Invert replaces the set under construction with its complement.
func (b *Builder) Invert() *Builder {
	b.normalize()
	switch {
	case len(b.inout) == 0:
		return b.AddRanges(All)
	case b.inout[0] == 0:
		out := make([]int32, len(b.inout)-1)
		for i := range out {
			out[i] = b.inout[i+1] ^ 1
		}
		b.inout = out
	default:
		out := make([]int32, len(b.inout)+1)
		out[0] = 0
		for i, v := range b.inout {
			out[i+1] = v ^ 1
		}
		b.inout = out
	}
	return b
}

// ExpandCases adds toUpper(c) and toLower(c) for every c currently in the
// set under construction, making it case-insensitive.
func (b *Builder) ExpandCases() *Builder {
	b.normalize()
	src := append([]int32(nil), b.inout...)
	for i := 0; i < len(src); i += 2 {
		lo := Char(src[i] >> 1)
		hi := MaxChar
		if i+1 < len(src) {
			hi = Char(src[i+1]>>1) - 1
		}
		expandRange(lo, hi, b)
	}
	return b
}

// Build produces an immutable CharRange matching exactly the set built up
// so far. It does not reset the builder: b may be modified further and
// used to build more CharRanges.
func (b *Builder) Build() CharRange {
	b.normalize()
	if len(b.inout) == 0 {
		return None
	}
	if len(b.inout) == 1 && b.inout[0] == 0 {
		return All
	}
	bounds := make([]Char, len(b.inout))
	for i, v := range b.inout {
		bounds[i] = Char(v >> 1)
	}
	return CharRange{bounds: bounds}
}

// normalize sorts the breakpoint multiset and folds runs of coincident
// breakpoints by their signed depth, leaving b.inout holding a canonical,
// strictly alternating in/out boundary sequence.
func (b *Builder) normalize() {
	if b.normalized || len(b.inout) == 0 {
		b.normalized = true
		return
	}
	sort.Slice(b.inout, func(i, j int) bool { return b.inout[i] < b.inout[j] })

	d, depth, n := 0, 0, len(b.inout)
	for s := 0; s < n; {
		oldDepth := depth
		v := b.inout[s]
		s++
		if v&1 == 0 {
			depth++
		} else {
			depth--
		}
		for s < n && b.inout[s]>>1 == v>>1 {
			if b.inout[s]&1 == 0 {
				depth++
			} else {
				depth--
			}
			s++
		}
		switch {
		case depth > 0 && oldDepth <= 0:
			b.inout[d] = v &^ 1
			d++
		case depth <= 0 && oldDepth > 0:
			b.inout[d] = v | 1
			d++
		}
	}
	b.inout = b.inout[:d]
	b.normalized = true
}
