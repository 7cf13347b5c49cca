package dfa

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/nobigsoftware/dfalex-go/charset"
	"github.com/nobigsoftware/dfalex-go/internal/conv"
	"github.com/nobigsoftware/dfalex-go/internal/mixhash"
)

// DeadTarget is the sentinel PackedState.Targets value meaning "no live
// transition"; matching dies here.
const DeadTarget uint32 = 0xFFFFFFFF

// PackedState is one state of a PackedDfa: a sorted array of inclusive
// upper bounds (Ranges) and a parallel array of destination state
// indices (Targets), together partitioning [0, 0xFFFF] exhaustively.
// Ranges[i] is the upper bound of the i-th interval; Targets[i] is
// either the state reached by any code unit in that interval, or
// DeadTarget.
//
// The "placeholder" indirection spec.md's design notes mention (for
// lazy rehydration from a cached form) collapses to nothing here:
// Targets always holds direct state indices, resolved once at Pack or
// Decode time, matching spec.md 4.4's "implementations may collapse
// this to straight indices."
type PackedState[T comparable] struct {
	HasAccept bool
	Accept    T
	Ranges    []charset.Char
	Targets   []uint32
}

// PackedDfa is the serialization-friendly, match-time form of a
// minimized DFA: immutable once produced, and safe to share across
// goroutines without synchronization (spec.md 5).
type PackedDfa[T comparable] struct {
	States []PackedState[T]
	Starts []uint32
}

// Pack converts a (minimized) RawDfa into its packed form, filling the
// gaps RawDfa leaves implicit (unlisted code units) with explicit
// DeadTarget intervals so every state's Ranges/Targets pair covers the
// full code unit space.
func Pack[T comparable](d *RawDfa[T]) *PackedDfa[T] {
	states := make([]PackedState[T], len(d.States))
	for i := range d.States {
		states[i] = packState(&d.States[i])
	}
	return &PackedDfa[T]{States: states, Starts: append([]uint32(nil), d.Starts...)}
}

func packState[T comparable](s *RawState[T]) PackedState[T] {
	ps := PackedState[T]{HasAccept: s.HasAccept, Accept: s.Accept}
	pos := 0
	for _, t := range s.Trans {
		lo := int(t.Lo)
		if pos < lo {
			ps.Ranges = append(ps.Ranges, charset.Char(lo-1))
			ps.Targets = append(ps.Targets, DeadTarget)
		}
		ps.Ranges = append(ps.Ranges, t.Hi)
		ps.Targets = append(ps.Targets, t.Target)
		pos = int(t.Hi) + 1
	}
	if pos <= int(charset.MaxChar) {
		ps.Ranges = append(ps.Ranges, charset.MaxChar)
		ps.Targets = append(ps.Targets, DeadTarget)
	}
	return ps
}

// NextState returns the state c advances state to, or false if that
// move is dead.
func (p *PackedDfa[T]) NextState(state uint32, c charset.Char) (uint32, bool) {
	s := &p.States[state]
	i := sort.Search(len(s.Ranges), func(i int) bool { return s.Ranges[i] >= c })
	if i >= len(s.Ranges) || s.Targets[i] == DeadTarget {
		return 0, false
	}
	return s.Targets[i], true
}

// Match returns state's accept tag, if any.
func (p *PackedDfa[T]) Match(state uint32) (tag T, ok bool) {
	s := &p.States[state]
	return s.Accept, s.HasAccept
}

// EnumerateTransitions calls f once per live interval of state, in
// ascending order.
func (p *PackedDfa[T]) EnumerateTransitions(state uint32, f func(lo, hi charset.Char, target uint32)) {
	s := &p.States[state]
	lo := charset.Char(0)
	for i, hi := range s.Ranges {
		if s.Targets[i] != DeadTarget {
			f(lo, hi, s.Targets[i])
		}
		if hi == charset.MaxChar {
			break
		}
		lo = hi + 1
	}
}

// ErrChecksumMismatch indicates a decoded packed-DFA stream's trailing
// checksum did not match its body.
var ErrChecksumMismatch = errors.New("dfa: checksum mismatch")

// Encode serializes p to a self-describing byte stream ending in a
// 32-character base-32 checksum of everything before it (spec.md 6.4).
// encodeTag serializes one accept tag; T is caller-opaque, so the
// caller must supply it (there is no way to marshal an arbitrary
// comparable type without one).
func (p *PackedDfa[T]) Encode(encodeTag func(T) []byte) []byte {
	var buf bytes.Buffer
	writeUvarint(&buf, uint64(len(p.States)))
	for _, s := range p.States {
		if s.HasAccept {
			buf.WriteByte(1)
			tag := encodeTag(s.Accept)
			writeUvarint(&buf, uint64(len(tag)))
			buf.Write(tag)
		} else {
			buf.WriteByte(0)
		}
		writeUvarint(&buf, uint64(len(s.Ranges)))
		for i, r := range s.Ranges {
			var tmp [2]byte
			binary.LittleEndian.PutUint16(tmp[:], r)
			buf.Write(tmp[:])
			writeUvarint(&buf, uint64(s.Targets[i]))
		}
	}
	writeUvarint(&buf, uint64(len(p.Starts)))
	for _, s := range p.Starts {
		writeUvarint(&buf, uint64(s))
	}

	body := buf.Bytes()
	return append(body, []byte(checksumOf(body))...)
}

// Decode parses a stream produced by Encode, verifying its trailing
// checksum before trusting the body. decodeTag is the inverse of the
// encodeTag passed to Encode.
func Decode[T comparable](data []byte, decodeTag func([]byte) (T, error)) (*PackedDfa[T], error) {
	if len(data) < 32 {
		return nil, ErrChecksumMismatch
	}
	body, sum := data[:len(data)-32], data[len(data)-32:]
	if checksumOf(body) != string(sum) {
		return nil, ErrChecksumMismatch
	}

	r := bytes.NewReader(body)
	numStates, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	states := make([]PackedState[T], numStates)
	for i := range states {
		hasAccept, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if hasAccept == 1 {
			n, err := readUvarint(r)
			if err != nil {
				return nil, err
			}
			raw := make([]byte, n)
			if _, err := readFull(r, raw); err != nil {
				return nil, err
			}
			tag, err := decodeTag(raw)
			if err != nil {
				return nil, err
			}
			states[i].HasAccept = true
			states[i].Accept = tag
		}
		numTrans, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		states[i].Ranges = make([]charset.Char, numTrans)
		states[i].Targets = make([]uint32, numTrans)
		for j := uint64(0); j < numTrans; j++ {
			var tmp [2]byte
			if _, err := readFull(r, tmp[:]); err != nil {
				return nil, err
			}
			states[i].Ranges[j] = binary.LittleEndian.Uint16(tmp[:])
			target, err := readUvarint(r)
			if err != nil {
				return nil, err
			}
			states[i].Targets[j] = conv.Uint64ToUint32(target)
		}
	}
	numStarts, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	starts := make([]uint32, numStarts)
	for i := range starts {
		v, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		starts[i] = conv.Uint64ToUint32(v)
	}
	return &PackedDfa[T]{States: states, Starts: starts}, nil
}

func checksumOf(body []byte) string {
	words := make([]uint64, (len(body)+7)/8)
	for i, b := range body {
		words[i/8] |= uint64(b) << (8 * uint(i%8))
	}
	return mixhash.Key(words)
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func readUvarint(r *bytes.Reader) (uint64, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, fmt.Errorf("dfa: decode: %w", err)
	}
	return v, nil
}

func readFull(r *bytes.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if err == nil && n < len(buf) {
		err = errors.New("dfa: decode: truncated stream")
	}
	return n, err
}
