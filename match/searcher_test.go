package match_test

import (
	"testing"

	"github.com/nobigsoftware/dfalex-go/dfabuild"
	"github.com/nobigsoftware/dfalex-go/match"
)

func buildSearcher(t *testing.T) *match.StringSearcher[string] {
	t.Helper()
	b := dfabuild.NewBuilder[string]()
	b.AddPattern(word("cat"), "CAT")
	b.AddPattern(word("dog"), "DOG")

	languages := []dfabuild.Language[string]{b.AllTags()}
	forward, err := b.Build(languages, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	reverse, err := b.BuildReverseFinders(languages)
	if err != nil {
		t.Fatalf("BuildReverseFinders: %v", err)
	}
	return match.NewStringSearcher(forward, forward.Starts[0], reverse, reverse.Starts[0])
}

func TestFindAllNonOverlappingAscending(t *testing.T) {
	s := buildSearcher(t)
	text := u16("the cat sat, the dog ran, a cat and a dog again")
	matches := s.FindAll(text)

	if len(matches) != 4 {
		t.Fatalf("got %d matches, want 4: %+v", len(matches), matches)
	}

	last := -1
	want := []string{"cat", "dog", "cat", "dog"}
	for i, m := range matches {
		if m.Start <= last {
			t.Fatalf("match %+v overlaps or is out of order (last end %d)", m, last)
		}
		last = m.End

		got := str16(text[m.Start:m.End])
		if got != want[i] {
			t.Errorf("match %d = %q, want %q", i, got, want[i])
		}
		wantTag := "CAT"
		if got == "dog" {
			wantTag = "DOG"
		}
		if m.Tag != wantTag {
			t.Errorf("match %d tag = %q, want %q", i, m.Tag, wantTag)
		}
	}
}

func TestFindAllNoMatch(t *testing.T) {
	s := buildSearcher(t)
	matches := s.FindAll(u16("no animals here"))
	if len(matches) != 0 {
		t.Fatalf("got %d matches, want 0", len(matches))
	}
}

func TestFindAllEmptyText(t *testing.T) {
	s := buildSearcher(t)
	if matches := s.FindAll(nil); len(matches) != 0 {
		t.Fatalf("got %d matches on empty text, want 0", len(matches))
	}
}

func TestFindAllAdjacentMatches(t *testing.T) {
	s := buildSearcher(t)
	text := u16("catdog")
	matches := s.FindAll(text)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(matches), matches)
	}
	if matches[0].End != matches[1].Start {
		t.Fatalf("adjacent matches are not contiguous: %+v", matches)
	}
}

func TestFindAllPicksLongestAtEachStart(t *testing.T) {
	b := dfabuild.NewBuilder[string]()
	b.AddPattern(word("a"), "SHORT")
	b.AddPattern(word("ab"), "LONG")
	languages := []dfabuild.Language[string]{b.AllTags()}
	forward, err := b.Build(languages, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	reverse, err := b.BuildReverseFinders(languages)
	if err != nil {
		t.Fatalf("BuildReverseFinders: %v", err)
	}
	s := match.NewStringSearcher(forward, forward.Starts[0], reverse, reverse.Starts[0])

	matches := s.FindAll(u16("ab"))
	if len(matches) != 1 || matches[0].Tag != "LONG" {
		t.Fatalf("got %+v, want a single LONG match", matches)
	}
}
