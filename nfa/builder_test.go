package nfa

import (
	"testing"

	"github.com/nobigsoftware/dfalex-go/charset"
)

func TestBuilderValidateRejectsNoStart(t *testing.T) {
	b := NewBuilder[string]()
	b.NewState()
	if _, err := b.Build(); err == nil {
		t.Fatal("expected an error building an NFA with no start state")
	}
}

func TestBuilderValidateRejectsDanglingEdge(t *testing.T) {
	b := NewBuilder[string]()
	start := b.NewState()
	b.AddStart(start)
	b.AddRangeEdge(start, 'a', 'a', StateID(99))
	if _, err := b.Build(); err == nil {
		t.Fatal("expected an error building an NFA with a dangling edge")
	}
}

func TestAddEpsilonEdgeDeduplicates(t *testing.T) {
	b := NewBuilder[string]()
	a := b.NewState()
	c := b.NewState()
	b.AddEpsilonEdge(a, c)
	b.AddEpsilonEdge(a, c)
	if got := len(b.State(a).Epsilon()); got != 1 {
		t.Fatalf("got %d epsilon edges, want 1", got)
	}
}

func TestAddCharEdgesOneEdgePerRange(t *testing.T) {
	b := NewBuilder[string]()
	start := b.NewState()
	target := b.NewState()
	cr := charset.NewBuilder().AddRange('a', 'c').AddRange('x', 'z').Build()
	b.AddCharEdges(start, cr, target)
	if got := len(b.State(start).Edges()); got != 2 {
		t.Fatalf("got %d edges, want 2", got)
	}
}

func TestBuildAcceptTagRoundTrip(t *testing.T) {
	b := NewBuilder[string]()
	start := b.NewState()
	b.SetAccept(start, "TAG")
	b.AddStart(start)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tag, ok := n.State(start).Accept()
	if !ok || tag != "TAG" {
		t.Fatalf("Accept() = (%q, %v), want (TAG, true)", tag, ok)
	}
}
