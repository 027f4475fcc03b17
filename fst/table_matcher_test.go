package fst

import "testing"

// sliceAutomaton is a tiny in-memory Automaton for tests.
type sliceAutomaton struct {
	arcs [][]Arc
}

func (a *sliceAutomaton) NumStates() int      { return len(a.arcs) }
func (a *sliceAutomaton) Arcs(s StateID) []Arc { return a.arcs[s] }

func TestTableMatcherBasicTransitions(t *testing.T) {
	// state 0 --'a'--> 1, state 0 --'b'--> 2, state 1 --'c'--> 2
	a := &sliceAutomaton{
		arcs: [][]Arc{
			{{Label: 'a', To: 1}, {Label: 'b', To: 2}},
			{{Label: 'c', To: 2}},
			{},
		},
	}
	m := NewTableMatcher(a, NoLabel, 0)

	m.SetState(0)
	if next, ok := m.Find('a'); !ok || next != 1 {
		t.Errorf("Find('a') = %d,%v want 1,true", next, ok)
	}
	m.SetState(0)
	if next, ok := m.Find('b'); !ok || next != 2 {
		t.Errorf("Find('b') = %d,%v want 2,true", next, ok)
	}
	m.SetState(0)
	if _, ok := m.Find('z'); ok {
		t.Errorf("Find('z') should miss with no rho fallback")
	}
	m.SetState(1)
	if next, ok := m.Find('c'); !ok || next != 2 {
		t.Errorf("Find('c') = %d,%v want 2,true", next, ok)
	}
}

func TestTableMatcherRhoFallback(t *testing.T) {
	const rho Label = -2
	// state 0 has an explicit 'a' arc and a trailing rho catch-all.
	a := &sliceAutomaton{
		arcs: [][]Arc{
			{{Label: 'a', To: 1}, {Label: rho, To: 9}},
			{},
			{},
		},
	}
	m := NewTableMatcher(a, rho, 0)
	m.SetState(0)

	if next, ok := m.Find('a'); !ok || next != 1 {
		t.Errorf("Find('a') = %d,%v want 1,true", next, ok)
	}
	m.SetState(0)
	if next, ok := m.Find('z'); !ok || next != 9 {
		t.Errorf("Find('z') = %d,%v want 9,true (rho fallback)", next, ok)
	}
}

func TestTableMatcherCacheBoundary(t *testing.T) {
	// labels chosen to straddle a tiny cache size so both the direct
	// cache path and the binary-search fallback path are exercised.
	a := &sliceAutomaton{
		arcs: [][]Arc{
			{{Label: 1, To: 1}, {Label: 300, To: 2}},
			{},
			{},
		},
	}
	m := NewTableMatcher(a, NoLabel, 4) // cache only covers labels 0..3

	m.SetState(0)
	if next, ok := m.Find(1); !ok || next != 1 {
		t.Errorf("cached Find(1) = %d,%v want 1,true", next, ok)
	}
	m.SetState(0)
	if next, ok := m.Find(300); !ok || next != 2 {
		t.Errorf("binary-search Find(300) = %d,%v want 2,true", next, ok)
	}
	m.SetState(0)
	if _, ok := m.Find(2); ok {
		t.Errorf("Find(2) should miss (cached, absent)")
	}
}

func TestTableMatcherNextEnumeratesRow(t *testing.T) {
	a := &sliceAutomaton{
		arcs: [][]Arc{
			{{Label: 1, To: 1}, {Label: 2, To: 2}, {Label: 3, To: 1}},
			{},
			{},
		},
	}
	m := NewTableMatcher(a, NoLabel, 0)
	m.SetState(0)

	var got []Label
	for {
		label, _, ok := m.Next()
		if !ok {
			break
		}
		got = append(got, label)
	}
	want := []Label{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}
