// Package fst implements a table-matcher adaptor: a dense transition
// table built once from a deterministic, epsilon-free finite-state
// acceptor, giving O(1) (small labels) or O(log n) (binary search)
// transition lookup instead of walking the acceptor's own arc
// representation on every match. The FST implementation itself
// (Automaton below) is an out-of-scope collaborator — this package
// only adapts one.
package fst

import "github.com/op/go-logging"

var log = logging.MustGetLogger("fst")

// StateID identifies a state in an Automaton. NoState is the sentinel
// for "no transition."
type StateID uint32

// NoState is the sentinel "no such state" value.
const NoState StateID = 1<<32 - 1

// Label identifies an input symbol on an arc. NoLabel is the label
// TableMatcher.Next returns once a row is exhausted.
type Label int32

// NoLabel is the sentinel "no such label" value.
const NoLabel Label = -1

// Arc is one transition out of a state.
type Arc struct {
	Label Label
	To    StateID
}

// Automaton is the minimal contract TableMatcher needs from a finite
// state acceptor: a state count and, per state, arcs sorted ascending
// by Label with no duplicate labels (deterministic, epsilon-free —
// the property a table matcher requires of its input before building
// the transition table).
type Automaton interface {
	NumStates() int
	// Arcs returns the sorted arc list for state s.
	Arcs(s StateID) []Arc
}
