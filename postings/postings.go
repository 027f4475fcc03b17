// Package postings implements a posting iterator abstraction: a
// seekable cursor over a sorted document id stream, each document
// carrying a term-position sub-iterator, merged into a single
// Seek-style cursor rather than a separate next/advance pair.
package postings

import (
	"sort"
)

// Max is the EOF sentinel value both Iterator.Value and
// Positions.Value return once exhausted: the full unsigned range,
// since document and position ids are non-negative counters with no
// sign to spare.
const Max uint32 = 1<<32 - 1

// Positions iterates the term positions within the current document of
// an Iterator, ascending and duplicate-free.
type Positions interface {
	// Next advances to the next position, returning false at Max.
	Next() bool
	// Value returns the current position, or Max before the first
	// Next() call or after exhaustion.
	Value() uint32
}

// Iterator is a cursor over a sorted, deduplicated document id stream.
type Iterator interface {
	// Value returns the current document id, or Max before the first
	// Seek call or after exhaustion.
	Value() uint32
	// Seek advances to the first document id >= target, returning it
	// (or Max if none remains). Seek(Value()+1) behaves like a plain
	// "next".
	Seek(target uint32) uint32
	// Positions returns the position sub-iterator for the current
	// document. Calling it before any Seek, or after exhaustion, is
	// undefined.
	Positions() Positions
	// Cost is an estimate of the remaining number of documents. The
	// similarity filter does not order its iterators by it.
	Cost() int64
}

// SliceIterator is an in-memory Iterator backed by parallel slices.
// Segment storage itself is an out-of-scope collaborator; this is the
// concrete backing needed to exercise and test the posting iterator,
// ordered-match, and similarity-filter machinery.
type SliceIterator struct {
	docIDs    []uint32
	positions [][]uint32
	pos       int
	posIter   slicePositions
}

// NewSliceIterator builds a SliceIterator over docIDs (must be sorted
// ascending, unique) with a parallel per-document positions list (each
// must also be sorted ascending, unique).
func NewSliceIterator(docIDs []uint32, positions [][]uint32) *SliceIterator {
	return &SliceIterator{docIDs: docIDs, positions: positions, pos: -1}
}

func (s *SliceIterator) Value() uint32 {
	if s.pos < 0 || s.pos >= len(s.docIDs) {
		return Max
	}
	return s.docIDs[s.pos]
}

func (s *SliceIterator) Seek(target uint32) uint32 {
	if s.pos >= len(s.docIDs) {
		return Max
	}
	start := s.pos
	if start < 0 {
		start = 0
	}
	idx := sort.Search(len(s.docIDs)-start, func(i int) bool {
		return s.docIDs[start+i] >= target
	})
	s.pos = start + idx
	return s.Value()
}

func (s *SliceIterator) Positions() Positions {
	if s.pos < 0 || s.pos >= len(s.docIDs) {
		s.posIter = slicePositions{positions: nil, i: -1}
	} else {
		s.posIter = slicePositions{positions: s.positions[s.pos], i: -1}
	}
	return &s.posIter
}

func (s *SliceIterator) Cost() int64 {
	if s.pos < 0 {
		return int64(len(s.docIDs))
	}
	return int64(len(s.docIDs) - s.pos)
}

type slicePositions struct {
	positions []uint32
	i         int
}

func (p *slicePositions) Next() bool {
	if p.i+1 >= len(p.positions) {
		p.i = len(p.positions)
		return false
	}
	p.i++
	return true
}

func (p *slicePositions) Value() uint32 {
	if p.i < 0 || p.i >= len(p.positions) {
		return Max
	}
	return p.positions[p.i]
}
