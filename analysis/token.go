package analysis

import "math"

// noPosition is the pre-first-increment sentinel position. The first
// nonzero position increment applied to it overflows to 0, not 1, by
// plain unsigned wraparound.
const noPosition uint32 = math.MaxUint32

// Token is the fixed attribute bundle every analyzer in this package
// produces. It replaces a dynamic, string-keyed attribute map with a flat
// record of the capabilities every stage needs: term text, byte offsets
// into the original input, position increment, and the two scoring
// fields Frequency and FilterBoost.
type Token struct {
	Term []byte

	Start int
	End   int

	// PositionIncrement is the gap, in term positions, between this
	// token and the previous one emitted by the same stream. A value of
	// 1 means "immediately follows"; 0 means "same position" (a
	// synonym/variant of the previous token).
	PositionIncrement uint32

	// Frequency and FilterBoost are not set by any analyzer in this
	// package; Reset clears them. The similarity package reports the
	// same two values on its own Match type.
	Frequency   int
	FilterBoost float64
}

// SetOffset validates and assigns the half-open [start,end) byte range.
func (t *Token) SetOffset(start, end int) error {
	if start < 0 || start > end {
		return newError(ConfigInvalid, "Token.SetOffset", nil)
	}
	t.Start, t.End = start, end
	return nil
}

// Reset clears a token so it can be reused across Next() calls without
// allocating, the way an attribute bundle is cleared between increments.
func (t *Token) Reset() {
	t.Term = t.Term[:0]
	t.Start, t.End = 0, 0
	t.PositionIncrement = 0
	t.Frequency = 0
	t.FilterBoost = 0
}

// AdvancePosition folds a token's PositionIncrement into a running
// absolute position, starting from noPosition: the first nonzero
// increment applied to noPosition wraps unsigned arithmetic around to 0
// (noPosition+1 == 0), not to 1 — a literal unsigned wraparound rather
// than a signed -1 sentinel.
func AdvancePosition(position uint32, increment uint32) uint32 {
	return position + increment
}

// StartPosition is the position value a stream should begin accumulating
// from; the first call to AdvancePosition(StartPosition, inc) yields
// inc-1.
const StartPosition = noPosition
