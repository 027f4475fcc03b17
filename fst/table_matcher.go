package fst

import "sort"

// DefaultCacheSize is the default label-cache width: the first 256
// label values get O(1) direct-index lookup, everything above falls
// through to binary search.
const DefaultCacheSize = 256

// TableMatcher is a dense |states|x|labels| transition table built once
// from an Automaton, giving O(1)/O(log n) lookup of "given I'm in state
// s and see label l, where do I go" instead of scanning s's arcs.
type TableMatcher struct {
	rho       Label
	cacheSize int

	startLabels []Label
	transitions []StateID // row-major, numStates x len(startLabels)

	cachedOffsets []int // size cacheSize; sentinel len(startLabels) means "absent"

	numStates int

	// current matcher position, set by SetState/Find/Next.
	rowOffset int // s * len(startLabels)
	pos       int // offset within the row, or len(startLabels) when done
}

// NewTableMatcher builds the transition table for a. rho is the label
// a state's last arc may carry to mean "anything else goes here" (the
// fallback/failure-transition label); cacheSize is the direct-index
// cache size (DefaultCacheSize if <= 0).
func NewTableMatcher(a Automaton, rho Label, cacheSize int) *TableMatcher {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	m := &TableMatcher{
		rho:         rho,
		cacheSize:   cacheSize,
		startLabels: startLabels(a),
		numStates:   a.NumStates(),
	}
	m.buildTransitions(a)
	m.buildCache()

	log.Debug("built table matcher: states=", m.numStates, " labels=", len(m.startLabels))
	return m
}

// startLabels collects every distinct arc label used anywhere in a,
// sorted ascending.
func startLabels(a Automaton) []Label {
	seen := make(map[Label]bool)
	for s := 0; s < a.NumStates(); s++ {
		for _, arc := range a.Arcs(StateID(s)) {
			seen[arc.Label] = true
		}
	}
	labels := make([]Label, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

func (m *TableMatcher) buildTransitions(a Automaton) {
	width := len(m.startLabels)
	m.transitions = make([]StateID, m.numStates*width)
	for i := range m.transitions {
		m.transitions[i] = NoState
	}

	for s := 0; s < m.numStates; s++ {
		arcs := a.Arcs(StateID(s))
		row := m.transitions[s*width : s*width+width]

		if len(arcs) > 0 {
			last := arcs[len(arcs)-1]
			if last.Label == m.rho {
				for i := range row {
					row[i] = last.To
				}
			}
		}

		begin, ai := 0, 0
		for ai < len(arcs) && begin < width {
			for ai < len(arcs) && arcs[ai].Label < m.startLabels[begin] {
				ai++
			}
			if ai >= len(arcs) {
				break
			}
			for begin < width && arcs[ai].Label > m.startLabels[begin] {
				begin++
			}
			if begin >= width {
				break
			}
			if arcs[ai].Label == m.startLabels[begin] {
				row[begin] = arcs[ai].To
				begin++
				ai++
			}
		}
	}
}

func (m *TableMatcher) buildCache() {
	m.cachedOffsets = make([]int, m.cacheSize)
	begin := 0
	for begin < len(m.startLabels) && m.startLabels[begin] < 0 {
		begin++
	}
	for i := 0; i < m.cacheSize; i++ {
		if begin < len(m.startLabels) && int(m.startLabels[begin]) == i {
			m.cachedOffsets[i] = begin
			begin++
		} else {
			m.cachedOffsets[i] = len(m.startLabels)
		}
	}
}

func (m *TableMatcher) findLabelOffset(label Label) int {
	if label >= 0 && int(label) < m.cacheSize {
		return m.cachedOffsets[label]
	}

	n := len(m.startLabels)
	idx := sort.Search(n, func(i int) bool { return m.startLabels[i] >= label })
	if idx == n || m.startLabels[idx] != label {
		return n
	}
	return idx
}

// SetState positions the matcher at state s, ready for Find or Next.
func (m *TableMatcher) SetState(s StateID) {
	width := len(m.startLabels)
	m.rowOffset = int(s) * width
	m.pos = 0
}

// Find looks up the transition for label from the state set by
// SetState. ok is false when there is no transition (and no rho
// fallback on that state); otherwise next is the destination state.
func (m *TableMatcher) Find(label Label) (next StateID, ok bool) {
	width := len(m.startLabels)
	offset := m.findLabelOffset(label)

	if offset == width {
		if width == 0 || m.startLabels[width-1] != m.rho {
			return NoState, false
		}
		offset = width - 1
	}

	m.pos = offset
	next = m.transitions[m.rowOffset+offset]
	return next, next != NoState
}

// Next enumerates the remaining populated cells in the current state's
// row in label order, for walking every outgoing transition rather than
// probing a single label. It returns (label, state, false) once
// exhausted.
func (m *TableMatcher) Next() (Label, StateID, bool) {
	width := len(m.startLabels)
	for m.pos < width {
		next := m.transitions[m.rowOffset+m.pos]
		label := m.startLabels[m.pos]
		m.pos++
		if next != NoState {
			return label, next, true
		}
	}
	return NoLabel, NoState, false
}
