package analysis

// Pipeline composes N analyzers into one token stream. Stage
// 0 consumes the raw input bytes (typically a tokenizer); every later
// stage consumes the term bytes of the token its predecessor just
// produced. Because a stage can itself emit more than one token per
// input (an n-gram or delimiter stage, say), advancing the whole
// pipeline is a lazy, depth-first cartesian expansion: every token a
// stage produces is fully exhausted through every later stage before the
// stage backtracks for its own next token.
//
// Its input-chaining shape generalizes single-token 1:1 filtering to
// the branching case where a stage emits more than one token per input.
type Pipeline struct {
	stages []Analyzer
	depth  int // -1 once exhausted
	cur    Token
	err    error

	// posCarry[d] holds the position increment of the token being
	// emitted from depth d and is cleared after each emit. Ancestor
	// stages' increments are not added to it, so the emitted
	// PositionIncrement is the emitting stage's own token increment.
	posCarry []uint32
}

// NewPipeline builds a pipeline from stages in application order:
// stages[0] is applied to the raw input first.
func NewPipeline(stages ...Analyzer) *Pipeline {
	return &Pipeline{
		stages:   stages,
		depth:    -1,
		posCarry: make([]uint32, len(stages)),
	}
}

func (p *Pipeline) Reset(input []byte) error {
	if len(p.stages) == 0 {
		p.depth = -1
		return nil
	}
	if err := p.stages[0].Reset(input); err != nil {
		p.err = err
		p.depth = -1
		return err
	}
	p.depth = 0
	p.err = nil
	for i := range p.posCarry {
		p.posCarry[i] = 0
	}
	return nil
}

func (p *Pipeline) Next() bool {
	for p.depth >= 0 {
		stage := p.stages[p.depth]
		if !stage.Next() {
			if err := stage.Err(); err != nil {
				p.err = err
			}
			p.depth--
			continue
		}

		tok := stage.Token()

		if p.depth == len(p.stages)-1 {
			p.emit(tok)
			return true
		}

		next := p.stages[p.depth+1]
		if err := next.Reset(tok.Term); err != nil {
			if terr, ok := err.(*Error); ok && terr.Kind == TransientSubAnalyzer {
				// fall back to the parent token unmodified rather than
				// drop it.
				p.emit(tok)
				return true
			}
			p.err = err
			p.depth--
			continue
		}
		p.depth++
	}
	return false
}

// emit computes the leaf token's offsets and position increment from the
// current stack of parent tokens. Offsets are pinned to the immediate
// parent's slice: a leaf token's [start,end) is interpreted as relative
// to the parent's term bytes and re-based onto the parent's own
// [Start,End) in the original input. A stage that doesn't modify offsets
// (its token spans the whole input it was given) passes its parent's
// offsets through unchanged — a full-span child offset re-bases to
// exactly the parent's range, so one rule covers both the
// source-preserving and the offset-narrowing stage.
func (p *Pipeline) emit(leaf *Token) {
	start, end := leaf.Start, leaf.End
	for d := p.depth - 1; d >= 0; d-- {
		parent := p.stages[d].Token()
		start = parent.Start + start
		end = parent.Start + end
		if end > parent.End {
			end = parent.End
		}
	}

	p.posCarry[p.depth] += leaf.PositionIncrement
	inc := p.posCarry[p.depth]
	for d := p.depth - 1; d >= 0; d-- {
		inc += p.posCarry[d]
	}

	p.cur.Term = leaf.Term
	p.cur.Start, p.cur.End = start, end
	p.cur.PositionIncrement = inc
	p.posCarry[p.depth] = 0
}

func (p *Pipeline) Token() *Token { return &p.cur }
func (p *Pipeline) Err() error    { return p.err }
