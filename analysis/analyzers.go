package analysis

import (
	"bytes"
	"encoding/json"
	"unicode"
	"unicode/utf8"
)

// Stemmer is the opaque sub-analyzer the text analyzer may delegate to.
// It is a Non-goal to implement a real stemmer; this interface exists so
// one can be registered, and so its failure exercises the
// TransientSubAnalyzer error kind: a stemmer that errors makes the
// text analyzer fall back to the unstemmed term rather than drop the
// token.
type Stemmer interface {
	Stem(term []byte, language string) ([]byte, error)
}

// noopStemmer never changes the term; it is the default when no stemmer
// is registered for a locale.
type noopStemmer struct{}

func (noopStemmer) Stem(term []byte, _ string) ([]byte, error) { return term, nil }

var stemmers = map[string]Stemmer{}

// RegisterStemmer installs a Stemmer for a language tag. Tests install a
// fake stemmer (including one that always errors) to exercise the
// TransientSubAnalyzer fallback.
func RegisterStemmer(language string, s Stemmer) { stemmers[language] = s }

func stemmerFor(language string) Stemmer {
	if s, ok := stemmers[language]; ok {
		return s
	}
	return noopStemmer{}
}

// --- delimiter analyzer -----------------------------------------------

type delimiterArgs struct {
	Delimiter string `json:"delimiter"`
}

// delimiterAnalyzer splits input on a fixed separator. It is a
// source-preserving tokenizer: every emitted token's offsets are a
// contiguous slice of the original input.
type delimiterAnalyzer struct {
	sep   []byte
	input []byte
	pos   int
	tok   Token
	err   error
	done  bool
}

func newDelimiterAnalyzer(args []byte) (Analyzer, error) {
	var a delimiterArgs
	if len(bytes.TrimSpace(args)) > 0 && args[0] == '{' {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, newError(ConfigInvalid, "delimiter", err)
		}
	} else {
		a.Delimiter = string(args)
	}
	if a.Delimiter == "" {
		return nil, newError(ConfigInvalid, "delimiter", nil)
	}
	return &delimiterAnalyzer{sep: []byte(a.Delimiter)}, nil
}

func (d *delimiterAnalyzer) Reset(input []byte) error {
	d.input = input
	d.pos = 0
	d.done = false
	d.err = nil
	return nil
}

func (d *delimiterAnalyzer) Next() bool {
	if d.done {
		return false
	}

	start := d.pos
	idx := bytes.Index(d.input[start:], d.sep)
	var end int
	if idx < 0 {
		end = len(d.input)
		d.done = true
	} else {
		end = start + idx
		d.pos = end + len(d.sep)
	}

	d.tok.Term = d.input[start:end]
	d.tok.Start, d.tok.End = start, end
	d.tok.PositionIncrement = 1
	return true
}

func (d *delimiterAnalyzer) Token() *Token { return &d.tok }
func (d *delimiterAnalyzer) Err() error    { return d.err }

// --- norm analyzer -------------------------------------------------

type normArgs struct {
	Locale string `json:"locale"`
	Case   string `json:"case"` // "lower", "upper", "none"
}

// normAnalyzer emits the whole input as a single, case-folded token: a
// source-preserving normalizer per the pipeline's offset-propagation
// rule (its offsets always equal [0,len(input))).
type normAnalyzer struct {
	caseMode string
	tok      Token
	emitted  bool
}

func newNormAnalyzer(args []byte) (Analyzer, error) {
	a := normArgs{Case: "lower"}
	if len(bytes.TrimSpace(args)) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, newError(ConfigInvalid, "norm", err)
		}
	}
	switch a.Case {
	case "lower", "upper", "none", "":
	default:
		return nil, newError(ConfigInvalid, "norm", nil)
	}
	if a.Case == "" {
		a.Case = "lower"
	}
	return &normAnalyzer{caseMode: a.Case}, nil
}

func (n *normAnalyzer) Reset(input []byte) error {
	n.tok.Term = foldCase(input, n.caseMode)
	n.tok.Start, n.tok.End = 0, len(input)
	n.tok.PositionIncrement = 1
	n.emitted = false
	return nil
}

func (n *normAnalyzer) Next() bool {
	if n.emitted {
		return false
	}
	n.emitted = true
	return true
}

func (n *normAnalyzer) Token() *Token { return &n.tok }
func (n *normAnalyzer) Err() error    { return nil }

func foldCase(in []byte, mode string) []byte {
	switch mode {
	case "lower":
		return bytes.ToLower(in)
	case "upper":
		return bytes.ToUpper(in)
	default:
		out := make([]byte, len(in))
		copy(out, in)
		return out
	}
}

// --- ngram analyzer --------------------------------------------------

type ngramArgs struct {
	Min              int  `json:"min"`
	Max              int  `json:"max"`
	PreserveOriginal bool `json:"preserveOriginal"`
}

// ngramAnalyzer emits every character n-gram of lengths [Min,Max] found
// in the input, in left-to-right, increasing-length order per position —
// this is the analysis-time n-gram tokenizer (distinct from the n-gram
// similarity filter in the similarity package, which matches already
// tokenized postings). When preserveOriginal is set, the whole input
// passed to Reset is also emitted once, as an extra token at the
// position of the first n-gram, carrying PositionIncrement 0 (a synonym
// of that first n-gram rather than a new position).
type ngramAnalyzer struct {
	min, max         int
	preserveOriginal bool

	input   []byte
	runes   []rune
	offsets []int // byte offset of each rune, plus a trailing end sentinel
	i, n    int
	tok     Token

	pendingOriginal bool
	originalEmitted bool
}

func newNgramAnalyzer(args []byte) (Analyzer, error) {
	a := ngramArgs{Min: 2, Max: 2}
	if len(bytes.TrimSpace(args)) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, newError(ConfigInvalid, "ngram", err)
		}
	}
	if a.Min < 1 || a.Max < a.Min {
		return nil, newError(ConfigInvalid, "ngram", nil)
	}
	return &ngramAnalyzer{min: a.Min, max: a.Max, preserveOriginal: a.PreserveOriginal}, nil
}

func (g *ngramAnalyzer) Reset(input []byte) error {
	g.input = input
	g.runes = g.runes[:0]
	g.offsets = g.offsets[:0]
	off := 0
	for off < len(input) {
		r, size := utf8.DecodeRune(input[off:])
		g.runes = append(g.runes, r)
		g.offsets = append(g.offsets, off)
		off += size
	}
	g.offsets = append(g.offsets, off)
	g.i, g.n = 0, g.min
	g.pendingOriginal = false
	g.originalEmitted = false
	return nil
}

func (g *ngramAnalyzer) Next() bool {
	for {
		if g.pendingOriginal {
			g.pendingOriginal = false
			g.tok.Term = g.input
			g.tok.Start, g.tok.End = 0, len(g.input)
			g.tok.PositionIncrement = 0
			return true
		}

		if g.i >= len(g.runes) {
			return false
		}
		if g.i+g.n > len(g.runes) {
			g.i++
			g.n = g.min
			continue
		}

		start := g.offsets[g.i]
		end := g.offsets[g.i+g.n]
		g.tok.Term = []byte(string(g.runes[g.i : g.i+g.n]))
		g.tok.Start, g.tok.End = start, end
		if g.n == g.min {
			g.tok.PositionIncrement = 1
		} else {
			g.tok.PositionIncrement = 0
		}

		if g.preserveOriginal && !g.originalEmitted && g.i == 0 && g.n == g.min {
			g.pendingOriginal = true
			g.originalEmitted = true
		}

		g.n++
		if g.n > g.max {
			g.n = g.min
			g.i++
		}
		return true
	}
}

func (g *ngramAnalyzer) Token() *Token { return &g.tok }
func (g *ngramAnalyzer) Err() error    { return nil }

// --- text analyzer -----------------------------------------------------

type textArgs struct {
	Locale       string   `json:"locale"`
	Stopwords    []string `json:"stopwords"`
	StopwordsDir string   `json:"stopwords_path"`
	Case         string   `json:"case"` // "lower", "upper", "none"
	Stemming     bool     `json:"stemming"`
}

type textConfig struct {
	language  string
	stopwords map[string]bool
	caseMode  string
	stemming  bool
}

// textAnalyzer is the "text" analyzer: tokenizes on unicode letter/digit
// runs, case-folds, drops stopwords, and optionally stems. Its resolved
// config (stopwords merged from every applicable source, locale
// case-folding mode) is exactly the state the process-wide cache
// memoizes, since resolving a stopword directory is the expensive part.
type textAnalyzer struct {
	cfg *textConfig

	runes   []rune
	offsets []int
	i       int

	tok              Token
	skippedPositions int
}

func newTextAnalyzer(args []byte) (Analyzer, error) {
	a := textArgs{Case: "lower"}
	if len(bytes.TrimSpace(args)) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, newError(ConfigInvalid, "text", err)
		}
	}

	key := hashArgs("text", args)
	cfgVal, err := globalCache.GetOrCompute("text", key, func() (interface{}, error) {
		stopwords, err := resolveStopwords(a.Stopwords, a.StopwordsDir, a.Locale)
		if err != nil {
			return nil, err
		}
		return &textConfig{
			language:  a.Locale,
			stopwords: stopwords,
			caseMode:  a.Case,
			stemming:  a.Stemming,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return &textAnalyzer{cfg: cfgVal.(*textConfig)}, nil
}

func (t *textAnalyzer) Reset(input []byte) error {
	t.runes = t.runes[:0]
	t.offsets = t.offsets[:0]
	off := 0
	for off < len(input) {
		r, size := utf8.DecodeRune(input[off:])
		t.runes = append(t.runes, r)
		t.offsets = append(t.offsets, off)
		off += size
	}
	t.offsets = append(t.offsets, off)
	t.i = 0
	t.skippedPositions = 0
	return nil
}

func (t *textAnalyzer) Next() bool {
	for {
		start := t.i
		for start < len(t.runes) && !isWordRune(t.runes[start]) {
			start++
		}
		if start >= len(t.runes) {
			t.i = start
			return false
		}
		end := start
		for end < len(t.runes) && isWordRune(t.runes[end]) {
			end++
		}
		t.i = end

		term := []byte(string(t.runes[start:end]))
		term = foldCase(term, t.cfg.caseMode)

		if t.cfg.stopwords[string(term)] {
			t.skippedPositions++
			continue
		}

		if t.cfg.stemming {
			stemmed, err := stemmerFor(t.cfg.language).Stem(term, t.cfg.language)
			if err != nil {
				log.Warning("stemmer failed, falling back to unstemmed term: ", err)
			} else {
				term = stemmed
			}
		}

		t.tok.Term = term
		t.tok.Start, t.tok.End = t.offsets[start], t.offsets[end]
		t.tok.PositionIncrement = uint32(t.skippedPositions + 1)
		t.skippedPositions = 0
		return true
	}
}

func (t *textAnalyzer) Token() *Token { return &t.tok }
func (t *textAnalyzer) Err() error    { return nil }

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func init() {
	Register("delimiter", "text", newDelimiterAnalyzer)
	Register("delimiter", "json", newDelimiterAnalyzer)
	Register("norm", "json", newNormAnalyzer)
	Register("norm", "text", newNormAnalyzer)
	Register("ngram", "json", newNgramAnalyzer)
	Register("text", "json", newTextAnalyzer)
}
