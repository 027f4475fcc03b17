package analysis

import (
	"testing"
)

func collectTerms(t *testing.T, a Analyzer, input []byte) []string {
	t.Helper()
	if err := a.Reset(input); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	var terms []string
	for a.Next() {
		terms = append(terms, string(a.Token().Term))
	}
	if err := a.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	return terms
}

func TestDelimiterAnalyzer(t *testing.T) {
	tests := []struct {
		name  string
		args  string
		input string
		want  []string
	}{
		{"comma", ",", "a,b,c", []string{"a", "b", "c"}},
		{"single", ",", "onlyone", []string{"onlyone"}},
		{"trailing-empty", ",", "a,b,", []string{"a", "b", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := newDelimiterAnalyzer([]byte(tt.args))
			if err != nil {
				t.Fatalf("newDelimiterAnalyzer: %v", err)
			}
			got := collectTerms(t, a, []byte(tt.input))
			if !stringSliceEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormAnalyzerLowercases(t *testing.T) {
	a, err := newNormAnalyzer([]byte(`{"case":"lower"}`))
	if err != nil {
		t.Fatalf("newNormAnalyzer: %v", err)
	}
	got := collectTerms(t, a, []byte("HeLLo"))
	if !stringSliceEqual(got, []string{"hello"}) {
		t.Errorf("got %v", got)
	}
}

func TestNormAnalyzerOffsetsSpanWholeInput(t *testing.T) {
	a, err := newNormAnalyzer(nil)
	if err != nil {
		t.Fatalf("newNormAnalyzer: %v", err)
	}
	if err := a.Reset([]byte("hello")); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !a.Next() {
		t.Fatal("expected a token")
	}
	tok := a.Token()
	if tok.Start != 0 || tok.End != 5 {
		t.Errorf("got offsets [%d,%d), want [0,5)", tok.Start, tok.End)
	}
}

func TestNgramAnalyzer(t *testing.T) {
	a, err := newNgramAnalyzer([]byte(`{"min":2,"max":3}`))
	if err != nil {
		t.Fatalf("newNgramAnalyzer: %v", err)
	}
	got := collectTerms(t, a, []byte("abcd"))
	want := []string{"ab", "abc", "bc", "bcd", "cd"}
	if !stringSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNgramAnalyzerPreserveOriginal(t *testing.T) {
	a, err := newNgramAnalyzer([]byte(`{"min":2,"max":2,"preserveOriginal":true}`))
	if err != nil {
		t.Fatalf("newNgramAnalyzer: %v", err)
	}
	if err := a.Reset([]byte("quick")); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	var terms []string
	var incs []uint32
	for a.Next() {
		tok := a.Token()
		terms = append(terms, string(tok.Term))
		incs = append(incs, tok.PositionIncrement)
	}

	wantTerms := []string{"qu", "quick", "ui", "ic", "ck"}
	if !stringSliceEqual(terms, wantTerms) {
		t.Fatalf("got %v, want %v", terms, wantTerms)
	}
	wantIncs := []uint32{1, 0, 1, 1, 1}
	if len(incs) != len(wantIncs) {
		t.Fatalf("got %v, want %v", incs, wantIncs)
	}
	for i := range wantIncs {
		if incs[i] != wantIncs[i] {
			t.Errorf("index %d: got increment %d, want %d", i, incs[i], wantIncs[i])
		}
	}
}

func TestTextAnalyzerDropsStopwordsAndCaseFolds(t *testing.T) {
	a, err := newTextAnalyzer([]byte(`{"stopwords":["the","a"],"case":"lower"}`))
	if err != nil {
		t.Fatalf("newTextAnalyzer: %v", err)
	}
	got := collectTerms(t, a, []byte("The Quick Brown Fox jumps over a Lazy Dog"))
	want := []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}
	if !stringSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTextAnalyzerPositionIncrementSkipsStopwords(t *testing.T) {
	a, err := newTextAnalyzer([]byte(`{"stopwords":["the"]}`))
	if err != nil {
		t.Fatalf("newTextAnalyzer: %v", err)
	}
	if err := a.Reset([]byte("cat the dog")); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	var incs []uint32
	for a.Next() {
		incs = append(incs, a.Token().PositionIncrement)
	}
	// "cat" (1), "the" dropped, "dog" absorbs the skip -> increment 2
	want := []uint32{1, 2}
	if len(incs) != len(want) {
		t.Fatalf("got %v, want %v", incs, want)
	}
	for i := range want {
		if incs[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, incs[i], want[i])
		}
	}
}

type failingStemmer struct{}

func (failingStemmer) Stem(term []byte, _ string) ([]byte, error) {
	return nil, newError(TransientSubAnalyzer, "failingStemmer", nil)
}

func TestTextAnalyzerStemmerFallback(t *testing.T) {
	RegisterStemmer("zz", failingStemmer{})
	defer delete(stemmers, "zz")

	a, err := newTextAnalyzer([]byte(`{"locale":"zz","stemming":true}`))
	if err != nil {
		t.Fatalf("newTextAnalyzer: %v", err)
	}
	got := collectTerms(t, a, []byte("running"))
	if !stringSliceEqual(got, []string{"running"}) {
		t.Errorf("expected fallback to unstemmed term, got %v", got)
	}
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
