package analysis

import "testing"

func TestNewUnknownAnalyzerIsConfigInvalid(t *testing.T) {
	_, err := New("does-not-exist", "json", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	aerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T, want *Error", err)
	}
	if aerr.Kind != ConfigInvalid {
		t.Errorf("got kind %v, want ConfigInvalid", aerr.Kind)
	}
}

func TestNewDispatchesToRegisteredFactory(t *testing.T) {
	a, err := New("delimiter", "text", []byte(","))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := collectTerms(t, a, []byte("a,b"))
	if !stringSliceEqual(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}

func TestRegisterReplacesExistingFactory(t *testing.T) {
	stale, calls := 0, 0
	Register("probe", "json", func(args []byte) (Analyzer, error) {
		stale++
		return newNormAnalyzer(args)
	})
	Register("probe", "json", func(args []byte) (Analyzer, error) {
		calls++
		return newNormAnalyzer(args)
	})
	defer delete(registry, registryKey{"probe", "json"})

	if _, err := New("probe", "json", nil); err != nil {
		t.Fatalf("New: %v", err)
	}
	if calls != 1 || stale != 0 {
		t.Errorf("replacement factory called %d times, replaced factory %d times; want 1 and 0", calls, stale)
	}
}
