package analysis

import "github.com/op/go-logging"

var log = logging.MustGetLogger("analysis")

// Analyzer is the core tokenization contract: Reset attaches new
// input, Next advances to the next token (returning false at end of
// stream or on a fatal error retrievable via Err), Token returns the
// current token's attributes.
//
// It collapses a separate TokenStream/IncrementToken/Attributes().Get(...)
// dance into three calls, since the fixed Token struct removes the need
// for attribute-by-name lookups.
type Analyzer interface {
	Reset(input []byte) error
	Next() bool
	Token() *Token
	// Err returns the error, if any, that caused the last Next() to
	// return false. A nil Err with Next()==false means a clean EOF.
	Err() error
}

// Factory builds a new Analyzer instance from JSON or text arguments.
// Registered factories are keyed by (name, format) per the external
// interface: one analyzer name may accept both "jsonpb"-style JSON args
// and a bare text shorthand (e.g. a delimiter analyzer's single
// separator string).
type Factory func(args []byte) (Analyzer, error)

type registryKey struct {
	name   string
	format string
}

var registry = map[registryKey]Factory{}

// Register installs a factory under (name, format). Re-registering the
// same key replaces the previous factory, which is convenient for tests.
func Register(name, format string, f Factory) {
	registry[registryKey{name, format}] = f
}

// New resolves (name, format) and invokes its factory. Unknown keys are
// ConfigInvalid: bad configuration never panics.
func New(name, format string, args []byte) (Analyzer, error) {
	f, ok := registry[registryKey{name, format}]
	if !ok {
		return nil, newError(ConfigInvalid, "New", nil)
	}
	a, err := f(args)
	if err != nil {
		return nil, err
	}
	return a, nil
}
