package rpncalc

// Option is an option for conversion and evaluation. Options which do not
// concern a stage are ignored by it, so the same list may be passed to ToRPN
// and Eval.
type Option interface {
	apply(settings) settings
}

// settings holds the behavior switches set by options.
type settings struct {
	// strayclose keeps close parentheses that have no matching open in the
	// postfix output, so that evaluation rejects them.
	strayclose bool
	// lenient makes Eval return the top of the stack when more than one value
	// remains, instead of failing.
	lenient bool
}

type (
	strictopt  struct{}
	lenientopt struct{}
	presetopt  settings
)

// StrictParens tells ToRPN to pass a close parenthesis with no matching open
// parenthesis through to its output. Eval then fails on it with
// ErrMismatchedParentheses. By default such a parenthesis is dropped, so that
// "2 + 3)" evaluates to 5.
func StrictParens() Option {
	return strictopt{}
}

func (strictopt) apply(s settings) settings {
	s.strayclose = true
	return s
}

// Lenient tells Eval to return the most recently pushed value when a postfix
// sequence leaves more than one value on the stack, discarding the rest. By
// default, Eval fails with ErrMalformedExpression, e.g. for "2 3".
func Lenient() Option {
	return lenientopt{}
}

func (lenientopt) apply(s settings) settings {
	s.lenient = true
	return s
}

// Preset collapses a list of options into one. It is convenient for callers
// that build option lists from configuration.
func Preset(opts ...Option) Option {
	return presetopt(collect(opts))
}

func (o presetopt) apply(s settings) settings {
	s.strayclose = s.strayclose || o.strayclose
	s.lenient = s.lenient || o.lenient
	return s
}

func collect(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		s = opt.apply(s)
	}
	return s
}
