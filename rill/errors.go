package rill

import "fmt"

// Expectable names a syntactic category the parser was hoping for when it
// ran out of more specific token kinds to name (spec §4.2 error policy).
type Expectable string

const (
	ExpectExpression Expectable = "Expression"
	ExpectScope      Expectable = "Scope"
	ExpectCallable   Expectable = "Callable"
)

// ParseError is the single, first-recorded syntax error a parse run
// produces. Later productions must not overwrite it (spec §4.2).
type ParseError struct {
	Row, Column int
	WantKind    Kind
	WantCategory Expectable
	Got         Token
}

func (e *ParseError) Error() string {
	want := e.WantKind.String()
	if e.WantCategory != "" {
		want = string(e.WantCategory)
	}
	got := "end of input"
	if e.Got.Kind != EOF {
		got = fmt.Sprintf("%q (%s)", e.Got.Value, e.Got.Kind)
	}
	return fmt.Sprintf("%d:%d: expected %s, got %s", e.Row, e.Column, want, got)
}

// RuntimeErrorKind classifies a fatal runtime error per spec §7's taxonomy.
type RuntimeErrorKind string

const (
	ErrUndeclaredVariable RuntimeErrorKind = "undeclared variable"
	ErrRedeclaration      RuntimeErrorKind = "redeclaration"
	ErrTypeMismatch       RuntimeErrorKind = "type mismatch"
	ErrArityMismatch      RuntimeErrorKind = "arity mismatch"
	ErrBadEscape          RuntimeErrorKind = "unrecognized escape sequence"
	ErrBadCondition       RuntimeErrorKind = "non-bool condition"
	ErrBadIterable        RuntimeErrorKind = "non-array iterable"
)

// RuntimeError is a fatal evaluation-time error. Evaluation aborts
// immediately when one is produced (spec §7, "Propagation").
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Row, Column int
	Message string
}

func (e *RuntimeError) Error() string {
	if e.Row == 0 && e.Column == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Row, e.Column, e.Kind, e.Message)
}

func runtimeErrorAt(tok *Token, kind RuntimeErrorKind, format string, args ...any) *RuntimeError {
	err := &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if tok != nil {
		err.Row, err.Column = tok.Row, tok.Column
	}
	return err
}
