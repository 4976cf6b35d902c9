package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// KindIncomplete means an expected field or line is missing.
	KindIncomplete ErrorKind = iota + 1
	// KindSyntax means a line or field does not have its expected shape.
	KindSyntax
	// KindUnsupported means a value is outside the closed set it must belong to.
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindIncomplete:
		return "incomplete input"
	case KindSyntax:
		return "syntax error"
	case KindUnsupported:
		return "unsupported value"
	default:
		return "parse error"
	}
}

// Sentinels for errors.Is.
var (
	ErrIncomplete  = errors.New("incomplete input")
	ErrSyntax      = errors.New("syntax error")
	ErrUnsupported = errors.New("unsupported value")
)

// Error is the single error type returned by Parse.
type Error struct {
	Kind ErrorKind
	// Line is the 0-based index of the offending line in the input.
	// It is only meaningful when HasLine is set.
	Line    int
	Text    string
	HasLine bool
	Reason  string
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.HasLine {
		fmt.Fprintf(&sb, " on line %d", e.Line+1)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.HasLine {
		sb.WriteString("\n ")
		sb.WriteString(e.Text)
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrIncomplete:
		return e.Kind == KindIncomplete
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrUnsupported:
		return e.Kind == KindUnsupported
	}
	return false
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func syntaxErrorf(format string, args ...any) *Error {
	return newError(KindSyntax, format, args...)
}

func incompletef(format string, args ...any) *Error {
	return newError(KindIncomplete, format, args...)
}

func unsupportedf(format string, args ...any) *Error {
	return newError(KindUnsupported, format, args...)
}

// withField prefixes the reason of err with the name of the field being decoded.
func withField(name string, err error) error {
	var pe *Error
	if errors.As(err, &pe) {
		pe.Reason = name + ": " + pe.Reason
		return pe
	}
	return &Error{Kind: KindSyntax, Reason: name + ": " + err.Error(), Err: err}
}

// attachLine records where err happened. A line that is already attached
// is kept so the innermost position wins.
func attachLine(err error, line Line) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if !errors.As(err, &pe) {
		pe = &Error{Kind: KindSyntax, Reason: err.Error(), Err: err}
	}
	if !pe.HasLine {
		pe.Line = line.Index
		pe.Text = line.Text
		pe.HasLine = true
	}
	return pe
}
