package jsonerr

import (
	"fmt"
	"strings"
)

// Kind classifies a parse failure.
type Kind uint8

const (
	KindUnexpectedCharacter Kind = iota + 1
	KindUnexpectedToken
	KindUnknownKeyword
	KindNoValue
)

func (k Kind) String() string {
	switch k {
	case KindUnexpectedCharacter:
		return "unexpected character"
	case KindUnexpectedToken:
		return "unexpected token"
	case KindUnknownKeyword:
		return "unknown keyword"
	case KindNoValue:
		return "no value"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Error is the only error type produced by the lexer and the parser.
// Offset is a byte offset into the source and Line is 1-based.
type Error struct {
	Kind     Kind
	Offset   int
	Line     int
	Expected string
	Found    string
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrUnexpectedCharacter = &Error{Kind: KindUnexpectedCharacter}
	ErrUnexpectedToken     = &Error{Kind: KindUnexpectedToken}
	ErrUnknownKeyword      = &Error{Kind: KindUnknownKeyword}
	ErrNoValue             = &Error{Kind: KindNoValue}
)

// EndOfInput is reported as Found when the source runs out.
const EndOfInput = "end of input"

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	fmt.Fprintf(&sb, " at line %d offset %d", e.Line, e.Offset)
	if e.Expected != "" {
		fmt.Fprintf(&sb, ": expected %s, found %s", e.Expected, e.Found)
	} else if e.Found != "" {
		fmt.Fprintf(&sb, ": found %s", e.Found)
	}
	return sb.String()
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an *Error of the given kind.
func New(kind Kind, offset, line int, expected, found string) *Error {
	return &Error{
		Kind:     kind,
		Offset:   offset,
		Line:     line,
		Expected: expected,
		Found:    found,
	}
}
