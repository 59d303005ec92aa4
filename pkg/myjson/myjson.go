// Package myjson parses JSON text into a value.Value tree.
//
// Parsing runs in two stages: lexer.Lex turns the text into tokens and
// parser.Parser builds the tree from them. Numbers are unsigned integer
// literals only. All failures are *jsonerr.Error values; use errors.Is with
// the jsonerr sentinels or errors.As to inspect them.
package myjson

import (
	"github.com/pkg/errors"

	"github.com/a2ikm/myjson-ruby/pkg/core/value"
	"github.com/a2ikm/myjson-ruby/pkg/lexer"
	"github.com/a2ikm/myjson-ruby/pkg/parser"
)

// Parse parses text as a single JSON value.
func Parse(text string, opts ...parser.Option) (value.Value, error) {
	tokens, err := lexer.Lex(text)
	if err != nil {
		return value.Value{}, errors.WithStack(err)
	}

	v, err := parser.New(tokens, opts...).Parse()
	if err != nil {
		return value.Value{}, errors.WithStack(err)
	}
	return v, nil
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(b []byte, opts ...parser.Option) (value.Value, error) {
	return Parse(string(b), opts...)
}
