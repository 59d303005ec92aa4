package lexer

import (
	"io"
	"strconv"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/a2ikm/myjson-ruby/pkg/core/jsonerr"
)

// Scanner performs lexical analysis on JSON source.
type Scanner struct {
	source string
	cursor int
	line   int
	buf    []byte // decoded string payload, reused across tokens
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// Reset re-initializes the scanner with new source for pool reuse.
func (s *Scanner) Reset(source string) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.buf = s.buf[:0]
}

// Next returns the next token from the source, or io.EOF once the source is
// exhausted. Any other error is a *jsonerr.Error.
func (s *Scanner) Next() (Token, error) {
	s.skipWhitespace()

	if s.cursor >= len(s.source) {
		return Token{}, io.EOF
	}

	start := s.cursor
	ch := s.source[s.cursor]

	switch {
	case isSymbol(ch):
		s.cursor++
		return Token{Kind: KindSymbol, Text: s.source[start:s.cursor], Offset: start, Length: 1, Line: s.line}, nil
	case ch == '"':
		return s.scanString()
	case isDigit(ch):
		return s.scanRun(KindNumber, isDigit), nil
	case isLower(ch):
		return s.scanRun(KindKeyword, isLower), nil
	}

	r, _ := utf8.DecodeRuneInString(s.source[s.cursor:])
	return Token{}, jsonerr.New(jsonerr.KindUnexpectedCharacter, start, s.line, "", strconv.QuoteRune(r))
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			s.cursor++
		} else if ch == '\n' {
			s.line++
			s.cursor++
		} else {
			break
		}
	}
}

func (s *Scanner) scanRun(kind Kind, accept func(byte) bool) Token {
	start := s.cursor
	for s.cursor < len(s.source) && accept(s.source[s.cursor]) {
		s.cursor++
	}
	return Token{Kind: kind, Text: s.source[start:s.cursor], Offset: start, Length: s.cursor - start, Line: s.line}
}

// scanString decodes a string literal. Text is a substring of the source
// unless an escape sequence forced a copy into buf.
func (s *Scanner) scanString() (Token, error) {
	start, line := s.cursor, s.line
	s.cursor++ // Skip opening '"'

	bodyStart := s.cursor
	escaped := false
	s.buf = s.buf[:0]

	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		switch ch {
		case '"':
			text := s.source[bodyStart:s.cursor]
			if escaped {
				text = string(s.buf)
			}
			s.cursor++ // Skip closing '"'
			return Token{Kind: KindString, Text: text, Offset: start, Length: s.cursor - start, Line: line}, nil
		case '\\':
			if s.cursor+1 >= len(s.source) {
				s.cursor++
				return Token{}, s.unterminated()
			}
			if !escaped {
				s.buf = append(s.buf, s.source[bodyStart:s.cursor]...)
				escaped = true
			}
			s.scanEscape()
		default:
			if ch == '\n' {
				s.line++
			}
			if escaped {
				s.buf = append(s.buf, ch)
			}
			s.cursor++
		}
	}

	return Token{}, s.unterminated()
}

// scanEscape decodes the escape sequence at the cursor, which points at a
// backslash followed by at least one more byte.
func (s *Scanner) scanEscape() {
	esc := s.source[s.cursor+1]
	switch esc {
	case '"', '\\', '/':
		s.buf = append(s.buf, esc)
	case 'b':
		s.buf = append(s.buf, '\b')
	case 'f':
		s.buf = append(s.buf, '\f')
	case 'n':
		s.buf = append(s.buf, '\n')
	case 'r':
		s.buf = append(s.buf, '\r')
	case 't':
		s.buf = append(s.buf, '\t')
	case 'u':
		if r, ok := s.hex4(s.cursor + 2); ok {
			s.cursor += 6
			s.buf = utf8.AppendRune(s.buf, s.surrogatePair(r))
			return
		}
		s.buf = append(s.buf, 'u')
	default:
		if esc == '\n' {
			s.line++
		}
		s.buf = append(s.buf, esc)
	}
	s.cursor += 2
}

// surrogatePair combines a high surrogate with an immediately following
// \uXXXX low surrogate. Unpaired surrogates become U+FFFD.
func (s *Scanner) surrogatePair(r rune) rune {
	if !utf16.IsSurrogate(r) {
		return r
	}
	if r < 0xDC00 && s.cursor+1 < len(s.source) && s.source[s.cursor] == '\\' && s.source[s.cursor+1] == 'u' {
		if lo, ok := s.hex4(s.cursor + 2); ok {
			if combined := utf16.DecodeRune(r, lo); combined != utf8.RuneError {
				s.cursor += 6
				return combined
			}
		}
	}
	return utf8.RuneError
}

// hex4 decodes exactly four hex digits starting at i.
func (s *Scanner) hex4(i int) (rune, bool) {
	if i+4 > len(s.source) {
		return 0, false
	}
	var r rune
	for _, ch := range []byte(s.source[i : i+4]) {
		var d byte
		switch {
		case ch >= '0' && ch <= '9':
			d = ch - '0'
		case ch >= 'a' && ch <= 'f':
			d = ch - 'a' + 10
		case ch >= 'A' && ch <= 'F':
			d = ch - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}

func (s *Scanner) unterminated() error {
	return jsonerr.New(jsonerr.KindUnexpectedCharacter, s.cursor, s.line, `'"'`, jsonerr.EndOfInput)
}

func isSymbol(ch byte) bool {
	switch ch {
	case '[', ']', '{', '}', ',', ':':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLower(ch byte) bool {
	return ch >= 'a' && ch <= 'z'
}

var scannerPool = sync.Pool{
	New: func() any {
		return NewScanner("")
	},
}

// GetScanner takes a scanner from the pool and resets it to source.
func GetScanner(source string) *Scanner {
	s := scannerPool.Get().(*Scanner)
	s.Reset(source)
	return s
}

// PutScanner returns s to the pool. The source reference is dropped.
func PutScanner(s *Scanner) {
	s.Reset("")
	scannerPool.Put(s)
}

// Lex scans source end to end and returns its tokens in order.
func Lex(source string) ([]Token, error) {
	s := GetScanner(source)
	defer PutScanner(s)

	var tokens []Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}
