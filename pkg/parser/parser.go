package parser

import (
	"fmt"
	"math/big"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/a2ikm/myjson-ruby/pkg/core/jsonerr"
	"github.com/a2ikm/myjson-ruby/pkg/core/value"
	"github.com/a2ikm/myjson-ruby/pkg/lexer"
)

// Parser builds a value tree from a token sequence by recursive descent.
// Every production is a probe: it either consumes tokens and returns
// ok == true, or consumes nothing and returns ok == false. Once a container
// has consumed its opening symbol, everything that follows is mandatory.
type Parser struct {
	tokens []lexer.Token
	pos    int
	depth  int

	cfg    Config
	logger log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithConfig replaces the default limits.
func WithConfig(cfg Config) Option {
	return func(p *Parser) {
		p.cfg = cfg
	}
}

// WithLogger sets the logger used to report failures at debug level.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New returns a parser over tokens. The slice is only read.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens: tokens,
		cfg:    DefaultConfig(),
		logger: log.NewNopLogger(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse consumes the whole token sequence as exactly one value.
func (p *Parser) Parse() (value.Value, error) {
	if err := p.cfg.Validate(); err != nil {
		return value.Value{}, err
	}

	p.pos = 0
	p.depth = 0

	v, err := p.parseDocument()
	if err != nil {
		var jerr *jsonerr.Error
		if errors.As(err, &jerr) {
			level.Debug(p.logger).Log("msg", "parse failed", "kind", jerr.Kind, "line", jerr.Line, "offset", jerr.Offset, "err", err)
		}
		return value.Value{}, err
	}
	return v, nil
}

func (p *Parser) parseDocument() (value.Value, error) {
	v, ok, err := p.parseValue()
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, p.fail(jsonerr.KindNoValue, "value")
	}
	if p.pos < len(p.tokens) {
		return value.Value{}, p.fail(jsonerr.KindUnexpectedToken, "end of input")
	}
	return v, nil
}

// parseValue tries each alternative in order; the first that matches wins.
func (p *Parser) parseValue() (value.Value, bool, error) {
	if v, ok, err := p.parseObject(); ok || err != nil {
		return v, ok, err
	}
	if v, ok, err := p.parseArray(); ok || err != nil {
		return v, ok, err
	}
	if v, ok, err := p.parseNumber(); ok || err != nil {
		return v, ok, err
	}
	if v, ok, err := p.parseString(); ok || err != nil {
		return v, ok, err
	}
	return p.parseKeyword()
}

func (p *Parser) parseObject() (value.Value, bool, error) {
	if !p.acceptSymbol('{') {
		return value.Value{}, false, nil
	}
	if err := p.enter(); err != nil {
		return value.Value{}, false, err
	}
	defer p.leave()

	obj := value.NewObjectMap()

	found, err := p.parsePair(obj)
	if err != nil {
		return value.Value{}, false, err
	}
	if found {
		for p.acceptSymbol(',') {
			ok, err := p.parsePair(obj)
			if err != nil {
				return value.Value{}, false, err
			}
			if !ok {
				return value.Value{}, false, p.fail(jsonerr.KindUnexpectedToken, "string key")
			}
		}
	}

	if !p.acceptSymbol('}') {
		expected := `string key or "}"`
		if found {
			expected = `"," or "}"`
		}
		return value.Value{}, false, p.fail(jsonerr.KindUnexpectedToken, expected)
	}
	return value.NewObject(obj), true, nil
}

// parsePair matches string ':' value and stores it in obj.
func (p *Parser) parsePair(obj *value.Object) (bool, error) {
	tok, ok := p.current()
	if !ok || tok.Kind != lexer.KindString {
		return false, nil
	}
	p.pos++

	if !p.acceptSymbol(':') {
		return false, p.fail(jsonerr.KindUnexpectedToken, `":"`)
	}

	v, ok, err := p.parseValue()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, p.fail(jsonerr.KindNoValue, "value")
	}

	obj.Set(tok.Text, v)
	return true, nil
}

func (p *Parser) parseArray() (value.Value, bool, error) {
	if !p.acceptSymbol('[') {
		return value.Value{}, false, nil
	}
	if err := p.enter(); err != nil {
		return value.Value{}, false, err
	}
	defer p.leave()

	elems := []value.Value{}

	first, found, err := p.parseValue()
	if err != nil {
		return value.Value{}, false, err
	}
	if found {
		elems = append(elems, first)
		for p.acceptSymbol(',') {
			v, ok, err := p.parseValue()
			if err != nil {
				return value.Value{}, false, err
			}
			if !ok {
				return value.Value{}, false, p.fail(jsonerr.KindNoValue, "value")
			}
			elems = append(elems, v)
		}
	}

	if !p.acceptSymbol(']') {
		expected := `value or "]"`
		if found {
			expected = `"," or "]"`
		}
		return value.Value{}, false, p.fail(jsonerr.KindUnexpectedToken, expected)
	}
	return value.NewArray(elems...), true, nil
}

func (p *Parser) parseNumber() (value.Value, bool, error) {
	tok, ok := p.current()
	if !ok || tok.Kind != lexer.KindNumber {
		return value.Value{}, false, nil
	}

	n, ok := new(big.Int).SetString(tok.Text, 10)
	if !ok || n.Sign() < 0 {
		return value.Value{}, false, p.fail(jsonerr.KindUnexpectedToken, "decimal digits")
	}
	p.pos++
	return value.NewInt(n), true, nil
}

func (p *Parser) parseString() (value.Value, bool, error) {
	tok, ok := p.current()
	if !ok || tok.Kind != lexer.KindString {
		return value.Value{}, false, nil
	}
	p.pos++
	return value.NewString(tok.Text), true, nil
}

func (p *Parser) parseKeyword() (value.Value, bool, error) {
	tok, ok := p.current()
	if !ok || tok.Kind != lexer.KindKeyword {
		return value.Value{}, false, nil
	}

	var v value.Value
	switch tok.Text {
	case "true":
		v = value.NewBool(true)
	case "false":
		v = value.NewBool(false)
	case "null":
		v = value.Null()
	default:
		return value.Value{}, false, p.fail(jsonerr.KindUnknownKeyword, "true, false or null")
	}
	p.pos++
	return v, true, nil
}

// enter is called right after an opening symbol has been consumed.
func (p *Parser) enter() error {
	p.depth++
	if limit := p.cfg.maxDepth(); p.depth > limit {
		open := p.tokens[p.pos-1]
		return jsonerr.New(jsonerr.KindUnexpectedToken, open.Offset, open.Line,
			fmt.Sprintf("at most %d nested containers", limit), describe(open))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) current() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) acceptSymbol(sym byte) bool {
	tok, ok := p.current()
	if !ok || !tok.Is(sym) {
		return false
	}
	p.pos++
	return true
}

// fail reports the token at the cursor, or end of input, as not matching expected.
func (p *Parser) fail(kind jsonerr.Kind, expected string) error {
	tok, ok := p.current()
	if ok {
		return jsonerr.New(kind, tok.Offset, tok.Line, expected, describe(tok))
	}

	offset, line := 0, 1
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		offset, line = last.Offset+last.Length, last.Line
	}
	return jsonerr.New(kind, offset, line, expected, jsonerr.EndOfInput)
}

func describe(tok lexer.Token) string {
	return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
}
