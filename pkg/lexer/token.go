package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindSymbol  Kind = iota + 1 // [ ] { } , :
	KindString                  // decoded string literal
	KindNumber                  // run of decimal digits
	KindKeyword                 // run of lowercase letters
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindKeyword:
		return "keyword"
	default:
		return "invalid"
	}
}

// Token is a classified fragment of the source. For strings Text holds the
// decoded payload; for every other kind it is the exact scanned text.
// Offset and Length locate the token in the source bytes.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
	Length int
	Line   int
}

// Is reports whether t is the symbol sym.
func (t Token) Is(sym byte) bool {
	return t.Kind == KindSymbol && len(t.Text) == 1 && t.Text[0] == sym
}
