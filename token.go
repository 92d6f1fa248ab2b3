package chipsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// Pos is the position of a token in a source unit. Line and Col are 1-based.
//
type Pos struct {
	Unit string
	Line int
	Col  int
}

func (p Pos) String() string {
	return p.Unit + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Kind is a token kind.
//
type Kind int

// Token kinds.
//
const (
	EOF Kind = iota
	Ident
	Int
	LParen
	RParen
	LBrace
	RBrace
	Semicolon
	Colon
	Comma
	ChipKeyword
	CrossKeyword
	Arrow
)

var kindNames = [...]string{
	EOF:          "end of input",
	Ident:        "identifier",
	Int:          "integer",
	LParen:       "'('",
	RParen:       "')'",
	LBrace:       "'{'",
	RBrace:       "'}'",
	Semicolon:    "';'",
	Colon:        "':'",
	Comma:        "','",
	ChipKeyword:  "'chip'",
	CrossKeyword: "'cross'",
	Arrow:        "'->'",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a lexical unit. Name is set for Ident tokens and Value for Int
// tokens.
//
type Token struct {
	Kind  Kind
	Pos   Pos
	Name  string
	Value uint64
}

func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return "identifier " + strconv.Quote(t.Name)
	case Int:
		return "integer " + strconv.FormatUint(t.Value, 10)
	}
	return t.Kind.String()
}

// Expect checks that t is of kind k and returns its payload: the name of an
// identifier or the value of an integer. Other kinds have no payload.
// If t does not match, the returned error is a *SyntaxError.
//
func Expect(t Token, k Kind) (name string, value uint64, err error) {
	if t.Kind != k {
		return "", 0, errors.WithStack(&SyntaxError{Pos: t.Pos, Expected: k, Actual: t})
	}
	return t.Name, t.Value, nil
}

// TokenStack is the token sequence consumed by the parser. The next token
// to be read is the last one of the slice.
//
type TokenStack struct {
	toks []Token
	last Pos
}

// NewTokenStack returns a TokenStack that yields the given tokens in order.
// The tokens slice is not modified.
//
func NewTokenStack(tokens []Token) *TokenStack {
	ts := &TokenStack{toks: make([]Token, len(tokens))}
	for i, t := range tokens {
		ts.toks[len(tokens)-1-i] = t
	}
	return ts
}

// NewReversedTokenStack takes ownership of a token slice that is already in
// reverse source order.
//
func NewReversedTokenStack(reversed []Token) *TokenStack {
	return &TokenStack{toks: reversed}
}

// Len returns the number of remaining tokens.
//
func (ts *TokenStack) Len() int { return len(ts.toks) }

// Peek returns the next token without consuming it. Past the last token, it
// returns an EOF token positioned after the last token read.
//
func (ts *TokenStack) Peek() Token {
	if len(ts.toks) == 0 {
		return Token{Kind: EOF, Pos: ts.last}
	}
	return ts.toks[len(ts.toks)-1]
}

// Pop consumes and returns the next token.
//
func (ts *TokenStack) Pop() Token {
	t := ts.Peek()
	if len(ts.toks) > 0 {
		ts.toks = ts.toks[:len(ts.toks)-1]
		ts.last = t.Pos
	}
	return t
}
