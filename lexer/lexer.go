// Package lexer turns chip source text into chipsim tokens.
//
// Identifiers are made of letters, digits and underscores and do not start
// with a digit. Integers are unsigned decimal numbers. Line comments start
// with "//".
//
package lexer

import (
	"strconv"
	"strings"
	"sync"

	"github.com/db47h/chipsim"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'chipsim.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("chipsim.lexer")
}

// An Error reports input that does not form a valid token.
//
type Error struct {
	Pos  chipsim.Pos
	Text string
	Msg  string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg + " " + strconv.Quote(e.Text)
}

var literals = map[string]chipsim.Kind{
	"(":  chipsim.LParen,
	")":  chipsim.RParen,
	"{":  chipsim.LBrace,
	"}":  chipsim.RBrace,
	";":  chipsim.Semicolon,
	":":  chipsim.Colon,
	",":  chipsim.Comma,
	"->": chipsim.Arrow,
}

var keywords = map[string]chipsim.Kind{
	"chip":  chipsim.ChipKeyword,
	"cross": chipsim.CrossKeyword,
}

var (
	initOnce sync.Once
	lexer    *lexmachine.Lexer
	initErr  error
)

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(k chipsim.Kind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(k), string(m.Bytes), m), nil
	}
}

// keywords are added before identifiers so that they win on equal length
// matches.
//
func compile() (*lexmachine.Lexer, error) {
	l := lexmachine.NewLexer()
	l.Add([]byte(`//[^\n]*\n?`), skip)
	l.Add([]byte(`( |\t|\n|\r)+`), skip)
	for kw, k := range keywords {
		l.Add([]byte(kw), makeToken(k))
	}
	for lit, k := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		l.Add([]byte(r), makeToken(k))
	}
	l.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken(chipsim.Ident))
	l.Add([]byte(`[0-9]+`), makeToken(chipsim.Int))
	if err := l.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, errors.Wrap(err, "compile lexer")
	}
	return l, nil
}

// Tokenize returns the tokens of src in source order. unit names the source
// in token positions.
//
func Tokenize(unit string, src []byte) ([]chipsim.Token, error) {
	initOnce.Do(func() { lexer, initErr = compile() })
	if initErr != nil {
		return nil, initErr
	}
	s, err := lexer.Scanner(src)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var toks []chipsim.Token
	for tok, err, eos := s.Next(); !eos; tok, err, eos = s.Next() {
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				return nil, errors.WithStack(&Error{
					Pos:  chipsim.Pos{Unit: unit, Line: ui.StartLine, Col: ui.StartColumn},
					Text: firstRune(ui.Text, ui.StartTC),
					Msg:  "invalid character",
				})
			}
			return nil, errors.WithStack(err)
		}
		t, err := convert(unit, tok.(*lexmachine.Token))
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
	}
	tracer().Debugf("%s: %d tokens", unit, len(toks))
	return toks, nil
}

func firstRune(text []byte, tc int) string {
	if tc >= len(text) {
		return ""
	}
	for _, r := range string(text[tc:]) {
		return string(r)
	}
	return ""
}

func convert(unit string, lt *lexmachine.Token) (chipsim.Token, error) {
	t := chipsim.Token{
		Kind: chipsim.Kind(lt.Type),
		Pos:  chipsim.Pos{Unit: unit, Line: lt.StartLine, Col: lt.StartColumn},
	}
	lexeme := string(lt.Lexeme)
	switch t.Kind {
	case chipsim.Ident:
		t.Name = lexeme
	case chipsim.Int:
		v, err := strconv.ParseUint(lexeme, 10, 64)
		if err != nil {
			return t, errors.WithStack(&Error{Pos: t.Pos, Text: lexeme, Msg: "integer out of range"})
		}
		t.Value = v
	}
	return t, nil
}
