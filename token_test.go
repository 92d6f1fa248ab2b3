package chipsim_test

import (
	"testing"

	"github.com/db47h/chipsim"
	"github.com/pkg/errors"
)

func TestExpect(t *testing.T) {
	pos := chipsim.Pos{Unit: "x.chp", Line: 3, Col: 7}

	name, _, err := chipsim.Expect(chipsim.Token{Kind: chipsim.Ident, Pos: pos, Name: "foo"}, chipsim.Ident)
	if err != nil || name != "foo" {
		t.Fatalf("got %q, %v", name, err)
	}
	_, v, err := chipsim.Expect(chipsim.Token{Kind: chipsim.Int, Pos: pos, Value: 16}, chipsim.Int)
	if err != nil || v != 16 {
		t.Fatalf("got %d, %v", v, err)
	}
	if _, _, err = chipsim.Expect(chipsim.Token{Kind: chipsim.Arrow, Pos: pos}, chipsim.Arrow); err != nil {
		t.Fatal(err)
	}

	_, _, err = chipsim.Expect(chipsim.Token{Kind: chipsim.Int, Pos: pos, Value: 4}, chipsim.Ident)
	se, ok := errors.Cause(err).(*chipsim.SyntaxError)
	if !ok {
		t.Fatalf("expected a *SyntaxError, got %v", err)
	}
	if se.Pos != pos || se.Expected != chipsim.Ident || se.Actual.Kind != chipsim.Int {
		t.Fatalf("bad error %+v", se)
	}
	if s := err.Error(); s != "x.chp:3:7: unexpected integer 4, expected identifier" {
		t.Fatalf("bad error message %q", s)
	}
}

func TestTokenStack(t *testing.T) {
	toks := []chipsim.Token{
		{Kind: chipsim.ChipKeyword, Pos: chipsim.Pos{Unit: "u", Line: 1, Col: 1}},
		{Kind: chipsim.Ident, Pos: chipsim.Pos{Unit: "u", Line: 1, Col: 6}, Name: "not"},
	}
	ts := chipsim.NewTokenStack(toks)
	if ts.Len() != 2 {
		t.Fatalf("expected 2 tokens, got %d", ts.Len())
	}
	if tk := ts.Peek(); tk.Kind != chipsim.ChipKeyword {
		t.Fatalf("expected chip keyword first, got %v", tk)
	}
	ts.Pop()
	if tk := ts.Pop(); tk.Name != "not" {
		t.Fatalf("expected identifier not, got %v", tk)
	}
	// past the end: EOF at the position of the last token read.
	for i := 0; i < 2; i++ {
		tk := ts.Pop()
		if tk.Kind != chipsim.EOF || tk.Pos != toks[1].Pos {
			t.Fatalf("expected EOF at %v, got %v at %v", toks[1].Pos, tk, tk.Pos)
		}
	}
	if ts.Len() != 0 {
		t.Fatalf("expected empty stack, got %d tokens", ts.Len())
	}
	if toks[0].Kind != chipsim.ChipKeyword {
		t.Fatal("input slice modified")
	}

	rs := chipsim.NewReversedTokenStack([]chipsim.Token{toks[1], toks[0]})
	if tk := rs.Pop(); tk.Kind != chipsim.ChipKeyword {
		t.Fatalf("expected chip keyword first, got %v", tk)
	}
}

func TestKind_String(t *testing.T) {
	data := map[chipsim.Kind]string{
		chipsim.EOF:          "end of input",
		chipsim.Arrow:        "'->'",
		chipsim.CrossKeyword: "'cross'",
		chipsim.Kind(42):     "Kind(42)",
	}
	for k, s := range data {
		if k.String() != s {
			t.Errorf("expected %q, got %q", s, k.String())
		}
	}
}
