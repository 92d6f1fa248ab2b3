package chipsim_test

import (
	"testing"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/lexer"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// parseLib parses src into an unlinked library.
//
func parseLib(t *testing.T, src string) chipsim.Library {
	t.Helper()
	toks, err := lexer.Tokenize(t.Name(), []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	chips, err := chipsim.ParseAll(chipsim.NewTokenStack(toks))
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	lib, err := chipsim.NewLibrary(chips...)
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

// linkLib is parseLib followed by Link.
//
func linkLib(t *testing.T, src string) chipsim.Library {
	t.Helper()
	lib := parseLib(t, src)
	if err := lib.Link(); err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return lib
}

func eval(t *testing.T, lib chipsim.Library, name, in string) string {
	t.Helper()
	bits, err := chipsim.ParseBits(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := chipsim.Evaluate(name, lib, bits)
	if err != nil {
		trace(t, err)
		t.Fatalf("%s(%s): %v", name, in, err)
	}
	return out.String()
}

const gatesSrc = `
chip not(in: 1) -> out: 1 {
	nand(in, in) -> out;
}

chip and(a: 1, b: 1) -> out: 1 {
	cross x: 1;
	nand(a, b) -> x;
	not(x) -> out;
}

chip xor(a: 1, b: 1) -> out: 1 {
	cross nab: 1;
	cross w0: 1;
	cross w1: 1;
	nand(a, b) -> nab;
	nand(a, nab) -> w0;
	nand(b, nab) -> w1;
	nand(w0, w1) -> out;
}
`
