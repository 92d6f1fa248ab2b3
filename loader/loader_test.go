package loader_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/lexer"
	"github.com/db47h/chipsim/loader"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

const notSrc = `chip not(in: 1) -> out: 1 {
	nand(in, in) -> out;
}
`

const andSrc = `chip and(a: 1, b: 1) -> out: 1 {
	cross x: 1;
	nand(a, b) -> x;
	not(x) -> out;
}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "chipsim")
	if err != nil {
		t.Fatal(err)
	}
	for name, src := range files {
		if err = ioutil.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
			os.RemoveAll(dir)
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chipsim.loader")
	defer teardown()

	lib, err := loader.Load("gates.chp", []byte(notSrc+andSrc))
	if err != nil {
		t.Fatal(err)
	}
	if len(lib) != 2 {
		t.Fatalf("expected 2 chips, got %v", lib.Names())
	}
	out, err := chipsim.Evaluate("and", lib, chipsim.BitVector{true, true})
	if err != nil || out.String() != "1" {
		t.Fatalf("and(11) = %v, %v", out, err)
	}
}

func TestLoad_errors(t *testing.T) {
	data := []struct {
		name  string
		src   string
		check func(error) bool
	}{
		{"lexer", "chip x(a: 1) -> o: 1 { nand(a, a) -> o; } %", func(err error) bool {
			_, ok := err.(*lexer.Error)
			return ok
		}},
		{"syntax", "chip x(a: 1) -> o: 1 { nand(a, a) -> o }", func(err error) bool {
			_, ok := err.(*chipsim.SyntaxError)
			return ok
		}},
		{"link", andSrc, func(err error) bool {
			uc, ok := err.(*chipsim.UnknownChipError)
			return ok && uc.Name == "not"
		}},
		{"redefinition", notSrc + "chip not(a: 1) -> b: 1 { nand(a, a) -> b; }", func(err error) bool {
			de, ok := err.(*chipsim.DuplicateNameError)
			return ok && de.Scope == "library" && de.Name == "not"
		}},
	}
	for _, d := range data {
		_, err := loader.Load(d.name+".chp", []byte(d.src))
		if err == nil || !d.check(errors.Cause(err)) {
			t.Errorf("%s: unexpected error %v", d.name, err)
		}
	}
}

func TestLoadFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"not.chp": notSrc,
		"and.chp": andSrc,
		// identical redefinition of not, at a different position
		"both.chp": "// not again\n" + notSrc,
	})
	defer os.RemoveAll(dir)

	lib, err := loader.LoadFiles(filepath.Join(dir, "and.chp"), filepath.Join(dir, "not.chp"), filepath.Join(dir, "both.chp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lib) != 2 {
		t.Fatalf("expected 2 chips, got %v", lib.Names())
	}
	if pos := lib["not"].Pos; filepath.Base(pos.Unit) != "not.chp" {
		t.Errorf("expected the first definition of not to be kept, got one from %s", pos)
	}

	if _, err = loader.LoadFiles(filepath.Join(dir, "missing.chp")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadFilesInto(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"and.chp": andSrc,
		"bad.chp": "chip bad(a: 1) -> o: 1 { nand(a, q) -> o; }",
	})
	defer os.RemoveAll(dir)

	lib, err := loader.Load("not.chp", []byte(notSrc))
	if err != nil {
		t.Fatal(err)
	}
	// a failed load leaves lib untouched.
	_, err = loader.LoadFilesInto(lib, filepath.Join(dir, "and.chp"), filepath.Join(dir, "bad.chp"))
	if _, ok := errors.Cause(err).(*chipsim.UnresolvedWireError); !ok {
		t.Fatalf("unexpected error %v", err)
	}
	if len(lib) != 1 {
		t.Fatalf("library modified by a failed load: %v", lib.Names())
	}

	if _, err = loader.LoadFilesInto(lib, filepath.Join(dir, "and.chp")); err != nil {
		t.Fatal(err)
	}
	if _, ok := lib["and"]; !ok {
		t.Fatal("and not loaded")
	}
}
