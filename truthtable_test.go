package chipsim_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/db47h/chipsim"
	"github.com/pkg/errors"
)

func TestTruthTable(t *testing.T) {
	lib := linkLib(t, gatesSrc)
	exp := []string{"0", "1", "1", "0"}
	for _, workers := range []int{0, 1, 3, 10} {
		tt, err := chipsim.TruthTable(lib, "xor", workers)
		if err != nil {
			trace(t, err)
			t.Fatal(err)
		}
		if !reflect.DeepEqual(tt.Inputs, []string{"a", "b"}) || !reflect.DeepEqual(tt.Outputs, []string{"out"}) {
			t.Fatalf("bad wire names %v -> %v", tt.Inputs, tt.Outputs)
		}
		if len(tt.Rows) != len(exp) {
			t.Fatalf("expected %d rows, got %d", len(exp), len(tt.Rows))
		}
		for i, r := range tt.Rows {
			if !r.In.Equal(chipsim.Bits(uint64(i), 2)) || r.Out.String() != exp[i] {
				t.Errorf("%d workers: row %d: xor(%s) = %s", workers, i, r.In, r.Out)
			}
		}
	}
}

func TestTruthTable_undriven(t *testing.T) {
	lib := linkLib(t, `chip zero(a: 1) -> o: 1 { nand(a, a) -> o; }
chip one(a: 1) -> o: 1 {
	cross x: 1;
	zero(x) -> o;
}`)
	tt, err := chipsim.TruthTable(lib, "one", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(tt.Rows) != 2 || tt.Rows[0].Out.String() != "1" || tt.Rows[1].Out.String() != "1" {
		t.Fatalf("bad table %+v", tt.Rows)
	}
}

func TestTruthTable_errors(t *testing.T) {
	var in []chipsim.Wire
	for i := 0; i <= chipsim.MaxTableInputs; i++ {
		in = append(in, chipsim.Wire{Name: "i" + strconv.Itoa(i), Width: 1})
	}
	lib := parseLib(t, `chip bad(a: 1) -> o: 1 { nand(a, q) -> o; }`)
	if err := lib.Add(&chipsim.Chip{Name: "wide", Inputs: in}); err != nil {
		t.Fatal(err)
	}

	_, err := chipsim.TruthTable(lib, "wide", 0)
	if te, ok := errors.Cause(err).(*chipsim.TableSizeError); !ok || te.Inputs != chipsim.MaxTableInputs+1 {
		t.Errorf("wide: unexpected error %v", err)
	}
	_, err = chipsim.TruthTable(lib, "missing", 0)
	if _, ok := errors.Cause(err).(*chipsim.UnknownChipError); !ok {
		t.Errorf("missing: unexpected error %v", err)
	}
	_, err = chipsim.TruthTable(lib, "bad", 2)
	if ue, ok := errors.Cause(err).(*chipsim.UnresolvedWireError); !ok || ue.Name != "q" {
		t.Errorf("bad: unexpected error %v", err)
	}
}

func TestTruthTable_primitive(t *testing.T) {
	tt, err := chipsim.TruthTable(nil, chipsim.Nand, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tt.Inputs, []string{"a", "b"}) || !reflect.DeepEqual(tt.Outputs, []string{"out"}) {
		t.Fatalf("bad wire names %v -> %v", tt.Inputs, tt.Outputs)
	}
	for i, exp := range []string{"1", "1", "1", "0"} {
		if r := tt.Rows[i]; r.In.Uint64() != uint64(i) || r.Out.String() != exp {
			t.Errorf("row %d: nand(%s) = %s", i, r.In, r.Out)
		}
	}
}

func TestTruthTable_firstError(t *testing.T) {
	// every row fails: whatever the worker count, a single error comes back.
	lib := parseLib(t, `chip bad(a: 1, b: 1, c: 1, d: 1) -> o: 1 { nand(a, q) -> o; }`)
	for _, workers := range []int{1, 4, 16} {
		tt, err := chipsim.TruthTable(lib, "bad", workers)
		if tt != nil {
			t.Errorf("%d workers: got a table along with error %v", workers, err)
		}
		if _, ok := errors.Cause(err).(*chipsim.UnresolvedWireError); !ok {
			t.Errorf("%d workers: unexpected error %v", workers, err)
		}
	}
}
