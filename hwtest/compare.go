// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing chips.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/chipsim"
)

// maxExhaustive is the input count above which inputs are sampled randomly.
const maxExhaustive = 12

func randBool(r *rand.Rand) bool {
	return r.Int63()&(1<<62) != 0
}

// A RefFn is a reference implementation of a chip. It returns the
// expected outputs for the given inputs.
//
type RefFn func(in chipsim.BitVector) chipsim.BitVector

// CompareChip evaluates chip name of lib and compares its outputs with those
// of ref, given the same inputs. If the chip has up to 12 inputs, all
// combinations are tried. Otherwise, all 0, all 1 and 4096 random input
// combinations are tried.
//
func CompareChip(t testing.TB, lib chipsim.Library, name string, ref RefFn) {
	t.Helper()

	c, ok := lib[name]
	if !ok {
		t.Fatalf("unknown chip %s", name)
	}

	errString := func(in, ex, got chipsim.BitVector) string {
		var b strings.Builder
		for i, w := range c.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(w.Name)
			b.WriteRune('=')
			if in[i] {
				b.WriteString("1")
			} else {
				b.WriteString("0")
			}
		}
		return fmt.Sprintf("\n%s: expected %s => %s=%s\nGot %s", name, b.String(),
			strings.Join(c.OutputNames(), ","), ex, got)
	}

	check := func(in chipsim.BitVector) {
		t.Helper()
		got, err := chipsim.Evaluate(name, lib, in)
		if err != nil {
			t.Fatalf("%s(%s): %v", name, in, err)
		}
		if ex := ref(in); !ex.Equal(got) {
			t.Fatal(errString(in, ex, got))
		}
	}

	start := time.Now()
	n := len(c.Inputs)
	iter := 0
	if n <= maxExhaustive {
		for i := uint64(0); i < 1<<uint(n); i++ {
			check(chipsim.Bits(i, n))
			iter++
		}
	} else {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		in := make(chipsim.BitVector, n)
		check(in) // all 0
		for i := range in {
			in[i] = true
		}
		check(in) // all 1
		iter = 2
		for ; iter < 1<<maxExhaustive+2; iter++ {
			for i := range in {
				in[i] = randBool(r)
			}
			check(in)
		}
	}
	t.Logf("%s: %d evaluations in %v", name, iter, time.Since(start))
}

// CompareChips compares chip name1 of lib1 with chip name2 of lib2. Both
// chips must have the same number of inputs and outputs.
//
func CompareChips(t testing.TB, lib1 chipsim.Library, name1 string, lib2 chipsim.Library, name2 string) {
	t.Helper()
	c1, c2 := lib1[name1], lib2[name2]
	if c1 == nil || c2 == nil {
		t.Fatalf("unknown chip %s or %s", name1, name2)
	}
	if len(c1.Inputs) != len(c2.Inputs) {
		t.Fatalf("len(%s.Inputs) = %d != len(%s.Inputs) = %d", name1, len(c1.Inputs), name2, len(c2.Inputs))
	}
	if len(c1.Outputs) != len(c2.Outputs) {
		t.Fatalf("len(%s.Outputs) = %d != len(%s.Outputs) = %d", name1, len(c1.Outputs), name2, len(c2.Outputs))
	}
	CompareChip(t, lib1, name1, func(in chipsim.BitVector) chipsim.BitVector {
		out, err := chipsim.Evaluate(name2, lib2, in)
		if err != nil {
			t.Fatalf("%s(%s): %v", name2, in, err)
		}
		return out
	})
}
