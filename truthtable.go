// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// MaxTableInputs is the maximum number of inputs of a chip for TruthTable.
//
const MaxTableInputs = 16

// A Row is a line of a truth table.
//
type Row struct {
	In  BitVector
	Out BitVector
}

// A Table is the truth table of a chip.
//
type Table struct {
	Chip    string
	Inputs  []string
	Outputs []string
	Rows    []Row
}

// TruthTable evaluates chip name of lib for every combination of its inputs.
// name can be the name of the primitive. Row i has the inputs Bits(i, n), the
// first input being the most significant bit.
//
// workers is the number of goroutines evaluating rows. If less or equal to 0,
// the value of GOMAXPROCS will be used.
//
func TruthTable(lib Library, name string, workers int) (*Table, error) {
	t := &Table{Chip: name}
	if IsPrimitive(name) {
		t.Inputs, t.Outputs = []string{"a", "b"}, []string{"out"}
	} else {
		c, ok := lib[name]
		if !ok {
			return nil, errors.WithStack(&UnknownChipError{Name: name})
		}
		t.Inputs, t.Outputs = c.InputNames(), c.OutputNames()
	}
	n := len(t.Inputs)
	if n > MaxTableInputs {
		return nil, errors.WithStack(&TableSizeError{Chip: name, Inputs: n, Max: MaxTableInputs})
	}
	t.Rows = make([]Row, 1<<uint(n))

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers <= 0 {
		workers = 1
	}

	var (
		wg   sync.WaitGroup
		once sync.Once
		err  error
		stop int32 // set on the first error
	)
	ev := NewEvaluator(lib)
	rows := t.Rows
	size := len(rows) / workers
	if size*workers < len(rows) {
		size++
	}
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end && atomic.LoadInt32(&stop) == 0; i++ {
				in := Bits(uint64(i), n)
				out, e := ev.Evaluate(name, in)
				if e != nil {
					once.Do(func() { err = e })
					atomic.StoreInt32(&stop, 1)
					return
				}
				rows[i] = Row{In: in, Out: out}
			}
		}(start, end)
	}
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return t, nil
}
