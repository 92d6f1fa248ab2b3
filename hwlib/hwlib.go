// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable chips, written in the chipsim
// language and built from the nand primitive only.
//
// The chip sources are embedded in the package and can be loaded alongside
// user chips with Source.
//
package hwlib

import (
	"embed"
	"io/fs"
	"sort"
	"sync"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/loader"
	"github.com/pkg/errors"
)

// Chip names.
//
//	not       Inputs: in            Outputs: out     Function: out = !in
//	and       Inputs: a, b          Outputs: out     Function: out = a && b
//	or        Inputs: a, b          Outputs: out     Function: out = a || b
//	nor       Inputs: a, b          Outputs: out     Function: out = !(a || b)
//	xor       Inputs: a, b          Outputs: out     Function: out = a != b
//	xnor      Inputs: a, b          Outputs: out     Function: out = a == b
//	mux       Inputs: a, b, sel     Outputs: out     Function: if sel { out = b } else { out = a }
//	dmux      Inputs: in, sel       Outputs: a, b    Function: if sel { b = in } else { a = in }
//	halfadder Inputs: a, b          Outputs: s, c    Function: c s = a + b
//	fulladder Inputs: a, b, c       Outputs: s, cout Function: cout s = a + b + c
//	add2      Inputs: a1, a0, b1, b0
//	          Outputs: c, s1, s0
//	          Function: c s1 s0 = a1a0 + b1b0
//
const (
	Not       = "not"
	And       = "and"
	Or        = "or"
	Nor       = "nor"
	Xor       = "xor"
	Xnor      = "xnor"
	Mux       = "mux"
	DMux      = "dmux"
	HalfAdder = "halfadder"
	FullAdder = "fulladder"
	Add2      = "add2"
)

//go:embed *.chp
var sources embed.FS

var (
	libOnce sync.Once
	lib     chipsim.Library
	libErr  error
)

// Files returns the names of the embedded source files, sorted.
//
func Files() []string {
	es, _ := fs.ReadDir(sources, ".")
	names := make([]string, 0, len(es))
	for _, e := range es {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Source returns the content of the named embedded source file.
//
func Source(name string) ([]byte, error) {
	src, err := sources.ReadFile(name)
	return src, errors.WithStack(err)
}

// Library returns the linked library of all hwlib chips. The library is
// loaded once and shared: callers must not modify it. Use Into to get a
// private copy that can be extended.
//
func Library() (chipsim.Library, error) {
	libOnce.Do(func() {
		l := make(chipsim.Library)
		if libErr = Into(l); libErr == nil {
			lib = l
		}
	})
	return lib, libErr
}

// Into adds all hwlib chips to l and links it. l is left unchanged if an
// error occurs.
//
func Into(l chipsim.Library) error {
	tmp := make(chipsim.Library, len(l))
	for n, c := range l {
		tmp[n] = c
	}
	for _, name := range Files() {
		src, err := Source(name)
		if err != nil {
			return err
		}
		if err = loader.Add(tmp, "hwlib/"+name, src); err != nil {
			return err
		}
	}
	if err := tmp.Link(); err != nil {
		return err
	}
	for n, c := range tmp {
		l[n] = c
	}
	return nil
}
