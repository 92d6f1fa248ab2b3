// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"strconv"
	"strings"
)

// Errors returned by this package are wrapped with a stack trace. Use
// errors.Cause from github.com/pkg/errors (or errors.As) to get to the
// values below.

// A SyntaxError is returned by the parser when a token does not match the
// current grammar rule.
//
type SyntaxError struct {
	Pos      Pos
	Expected Kind
	Actual   Token
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": unexpected " + e.Actual.String() + ", expected " + e.Expected.String()
}

// A DuplicateNameError reports a name declared twice in a scope that
// requires unique names. Scope is a chip name, "library" or "driver".
//
type DuplicateNameError struct {
	Scope string
	Name  string
}

func (e *DuplicateNameError) Error() string {
	if e.Scope == "driver" {
		return "wire " + e.Name + " driven by more than one instruction"
	}
	return e.Scope + ": duplicate name " + e.Name
}

// An UnknownChipError reports a call to a chip that is neither in the
// library nor the primitive.
//
type UnknownChipError struct {
	Name string
}

func (e *UnknownChipError) Error() string {
	return "unknown chip " + e.Name
}

// An ArityError reports a wire list whose length does not match the
// declared (or primitive) arity of Name.
//
type ArityError struct {
	Name     string
	Expected int
	Actual   int
}

func (e *ArityError) Error() string {
	return e.Name + ": expected " + strconv.Itoa(e.Expected) + " wires, got " + strconv.Itoa(e.Actual)
}

// An UnresolvedWireError reports an instruction wire name that does not
// resolve in its chip.
//
type UnresolvedWireError struct {
	Chip string
	Name string
	Pos  Pos
}

func (e *UnresolvedWireError) Error() string {
	return e.Pos.String() + ": " + e.Chip + ": unresolved wire " + e.Name
}

// A CombinationalCycleError reports a dependency loop. Wires is set for a
// loop between the internal wires of Chip, Path for a chip that ends up
// calling itself.
//
type CombinationalCycleError struct {
	Chip  string
	Wires []string
	Path  []string
}

func (e *CombinationalCycleError) Error() string {
	if len(e.Path) > 0 {
		return e.Chip + ": recursive chip reference " + strings.Join(e.Path, " -> ")
	}
	return e.Chip + ": combinational cycle through wires " + strings.Join(e.Wires, ", ")
}

// A WidthError reports a wire declared with a width other than 1.
//
type WidthError struct {
	Chip  string
	Wire  string
	Width uint64
	Pos   Pos
}

func (e *WidthError) Error() string {
	return e.Pos.String() + ": " + e.Chip + ": wire " + e.Wire + " has width " +
		strconv.FormatUint(e.Width, 10) + ", only single-bit wires are supported"
}

// A TableSizeError is returned by TruthTable for chips with too many inputs.
//
type TableSizeError struct {
	Chip   string
	Inputs int
	Max    int
}

func (e *TableSizeError) Error() string {
	return e.Chip + ": " + strconv.Itoa(e.Inputs) + " inputs, truth tables are limited to " + strconv.Itoa(e.Max)
}
