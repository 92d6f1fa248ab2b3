package chipsim

import (
	"github.com/pkg/errors"
)

// A Wire is a named bit bus of a chip: one of its inputs, outputs or
// internal wires (declared with the cross keyword).
//
type Wire struct {
	Name  string
	Width uint64
	Pos   Pos `hash:"-"`
}

// An Instruction is a call site in a chip body. Inputs and Outputs are the
// names of wires of the enclosing chip, connected in order to the inputs and
// outputs of Callee.
//
type Instruction struct {
	Callee  string
	Inputs  []string
	Outputs []string
	Pos     Pos `hash:"-"`
}

// Chip is a chip definition, as returned by Parse. Chips must not be modified
// once added to a Library.
//
type Chip struct {
	Name         string
	Inputs       []Wire
	Outputs      []Wire
	Internal     []Wire
	Instructions []Instruction
	Pos          Pos `hash:"-"`
}

// wire namespaces
type space int

const (
	spaceInput space = iota
	spaceOutput
	spaceInternal
)

// a slot is a resolved wire reference.
type slot struct {
	sp space
	i  int
}

func indexOf(ws []Wire, name string) int {
	for i := range ws {
		if ws[i].Name == name {
			return i
		}
	}
	return -1
}

// source resolves the name of an instruction input.
//
func (c *Chip) source(name string) (slot, bool) {
	if i := indexOf(c.Inputs, name); i >= 0 {
		return slot{spaceInput, i}, true
	}
	if i := indexOf(c.Internal, name); i >= 0 {
		return slot{spaceInternal, i}, true
	}
	return slot{}, false
}

// sink resolves the name of an instruction output.
//
func (c *Chip) sink(name string) (slot, bool) {
	if i := indexOf(c.Outputs, name); i >= 0 {
		return slot{spaceOutput, i}, true
	}
	if i := indexOf(c.Internal, name); i >= 0 {
		return slot{spaceInternal, i}, true
	}
	return slot{}, false
}

// InputNames returns the names of the chip inputs.
//
func (c *Chip) InputNames() []string { return wireNames(c.Inputs) }

// OutputNames returns the names of the chip outputs.
//
func (c *Chip) OutputNames() []string { return wireNames(c.Outputs) }

func wireNames(ws []Wire) []string {
	out := make([]string, len(ws))
	for i := range ws {
		out[i] = ws[i].Name
	}
	return out
}

// Validate checks that input, output and internal wire names are all
// distinct and that every wire is a single bit wide.
//
func (c *Chip) Validate() error {
	seen := make(map[string]struct{}, len(c.Inputs)+len(c.Outputs)+len(c.Internal))
	for _, ws := range [...][]Wire{c.Inputs, c.Outputs, c.Internal} {
		for _, w := range ws {
			if _, ok := seen[w.Name]; ok {
				return errors.WithStack(&DuplicateNameError{Scope: c.Name, Name: w.Name})
			}
			seen[w.Name] = struct{}{}
			if w.Width != 1 {
				return errors.WithStack(&WidthError{Chip: c.Name, Wire: w.Name, Width: w.Width, Pos: w.Pos})
			}
		}
	}
	return nil
}
