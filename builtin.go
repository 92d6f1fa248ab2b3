package chipsim

import "github.com/pkg/errors"

// Nand is the name of the built-in primitive gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
const Nand = "nand"

// IsPrimitive returns true if name is the name of the built-in primitive.
//
func IsPrimitive(name string) bool { return name == Nand }

// primitive arities
const (
	nandIn  = 2
	nandOut = 1
)

// nand evaluates the primitive.
//
func nand(in BitVector) (BitVector, error) {
	if len(in) != nandIn {
		return nil, errors.WithStack(&ArityError{Name: Nand, Expected: nandIn, Actual: len(in)})
	}
	return BitVector{!(in[0] && in[1])}, nil
}
