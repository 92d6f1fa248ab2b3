/*
Package chipsim provides the front-end and evaluator for a minimal hardware
description language where chips are built from a single primitive, the two
input NAND gate, and from other chips.

A chip source unit looks like this:

	chip and(a: 1, b: 1) -> out: 1 {
		cross x: 1;
		nand(a, b) -> x;
		not(x) -> out;
	}

Parse turns the tokens of one such unit into a *Chip. Chips are collected into
a Library, which is linked once and is read-only from then on. Evaluate
simulates a chip of the library for a given input BitVector by recursively
evaluating every instruction of its body down to the NAND primitive.

Wires declare a width, but only single-bit wires are supported: Library.Link
rejects any other width.

Tokens are usually produced by the lexer package, and whole source files are
best handled by the loader package.
*/
package chipsim

import "github.com/npillmayer/schuko/tracing"

// parseTracer traces with key 'chipsim.parser'.
func parseTracer() tracing.Trace {
	return tracing.Select("chipsim.parser")
}

// evalTracer traces with key 'chipsim.eval'.
func evalTracer() tracing.Trace {
	return tracing.Select("chipsim.eval")
}
