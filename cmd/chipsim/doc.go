/*
Command chipsim loads chip source files and evaluates chips.

Usage:

	chipsim [flags] file.chp...

With -eval, -table or -tree, chipsim runs the requested command and exits.
Otherwise it starts an interactive session where the following commands are
available:

	chips                list the chips in the library
	eval <chip> <bits>   evaluate a chip, e.g. "eval and 11"
	table <chip>         print the truth table of a chip
	tree <chip>          print the chip hierarchy
	load <file>...       load more source files
	quit                 exit (or ctrl-D)

The chips from package hwlib are loaded first unless -stdlib=false is given.

Defaults for -trace and -workers are read from the configuration keys
"chipsim.trace" and "chipsim.workers".
*/
package main

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'chipsim.cli'.
func tracer() tracing.Trace {
	return tracing.Select("chipsim.cli")
}
