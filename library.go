// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/pkg/errors"
)

// A Library maps chip names to chip definitions. Once linked, a library must
// be treated as read-only. It can then be shared by concurrent Evaluate
// calls.
//
type Library map[string]*Chip

// NewLibrary returns a library with the given chips. It does not link it.
//
func NewLibrary(chips ...*Chip) (Library, error) {
	l := make(Library, len(chips))
	for _, c := range chips {
		if err := l.Add(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add adds c to the library. The chip name must not already be used, either
// by another chip or by the primitive.
//
func (l Library) Add(c *Chip) error {
	if _, ok := l[c.Name]; ok || IsPrimitive(c.Name) {
		return errors.WithStack(&DuplicateNameError{Scope: "library", Name: c.Name})
	}
	l[c.Name] = c
	return nil
}

// Names returns the sorted chip names.
//
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for n := range l {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Deps returns the names of the chips called by chip name, in order of first
// use. The primitive is not included.
//
func (l Library) Deps(name string) []string {
	c, ok := l[name]
	if !ok {
		return nil
	}
	var deps []string
	seen := make(map[string]struct{})
	for _, inst := range c.Instructions {
		if _, ok := seen[inst.Callee]; ok || IsPrimitive(inst.Callee) {
			continue
		}
		seen[inst.Callee] = struct{}{}
		deps = append(deps, inst.Callee)
	}
	return deps
}

// arity returns the input and output counts of a chip or of the primitive.
//
func (l Library) arity(name string) (in, out int, ok bool) {
	if IsPrimitive(name) {
		return nandIn, nandOut, true
	}
	c, ok := l[name]
	if !ok {
		return 0, 0, false
	}
	return len(c.Inputs), len(c.Outputs), true
}

// Link checks the whole library before any simulation: wire names and
// widths, callees and their arities, wire resolution, combinational cycles
// within chips and chips that end up calling themselves. Chips are checked
// in name order and the first error is returned.
//
// Evaluate performs the same checks lazily, on the chips it actually
// reaches.
//
func (l Library) Link() error {
	for _, name := range l.Names() {
		c := l[name]
		if err := c.Validate(); err != nil {
			return err
		}
		for _, inst := range c.Instructions {
			in, out, ok := l.arity(inst.Callee)
			if !ok {
				return errors.WithStack(&UnknownChipError{Name: inst.Callee})
			}
			if len(inst.Inputs) != in {
				return errors.WithStack(&ArityError{Name: inst.Callee, Expected: in, Actual: len(inst.Inputs)})
			}
			if len(inst.Outputs) != out {
				return errors.WithStack(&ArityError{Name: inst.Callee, Expected: out, Actual: len(inst.Outputs)})
			}
		}
		if _, err := schedule(c); err != nil {
			return err
		}
	}
	return l.checkRecursion()
}

type dfsFrame struct {
	name string
	deps []string
	next int
}

// checkRecursion looks for chip reference cycles with a depth first search.
//
func (l Library) checkRecursion() error {
	done := hashset.New()
	for _, root := range l.Names() {
		if done.Contains(root) {
			continue
		}
		onPath := hashset.New(root)
		stack := arraystack.New()
		stack.Push(&dfsFrame{name: root, deps: l.Deps(root)})
		for !stack.Empty() {
			v, _ := stack.Peek()
			f := v.(*dfsFrame)
			if f.next == len(f.deps) {
				stack.Pop()
				onPath.Remove(f.name)
				done.Add(f.name)
				continue
			}
			d := f.deps[f.next]
			f.next++
			if _, ok := l[d]; !ok || done.Contains(d) {
				continue
			}
			if onPath.Contains(d) {
				return errors.WithStack(&CombinationalCycleError{Chip: d, Path: cyclePath(stack, d)})
			}
			onPath.Add(d)
			stack.Push(&dfsFrame{name: d, deps: l.Deps(d)})
		}
	}
	return nil
}

// cyclePath returns the chip names on the DFS stack from the first
// occurrence of name, followed by name.
//
func cyclePath(stack *arraystack.Stack, name string) []string {
	vs := stack.Values() // top first
	var path []string
	for i := len(vs) - 1; i >= 0; i-- {
		n := vs[i].(*dfsFrame).name
		if n == name || len(path) > 0 {
			path = append(path, n)
		}
	}
	return append(path, name)
}
