// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/pkg/errors"
)

// Evaluate simulates chip name of lib for the given inputs and returns its
// outputs. name can be the name of the primitive. It is a shorthand for
// NewEvaluator(lib).Evaluate(name, inputs).
//
func Evaluate(name string, lib Library, inputs BitVector) (BitVector, error) {
	return NewEvaluator(lib).Evaluate(name, inputs)
}

// An Evaluator simulates the chips of a library. It is not modified by
// Evaluate and can be used concurrently.
//
type Evaluator struct {
	lib        Library
	traceCalls bool
}

// Option configures an Evaluator.
type Option func(ev *Evaluator)

// TraceCalls sets or clears tracing of every chip call, with its inputs and
// outputs, at debug level on key 'chipsim.eval'.
func TraceCalls(b bool) Option {
	return func(ev *Evaluator) {
		ev.traceCalls = b
	}
}

// NewEvaluator returns an Evaluator for lib. lib does not need to be linked:
// chips are validated and scheduled as they are reached.
//
func NewEvaluator(lib Library, opts ...Option) *Evaluator {
	ev := &Evaluator{lib: lib}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Evaluate simulates chip name for the given inputs and returns its outputs.
//
// Every instantiation of a sub-chip is evaluated independently, with its own
// wire buffers. Instructions run in data dependency order, regardless of their
// order in the chip body.
//
// Errors from nested evaluations are returned as is.
//
func (ev *Evaluator) Evaluate(name string, inputs BitVector) (BitVector, error) {
	e := &evaluator{
		Evaluator: ev,
		plans:     make(map[string]*plan),
		active:    hashset.New(),
		path:      arraylist.New(),
	}
	return e.eval(name, inputs)
}

// an evaluator holds the state of a single top-level Evaluate call.
type evaluator struct {
	*Evaluator
	plans  map[string]*plan
	active *hashset.Set    // chips on the current call path
	path   *arraylist.List // same, in call order
}

func (e *evaluator) plan(c *Chip) (*plan, error) {
	if p, ok := e.plans[c.Name]; ok {
		return p, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := schedule(c)
	if err != nil {
		return nil, err
	}
	e.plans[c.Name] = p
	return p, nil
}

func (e *evaluator) enter(name string) error {
	if e.active.Contains(name) {
		path := make([]string, 0, e.path.Size()+1)
		for _, v := range e.path.Values() {
			path = append(path, v.(string))
		}
		return errors.WithStack(&CombinationalCycleError{Chip: name, Path: append(path, name)})
	}
	e.active.Add(name)
	e.path.Add(name)
	return nil
}

func (e *evaluator) leave(name string) {
	e.active.Remove(name)
	e.path.Remove(e.path.Size() - 1)
}

func (e *evaluator) eval(name string, in BitVector) (BitVector, error) {
	if IsPrimitive(name) {
		out, err := nand(in)
		if err == nil && e.traceCalls {
			evalTracer().Debugf("%*s%s(%s) = %s", e.path.Size()*2, "", name, in, out)
		}
		return out, err
	}
	c, ok := e.lib[name]
	if !ok {
		return nil, errors.WithStack(&UnknownChipError{Name: name})
	}
	if len(in) != len(c.Inputs) {
		return nil, errors.WithStack(&ArityError{Name: name, Expected: len(c.Inputs), Actual: len(in)})
	}
	if err := e.enter(name); err != nil {
		return nil, err
	}
	defer e.leave(name)
	p, err := e.plan(c)
	if err != nil {
		return nil, err
	}

	var wires [3]BitVector
	wires[spaceInput] = in
	wires[spaceOutput] = make(BitVector, len(c.Outputs))
	wires[spaceInternal] = make(BitVector, len(c.Internal))

	for _, s := range p.steps {
		args := make(BitVector, len(s.in))
		for i, sl := range s.in {
			args[i] = wires[sl.sp][sl.i]
		}
		res, err := e.eval(s.inst.Callee, args)
		if err != nil {
			return nil, err
		}
		if len(res) != len(s.out) {
			return nil, errors.WithStack(&ArityError{Name: s.inst.Callee, Expected: len(res), Actual: len(s.out)})
		}
		for i, sl := range s.out {
			wires[sl.sp][sl.i] = res[i]
		}
	}
	if e.traceCalls {
		evalTracer().Debugf("%*s%s(%s) = %s", (e.path.Size()-1)*2, "", name, in, wires[spaceOutput])
	}
	return wires[spaceOutput], nil
}
