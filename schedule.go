package chipsim

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/pkg/errors"
)

// a step is an instruction with its wire names resolved to slots.
type step struct {
	inst *Instruction
	in   []slot
	out  []slot
}

// A plan is a chip body in execution order: every step runs after the steps
// driving its internal input wires.
//
type plan struct {
	chip  *Chip
	steps []step
}

// schedule resolves the wires of every instruction of c and sorts the
// instructions by data dependency. Among instructions that are ready to run,
// declaration order is kept.
//
func schedule(c *Chip) (*plan, error) {
	steps := make([]step, len(c.Instructions))
	// drivers maps a chip output or internal wire to the instruction setting it.
	drivers := make(map[slot]int)
	for i := range c.Instructions {
		inst := &c.Instructions[i]
		s := step{inst: inst, in: make([]slot, len(inst.Inputs)), out: make([]slot, len(inst.Outputs))}
		for j, name := range inst.Inputs {
			sl, ok := c.source(name)
			if !ok {
				return nil, errors.WithStack(&UnresolvedWireError{Chip: c.Name, Name: name, Pos: inst.Pos})
			}
			s.in[j] = sl
		}
		for j, name := range inst.Outputs {
			sl, ok := c.sink(name)
			if !ok {
				return nil, errors.WithStack(&UnresolvedWireError{Chip: c.Name, Name: name, Pos: inst.Pos})
			}
			if _, ok := drivers[sl]; ok {
				return nil, errors.WithStack(&DuplicateNameError{Scope: "driver", Name: name})
			}
			drivers[sl] = i
			s.out[j] = sl
		}
		steps[i] = s
	}

	// dependency graph: edge d -> i when d drives an internal input of i.
	next := make([][]int, len(steps))
	deps := make([]int, len(steps))
	for i, s := range steps {
		for _, sl := range s.in {
			if sl.sp != spaceInternal {
				continue
			}
			d, ok := drivers[sl]
			if !ok {
				// never driven, reads as 0.
				evalTracer().Debugf("%s: internal wire %s is not driven", c.Name, c.Internal[sl.i].Name)
				continue
			}
			next[d] = append(next[d], i)
			deps[i]++
		}
	}

	ready := treeset.NewWithIntComparator()
	for i, n := range deps {
		if n == 0 {
			ready.Add(i)
		}
	}
	p := &plan{chip: c, steps: make([]step, 0, len(steps))}
	for !ready.Empty() {
		it := ready.Iterator()
		it.Next()
		i := it.Value().(int)
		ready.Remove(i)
		p.steps = append(p.steps, steps[i])
		for _, j := range next[i] {
			if deps[j]--; deps[j] == 0 {
				ready.Add(j)
			}
		}
	}
	if len(p.steps) < len(steps) {
		return nil, errors.WithStack(&CombinationalCycleError{Chip: c.Name, Wires: cycleWires(c, steps, drivers, next, deps)})
	}
	return p, nil
}

// cycleWires returns the internal wires on a dependency loop, in declaration
// order. Unscheduled instructions that only feed other unscheduled
// instructions without looping back are pruned first.
//
func cycleWires(c *Chip, steps []step, drivers map[slot]int, next [][]int, deps []int) []string {
	live := make([]bool, len(steps))
	for i := range steps {
		live[i] = deps[i] > 0
	}
	for pruned := true; pruned; {
		pruned = false
		for i := range steps {
			if !live[i] {
				continue
			}
			loops := false
			for _, j := range next[i] {
				if live[j] {
					loops = true
					break
				}
			}
			if !loops {
				live[i] = false
				pruned = true
			}
		}
	}
	used := make([]bool, len(c.Internal))
	for i, s := range steps {
		if !live[i] {
			continue
		}
		for _, sl := range s.in {
			if sl.sp != spaceInternal {
				continue
			}
			if d, ok := drivers[sl]; ok && live[d] {
				used[sl.i] = true
			}
		}
	}
	var ws []string
	for i, u := range used {
		if u {
			ws = append(ws, c.Internal[i].Name)
		}
	}
	return ws
}
