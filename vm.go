package main

import (
	"context"
	"fmt"

	"github.com/jcorbin/gon/internal/op"
	"github.com/jcorbin/gon/internal/preprocess"
	"github.com/jcorbin/gon/internal/tape"
)

// VM executes an (N) program against a tape.
//
// Operators run strictly left to right. The only control flow is the loop:
// '[' snapshots the current cell's value as an iteration count, and each
// matching ']' spends one iteration, jumping back into the body until the
// count is spent. Changing the cell inside the body does not change how many
// times the body runs.
type VM struct {
	logging

	dialect op.Dialect
	src     preprocess.Program
	prog    []op.Code
	ip      int

	tape     *tape.Tape
	overflow tape.Overflow

	// The loop stack is allocated once per run, sized by a pre-scan of the
	// deepest bracket nesting in prog; depth is its live height.
	loops []loopFrame
	depth int

	// skip counts brackets while passing over a loop whose count was zero.
	skip int

	steps     uint64
	stepLimit uint64
	cellLimit uint
}

type loopFrame struct {
	count uint64 // remaining iterations
	ret   int    // position of the opening bracket
}

func (lf loopFrame) String() string { return fmt.Sprintf("%v@%v", lf.count, lf.ret) }

// ctxCheckInterval is how many operators run between context checks.
const ctxCheckInterval = 1 << 10

func (vm *VM) init() {
	vm.Tape()
	if vm.prog == nil {
		vm.prog = op.Parse(vm.dialect, vm.src.Ops)
	}
	if depth := op.MaxDepth(vm.prog); cap(vm.loops) < depth {
		vm.loops = make([]loopFrame, depth)
	} else {
		vm.loops = vm.loops[:depth]
	}
	vm.ip = 0
	vm.depth = 0
	vm.skip = 0
	vm.steps = 0
}

func (vm *VM) run(ctx context.Context) {
	vm.init()
	if vm.logfn != nil {
		vm.logf("#", "run %v ops:%v loops:%v tape:%v", vm.dialect, len(vm.prog), len(vm.loops), vm.tape.Values())
		defer vm.withLogPrefix("\t")()
	}
	for vm.ip < len(vm.prog) {
		vm.step()
		if vm.steps%ctxCheckInterval == 0 {
			vm.haltif(ctx.Err())
		}
	}
}

func (vm *VM) halt(err error) {
	vm.logf("#", "halt error: %v", err)
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

func (vm *VM) step() {
	code := vm.prog[vm.ip]
	vm.steps++
	if lim := vm.stepLimit; lim != 0 && vm.steps > lim {
		vm.halt(StepLimitError(lim))
	}

	if vm.skip > 0 {
		switch code {
		case op.Open:
			vm.skip++
		case op.Close:
			vm.skip--
		}
		vm.ip++
		return
	}

	if vm.logfn != nil {
		vm.trace(code)
	}

	switch code {
	case op.Inc:
		vm.inc()
	case op.Dec:
		vm.dec()
	case op.Next:
		vm.next()
	case op.Prev:
		vm.prev()
	case op.Open:
		vm.loop()
	case op.Close:
		vm.endLoop()
	case op.Index:
		vm.index()
	case op.Count:
		vm.count()
	case op.EraseBefore:
		vm.eraseBefore()
	case op.EraseAfter:
		vm.eraseAfter()
	case op.Dup:
		vm.dup()
	case op.Truncate:
		vm.truncate()
	}

	if lim := vm.cellLimit; lim != 0 && vm.tape.Len() > lim {
		vm.halt(CellLimitError{lim, vm.ip})
	}
	vm.ip++
}

func (vm *VM) trace(code op.Code) {
	at := fmt.Sprint(vm.ip)
	if pos := vm.src.Position(vm.ip); pos.Line > 0 {
		at += " " + pos.String()
	}
	vm.logf(">", "@%v %v -- i:%v n:%v v:%v loops:%v",
		at, code.Name(),
		vm.tape.Index(), vm.tape.Len(), vm.tape.Value(),
		vm.loops[:vm.depth])
}

// +: add one to the current cell.
func (vm *VM) inc() { vm.tape.Increment() }

// -: subtract one from the current cell, stopping at zero.
func (vm *VM) dec() { vm.tape.Decrement() }

// >: move right, extending the tape; in the ring dialect, rotate right.
func (vm *VM) next() {
	if vm.dialect == op.Ring {
		vm.tape.RotateRight()
	} else {
		vm.tape.Next()
	}
}

// <: move left, extending the tape; in the ring dialect, rotate left.
func (vm *VM) prev() {
	if vm.dialect == op.Ring {
		vm.tape.RotateLeft()
	} else {
		vm.tape.Prev()
	}
}

// [: enter a loop running the current value's worth of times, or skip past
// the matching ] if that is zero.
func (vm *VM) loop() {
	if v := vm.tape.Value(); v != 0 {
		vm.loops[vm.depth] = loopFrame{count: v, ret: vm.ip}
		vm.depth++
	} else {
		vm.skip = 1
	}
}

// ]: spend one iteration of the innermost loop, jumping back to just after
// its [ while any remain. Ignored outside of any loop.
func (vm *VM) endLoop() {
	if vm.depth == 0 {
		return
	}
	lf := &vm.loops[vm.depth-1]
	if lf.count--; lf.count != 0 {
		vm.ip = lf.ret
	} else {
		vm.depth--
	}
}

// i: set the current cell to its index.
func (vm *VM) index() { vm.tape.Set(uint64(vm.tape.Index())) }

// #: set the current cell to the tape's cardinality.
func (vm *VM) count() { vm.tape.Set(uint64(vm.tape.Len())) }

// (: erase all cells left of the cursor.
func (vm *VM) eraseBefore() { vm.tape.EraseBefore() }

// ): erase all cells right of the cursor.
func (vm *VM) eraseAfter() { vm.tape.EraseAfter() }

// :: append a copy of the current cell to the end of the ring.
func (vm *VM) dup() { vm.tape.InsertBefore(vm.tape.Value()) }

// |: remove the last cell of the ring, unless it is the only one.
func (vm *VM) truncate() { vm.tape.RemoveBefore() }

// Values returns the tape's values in output order: first to last, or for the
// ring dialect, starting at the cursor.
func (vm *VM) Values() []uint64 {
	if vm.tape == nil {
		return []uint64{0}
	}
	if vm.dialect == op.Ring {
		return vm.tape.RingValues()
	}
	return vm.tape.Values()
}

// Tape returns the VM's tape.
func (vm *VM) Tape() *tape.Tape {
	if vm.tape == nil {
		vm.tape = tape.New()
		vm.tape.Overflow = vm.overflow
	}
	return vm.tape
}
