package main

import (
	"github.com/jcorbin/gon/internal/op"
	"github.com/jcorbin/gon/internal/preprocess"
	"github.com/jcorbin/gon/internal/tape"
)

type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withDialect(op.Linear),
	withOverflow(tape.Saturate),
)

// VMOptions combines options into one, applied in order; nil options are
// skipped.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type programOption string
type sourceOption preprocess.Program
type dialectOption op.Dialect
type seedOption []uint64
type tapeOption struct{ *tape.Tape }
type overflowOption tape.Overflow
type stepLimitOption uint64
type cellLimitOption uint

func withProgram(ops string) programOption            { return programOption(ops) }
func withSource(prog preprocess.Program) sourceOption { return sourceOption(prog) }
func withDialect(d op.Dialect) dialectOption          { return dialectOption(d) }
func withSeed(values ...uint64) seedOption            { return seedOption(values) }
func withTape(t *tape.Tape) tapeOption                { return tapeOption{t} }
func withOverflow(o tape.Overflow) overflowOption     { return overflowOption(o) }
func withStepLimit(limit uint64) stepLimitOption      { return stepLimitOption(limit) }
func withCellLimit(limit uint) cellLimitOption        { return cellLimitOption(limit) }

func (ops programOption) apply(vm *VM) {
	vm.src = preprocess.Program{Dialect: vm.dialect, Ops: string(ops)}
	vm.prog = nil
}

func (prog sourceOption) apply(vm *VM) {
	vm.src = preprocess.Program(prog)
	vm.dialect = prog.Dialect
	vm.prog = nil
}

func (d dialectOption) apply(vm *VM) {
	vm.dialect = op.Dialect(d)
	vm.src.Dialect = vm.dialect
	vm.prog = nil
}

func (values seedOption) apply(vm *VM) {
	vm.Tape().Reset(values...)
}

func (t tapeOption) apply(vm *VM) {
	vm.tape = t.Tape
	if vm.tape != nil {
		vm.overflow = vm.tape.Overflow
	}
}

func (o overflowOption) apply(vm *VM) {
	vm.overflow = tape.Overflow(o)
	if vm.tape != nil {
		vm.tape.Overflow = vm.overflow
	}
}

func (lim stepLimitOption) apply(vm *VM) { vm.stepLimit = uint64(lim) }
func (lim cellLimitOption) apply(vm *VM) { vm.cellLimit = uint(lim) }
