package main

import (
	"context"
	"errors"

	"github.com/jcorbin/gon/internal/op"
	"github.com/jcorbin/gon/internal/panicerr"
	"github.com/jcorbin/gon/internal/preprocess"
	"github.com/jcorbin/gon/internal/tape"
)

// New returns a VM configured by opts: by default an empty linear program,
// saturating arithmetic, and a tape of one zero cell.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run executes the VM's program to completion against its tape. It returns a
// StepLimitError or CellLimitError if a budget is exceeded, ctx.Err() if ctx
// is done first, or a panicerr-wrapped error for any other panic.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		vm.run(ctx)
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// WithProgram sets program text, interpreted under the VM's dialect;
// characters outside the dialect's operator set are ignored.
func WithProgram(ops string) VMOption { return withProgram(ops) }

// WithSource sets a preprocessed program, along with its dialect; its
// operator positions are used when tracing.
func WithSource(prog preprocess.Program) VMOption { return withSource(prog) }

func WithDialect(d op.Dialect) VMOption           { return withDialect(d) }
func WithSeed(values ...uint64) VMOption          { return withSeed(values...) }
func WithTape(t *tape.Tape) VMOption              { return withTape(t) }
func WithOverflow(o tape.Overflow) VMOption       { return withOverflow(o) }
func WithStepLimit(limit uint64) VMOption         { return withStepLimit(limit) }
func WithCellLimit(limit uint) VMOption           { return withCellLimit(limit) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
