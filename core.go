package main

import (
	"fmt"
	"strings"
)

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }

// StepLimitError indicates that a run executed more operators than allowed.
type StepLimitError uint64

func (lim StepLimitError) Error() string {
	return fmt.Sprintf("step limit exceeded after %d operators", uint64(lim))
}

// CellLimitError indicates that a run grew the tape past its cell limit.
type CellLimitError struct {
	Limit uint
	At    int
}

func (lim CellLimitError) Error() string {
	return fmt.Sprintf("cell limit %d exceeded by operator @%d", lim.Limit, lim.At)
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
