// Package encode turns arbitrary bytes into linear (N) programs that leave
// those bytes on the tape, one per cell.
package encode

import (
	"fmt"
	"io"
	"strings"
)

// clear reduces any tape to a single zero cell in a fixed number of steps:
// keep only the current cell, step onto a fresh zero cell, then drop the
// kept cell.
const clear = "()>("

// multiplyOverhead counts the fixed operators of a counted multiply:
// > [ < > ] < )
const multiplyOverhead = 7

// ReadError is returned by Encode when its input fails, as distinct from any
// failure to write the program.
type ReadError struct{ error }

func (err ReadError) Unwrap() error { return err.error }

// Encode reads all of r and writes a program to w that, run on any tape in
// the linear dialect, leaves exactly the read bytes as cell values with the
// cursor on the last one. Empty input yields a single zero cell. The values
// already on the tape do not affect how many steps the program takes.
func Encode(w io.Writer, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return ReadError{fmt.Errorf("unable to read encoder input: %w", err)}
	}
	_, err = io.WriteString(w, Program(data))
	return err
}

// Program returns the program encoding data.
func Program(data []byte) string {
	var sb strings.Builder
	sb.WriteString(clear)
	for i, b := range data {
		if i > 0 {
			sb.WriteByte('>')
		}
		writeByte(&sb, b)
	}
	return sb.String()
}

// writeByte writes the shorter of b increments, or a counted multiply:
// step right onto a fresh scratch cell, bump it k times, then run k
// iterations of adding q to the target cell; add the remainder r and drop
// the scratch cell. Loop counts are fixed on entry, so the scratch cell is
// never decremented.
func writeByte(sb *strings.Builder, b byte) {
	k, q, r := factor(int(b))
	if k == 0 {
		sb.WriteString(strings.Repeat("+", int(b)))
		return
	}
	sb.WriteByte('>')
	sb.WriteString(strings.Repeat("+", k))
	sb.WriteString("[<")
	sb.WriteString(strings.Repeat("+", q))
	sb.WriteString(">]<")
	sb.WriteString(strings.Repeat("+", r))
	sb.WriteByte(')')
}

// factor finds the cheapest k*q + r == n, returning k = 0 when plain
// increments are no longer.
func factor(n int) (k, q, r int) {
	best := n
	for kk := 2; kk <= n/2; kk++ {
		qq := n / kk
		rr := n - kk*qq
		if cost := multiplyOverhead + kk + qq + rr; cost < best {
			best = cost
			k, q, r = kk, qq, rr
		}
	}
	return k, q, r
}
