package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/jcorbin/gon/internal/op"
	"github.com/jcorbin/gon/internal/runeio"
)

type fmtBuf interface {
	Len() int
	Write(p []byte) (n int, err error)
	WriteByte(c byte) error
	WriteRune(r rune) (n int, err error)
	WriteString(s string) (n int, err error)
}

type lineBuffer struct{ bytes.Buffer }

// WriteTo writes the buffered line, terminating it if necessary.
func (buf *lineBuffer) WriteTo(w io.Writer) (n int64, err error) {
	if b := buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Buffer.WriteTo(w)
}

// vmDumper writes a human readable dump of a VM: its program with bracket
// partners, its loop stack, and its tape, one cell per line.
type vmDumper struct {
	vm  *VM
	out io.Writer

	indexWidth int

	// runes annotates cell values that are printable runes
	runes bool
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  dialect: %v\n", dump.vm.dialect)
	dump.dumpProg()
	dump.dumpLoops()
	dump.dumpTape()
}

func (dump *vmDumper) dumpProg() {
	prog := dump.vm.prog
	if prog == nil {
		prog = op.Parse(dump.vm.dialect, dump.vm.src.Ops)
	}
	fmt.Fprintf(dump.out, "  prog: %q ip:%v maxDepth:%v\n", op.Format(prog), dump.vm.ip, op.MaxDepth(prog))

	var buf lineBuffer
	for i, j := range op.Match(prog) {
		if j < 0 {
			if prog[i] == op.Close {
				fmt.Fprintf(&buf, "  unmatched ] @%v ignored", i)
				buf.WriteTo(dump.out)
			} else if prog[i] == op.Open {
				fmt.Fprintf(&buf, "  unmatched [ @%v runs to end", i)
				buf.WriteTo(dump.out)
			}
		}
	}
}

func (dump *vmDumper) dumpLoops() {
	fmt.Fprintf(dump.out, "  loops: %v\n", dump.vm.loops[:dump.vm.depth])
	if dump.vm.skip > 0 {
		fmt.Fprintf(dump.out, "  skip: %v\n", dump.vm.skip)
	}
}

func (dump *vmDumper) dumpTape() {
	t := dump.vm.Tape()
	fmt.Fprintf(dump.out, "# Tape n:%v i:%v\n", t.Len(), t.Index())

	values := t.Values()
	if dump.indexWidth == 0 {
		dump.indexWidth = len(strconv.Itoa(len(values)))
	}

	var buf lineBuffer
	for i, v := range values {
		mark := ' '
		if uint(i) == t.Index() {
			mark = '>'
		}
		fmt.Fprintf(&buf, " %c @%*v ", mark, dump.indexWidth, i)
		dump.formatValue(&buf, v)
		buf.WriteTo(dump.out)
	}
}

func (dump *vmDumper) formatValue(buf fmtBuf, v uint64) {
	buf.WriteString(strconv.FormatUint(v, 10))
	if !dump.runes || v > unicode.MaxRune {
		return
	}
	r := rune(v)
	if name := runeio.Mnemonic(r); name != "" {
		buf.WriteByte(' ')
		buf.WriteString(name)
	} else if unicode.IsPrint(r) {
		buf.WriteString(" '")
		buf.WriteRune(r)
		buf.WriteByte('\'')
	}
}
