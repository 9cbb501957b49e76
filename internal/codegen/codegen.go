// Package codegen translates (N) programs into standalone Go programs.
//
// A generated program takes seed numbers as arguments, runs the translated
// operators against a tape seeded from them, and prints the final tape as
// space separated decimal numbers.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/jcorbin/gon/internal/op"
)

// Generate writes gofmt'd Go source for ops, interpreted under dialect d.
func Generate(w io.Writer, d op.Dialect, ops string) error {
	src, err := Source(d, ops)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

// Source returns the gofmt'd Go source for ops under dialect d.
func Source(d op.Dialect, ops string) ([]byte, error) {
	prog := op.Parse(d, ops)

	var gen generator
	gen.dialect = d
	gen.body(prog)

	var buf bytes.Buffer
	if err := prelude.Execute(&buf, struct {
		Ring bool
		Ops  string
		Body string
	}{
		Ring: d == op.Ring,
		Ops:  op.Format(prog),
		Body: gen.String(),
	}); err != nil {
		return nil, fmt.Errorf("codegen template failed: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen produced invalid Go: %w", err)
	}
	return src, nil
}

type generator struct {
	strings.Builder
	dialect op.Dialect
}

func (gen *generator) line(s string, args ...interface{}) {
	fmt.Fprintf(gen, s, args...)
	gen.WriteByte('\n')
}

func (gen *generator) body(prog []op.Code) {
	match := op.Match(prog)
	open := 0
	for i := 0; i < len(prog); i++ {
		switch code := prog[i]; code {
		case op.Inc, op.Dec:
			n := 1
			for i+1 < len(prog) && prog[i+1] == code {
				n++
				i++
			}
			if code == op.Inc {
				gen.line("t.add(%d)", n)
			} else {
				gen.line("t.sub(%d)", n)
			}

		case op.Open:
			if match[i] < 0 {
				// runs at most once, to the end of the program
				gen.line("if t.cells[t.at] != 0 {")
				open++
			} else {
				gen.line("for n := t.cells[t.at]; n > 0; n-- {")
			}

		case op.Close:
			if match[i] >= 0 {
				gen.line("}")
			}

		case op.Next:
			if gen.dialect == op.Ring {
				gen.line("t.rotateRight()")
			} else {
				gen.line("t.next()")
			}
		case op.Prev:
			if gen.dialect == op.Ring {
				gen.line("t.rotateLeft()")
			} else {
				gen.line("t.prev()")
			}
		case op.Index:
			gen.line("t.cells[t.at] = uint64(t.at)")
		case op.Count:
			gen.line("t.cells[t.at] = uint64(len(t.cells))")
		case op.EraseBefore:
			gen.line("t.eraseBefore()")
		case op.EraseAfter:
			gen.line("t.eraseAfter()")
		case op.Dup:
			gen.line("t.dup()")
		case op.Truncate:
			gen.line("t.truncate()")
		}
	}
	for ; open > 0; open-- {
		gen.line("}")
	}
}

var prelude = template.Must(template.New("prelude").Parse(`// Code generated by gon; DO NOT EDIT.

// Program: {{ printf "%q" .Ops }}
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

type tape struct {
	cells []uint64
	at    int
}

func (t *tape) add(n uint64) {
	if c := t.cells[t.at]; c > math.MaxUint64-n {
		t.cells[t.at] = math.MaxUint64
	} else {
		t.cells[t.at] = c + n
	}
}

func (t *tape) sub(n uint64) {
	if c := t.cells[t.at]; c < n {
		t.cells[t.at] = 0
	} else {
		t.cells[t.at] = c - n
	}
}
{{ if .Ring }}
func (t *tape) rotateRight() {
	if t.at == 0 {
		t.at = len(t.cells)
	}
	t.at--
}

func (t *tape) rotateLeft() {
	if t.at++; t.at == len(t.cells) {
		t.at = 0
	}
}

func (t *tape) dup() {
	t.cells = append(t.cells, 0)
	copy(t.cells[t.at+1:], t.cells[t.at:])
	t.at++
}

func (t *tape) truncate() {
	if len(t.cells) == 1 {
		return
	}
	if t.at == 0 {
		t.cells = t.cells[:len(t.cells)-1]
		return
	}
	t.cells = append(t.cells[:t.at-1], t.cells[t.at:]...)
	t.at--
}

func (t *tape) values() []uint64 {
	return append(append([]uint64(nil), t.cells[t.at:]...), t.cells[:t.at]...)
}
{{ else }}
func (t *tape) next() {
	if t.at++; t.at == len(t.cells) {
		t.cells = append(t.cells, 0)
	}
}

func (t *tape) prev() {
	if t.at == 0 {
		t.cells = append([]uint64{0}, t.cells...)
		return
	}
	t.at--
}

func (t *tape) eraseBefore() {
	t.cells = t.cells[t.at:]
	t.at = 0
}

func (t *tape) eraseAfter() {
	t.cells = t.cells[:t.at+1]
}

func (t *tape) values() []uint64 { return t.cells }
{{ end }}
func main() {
	var t tape
	for _, arg := range os.Args[1:] {
		if n, err := strconv.ParseUint(arg, 10, 64); err == nil {
			t.cells = append(t.cells, n)
		}
	}
	if len(t.cells) == 0 {
		t.cells = []uint64{0}
	}

	{{ .Body }}

	values := t.values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatUint(v, 10)
	}
	fmt.Print(strings.Join(parts, " "))
}
`))
