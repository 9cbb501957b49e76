// Package preprocess reduces raw (N) source to clean operator text: comments
// run from ';' to end of line, and every character outside the dialect's
// operator set is dropped.
package preprocess

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jcorbin/gon/internal/op"
)

// Program is preprocessed source: clean operator text, plus the source
// position of every operator in it.
type Program struct {
	Dialect op.Dialect
	Ops     string
	Pos     []lexer.Position
}

// Position returns the source position of the i-th operator, or a zero
// Position if none is known.
func (prog Program) Position(i int) lexer.Position {
	if i >= 0 && i < len(prog.Pos) {
		return prog.Pos[i]
	}
	return lexer.Position{}
}

var lexers = map[op.Dialect]*lexer.StatefulDefinition{
	op.Linear: newLexer(op.Linear),
	op.Ring:   newLexer(op.Ring),
}

func newLexer(d op.Dialect) *lexer.StatefulDefinition {
	class := charClass(d.Charset())
	return lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `;[^\n]*`},
		{Name: "Op", Pattern: `[` + class + `]`},
		{Name: "Other", Pattern: `[^;` + class + `]+`},
	})
}

func charClass(chars string) string {
	var sb strings.Builder
	for _, r := range chars {
		if r < unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Read preprocesses all source from r; name is used in token positions.
func Read(d op.Dialect, name string, r io.Reader) (Program, error) {
	def, ok := lexers[d]
	if !ok {
		return Program{}, fmt.Errorf("no lexer for %v dialect", d)
	}
	lex, err := def.Lex(name, r)
	if err != nil {
		return Program{}, err
	}

	opType := def.Symbols()["Op"]
	prog := Program{Dialect: d}
	var sb strings.Builder
	for {
		tok, err := lex.Next()
		if err != nil {
			return Program{}, fmt.Errorf("preprocessing %v: %w", name, err)
		}
		if tok.EOF() {
			break
		}
		if tok.Type == opType {
			sb.WriteString(tok.Value)
			prog.Pos = append(prog.Pos, tok.Pos)
		}
	}
	prog.Ops = sb.String()
	return prog, nil
}

// Strip preprocesses a source string, returning only its operator text.
func Strip(d op.Dialect, src string) string {
	prog, err := Read(d, "", strings.NewReader(src))
	if err != nil {
		// every input rune is covered by some rule, and a strings.Reader
		// cannot fail
		panic(err)
	}
	return prog.Ops
}
