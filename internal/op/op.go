// Package op defines the closed set of (N) operators, shared by the
// interpreting VM and the code generation backend.
package op

import "fmt"

// Code identifies one operator.
type Code uint8

// Operator codes. The zero Code is Invalid, so that a zeroed program is
// never mistaken for a run of increments.
const (
	Invalid Code = iota
	Inc          // +
	Dec          // -
	Next         // >
	Prev         // <
	Open         // [
	Close        // ]
	Index        // i
	Count        // #
	EraseBefore  // (
	EraseAfter   // )
	Dup          // :
	Truncate     // |

	numCodes
)

var codeRunes = [numCodes]rune{
	Invalid:     0,
	Inc:         '+',
	Dec:         '-',
	Next:        '>',
	Prev:        '<',
	Open:        '[',
	Close:       ']',
	Index:       'i',
	Count:       '#',
	EraseBefore: '(',
	EraseAfter:  ')',
	Dup:         ':',
	Truncate:    '|',
}

var codeNames = [numCodes]string{
	Invalid:     "invalid",
	Inc:         "inc",
	Dec:         "dec",
	Next:        "next",
	Prev:        "prev",
	Open:        "open",
	Close:       "close",
	Index:       "index",
	Count:       "count",
	EraseBefore: "eraseBefore",
	EraseAfter:  "eraseAfter",
	Dup:         "dup",
	Truncate:    "truncate",
}

// Rune returns the source character for the code, or 0 for Invalid.
func (c Code) Rune() rune {
	if c < numCodes {
		return codeRunes[c]
	}
	return 0
}

// Name returns a mnemonic name, as used in trace logs.
func (c Code) Name() string {
	if c < numCodes {
		return codeNames[c]
	}
	return fmt.Sprintf("code%d", uint8(c))
}

func (c Code) String() string {
	if r := c.Rune(); r != 0 {
		return string(r)
	}
	return c.Name()
}

// Dialect selects one of the mutually incompatible operator sets.
type Dialect uint8

const (
	// Linear is the canonical dialect: an unbounded linear tape with index,
	// cardinality, and erase operators.
	Linear Dialect = iota

	// Ring is the legacy circular dialect: a ring tape with duplicate and
	// truncate operators, and no index or erase operators.
	Ring
)

var dialectCodes = [...][]Code{
	Linear: {Inc, Dec, Next, Prev, Open, Close, Index, Count, EraseBefore, EraseAfter},
	Ring:   {Inc, Dec, Next, Prev, Open, Close, Dup, Truncate, Count},
}

var dialectNames = [...]string{
	Linear: "linear",
	Ring:   "ring",
}

func (d Dialect) String() string {
	if int(d) < len(dialectNames) {
		return dialectNames[d]
	}
	return fmt.Sprintf("dialect%d", uint8(d))
}

// Set implements flag.Value.
func (d *Dialect) Set(s string) error {
	for i, name := range dialectNames {
		if name == s {
			*d = Dialect(i)
			return nil
		}
	}
	return fmt.Errorf("unknown dialect %q", s)
}

// UnmarshalText allows dialects to be decoded from config files.
func (d *Dialect) UnmarshalText(text []byte) error { return d.Set(string(text)) }

// Codes returns the operators recognized by the dialect.
func (d Dialect) Codes() []Code {
	if int(d) < len(dialectCodes) {
		return dialectCodes[d]
	}
	return nil
}

// Decode maps a source rune to its operator code under the dialect,
// returning Invalid for any rune outside the dialect's set.
func (d Dialect) Decode(r rune) Code {
	for _, c := range d.Codes() {
		if codeRunes[c] == r {
			return c
		}
	}
	return Invalid
}

// Has returns true if r is an operator of the dialect.
func (d Dialect) Has(r rune) bool { return d.Decode(r) != Invalid }

// Charset returns the dialect's operator characters as a string.
func (d Dialect) Charset() string {
	codes := d.Codes()
	rs := make([]rune, len(codes))
	for i, c := range codes {
		rs[i] = codeRunes[c]
	}
	return string(rs)
}

// Parse decodes clean operator text into codes. Runes outside the dialect
// are dropped; callers are expected to have preprocessed the source already.
func Parse(d Dialect, ops string) []Code {
	prog := make([]Code, 0, len(ops))
	for _, r := range ops {
		if c := d.Decode(r); c != Invalid {
			prog = append(prog, c)
		}
	}
	return prog
}

// Format renders codes back into operator text.
func Format(prog []Code) string {
	rs := make([]rune, 0, len(prog))
	for _, c := range prog {
		if r := c.Rune(); r != 0 {
			rs = append(rs, r)
		}
	}
	return string(rs)
}
