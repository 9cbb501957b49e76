package runeio

import (
	"errors"
	"strconv"
	"strings"
)

// ControlRune names a control codepoint.
type ControlRune struct {
	N string
	R rune
}

// C0Ctls are the classic ASCII control characters.
var C0Ctls = [32]ControlRune{
	{"<NUL>", 0x00}, {"<SOH>", 0x01}, {"<STX>", 0x02}, {"<ETX>", 0x03},
	{"<EOT>", 0x04}, {"<ENQ>", 0x05}, {"<ACK>", 0x06}, {"<BEL>", 0x07},
	{"<BS>", 0x08}, {"<HT>", 0x09}, {"<NL>", 0x0A}, {"<VT>", 0x0B},
	{"<NP>", 0x0C}, {"<CR>", 0x0D}, {"<SO>", 0x0E}, {"<SI>", 0x0F},
	{"<DLE>", 0x10}, {"<DC1>", 0x11}, {"<DC2>", 0x12}, {"<DC3>", 0x13},
	{"<DC4>", 0x14}, {"<NAK>", 0x15}, {"<SYN>", 0x16}, {"<ETB>", 0x17},
	{"<CAN>", 0x18}, {"<EM>", 0x19}, {"<SUB>", 0x1A}, {"<ESC>", 0x1B},
	{"<FS>", 0x1C}, {"<GS>", 0x1D}, {"<RS>", 0x1E}, {"<US>", 0x1F},
}

// PseudoCtls are the usual mnemonics for space and delete.
var PseudoCtls = [2]ControlRune{
	{"<SP>", 0x20},
	{"<DEL>", 0x7F},
}

// ControlWords maps mnemonics, in upper and lower case, and caret forms like
// ^[ to their runes.
var ControlWords = make(map[string]rune, 3*(len(C0Ctls)+len(PseudoCtls)))

func init() {
	for _, ctls := range [][]ControlRune{C0Ctls[:], PseudoCtls[:]} {
		for _, ctl := range ctls {
			ControlWords[strings.ToUpper(ctl.N)] = ctl.R
			ControlWords[strings.ToLower(ctl.N)] = ctl.R
			if caret := CaretForm(ctl.R); caret != "" {
				ControlWords[caret] = ctl.R
			}
		}
	}
}

// CaretForm returns the ^-escaped form of an ASCII control rune, or "".
func CaretForm(r rune) string {
	if (0 <= r && r < 0x20) || r == 0x7f {
		return "^" + string(r^0x40)
	}
	return ""
}

// Mnemonic describes r for human consumption: a control mnemonic like <ESC>,
// a quoted printable rune like 'A', or "" if r is neither.
func Mnemonic(r rune) string {
	switch {
	case 0 <= r && r < 0x20:
		return C0Ctls[r].N
	case r == 0x20:
		return PseudoCtls[0].N
	case r == 0x7f:
		return PseudoCtls[1].N
	case r < 0x7f && r > 0x20:
		return strconv.QuoteRune(r)
	}
	return ""
}

var errInvalidRune = errors.New(`rune literal must be "^X" "<NAME>" or 'X'`)

// ParseRune parses a rune literal: a control mnemonic like <ESC> or <esc>, a
// caret form like ^[, or a single quoted rune like 'A' or '\n'.
func ParseRune(token string) (rune, error) {
	if r, defined := ControlWords[token]; defined {
		return r, nil
	}
	if len(token) < 3 || token[0] != '\'' || token[len(token)-1] != '\'' {
		return 0, errInvalidRune
	}
	value, _, tail, err := strconv.UnquoteChar(token[1:], '\'')
	if err != nil {
		return 0, err
	}
	if tail != "'" {
		return 0, errInvalidRune
	}
	return value, nil
}
