// Package tapeio converts between tapes and their external forms: command
// line seed arguments on the way in, decimal text, variable width binary, or
// runes on the way out.
package tapeio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcorbin/gon/internal/runeio"
)

// SkipError reports seed tokens that could not be parsed and were skipped.
type SkipError []string

func (se SkipError) Error() string {
	return fmt.Sprintf("skipped invalid seed element(s): %s", strings.Join(se, " "))
}

// ParseNumbers parses seed tokens as unsigned decimal integers, or as rune
// literals like 'A', <ESC> or ^[. Tokens that are neither are skipped; they
// are reported by a SkipError, returned alongside the values that did parse.
func ParseNumbers(args []string) ([]uint64, error) {
	values := make([]uint64, 0, len(args))
	var skipped SkipError
	for _, arg := range args {
		if n, err := strconv.ParseUint(arg, 10, 64); err == nil {
			values = append(values, n)
		} else if r, rerr := runeio.ParseRune(arg); rerr == nil {
			values = append(values, uint64(r))
		} else {
			skipped = append(skipped, arg)
		}
	}
	if len(skipped) > 0 {
		return values, skipped
	}
	return values, nil
}

// ExplodeBytes seeds one cell per byte of each argument, in order.
func ExplodeBytes(args []string) []uint64 {
	var values []uint64
	for _, arg := range args {
		for i := 0; i < len(arg); i++ {
			values = append(values, uint64(arg[i]))
		}
	}
	return values
}

// ExplodeRunes seeds one cell per code point of each argument, in order;
// invalid UTF-8 bytes each become utf8.RuneError.
func ExplodeRunes(args []string) []uint64 {
	var values []uint64
	for _, arg := range args {
		for _, r := range arg {
			values = append(values, uint64(r))
		}
	}
	return values
}

// InputMode selects how seed arguments become cells.
type InputMode uint8

// Input modes.
const (
	InputNumbers InputMode = iota
	InputBytes
	InputRunes
)

var inputModeNames = [...]string{
	InputNumbers: "numbers",
	InputBytes:   "bytes",
	InputRunes:   "runes",
}

func (m InputMode) String() string {
	if int(m) < len(inputModeNames) {
		return inputModeNames[m]
	}
	return fmt.Sprintf("input%d", uint8(m))
}

// UnmarshalText decodes a mode name, as found in config files.
func (m *InputMode) UnmarshalText(text []byte) error {
	for i, name := range inputModeNames {
		if name == string(text) {
			*m = InputMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown input mode %q", text)
}

// Seed converts arguments under the given mode; only InputNumbers can
// return an error, a SkipError.
func Seed(mode InputMode, args []string) ([]uint64, error) {
	switch mode {
	case InputBytes:
		return ExplodeBytes(args), nil
	case InputRunes:
		return ExplodeRunes(args), nil
	default:
		return ParseNumbers(args)
	}
}
