package tapeio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/jcorbin/gon/internal/runeio"
)

// Format selects a tape serialization.
type Format uint8

// Output formats.
const (
	Numbers Format = iota
	Bytes
	Runes
)

var formatNames = [...]string{
	Numbers: "numbers",
	Bytes:   "bytes",
	Runes:   "runes",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("format%d", uint8(f))
}

// UnmarshalText decodes a format name, as found in config files.
func (f *Format) UnmarshalText(text []byte) error {
	for i, name := range formatNames {
		if name == string(text) {
			*f = Format(i)
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q", text)
}

// Write serializes values to w in the given format.
func Write(w io.Writer, format Format, values []uint64) error {
	switch format {
	case Numbers:
		return WriteNumbers(w, values)
	case Bytes:
		return WriteBytes(w, values)
	case Runes:
		return WriteRunes(w, values)
	}
	return fmt.Errorf("unsupported output format %v", format)
}

// WriteNumbers writes values as space separated decimal integers, with no
// trailing separator or newline.
func WriteNumbers(w io.Writer, values []uint64) error {
	buf := make([]byte, 0, 21*len(values))
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendUint(buf, v, 10)
	}
	_, err := w.Write(buf)
	return err
}

// Width returns the fewest bytes, out of 1, 2, 4 or 8, that hold v.
func Width(v uint64) int {
	switch {
	case v <= math.MaxUint8:
		return 1
	case v <= math.MaxUint16:
		return 2
	case v <= math.MaxUint32:
		return 4
	}
	return 8
}

// WriteBytes writes each value little-endian in Width(value) bytes, with no
// separators or length prefix.
func WriteBytes(w io.Writer, values []uint64) error {
	buf := make([]byte, 0, len(values))
	for _, v := range values {
		switch Width(v) {
		case 1:
			buf = append(buf, byte(v))
		case 2:
			buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
		case 4:
			buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
		default:
			buf = binary.LittleEndian.AppendUint64(buf, v)
		}
	}
	_, err := w.Write(buf)
	return err
}

// WriteRunes writes each value as a rune; values outside the Unicode range
// are written as utf8.RuneError.
func WriteRunes(w io.Writer, values []uint64) error {
	for _, v := range values {
		r := utf8.RuneError
		if v <= utf8.MaxRune {
			r = rune(v)
		}
		if _, err := runeio.WriteANSIRune(w, r); err != nil {
			return err
		}
	}
	return nil
}
