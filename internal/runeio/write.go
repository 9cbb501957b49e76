package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteANSIRune writes a rune to w:
// - ASCII runes are written as single bytes
// - NEL is written as "\r\n"
// - other C1 controls are written in their 7-bit ESC form, e.g. CSI as "\x1b["
// - invalid runes are written as utf8.RuneError
// - all other runes are written in utf8 form
func WriteANSIRune(w io.Writer, r rune) (n int, err error) {
	if r < 0x80 && r >= 0 {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	if r == 0x85 {
		return w.Write([]byte{'\r', '\n'})
	}
	if 0x80 <= r && r <= 0x9f {
		return w.Write([]byte{0x1b, byte(r ^ 0xc0)})
	}
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	var buf [utf8.UTFMax]byte
	return w.Write(buf[:utf8.EncodeRune(buf[:], r)])
}
