// Package ansi turns cell styles into SGR escape codes and provides the
// screen-control sequences the display layer emits.
package ansi

import (
	"bytes"
	"strings"
)

// Screen control sequences.
const (
	ClearScreen   = "\x1b[2J\x1b[H"
	Home          = "\x1b[H"
	HideCursor    = "\x1b[?25l"
	ShowCursor    = "\x1b[?25h"
	Reset         = "\x1b[0m"
	EraseLineEnd  = "\x1b[K"
	EraseLineHead = "\x1b[1K"
	EraseLine     = "\x1b[2K"
)

const csi = "\x1b["

// SGR codes for style flags.
const (
	codeReset         = "0"
	codeBold          = "1"
	codeDim           = "2"
	codeItalic        = "3"
	codeUnderline     = "4"
	codeInverse       = "7"
	codeStrikethrough = "9"
)

// Sequence joins codes into one SGR escape. No codes yield "".
func Sequence(codes []string) string {
	if len(codes) == 0 {
		return ""
	}
	return csi + strings.Join(codes, ";") + "m"
}

// WriteSequence appends the SGR escape for codes to b.
func WriteSequence(b *bytes.Buffer, codes []string) {
	if len(codes) == 0 {
		return
	}
	b.WriteString(csi)
	for i, c := range codes {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(c)
	}
	b.WriteByte('m')
}

// CursorTo returns the sequence moving the cursor to 0-indexed (x, y).
func CursorTo(x, y int) string {
	var b bytes.Buffer
	WriteCursorTo(&b, x, y)
	return b.String()
}

// WriteCursorTo appends the 1-indexed cursor position sequence for
// 0-indexed (x, y) to b. Negative coordinates clamp to the first row and
// column.
func WriteCursorTo(b *bytes.Buffer, x, y int) {
	b.WriteString(csi)
	writeInt(b, max(y, 0)+1)
	b.WriteByte(';')
	writeInt(b, max(x, 0)+1)
	b.WriteByte('H')
}

// writeInt writes a non-negative integer without allocating.
func writeInt(b *bytes.Buffer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		b.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		b.WriteByte(byte(n/10) + '0')
		b.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	b.Write(buf[i:])
}
