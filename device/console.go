package device

import (
	"io"
	"unicode/utf8"
)

// Console is a character sink. Each byte sent is the code point of one
// character, written to Output UTF-8 encoded.
type Console struct {
	Output io.Writer // Destination of the characters. nil discards.

	sent int
}

// Rewind clears the character count.
func (con *Console) Rewind() {
	con.sent = 0
}

// Resume continues a run whose Console had already sent count characters.
func (con *Console) Resume(count int) {
	con.sent = count
}

// Sent returns the number of characters sent since the last Rewind.
func (con *Console) Sent() int {
	return con.sent
}

// Send writes the character whose code point is value.
func (con *Console) Send(value uint8) (err error) {
	con.sent++

	if con.Output == nil {
		return
	}

	buf := utf8.AppendRune(nil, rune(value))
	n, err := con.Output.Write(buf)
	if err != nil {
		return
	}
	if n != len(buf) {
		err = ErrShortWrite
		return
	}

	return
}
