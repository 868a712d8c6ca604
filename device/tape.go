package device

import (
	"io"
)

// Tape writes each byte sent to it unchanged, for binary output.
type Tape struct {
	Output io.Writer // nil discards.

	writeIndex int
}

// Rewind clears the byte count. The written bytes stay written.
func (tc *Tape) Rewind() {
	tc.writeIndex = 0
}

// Resume continues a run whose Tape had already sent count bytes.
func (tc *Tape) Resume(count int) {
	tc.writeIndex = count
}

// Sent returns the number of bytes sent since the last Rewind.
func (tc *Tape) Sent() int {
	return tc.writeIndex
}

// Send writes value to the output stream.
func (tc *Tape) Send(value uint8) (err error) {
	tc.writeIndex++

	if tc.Output == nil {
		return
	}

	n, err := tc.Output.Write([]byte{value})
	if err != nil {
		return
	}
	if n != 1 {
		err = ErrShortWrite
		return
	}

	return
}
