// Package device provides the output devices of the NAND computer.
//
// The computer has a single memory mapped output: every byte stored to the
// output address is handed to a Port. Console renders those bytes as
// characters on an io.Writer, Tape writes them unchanged and Null drops
// them.
package device

// Port is a byte-wide output device.
type Port interface {
	// Rewind resets the port to its initial state.
	Rewind()
	// Send delivers one byte to the device.
	Send(value uint8) error
}

// Null discards everything sent to it.
type Null struct{}

// Rewind does nothing.
func (Null) Rewind() {}

// Send drops the value.
func (Null) Send(value uint8) error {
	return nil
}
