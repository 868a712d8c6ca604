package cpu

import (
	"bytes"
	"errors"
)

// Encode converts instructions into the byte stream the CPU executes.
//
// Two register instructions are packed into a single byte: the destination
// in opcode bits 2-3 and the source in bits 0-1.
func Encode(codes ...Code) (bins []byte) {
	for _, code := range codes {
		bins = append(bins, code.Bytes()...)
	}

	return
}

// Disassemble decodes a byte stream into instructions. It fails exactly
// where the CPU would fail, returning the instructions decoded so far.
func Disassemble(program []byte) (codes []Code, err error) {
	input := bytes.NewReader(program)

	for {
		var code Code
		code, _, err = ReadCode(input)
		if errors.Is(err, ErrProgramEnd) {
			err = nil
			return
		}
		if err != nil {
			return
		}
		codes = append(codes, code)
	}
}
