package cpu

import (
	"bytes"
	"errors"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated instructions.
type Opcode struct {
	LineNo int
	Ip     int
	Words  []string
	Codes  []Code
}

// Len returns the number of bytes generated by the line.
func (op *Opcode) Len() (size int) {
	for _, code := range op.Codes {
		size += code.Len()
	}
	return
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the source line and instruction covering program offset ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip < op.Ip || ip >= op.Ip+op.Len() {
			continue
		}
		offset := op.Ip
		for index, code := range op.Codes {
			if ip < offset+code.Len() {
				dbg = Debug{
					Opcode: &prog.Opcodes[n],
					Index:  index,
				}
				return
			}
			offset += code.Len()
		}
	}

	return
}

// LineNo returns the source line of program offset ip, or 0.
func (prog *Program) LineNo(ip int) int {
	dbg := prog.Debug(ip)
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Binary returns the byte stream of the program.
func (prog *Program) Binary() (bins []byte) {
	for _, code := range prog.Codes() {
		bins = append(bins, code.Bytes()...)
	}

	return
}

// Codes iterates over the program offset of each instruction.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, op := range prog.Opcodes {
			ip := op.Ip
			for _, code := range op.Codes {
				if !yield(ip, code) {
					return
				}
				ip += code.Len()
			}
		}
	}
}

// ProgramOf builds a listing from an assembled byte stream.
//
// Bytes that do not decode are kept as they are, so the listing's
// Binary always reproduces bin and decode errors surface when run.
func ProgramOf(bin []byte) (prog *Program) {
	prog = &Program{}

	reader := bytes.NewReader(bin)
	ip := 0
	for {
		code, n, err := ReadCode(reader)
		if errors.Is(err, ErrProgramEnd) {
			break
		}
		if n == 0 {
			// Only EOF can end a bytes.Reader.
			break
		}
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Ip:    ip,
			Words: strings.Fields(code.String()),
			Codes: []Code{code},
		})
		ip += n
	}

	return
}
