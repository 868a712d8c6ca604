package cpu

import (
	"fmt"
)

// CodeClass is the operation selected by an opcode byte.
type CodeClass int

const (
	OP_LOAD_CONST   = CodeClass(0)  // set
	OP_LOAD_MEMORY  = CodeClass(1)  // load
	OP_STORE_MEMORY = CodeClass(2)  // store
	OP_NOT          = CodeClass(3)  // not
	OP_MOVE         = CodeClass(4)  // mov
	OP_NAND         = CodeClass(5)  // nand
	OP_AND          = CodeClass(6)  // and
	OP_NOR          = CodeClass(7)  // nor
	OP_OR           = CodeClass(8)  // or
	OP_XNOR         = CodeClass(9)  // xnor
	OP_XOR          = CodeClass(10) // xor
	OP_ADD          = CodeClass(11) // add
	OP_ADD_OVERFLOW = CodeClass(12) // addc
	OP_SUB          = CodeClass(13) // sub
	OP_SUB_OVERFLOW = CodeClass(14) // subc
	OP_INVALID      = CodeClass(15) // invalid
)

var _codeClassName = [...]string{
	OP_LOAD_CONST:   "set",
	OP_LOAD_MEMORY:  "load",
	OP_STORE_MEMORY: "store",
	OP_NOT:          "not",
	OP_MOVE:         "mov",
	OP_NAND:         "nand",
	OP_AND:          "and",
	OP_NOR:          "nor",
	OP_OR:           "or",
	OP_XNOR:         "xnor",
	OP_XOR:          "xor",
	OP_ADD:          "add",
	OP_ADD_OVERFLOW: "addc",
	OP_SUB:          "sub",
	OP_SUB_OVERFLOW: "subc",
	OP_INVALID:      "invalid",
}

// String returns the assembler mnemonic of the class.
func (cc CodeClass) String() string {
	if cc < 0 || int(cc) >= len(_codeClassName) {
		return fmt.Sprintf("CodeClass(%d)", int(cc))
	}
	return _codeClassName[cc]
}

// Base returns the lowest opcode byte of the class.
//
// Single register classes occupy 4 opcodes each below 16, two register
// classes occupy 16 opcodes each from 16 up to 191.
func (cc CodeClass) Base() uint8 {
	if cc < OP_MOVE {
		return uint8(cc) << 2
	}
	return uint8(cc-OP_MOVE+1) << 4
}

// Binary returns true if the class takes a destination and a source register.
func (cc CodeClass) Binary() bool {
	return cc >= OP_MOVE && cc < OP_INVALID
}

// ImmediateNeed returns the number of operand bytes following the opcode.
func (cc CodeClass) ImmediateNeed() int {
	if cc <= OP_STORE_MEMORY {
		return 1
	}
	return 0
}

// CodeRegister is a register number.
type CodeRegister uint8

const (
	REG_R0 = CodeRegister(0) // r0
	REG_R1 = CodeRegister(1) // r1
	REG_R2 = CodeRegister(2) // r2
	REG_R3 = CodeRegister(3) // r3
)

// String returns the assembler name of the register.
func (reg CodeRegister) String() string {
	return fmt.Sprintf("r%d", uint8(reg))
}

// Code is a single instruction: the opcode byte and its operand bytes.
type Code struct {
	Op         uint8
	Immediates []uint8
}

// MakeCodeImm creates a set, load or store instruction.
func MakeCodeImm(class CodeClass, reg CodeRegister, value uint8) Code {
	return Code{
		Op:         class.Base() | (uint8(reg) & 3),
		Immediates: []uint8{value},
	}
}

// MakeCodeNot creates a not instruction.
func MakeCodeNot(reg CodeRegister) Code {
	return Code{Op: OP_NOT.Base() | (uint8(reg) & 3)}
}

// MakeCodeReg creates a two register instruction. The result lands in dst.
func MakeCodeReg(class CodeClass, dst, src CodeRegister) Code {
	return Code{Op: class.Base() | ((uint8(dst) & 3) << 2) | (uint8(src) & 3)}
}

// Class returns the operation class of the opcode.
func (code Code) Class() CodeClass {
	op := code.Op
	switch {
	case op < 16:
		return CodeClass(op >> 2)
	case op < 192:
		return CodeClass(op>>4) + OP_MOVE - 1
	}
	return OP_INVALID
}

// Low returns the register in opcode bits 0-1.
func (code Code) Low() CodeRegister {
	return CodeRegister((code.Op >> 0) & 3)
}

// High returns the register in opcode bits 2-3.
func (code Code) High() CodeRegister {
	return CodeRegister((code.Op >> 2) & 3)
}

// ImmediateNeed returns the number of operand bytes the opcode requires.
func (code Code) ImmediateNeed() int {
	return code.Class().ImmediateNeed()
}

// Len returns the encoded size of the instruction in bytes.
func (code Code) Len() int {
	return 1 + len(code.Immediates)
}

// Bytes returns the encoded instruction.
func (code Code) Bytes() (bins []byte) {
	bins = append(bins, code.Op)
	bins = append(bins, code.Immediates...)
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	class := code.Class()

	switch {
	case class == OP_INVALID:
		out = fmt.Sprintf(".byte %d", code.Op)
	case class.Binary():
		out = fmt.Sprintf("%v %v %v", class, code.High(), code.Low())
	case class == OP_NOT:
		out = fmt.Sprintf("%v %v", class, code.Low())
	case len(code.Immediates) == 1:
		out = fmt.Sprintf("%v %v %d", class, code.Low(), code.Immediates[0])
	default:
		out = fmt.Sprintf("%v %v ?", class, code.Low())
	}

	return
}
