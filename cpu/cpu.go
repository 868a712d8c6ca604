package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/nandpc/device"
	"github.com/ezrec/nandpc/gate"
	"github.com/ezrec/nandpc/storage"
)

const (
	OUTPUT_ADDRESS = 255 // Memory address mirrored to the output port.
)

var _cpu_defines = map[string]string{
	"OUTPUT":      fmt.Sprintf("%d", OUTPUT_ADDRESS),
	"MEMORY_SIZE": fmt.Sprintf("%d", storage.RAM_SIZE),
	"REGISTERS":   fmt.Sprintf("%d", storage.REGISTER_COUNT),
}

// Cpu is the execution context of one program run.
//
// Every Cpu owns its registers, memory and overflow flag, so independent
// runs never share state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register storage.Registers // Register file.
	Memory   storage.Ram       // Random access memory.
	Overflow gate.Bit          // Carry or borrow of the last arithmetic instruction.

	Port device.Port // Receives every byte stored to OUTPUT_ADDRESS.

	Ip    int // Offset of the next program byte.
	Ticks int // Instructions executed.
}

// NewCpu creates a zeroed CPU whose output is discarded.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Port: device.Null{},
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Zeros the registers, the memory and the overflow flag.
// - Zeros the instruction counters.
// - Rewinds the output port.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Memory.Reset()
	cpu.Overflow = gate.Low
	cpu.Ip = 0
	cpu.Ticks = 0

	if cpu.Port != nil {
		cpu.Port.Rewind()
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 8s: %d\n", "ip", cpu.Ip)
	for n := range uint8(storage.REGISTER_COUNT) {
		val := cpu.Register.Load(storage.RegisterOf(n))
		text += fmt.Sprintf("% 8s: %02X (%v)\n", CodeRegister(n), val.Uint8(), val)
	}
	text += fmt.Sprintf("% 8s: %v\n", "overflow", cpu.Overflow)

	return
}

// ReadCode reads one instruction from the program, returning it and the
// number of bytes consumed.
//
// At the end of the program ErrProgramEnd is returned. An opcode outside of
// the instruction set is an ErrOpcode, and an opcode whose operand is
// missing is an ErrTruncated.
func ReadCode(program io.ByteReader) (code Code, n int, err error) {
	op, err := program.ReadByte()
	if errors.Is(err, io.EOF) {
		err = ErrProgramEnd
		return
	}
	if err != nil {
		return
	}
	n++

	code = Code{Op: op}
	if code.Class() == OP_INVALID {
		err = ErrOpcode(op)
		return
	}

	for range code.ImmediateNeed() {
		var imm uint8
		imm, err = program.ReadByte()
		if errors.Is(err, io.EOF) {
			err = ErrTruncated(op)
			return
		}
		if err != nil {
			return
		}
		n++
		code.Immediates = append(code.Immediates, imm)
	}

	return
}

// FetchCode fetches the next instruction from the program.
func (cpu *Cpu) FetchCode(program io.ByteReader) (code Code, err error) {
	code, n, err := ReadCode(program)
	cpu.Ip += n
	return
}

// Tick fetches and executes a single instruction.
// ErrProgramEnd is returned once the program is exhausted.
func (cpu *Cpu) Tick(program io.ByteReader) (err error) {
	ip := cpu.Ip

	code, err := cpu.FetchCode(program)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03d: %v", ip, code)
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Run executes the program until it ends or fails.
// Writes completed before a failure remain visible.
func (cpu *Cpu) Run(program io.ByteReader) (err error) {
	for {
		err = cpu.Tick(program)
		if errors.Is(err, ErrProgramEnd) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// Alu runs the program on a fresh CPU, writing every byte stored to
// OUTPUT_ADDRESS as a character to out.
func Alu(program io.ByteReader, out io.Writer) (err error) {
	cpu := NewCpu()
	cpu.Port = &device.Console{Output: out}

	err = cpu.Run(program)

	return
}

// logic maps the bitwise classes to their byte gate.
var logic = map[CodeClass](func(a, b gate.Byte) gate.Byte){
	OP_NAND: gate.Byte.Nand,
	OP_AND:  gate.Byte.And,
	OP_NOR:  gate.Byte.Nor,
	OP_OR:   gate.Byte.Or,
	OP_XNOR: gate.Byte.Xnor,
	OP_XOR:  gate.Byte.Xor,
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	class := code.Class()

	if class == OP_INVALID {
		err = ErrOpcode(code.Op)
		return
	}

	if len(code.Immediates) < class.ImmediateNeed() {
		err = ErrTruncated(code.Op)
		return
	}

	if len(code.Immediates) > class.ImmediateNeed() {
		err = errors.Join(ErrOpcode(code.Op), ErrOpcodeImm)
		return
	}

	// Register selectors are opcode bits 0-1 and 2-3.
	bits := gate.FromUint8(code.Op).Bits()
	low := storage.RegisterAddress{bits[0], bits[1]}
	high := storage.RegisterAddress{bits[2], bits[3]}

	regs := &cpu.Register

	switch class {
	case OP_LOAD_CONST:
		regs.Store(low, gate.FromUint8(code.Immediates[0]))
	case OP_LOAD_MEMORY:
		addr := gate.FromUint8(code.Immediates[0])
		regs.Store(low, cpu.Memory.Load(addr))
	case OP_STORE_MEMORY:
		addr := gate.FromUint8(code.Immediates[0])
		value := regs.Load(low)
		cpu.Memory.Store(addr, value)
		if isOutput(addr).Bool() {
			err = cpu.output(value)
		}
	case OP_NOT:
		regs.Store(low, regs.Load(low).Not())
	case OP_MOVE:
		regs.Store(high, regs.Load(low))
	case OP_NAND, OP_AND, OP_NOR, OP_OR, OP_XNOR, OP_XOR:
		regs.Store(high, logic[class](regs.Load(high), regs.Load(low)))
	case OP_ADD:
		result, carry := regs.Load(high).Add(regs.Load(low))
		regs.Store(high, result)
		cpu.Overflow = carry
	case OP_ADD_OVERFLOW:
		result, carry := regs.Load(high).AddWithCarry(regs.Load(low), cpu.Overflow)
		regs.Store(high, result)
		cpu.Overflow = carry
	case OP_SUB:
		result, carry := regs.Load(high).Sub(regs.Load(low))
		regs.Store(high, result)
		cpu.Overflow = carry
	case OP_SUB_OVERFLOW:
		result, carry := regs.Load(high).SubWithCarry(regs.Load(low), cpu.Overflow)
		regs.Store(high, result)
		cpu.Overflow = carry
	}

	return
}

// isOutput is High when every address bit is High.
func isOutput(addr gate.Byte) (match gate.Bit) {
	match = gate.High
	for _, bit := range addr.Bits() {
		match = match.And(bit)
	}
	return
}

// output sends a byte to the output port.
func (cpu *Cpu) output(value gate.Byte) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: output %q", rune(value.Uint8()))
	}

	if cpu.Port == nil {
		return
	}

	err = cpu.Port.Send(value.Uint8())

	return
}
