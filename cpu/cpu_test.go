package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nandpc/device"
	"github.com/ezrec/nandpc/gate"
	"github.com/ezrec/nandpc/storage"
)

// runBytes executes program on a fresh CPU, returning the CPU and its output.
func runBytes(program []byte) (cpu *Cpu, output string, err error) {
	out := &bytes.Buffer{}
	cpu = NewCpu()
	cpu.Port = &device.Console{Output: out}
	cpu.Reset()

	err = cpu.Run(bytes.NewReader(program))
	output = out.String()
	return
}

func reg(cpu *Cpu, r CodeRegister) uint8 {
	return cpu.Register.Load(storage.RegisterOf(uint8(r))).Uint8()
}

func TestAluHi(t *testing.T) {
	assert := assert.New(t)

	out := &strings.Builder{}
	err := Alu(bytes.NewReader([]byte{0, 'H', 8, 255, 0, 'i', 8, 255}), out)
	assert.NoError(err)
	assert.Equal("Hi", out.String())
}

func TestAluHelloWorld(t *testing.T) {
	assert := assert.New(t)

	expected := "Hello, world!"

	var program []byte
	for _, c := range []byte(expected) {
		program = append(program, 0, c, 8, 255)
	}

	out := &bytes.Buffer{}
	assert.NoError(Alu(bytes.NewReader(program), out))
	assert.Equal(expected, out.String())
}

func TestInvalidOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu, output, err := runBytes([]byte{200, 0, 'x', 8, 255})
	assert.ErrorIs(err, ErrOpcodeInvalid)
	assert.Equal(ErrOpcode(200), err)
	assert.Equal("", output)
	assert.Equal(0, cpu.Ticks)

	for op := 192; op < 256; op++ {
		_, _, err = runBytes([]byte{uint8(op)})
		assert.ErrorIs(err, ErrOpcodeInvalid, "opcode %d", op)
	}
}

func TestInvalidOpcodeKeepsPriorWrites(t *testing.T) {
	assert := assert.New(t)

	cpu, output, err := runBytes([]byte{1, 7, 9, 255, 9, 3, 255})
	assert.ErrorIs(err, ErrOpcodeInvalid)
	assert.Equal("\a", output)
	assert.Equal(uint8(7), reg(cpu, REG_R1))
	assert.Equal(uint8(7), cpu.Memory.Load(gate.FromUint8(3)).Uint8())
	assert.Equal(3, cpu.Ticks)
}

func TestTruncated(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []byte{0, 3, 4, 7, 8, 11} {
		_, output, err := runBytes([]byte{op})
		assert.ErrorIs(err, ErrProgramTruncated, "opcode %d", op)
		assert.Equal(ErrTruncated(op), err)
		assert.False(errors.Is(err, ErrOpcodeInvalid))
		assert.Equal("", output)
	}
}

func TestEmptyProgram(t *testing.T) {
	assert := assert.New(t)

	cpu, output, err := runBytes(nil)
	assert.NoError(err)
	assert.Equal("", output)
	assert.Equal(0, cpu.Ticks)
	assert.Equal(0, cpu.Ip)
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	program := Encode(
		MakeCodeImm(OP_LOAD_CONST, REG_R2, 0x42),
		MakeCodeImm(OP_STORE_MEMORY, REG_R2, 0x10),
		MakeCodeImm(OP_LOAD_MEMORY, REG_R3, 0x10),
		MakeCodeImm(OP_LOAD_MEMORY, REG_R0, 0x11),
	)

	cpu, output, err := runBytes(program)
	assert.NoError(err)
	assert.Equal("", output)
	assert.Equal(uint8(0x42), reg(cpu, REG_R3))
	assert.Equal(uint8(0), reg(cpu, REG_R0))
	assert.Equal(uint8(0x42), cpu.Memory.Load(gate.FromUint8(0x10)).Uint8())
	assert.Equal(4, cpu.Ticks)
	assert.Equal(8, cpu.Ip)
}

func TestOutputStoresMemory(t *testing.T) {
	assert := assert.New(t)

	program := Encode(
		MakeCodeImm(OP_LOAD_CONST, REG_R1, 'Z'),
		MakeCodeImm(OP_STORE_MEMORY, REG_R1, OUTPUT_ADDRESS),
		MakeCodeImm(OP_LOAD_MEMORY, REG_R2, OUTPUT_ADDRESS),
		MakeCodeImm(OP_STORE_MEMORY, REG_R1, 254),
	)

	cpu, output, err := runBytes(program)
	assert.NoError(err)
	assert.Equal("Z", output)
	assert.Equal(uint8('Z'), reg(cpu, REG_R2))
}

func TestUnary(t *testing.T) {
	assert := assert.New(t)

	program := Encode(
		MakeCodeImm(OP_LOAD_CONST, REG_R3, 0x0f),
		MakeCodeNot(REG_R3),
	)

	cpu, _, err := runBytes(program)
	assert.NoError(err)
	assert.Equal(uint8(0xf0), reg(cpu, REG_R3))
}

func TestBinary(t *testing.T) {
	assert := assert.New(t)

	a := uint8(0xc5)
	b := uint8(0x5a)

	table := [](struct {
		class    CodeClass
		expected uint8
	}){
		{OP_MOVE, b},
		{OP_NAND, ^(a & b)},
		{OP_AND, a & b},
		{OP_NOR, ^(a | b)},
		{OP_OR, a | b},
		{OP_XNOR, ^(a ^ b)},
		{OP_XOR, a ^ b},
		{OP_ADD, a + b},
		{OP_SUB, a - b},
	}

	for _, entry := range table {
		program := Encode(
			MakeCodeImm(OP_LOAD_CONST, REG_R1, a),
			MakeCodeImm(OP_LOAD_CONST, REG_R2, b),
			MakeCodeReg(entry.class, REG_R1, REG_R2),
		)

		cpu, _, err := runBytes(program)
		assert.NoError(err, entry.class.String())
		assert.Equal(entry.expected, reg(cpu, REG_R1), entry.class.String())
		assert.Equal(b, reg(cpu, REG_R2), entry.class.String())
	}
}

func TestOverflowChain(t *testing.T) {
	assert := assert.New(t)

	// 16-bit add: 0x01ff + 0x0001 = 0x0200, low bytes in r0/r2, high in r1/r3.
	program := Encode(
		MakeCodeImm(OP_LOAD_CONST, REG_R0, 0xff),
		MakeCodeImm(OP_LOAD_CONST, REG_R1, 0x01),
		MakeCodeImm(OP_LOAD_CONST, REG_R2, 0x01),
		MakeCodeImm(OP_LOAD_CONST, REG_R3, 0x00),
		MakeCodeReg(OP_ADD, REG_R0, REG_R2),
		MakeCodeReg(OP_ADD_OVERFLOW, REG_R1, REG_R3),
	)

	cpu, _, err := runBytes(program)
	assert.NoError(err)
	assert.Equal(uint8(0x00), reg(cpu, REG_R0))
	assert.Equal(uint8(0x02), reg(cpu, REG_R1))
	assert.Equal(gate.Low, cpu.Overflow)
}

func TestSubOverflow(t *testing.T) {
	assert := assert.New(t)

	program := Encode(
		MakeCodeImm(OP_LOAD_CONST, REG_R0, 10),
		MakeCodeImm(OP_LOAD_CONST, REG_R1, 3),
		MakeCodeReg(OP_SUB, REG_R0, REG_R1),          // 7, no borrow: overflow High
		MakeCodeReg(OP_SUB_OVERFLOW, REG_R0, REG_R1), // 7 - 3 - 1
	)

	cpu, _, err := runBytes(program)
	assert.NoError(err)
	assert.Equal(uint8(3), reg(cpu, REG_R0))
	assert.Equal(gate.High, cpu.Overflow)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu, _, err := runBytes(Encode(
		MakeCodeImm(OP_LOAD_CONST, REG_R0, 0xff),
		MakeCodeImm(OP_STORE_MEMORY, REG_R0, 0x80),
		MakeCodeReg(OP_ADD, REG_R0, REG_R0),
	))
	assert.NoError(err)
	assert.Equal(gate.High, cpu.Overflow)

	cpu.Reset()
	assert.Equal(storage.Registers{}, cpu.Register)
	assert.Equal(storage.Ram{}, cpu.Memory)
	assert.Equal(gate.Low, cpu.Overflow)
	assert.Equal(0, cpu.Ip)
	assert.Equal(0, cpu.Ticks)
}

func TestIndependentRuns(t *testing.T) {
	assert := assert.New(t)

	first, _, err := runBytes(Encode(MakeCodeImm(OP_LOAD_CONST, REG_R0, 9)))
	assert.NoError(err)

	second, _, err := runBytes(Encode(MakeCodeImm(OP_LOAD_MEMORY, REG_R1, 0)))
	assert.NoError(err)

	assert.Equal(uint8(9), reg(first, REG_R0))
	assert.Equal(uint8(0), reg(second, REG_R0))
}

func TestExecuteImmediates(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	err := cpu.Execute(Code{Op: 0})
	assert.ErrorIs(err, ErrProgramTruncated)

	err = cpu.Execute(Code{Op: 16, Immediates: []uint8{1}})
	assert.ErrorIs(err, ErrOpcodeImm)
	assert.ErrorIs(err, ErrOpcodeInvalid)

	err = cpu.Execute(Code{Op: 0xff})
	assert.ErrorIs(err, ErrOpcodeInvalid)
}

type failPort struct{}

var errPort = errors.New("port failed")

func (failPort) Rewind()                {}
func (failPort) Send(value uint8) error { return errPort }

func TestOutputError(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Port = failPort{}

	err := cpu.Run(bytes.NewReader([]byte{0, 'a', 8, 255, 0, 'b'}))
	assert.ErrorIs(err, errPort)
	assert.Equal(uint8('a'), cpu.Memory.Load(gate.FromUint8(255)).Uint8())
	assert.Equal(0, cpu.Ticks)
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu, _, err := runBytes([]byte{2, 0xa5})
	assert.NoError(err)

	text := cpu.String()
	assert.Contains(text, "r2: A5 (10100101)")
	assert.Contains(text, "overflow: 0")
	assert.Contains(text, "ip: 2")
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, val := range NewCpu().Defines() {
		defines[key] = val
	}

	assert.Equal("255", defines["OUTPUT"])
	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("4", defines["REGISTERS"])
}

func TestVerboseTrace(t *testing.T) {
	assert := assert.New(t)

	trace := &bytes.Buffer{}
	logger := log.StandardLogger()
	saved_out, saved_level := logger.Out, logger.GetLevel()
	defer func() {
		log.SetOutput(saved_out)
		log.SetLevel(saved_level)
	}()
	log.SetOutput(trace)
	log.SetLevel(log.InfoLevel)

	cpu := NewCpu()
	cpu.Verbose = true
	assert.NoError(cpu.Run(bytes.NewReader(Encode(MakeCodeImm(OP_LOAD_CONST, REG_R0, 72)))))
	assert.Contains(trace.String(), "set r0 72")

	trace.Reset()
	cpu.Verbose = false
	cpu.Reset()
	assert.NoError(cpu.Run(bytes.NewReader(Encode(MakeCodeImm(OP_LOAD_CONST, REG_R0, 72)))))
	assert.Empty(trace.String())
}
