package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"set", "r0", "0x10"},
				Codes: []Code{MakeCodeImm(OP_LOAD_CONST, REG_R0, 0x10)}},
			{LineNo: 3, Ip: 2, Words: []string{"putc", "r1", "72"},
				Codes: []Code{
					MakeCodeImm(OP_LOAD_CONST, REG_R1, 72),
					MakeCodeImm(OP_STORE_MEMORY, REG_R1, 255),
				}},
			{LineNo: 4, Ip: 6, Words: []string{"add", "r0", "r1"},
				Codes: []Code{MakeCodeReg(OP_ADD, REG_R0, REG_R1)}},
		},
	}
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]byte{0, 0x10, 1, 72, 9, 255, 128 | 0<<2 | 1}, prog.Binary())

	empty := &Program{}
	assert.Empty(empty.Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	ips := []int{}
	codes := []Code{}
	for ip, code := range prog.Codes() {
		ips = append(ips, ip)
		codes = append(codes, code)
	}

	assert.Equal([]int{0, 2, 4, 6}, ips)
	assert.Equal(4, len(codes))
	assert.Equal(OP_STORE_MEMORY, codes[2].Class())
}

func TestProgram_Codes_EarlyReturn(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for range testProgram().Codes() {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(2, count)
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	table := []struct {
		ip     int
		lineno int
		index  int
	}{
		{0, 1, 0},
		{1, 1, 0},
		{2, 3, 0},
		{3, 3, 0},
		{4, 3, 1},
		{5, 3, 1},
		{6, 4, 0},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.ip)
		if !assert.NotNil(dbg.Opcode, "ip %d", entry.ip) {
			continue
		}
		assert.Equal(entry.lineno, dbg.LineNo, "ip %d", entry.ip)
		assert.Equal(entry.index, dbg.Index, "ip %d", entry.ip)
		assert.Equal(entry.lineno, prog.LineNo(entry.ip))
	}

	dbg := prog.Debug(7)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, prog.LineNo(7))
	assert.Equal(0, prog.LineNo(-1))
}

func TestProgramOf(t *testing.T) {
	assert := assert.New(t)

	bin := []byte{0, 'H', 8, 255, 200, 0x85, 4}
	prog := ProgramOf(bin)

	assert.Equal(bin, prog.Binary())
	assert.Equal(5, len(prog.Opcodes))

	words := [][]string{}
	ips := []int{}
	for _, op := range prog.Opcodes {
		words = append(words, op.Words)
		ips = append(ips, op.Ip)
	}
	assert.Equal([][]string{
		{"set", "r0", "72"},
		{"store", "r0", "255"},
		{".byte", "200"},
		{"add", "r1", "r1"},
		{"load", "r0", "?"},
	}, words)
	assert.Equal([]int{0, 2, 4, 5, 6}, ips)

	assert.Empty(ProgramOf(nil).Opcodes)
}
