package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nandpc/gate"
)

// selectOf returns the low width bits of value, LSB first.
func selectOf(value int, width int) (sel []gate.Bit) {
	for n := range width {
		sel = append(sel, gate.FromBool((value>>n)&1 == 1))
	}
	return
}

func TestMux(t *testing.T) {
	assert := assert.New(t)

	for n := range 8 {
		a := gate.FromBool(n&4 != 0)
		b := gate.FromBool(n&2 != 0)
		sel := gate.FromBool(n&1 != 0)
		expected := a
		if sel == gate.High {
			expected = b
		}
		assert.Equal(expected, Mux(a, b, sel), "mux(%v,%v,%v)", a, b, sel)
	}

	x := gate.FromUint8(0x12)
	y := gate.FromUint8(0xef)
	assert.Equal(x, Mux(x, y, gate.Low))
	assert.Equal(y, Mux(x, y, gate.High))
}

func TestDmux(t *testing.T) {
	assert := assert.New(t)

	table := [][4]gate.Bit{
		// input, sel, a, b
		{gate.Low, gate.Low, gate.Low, gate.Low},
		{gate.Low, gate.High, gate.Low, gate.Low},
		{gate.High, gate.Low, gate.High, gate.Low},
		{gate.High, gate.High, gate.Low, gate.High},
	}

	for _, row := range table {
		a, b := Dmux(row[0], row[1])
		assert.Equal(row[2], a, "%v", row)
		assert.Equal(row[3], b, "%v", row)
	}

	value := gate.FromUint8(0x5a)
	a, b := Dmux(value, gate.High)
	assert.Equal(gate.Byte{}, a)
	assert.Equal(value, b)
}

func TestMux4Bit(t *testing.T) {
	assert := assert.New(t)

	for pattern := range 16 {
		var in [4]gate.Bit
		for n := range in {
			in[n] = gate.FromBool((pattern>>n)&1 == 1)
		}
		for index := range 4 {
			sel := [2]gate.Bit(selectOf(index, 2))
			assert.Equal(in[index], Mux4(in, sel), "pattern %04b index %d", pattern, index)
		}
	}
}

func TestMux16Byte(t *testing.T) {
	assert := assert.New(t)

	var in [16]gate.Byte
	for n := range in {
		in[n] = gate.FromUint8(uint8(n*17 + 3))
	}

	for index := range 16 {
		sel := [4]gate.Bit(selectOf(index, 4))
		assert.Equal(in[index], Mux16(in, sel), "index %d", index)
	}
}

func TestMux256Byte(t *testing.T) {
	assert := assert.New(t)

	var in [256]gate.Byte
	for n := range in {
		in[n] = gate.FromUint8(uint8(255 - n))
	}

	for index := range 256 {
		sel := gate.FromUint8(uint8(index)).Bits()
		assert.Equal(uint8(255-index), Mux256(in, sel).Uint8(), "index %d", index)
	}
}

func TestDmux4(t *testing.T) {
	assert := assert.New(t)

	for index := range 4 {
		sel := [2]gate.Bit(selectOf(index, 2))

		out := Dmux4(gate.High, sel)
		for n, bit := range out {
			assert.Equal(gate.FromBool(n == index), bit, "index %d out %d", index, n)
		}

		assert.Equal([4]gate.Bit{}, Dmux4(gate.Low, sel))
	}
}

func TestDmux16(t *testing.T) {
	assert := assert.New(t)

	value := gate.FromUint8(0xc3)
	for index := range 16 {
		sel := [4]gate.Bit(selectOf(index, 4))
		out := Dmux16(value, sel)
		for n, b := range out {
			if n == index {
				assert.Equal(value, b)
			} else {
				assert.Equal(gate.Byte{}, b, "index %d out %d", index, n)
			}
		}
	}
}

func TestDmux256(t *testing.T) {
	assert := assert.New(t)

	for index := range 256 {
		sel := gate.FromUint8(uint8(index)).Bits()
		out := Dmux256(gate.High, sel)
		count := 0
		for n, bit := range out {
			if bit == gate.High {
				count++
				assert.Equal(index, n)
			}
		}
		assert.Equal(1, count, "index %d", index)
	}
}
