// Package storage provides the register file and the RAM.
//
// Both are arrays of gate.Byte cells that are only read and written through
// the mux package. A Store recomputes every cell: the value is broadcast to
// the addressed cell with a Dmux, a one-hot write enable is produced the same
// way, and each cell then picks its old or new value with a Mux.
package storage

import (
	"github.com/ezrec/nandpc/gate"
	"github.com/ezrec/nandpc/mux"
)

const (
	REGISTER_COUNT = 4   // Cells in the register file.
	RAM_SIZE       = 256 // Cells in the RAM.
)

// RegisterAddress selects one of the four registers, LSB first.
type RegisterAddress [2]gate.Bit

// RegisterOf converts a register number (0-3) into its address.
func RegisterOf(index uint8) (addr RegisterAddress) {
	bits := gate.FromUint8(index).Bits()
	addr[0] = bits[0]
	addr[1] = bits[1]
	return
}

// Index returns the register number of the address.
func (addr RegisterAddress) Index() uint8 {
	return gate.FromBits([gate.BYTE_BITS]gate.Bit{addr[0], addr[1]}).Uint8()
}

// Registers is the four cell register file.
type Registers struct {
	cell [REGISTER_COUNT]gate.Byte
}

// Cells returns a copy of every register, in address order.
func (r *Registers) Cells() [REGISTER_COUNT]gate.Byte {
	return r.cell
}

// Reset zeros every register.
func (r *Registers) Reset() {
	r.cell = [REGISTER_COUNT]gate.Byte{}
}

// Load reads the register at addr.
func (r *Registers) Load(addr RegisterAddress) gate.Byte {
	return mux.Mux4(r.cell, addr)
}

// Store writes value into the register at addr.
func (r *Registers) Store(addr RegisterAddress, value gate.Byte) {
	candidate := mux.Dmux4(value, addr)
	enable := mux.Dmux4(gate.High, addr)

	for n, cell := range r.cell {
		r.cell[n] = mux.Mux(cell, candidate[n], enable[n])
	}
}

// Ram is the 256 cell memory, addressed by a gate.Byte.
type Ram struct {
	cell [RAM_SIZE]gate.Byte
}

// Cells returns a copy of the memory, in address order.
func (m *Ram) Cells() [RAM_SIZE]gate.Byte {
	return m.cell
}

// Reset zeros the memory.
func (m *Ram) Reset() {
	m.cell = [RAM_SIZE]gate.Byte{}
}

// Load reads the cell at addr.
func (m *Ram) Load(addr gate.Byte) gate.Byte {
	return mux.Mux256(m.cell, addr.Bits())
}

// Store writes value into the cell at addr.
func (m *Ram) Store(addr gate.Byte, value gate.Byte) {
	sel := addr.Bits()
	candidate := mux.Dmux256(value, sel)
	enable := mux.Dmux256(gate.High, sel)

	for n, cell := range m.cell {
		m.cell[n] = mux.Mux(cell, candidate[n], enable[n])
	}
}
