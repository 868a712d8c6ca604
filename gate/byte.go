package gate

// BYTE_BITS is the width of a Byte.
const BYTE_BITS = 8

// Byte is eight Bits, index 0 being the least significant.
// The zero value is all Low.
type Byte struct {
	bits [BYTE_BITS]Bit
}

// FromBits builds a Byte from its bits, LSB first.
func FromBits(bits [BYTE_BITS]Bit) Byte {
	return Byte{bits: bits}
}

// FromUint8 converts an integer into a Byte. Bit i carries weight 2^i.
func FromUint8(value uint8) (b Byte) {
	for n := range BYTE_BITS {
		b.bits[n] = FromBool((value>>n)&1 == 1)
	}
	return
}

// Bits returns the bits of the byte, LSB first.
func (b Byte) Bits() [BYTE_BITS]Bit {
	return b.bits
}

// Uint8 converts the Byte back into an integer.
func (b Byte) Uint8() (value uint8) {
	for n, bit := range b.bits {
		if bit.Bool() {
			value |= 1 << n
		}
	}
	return
}

// String renders the byte as binary, MSB first.
func (b Byte) String() string {
	var text [BYTE_BITS]byte
	for n, bit := range b.bits {
		text[BYTE_BITS-1-n] = bit.String()[0]
	}
	return string(text[:])
}

// lift applies a two input gate at every bit position independently.
func (b Byte) lift(other Byte, op func(a, b Bit) Bit) (out Byte) {
	for n := range BYTE_BITS {
		out.bits[n] = op(b.bits[n], other.bits[n])
	}
	return
}

// Nand is the bitwise Bit.Nand.
func (b Byte) Nand(other Byte) Byte {
	return b.lift(other, Bit.Nand)
}

// Not is the bitwise Bit.Not.
func (b Byte) Not() Byte {
	return b.lift(b, Bit.Nand)
}

// And is the bitwise Bit.And.
func (b Byte) And(other Byte) Byte {
	return b.lift(other, Bit.And)
}

// Or is the bitwise Bit.Or.
func (b Byte) Or(other Byte) Byte {
	return b.lift(other, Bit.Or)
}

// Nor is the bitwise Bit.Nor.
func (b Byte) Nor(other Byte) Byte {
	return b.lift(other, Bit.Nor)
}

// Xnor is the bitwise Bit.Xnor.
func (b Byte) Xnor(other Byte) Byte {
	return b.lift(other, Bit.Xnor)
}

// Xor is the bitwise Bit.Xor.
func (b Byte) Xor(other Byte) Byte {
	return b.lift(other, Bit.Xor)
}

// Gate passes every bit through when enable is High, and is all Low otherwise.
func (b Byte) Gate(enable Bit) (out Byte) {
	for n := range BYTE_BITS {
		out.bits[n] = b.bits[n].Gate(enable)
	}
	return
}

// AddWithCarry ripples a FullAdder from bit 0 to bit 7, returning the
// sum and the carry out of bit 7.
func (b Byte) AddWithCarry(right Byte, carry Bit) (sum Byte, carry_out Bit) {
	carry_out = carry
	for n := range BYTE_BITS {
		sum.bits[n], carry_out = FullAdder(b.bits[n], right.bits[n], carry_out)
	}
	return
}

// Add adds two bytes with no incoming carry.
func (b Byte) Add(right Byte) (sum Byte, carry Bit) {
	return b.AddWithCarry(right, Low)
}

// Sub subtracts right by adding its two's complement.
// The carry is High when no borrow occurred.
func (b Byte) Sub(right Byte) (diff Byte, carry Bit) {
	return b.AddWithCarry(right.Not(), High)
}

// SubWithCarry subtracts right and, when carry is High, one more.
//
// The incoming carry is first subtracted as a one bit value, then right is
// subtracted from the intermediate result. The two intermediate carries are
// combined with Or.
func (b Byte) SubWithCarry(right Byte, carry Bit) (diff Byte, carry_out Bit) {
	var borrow Byte
	borrow.bits[0] = carry

	partial, carry_a := b.Sub(borrow)
	diff, carry_b := partial.Sub(right)
	carry_out = carry_a.Or(carry_b)
	return
}
