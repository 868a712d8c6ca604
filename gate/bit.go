// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package gate

// Bit is a single binary signal.
type Bit uint8

const (
	Low  = Bit(0) // Logic low.
	High = Bit(1) // Logic high.
)

// FromBool converts a boolean into a Bit.
func FromBool(value bool) (bit Bit) {
	if value {
		bit = High
	}
	return
}

// Bool returns true if the bit is High.
func (a Bit) Bool() bool {
	return a == High
}

// String returns "1" for High, "0" for Low.
func (a Bit) String() string {
	if a == High {
		return "1"
	}
	return "0"
}

// Nand is the only primitive gate. It is Low only when both inputs are High.
func (a Bit) Nand(b Bit) Bit {
	if a == High && b == High {
		return Low
	}
	return High
}

// Not inverts a.
func (a Bit) Not() Bit {
	return a.Nand(a)
}

// And is High when both inputs are High.
func (a Bit) And(b Bit) Bit {
	return a.Nand(b).Not()
}

// Or is High when either input is High.
func (a Bit) Or(b Bit) Bit {
	return a.Not().Nand(b.Not())
}

// Nor is the inverse of Or.
func (a Bit) Nor(b Bit) Bit {
	return a.Or(b).Not()
}

// Xnor is High when both inputs are equal.
func (a Bit) Xnor(b Bit) Bit {
	return a.Nand(b).Nand(a.Or(b))
}

// Xor is High when the inputs differ.
func (a Bit) Xor(b Bit) Bit {
	return a.Xnor(b).Not()
}

// Gate passes a through when enable is High, and is Low otherwise.
func (a Bit) Gate(enable Bit) Bit {
	return a.And(enable)
}

// HalfAdder adds two bits, returning the sum and the carry.
func HalfAdder(a, b Bit) (sum, carry Bit) {
	sum = a.Xor(b)
	carry = a.And(b)
	return
}

// FullAdder adds two bits and an incoming carry, returning the sum and
// the outgoing carry.
func FullAdder(a, b, carry_in Bit) (sum, carry Bit) {
	partial := a.Xor(b)
	sum = partial.Xor(carry_in)
	carry = partial.And(carry_in).Or(a.And(b))
	return
}
