// Package mux is the selection fabric: multiplexers and demultiplexers built
// from gates, and widened by recursive doubling into 4, 16 and 256 way
// address decoders.
//
// Every addressed read or write in the computer goes through this package.
// Select bit i carries weight 2^i, matching gate.Byte.
package mux

import (
	"github.com/ezrec/nandpc/gate"
)

// Signal is a value that can be routed by the fabric. gate.Bit and gate.Byte
// both satisfy it.
type Signal[T any] interface {
	Gate(enable gate.Bit) T // Pass through on High, all Low otherwise.
	Or(other T) T
}

// Mux returns a when sel is Low, b when sel is High.
func Mux[T Signal[T]](a, b T, sel gate.Bit) T {
	return a.Gate(sel.Not()).Or(b.Gate(sel))
}

// Dmux routes input to the first output when sel is Low, to the second
// when sel is High. The other output is Low.
func Dmux[T Signal[T]](input T, sel gate.Bit) (a, b T) {
	a = input.Gate(sel.Not())
	b = input.Gate(sel)
	return
}

// muxTree resolves each half of in with the low select bits, then picks
// between the halves with the highest select bit.
func muxTree[T Signal[T]](in []T, sel []gate.Bit) T {
	top := len(sel) - 1
	if top == 0 {
		return Mux(in[0], in[1], sel[0])
	}

	half := len(in) / 2
	lo := muxTree(in[:half], sel[:top])
	hi := muxTree(in[half:], sel[:top])

	return Mux(lo, hi, sel[top])
}

// dmuxTree splits input between the halves of out with the highest select
// bit, then splits each half with the lower select bits.
func dmuxTree[T Signal[T]](input T, sel []gate.Bit, out []T) {
	top := len(sel) - 1
	lo, hi := Dmux(input, sel[top])
	if top == 0 {
		out[0], out[1] = lo, hi
		return
	}

	half := len(out) / 2
	dmuxTree(lo, sel[:top], out[:half])
	dmuxTree(hi, sel[:top], out[half:])
}

// Mux4 selects one of 4 inputs.
func Mux4[T Signal[T]](in [4]T, sel [2]gate.Bit) T {
	return muxTree(in[:], sel[:])
}

// Mux16 selects one of 16 inputs.
func Mux16[T Signal[T]](in [16]T, sel [4]gate.Bit) T {
	return muxTree(in[:], sel[:])
}

// Mux256 selects one of 256 inputs.
func Mux256[T Signal[T]](in [256]T, sel [8]gate.Bit) T {
	return muxTree(in[:], sel[:])
}

// Dmux4 broadcasts input to the output selected by sel. All other outputs
// are Low.
func Dmux4[T Signal[T]](input T, sel [2]gate.Bit) (out [4]T) {
	dmuxTree(input, sel[:], out[:])
	return
}

// Dmux16 broadcasts input to the output selected by sel. All other outputs
// are Low.
func Dmux16[T Signal[T]](input T, sel [4]gate.Bit) (out [16]T) {
	dmuxTree(input, sel[:], out[:])
	return
}

// Dmux256 broadcasts input to the output selected by sel. All other outputs
// are Low.
func Dmux256[T Signal[T]](input T, sel [8]gate.Bit) (out [256]T) {
	dmuxTree(input, sel[:], out[:])
	return
}
