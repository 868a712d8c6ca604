// Package gate implements the boolean substrate of the NAND computer.
//
// A Bit has a single primitive operation, Nand. Every other gate is derived
// from it, and the Byte type lifts the bit gates across eight positions. The
// ripple-carry adder and the two's complement subtractor are built from the
// derived gates only; native integers appear only in the conversions to and
// from uint8.
package gate
