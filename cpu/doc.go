// Package cpu implements the instruction interpreter and assembler of the
// NAND computer.
//
// The CPU has four 8-bit registers (r0-r3), 256 bytes of memory, and an
// overflow flag. Instructions are one opcode byte, optionally followed by
// an address or constant byte. Memory address 255 is an output port: every
// byte stored there is also sent to the CPU's device.Port.
//
//	0000 00RT  set   (constant follows)
//	0000 01RT  load  (address follows)
//	0000 10RF  store (address follows)
//	0000 11RR  not
//	0001 RTRF  mov
//	0010 RTRF  nand
//	0011 RTRF  and
//	0100 RTRF  nor
//	0101 RTRF  or
//	0110 RTRF  xnor
//	0111 RTRF  xor
//	1000 RTRF  add
//	1001 RTRF  addc (add with overflow)
//	1010 RTRF  sub
//	1011 RTRF  subc (sub with overflow)
//
// Opcodes from 192 up are invalid.
//
// The assembler provides a small assembly language for the instruction set,
// supporting macros, equates, and compile-time expression evaluation.
package cpu
