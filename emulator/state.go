package emulator

import (
	"io"

	"github.com/go-faster/jx"

	"github.com/ezrec/nandpc/gate"
	"github.com/ezrec/nandpc/storage"
)

// State returns a JSON snapshot of the machine:
//
//	{"ip":N,"ticks":N,"line":N,"overflow":B,"output":N,
//	 "registers":[4 bytes],"memory":[256 bytes]}
func (emu *Emulator) State() []byte {
	var e jx.Encoder

	e.ObjStart()

	e.FieldStart("ip")
	e.Int(emu.Cpu.Ip)
	e.FieldStart("ticks")
	e.Int(emu.Cpu.Ticks)
	e.FieldStart("line")
	e.Int(emu.LineNo())
	e.FieldStart("overflow")
	e.Bool(emu.Cpu.Overflow.Bool())
	e.FieldStart("output")
	e.Int(emu.Sent())

	e.FieldStart("registers")
	e.ArrStart()
	for n := range uint8(storage.REGISTER_COUNT) {
		e.Int(int(emu.Cpu.Register.Load(storage.RegisterOf(n)).Uint8()))
	}
	e.ArrEnd()

	e.FieldStart("memory")
	e.ArrStart()
	for n := range storage.RAM_SIZE {
		e.Int(int(emu.Cpu.Memory.Load(gate.FromUint8(uint8(n))).Uint8()))
	}
	e.ArrEnd()

	e.ObjEnd()

	return e.Bytes()
}

// Restore resets the emulator and loads a snapshot made by State.
// The program must be the one the snapshot was taken from. The output
// count carries over to the selected port.
func (emu *Emulator) Restore(state []byte) (err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	var ip, ticks, output int
	var overflow bool
	var registers, memory []uint8

	d := jx.DecodeBytes(state)
	err = d.Obj(func(d *jx.Decoder, key string) (err error) {
		switch key {
		case "ip":
			ip, err = d.Int()
		case "ticks":
			ticks, err = d.Int()
		case "overflow":
			overflow, err = d.Bool()
		case "output":
			output, err = d.Int()
		case "registers":
			registers, err = decodeBytes(d)
		case "memory":
			memory, err = decodeBytes(d)
		default:
			err = d.Skip()
		}
		return
	})
	if err != nil {
		return
	}

	if len(registers) != storage.REGISTER_COUNT ||
		len(memory) != storage.RAM_SIZE ||
		ip < 0 || ip > emu.reader.Len() ||
		ticks < 0 || output < 0 {
		err = ErrStateFormat
		return
	}

	for n, value := range registers {
		emu.Cpu.Register.Store(storage.RegisterOf(uint8(n)), gate.FromUint8(value))
	}
	for n, value := range memory {
		emu.Cpu.Memory.Store(gate.FromUint8(uint8(n)), gate.FromUint8(value))
	}
	emu.Cpu.Overflow = gate.FromBool(overflow)
	emu.Cpu.Ticks = ticks
	emu.Cpu.Ip = ip
	emu.port().Resume(output)

	_, err = emu.reader.Seek(int64(ip), io.SeekStart)

	return
}

func decodeBytes(d *jx.Decoder) (values []uint8, err error) {
	err = d.Arr(func(d *jx.Decoder) (err error) {
		value, err := d.Int()
		if err != nil {
			return
		}
		if value < 0 || value > 0xff {
			err = ErrStateFormat
			return
		}
		values = append(values, uint8(value))
		return
	})
	return
}
