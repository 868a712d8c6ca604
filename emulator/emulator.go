// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bytes"
	"errors"
	"iter"
	"maps"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/nandpc/cpu"
	"github.com/ezrec/nandpc/device"
	"github.com/ezrec/nandpc/internal"
)

var _emulator_defines = map[string]string{
	"LINENO": "0",
}

// outputPort is an output device that counts what it was sent.
type outputPort interface {
	device.Port
	Sent() int
	Resume(count int)
}

// Emulator state. One program run: CPU + program listing + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Raw     bool           // If set, output goes to Tape instead of Console.
	Console device.Console // Character output port.
	Tape    device.Tape    // Binary output port.

	reader *bytes.Reader
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Port = &emu.Console

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the emulator state, and rewind the program.
func (emu *Emulator) Reset() (err error) {
	if emu.Verbose {
		log.Printf("emulator: reset, %d opcodes", len(emu.Program.Opcodes))
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Port = emu.port()
	emu.Cpu.Reset()

	emu.reader = bytes.NewReader(emu.Program.Binary())

	return
}

// port returns the selected output device.
func (emu *Emulator) port() outputPort {
	if emu.Raw {
		return &emu.Tape
	}
	return &emu.Console
}

// Sent returns the number of bytes output since a reset.
func (emu *Emulator) Sent() int {
	return emu.port().Sent()
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Ip
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Opcode == nil {
		return cpu.Code{}
	}

	return dbg.Codes[dbg.Index]
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Ip)
}

// Tick performs a single tick of the emulator.
// done is set once the program has ended normally.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.reader == nil {
		err = emu.Reset()
		if err != nil {
			return
		}
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Offset: ip, Err: err}
		}
	}()

	err = emu.Cpu.Tick(emu.reader)
	if errors.Is(err, cpu.ErrProgramEnd) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the program ends or fails.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
