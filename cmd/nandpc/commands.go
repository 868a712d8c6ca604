package main

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/nandpc/cpu"
	"github.com/ezrec/nandpc/emulator"
	"github.com/ezrec/nandpc/internal"
)

type Asm struct {
	Source  string `arg:"" help:"Assembly source file." type:"existingfile"`
	Output  string `short:"o" help:"${output_help}"`
	Listing bool   `short:"l" help:"Write a text listing instead of the binary."`
}

type Run struct {
	Binaries []string `arg:"" help:"Program binaries, run concurrently."`
	Output   string   `short:"o" help:"${output_help}"`
	State    string   `help:"${state_help}" placeholder:"FILE"`
	Raw      bool     `help:"${raw_help}"`
}

type Exec struct {
	Source string `arg:"" help:"Assembly source file." type:"existingfile"`
	Output string `short:"o" help:"${output_help}"`
	State  string `help:"${state_help}" placeholder:"FILE"`
	Raw    bool   `help:"${raw_help}"`
}

type Disasm struct {
	Binary string `arg:"" help:"Program binary." type:"existingfile"`
	Output string `short:"o" help:"${output_help}"`
}

type Defines struct{}

// outputOf opens the named output, or the configured one.
func outputOf(name string, cfg *emulator.Config) (w io.Writer, close func() error, err error) {
	if len(name) == 0 {
		name = cfg.Output
	}

	close = func() error { return nil }

	if len(name) == 0 || name == "-" {
		w = os.Stdout
		return
	}

	fd, err := os.Create(name)
	if err != nil {
		return
	}

	w = fd
	close = fd.Close
	return
}

// assemble parses a source file with the configured equates predefined.
func assemble(source string, cfg *emulator.Config) (prog *cpu.Program, err error) {
	inf, err := os.Open(source)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: cfg.Verbose}
	for equ, value := range cfg.Equates {
		asm.Predefine(equ, value)
	}

	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", source, err)
		return
	}

	return
}

// execute runs a program to completion, writing its output to w.
func execute(prog *cpu.Program, w io.Writer, raw bool, cfg *emulator.Config) (emu *emulator.Emulator, err error) {
	emu = emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.Program = prog
	emu.Raw = raw || cfg.Raw
	emu.Console.Output = w
	emu.Tape.Output = w

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	if err != nil {
		if emu.Verbose {
			log.Print(emu.Cpu.String())
		}
		return
	}

	return
}

func saveState(path string, emu *emulator.Emulator) error {
	if len(path) == 0 {
		return nil
	}

	return os.WriteFile(path, emu.State(), 0644)
}

func (cmd *Asm) Run(cfg *emulator.Config) (err error) {
	prog, err := assemble(cmd.Source, cfg)
	if err != nil {
		return
	}

	w, close, err := outputOf(cmd.Output, cfg)
	if err != nil {
		return
	}
	defer func() {
		if close_err := close(); err == nil {
			err = close_err
		}
	}()

	if !cmd.Listing {
		_, err = w.Write(prog.Binary())
		return
	}

	for _, op := range prog.Opcodes {
		var hex []string
		for _, code := range op.Codes {
			for _, b := range code.Bytes() {
				hex = append(hex, fmt.Sprintf("%02X", b))
			}
		}
		_, err = fmt.Fprintf(w, "%03d %-12s %4d: %s\n", op.Ip, strings.Join(hex, " "), op.LineNo, strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}

	return
}

func (cmd *Run) Run(cfg *emulator.Config) (err error) {
	state := cmd.State
	if len(state) == 0 {
		state = cfg.State
	}
	if len(state) != 0 && len(cmd.Binaries) != 1 {
		err = ErrStateMultiple
		return
	}

	w, close, err := outputOf(cmd.Output, cfg)
	if err != nil {
		return
	}
	defer func() {
		if close_err := close(); err == nil {
			err = close_err
		}
	}()

	outputs := make([]bytes.Buffer, len(cmd.Binaries))
	emus := make([]*emulator.Emulator, len(cmd.Binaries))

	var g errgroup.Group
	for n, binary := range cmd.Binaries {
		g.Go(func() (err error) {
			bin, err := os.ReadFile(binary)
			if err != nil {
				return
			}

			emus[n], err = execute(cpu.ProgramOf(bin), &outputs[n], cmd.Raw, cfg)
			if err != nil {
				err = fmt.Errorf("%v: %w", binary, err)
			}
			return
		})
	}
	err = g.Wait()

	for n := range outputs {
		_, write_err := outputs[n].WriteTo(w)
		if err == nil {
			err = write_err
		}
	}

	if len(state) != 0 && emus[0] != nil {
		state_err := saveState(state, emus[0])
		if err == nil {
			err = state_err
		}
	}

	return
}

func (cmd *Exec) Run(cfg *emulator.Config) (err error) {
	prog, err := assemble(cmd.Source, cfg)
	if err != nil {
		return
	}

	state := cmd.State
	if len(state) == 0 {
		state = cfg.State
	}

	w, close, err := outputOf(cmd.Output, cfg)
	if err != nil {
		return
	}
	defer func() {
		if close_err := close(); err == nil {
			err = close_err
		}
	}()

	emu, err := execute(prog, w, cmd.Raw, cfg)
	if err != nil {
		err = fmt.Errorf("%v: %w", cmd.Source, err)
	}

	state_err := saveState(state, emu)
	if err == nil {
		err = state_err
	}

	return
}

func (cmd *Disasm) Run(cfg *emulator.Config) (err error) {
	bin, err := os.ReadFile(cmd.Binary)
	if err != nil {
		return
	}

	w, close, err := outputOf(cmd.Output, cfg)
	if err != nil {
		return
	}
	defer func() {
		if close_err := close(); err == nil {
			err = close_err
		}
	}()

	for ip, code := range cpu.ProgramOf(bin).Codes() {
		_, err = fmt.Fprintf(w, "%03d: %v\n", ip, code)
		if err != nil {
			return
		}
	}

	return
}

func (cmd *Defines) Run(cfg *emulator.Config) (err error) {
	emu := emulator.NewEmulator()

	for equ, value := range internal.Sorted2(emu.Defines()) {
		fmt.Printf("%v = %v\n", equ, value)
	}
	for equ, value := range internal.Sorted2(maps.All(cfg.Equates)) {
		fmt.Printf("%v = %v\n", equ, value)
	}

	return
}
