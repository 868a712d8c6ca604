// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/nandpc/emulator"
)

type CLI struct {
	Verbose bool   `short:"v" help:"Trace every instruction."`
	Config  string `short:"c" help:"${config_help}" default:"nandpc.toml" type:"path"`

	Asm     Asm     `cmd:"" help:"Assemble a source file into a program binary."`
	Run     Run     `cmd:"" help:"Run one or more program binaries."`
	Exec    Exec    `cmd:"" help:"Assemble and run a source file."`
	Disasm  Disasm  `cmd:"" help:"List the instructions of a program binary."`
	Defines Defines `cmd:"" help:"List the predefined assembler equates."`
}

var vars = kong.Vars{
	"config_help": "TOML configuration file. A missing file uses the defaults.",
	"output_help": "Output file, or - for stdout. Overrides the configuration.",
	"state_help":  "Write the final machine state as JSON to FILE.",
	"raw_help":    "Write output bytes unchanged instead of as UTF-8 characters.",
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("nandpc"),
		kong.Description("NAND gate 8-bit computer."),
		kong.UsageOnError(),
		vars)

	cfg, err := emulator.LoadConfig(cli.Config)
	ctx.FatalIfErrorf(err)

	if cli.Verbose {
		cfg.Verbose = true
	}

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	err = ctx.Run(&cfg)
	ctx.FatalIfErrorf(err)
}
