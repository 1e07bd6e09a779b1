// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/ezrec/x64emu/emulator"
	"github.com/ezrec/x64emu/io"
	"github.com/ezrec/x64emu/script"
)

// addressFlag parses an address in any base strconv understands.
type addressFlag uint64

func (af *addressFlag) String() string {
	return "0x" + strconv.FormatUint(uint64(*af), 16)
}

func (af *addressFlag) Set(value string) (err error) {
	addr, err := strconv.ParseUint(value, 0, 64)
	if err != nil {
		return
	}
	*af = addressFlag(addr)
	return
}

func main() {
	base := addressFlag(0)
	size := addressFlag(64 << 20)
	romBase := addressFlag(0xffff_0000)
	var load string
	var save string
	var rom string
	var exec string
	var verbose bool

	flag.Var(&base, "base", "DRAM base address")
	flag.Var(&size, "size", "DRAM size, rounded up to a power of two")
	flag.StringVar(&load, "l", "", "Image directory to restore DRAM from")
	flag.StringVar(&save, "s", "", "Image directory to save DRAM to on exit")
	flag.StringVar(&rom, "rom", "", "ROM file to map")
	flag.Var(&romBase, "rom-base", "ROM base address")
	flag.StringVar(&exec, "x", "", ".star script to run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu, err := emulator.NewEmulator(uint64(base), uint64(size))
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	defer emu.Close()

	emu.Verbose = verbose
	emu.Console.Input = os.Stdin
	emu.Console.Output = os.Stdout

	if len(rom) != 0 {
		data, err := os.ReadFile(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		err = emu.AttachRom(uint64(romBase), data)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	if len(load) != 0 {
		err = emu.LoadImage(io.DirFS(load))
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	}

	emu.Reset()

	if len(exec) != 0 {
		src, err := os.ReadFile(exec)
		if err != nil {
			log.Fatalf("%v: %v", exec, err)
		}

		sc := &script.Script{
			Verbose:  verbose,
			Output:   os.Stdout,
			Emulator: emu,
		}
		_, err = sc.Exec(exec, src)
		if err != nil {
			log.Fatalf("%v: %v", exec, err)
		}
	}

	if verbose {
		log.Printf("x64emu: state\n%v", emu.Cpu)
	}

	if len(save) != 0 {
		err = os.MkdirAll(save, 0755)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		err = emu.SaveImage(io.DirFS(save))
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
	}
}
