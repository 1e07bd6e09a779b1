package emulator

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/x64emu/cpu"
	"github.com/ezrec/x64emu/io"
	"github.com/ezrec/x64emu/x86"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0, 1<<20)
	assert.NoError(err)
	defer emu.Close()

	assert.False(emu.Verbose)
	assert.Equal(uint64(1<<20), emu.Dram.Size())

	var names []string
	for dev := range emu.Cpu.Bus.Devices() {
		names = append(names, dev.Name())
	}
	assert.Equal([]string{"DRAM", "console"}, names)
}

func TestEmulator_Load(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0x400000, 1<<20)
	assert.NoError(err)

	program := bytes.Repeat([]byte{0x90}, 0x1800)
	err = emu.Load(0x401000, bytes.NewReader(program))
	assert.NoError(err)

	data, err := emu.Cpu.Bus.ReadBytes(0x401000, 0x1800)
	assert.NoError(err)
	assert.Equal(program, data)

	// Outside of DRAM.
	err = emu.Load(0x10, strings.NewReader("x"))
	assert.ErrorIs(err, cpu.ErrOutOfBounds{})
	var load_err *ErrLoad
	assert.ErrorAs(err, &load_err)
	assert.Equal(uint64(0x10), load_err.Address)

	// Empty loads do nothing.
	assert.NoError(emu.Load(0x480000, strings.NewReader("")))
	_, err = emu.Dram.Read8(0x480000)
	assert.ErrorIs(err, cpu.ErrAddressNotMapped)
}

func TestEmulator_Rom(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0, 1<<16)
	assert.NoError(err)

	rom := []byte{0xf4, 0xeb, 0xfe}
	assert.NoError(emu.AttachRom(0xfff0_0000, rom))
	assert.ErrorIs(emu.AttachRom(0xfff1_0000, rom), ErrRomAttached)

	// The ROM is a copy.
	rom[0] = 0
	value, err := emu.Cpu.Bus.Read8(0xfff0_0000)
	assert.NoError(err)
	assert.Equal(uint8(0xf4), value)

	err = emu.Cpu.Bus.Write8(0xfff0_0001, 0)
	assert.ErrorIs(err, io.ErrReadOnly)

	emu.Cpu.Registers.Write64(x86.RAX, 5)
	emu.Reset()
	assert.Equal(uint64(0xfff0_0000), emu.Cpu.Registers.Rip)
	assert.Equal(uint64(0), emu.Cpu.Registers.Read64(x86.RAX))
}

func TestEmulator_RomOverlap(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0, 1<<16)
	assert.NoError(err)

	err = emu.AttachRom(0x8000, []byte{1})
	assert.ErrorIs(err, cpu.ErrAddressAlreadyMapped{})

	// A failed attach may be retried.
	assert.NoError(emu.AttachRom(0x10000, []byte{1}))
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0x1000_0000, 1<<16)
	assert.NoError(err)

	emu.Cpu.Mmu.SetPagingMode(x86.PAGING_MODE_LONG)
	emu.Reset()
	assert.Equal(uint64(0x1000_0000), emu.Cpu.Registers.Rip)
	assert.Equal(x86.PAGING_MODE_REAL, emu.Cpu.Mmu.PagingMode())
}

func TestEmulator_Console(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0, 1<<16)
	assert.NoError(err)

	output := &bytes.Buffer{}
	emu.Console.Input = strings.NewReader("?")
	emu.Console.Output = output

	value, err := emu.Cpu.Bus.Read8(CONSOLE_BASE + io.CONSOLE_DATA)
	assert.NoError(err)
	assert.Equal(uint8('?'), value)

	err = emu.Cpu.Store(x86.Mem(x86.Addressing{Mode: x86.ADDRESSING_DISP, Displacement: CONSOLE_BASE}), x86.WIDTH_8, '!')
	assert.NoError(err)
	assert.Equal("!", output.String())
}

func TestEmulator_Image(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0, 1<<20)
	assert.NoError(err)

	files := fstest.MapFS{
		"0000000000003000.seg": &fstest.MapFile{Data: []byte{0xaa, 0xbb}},
	}
	assert.NoError(emu.LoadImage(files))

	value, err := emu.Dram.Read8(0x3001)
	assert.NoError(err)
	assert.Equal(uint8(0xbb), value)
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0x100000, 0x100000)
	assert.NoError(err)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal("0x100000", defines["DRAM_BASE"])
	assert.Equal("0x100000", defines["DRAM_SIZE"])
	assert.Equal("0xfffffffffffff000", defines["CONSOLE_BASE"])
	assert.Equal("0xfffffffffffff001", defines["CONSOLE_STATUS"])
	assert.Equal("0x40", defines["FLAG_ZERO"])
	assert.NotContains(defines, "ROM_BASE")
	assert.NotContains(defines, "ROM_SIZE")

	assert.NoError(emu.AttachRom(0xffff_0000, []byte{1, 2, 3}))
	defines = map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("0xffff0000", defines["ROM_BASE"])
	assert.Equal("3", defines["ROM_SIZE"])
}

func TestEmulator_Close(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(0, 1<<16)
	assert.NoError(err)
	assert.NoError(emu.AttachRom(0x10000, []byte{1}))

	emu.Console.Input = strings.NewReader("")
	_, err = emu.Cpu.Bus.Read8(CONSOLE_BASE + io.CONSOLE_DATA)
	assert.NoError(err)
	status, err := emu.Cpu.Bus.Read8(CONSOLE_BASE + io.CONSOLE_STATUS)
	assert.NoError(err)
	assert.Equal(uint8(io.CONSOLE_STATUS_EOF), status)

	emu.Cpu.Registers.Write64(x86.RDX, 7)
	emu.Cpu.Mmu.SetPagingMode(x86.PAGING_MODE_LONG)

	assert.NoError(emu.Close())

	assert.Equal(uint64(0), emu.Cpu.Registers.Read64(x86.RDX))
	assert.Equal(x86.PAGING_MODE_REAL, emu.Cpu.Mmu.PagingMode())

	count := 0
	for range emu.Cpu.Bus.Devices() {
		count++
	}
	assert.Equal(0, count)

	// The console forgets the end of its input.
	status, err = emu.Console.Read8(CONSOLE_BASE + io.CONSOLE_STATUS)
	assert.NoError(err)
	assert.Equal(uint8(0), status)

	_, err = emu.Cpu.Bus.Read8(0x10000)
	assert.ErrorIs(err, cpu.ErrOutOfBounds{})
}
