package io

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/x64emu/cpu"
)

// Rom is a read only memory device.
type Rom struct {
	Base uint64 // Address of the first byte.
	Data []byte // Contents.
}

var _ cpu.Device = (*Rom)(nil)

// Defines returns the window of the ROM.
func (rom *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"ROM_BASE": fmt.Sprintf("%#v", rom.Base),
		"ROM_SIZE": fmt.Sprintf("%#v", len(rom.Data)),
	})
}

func (rom *Rom) Name() string {
	return "rom"
}

func (rom *Rom) StartAddress() uint64 {
	return rom.Base
}

func (rom *Rom) EndAddress() uint64 {
	return rom.Base + uint64(len(rom.Data))
}

func (rom *Rom) offset(address uint64, size uint64) (offset uint64, err error) {
	if address < rom.Base || address >= rom.EndAddress() || size > rom.EndAddress()-address {
		err = cpu.ErrOutOfBounds{Address: address, Size: size}
		return
	}

	offset = address - rom.Base
	return
}

func (rom *Rom) Read8(address uint64) (value uint8, err error) {
	offset, err := rom.offset(address, 1)
	if err != nil {
		return
	}

	value = rom.Data[offset]
	return
}

func (rom *Rom) ReadBytes(address uint64, size uint64) (data []byte, err error) {
	offset, err := rom.offset(address, size)
	if err != nil {
		return
	}

	data = make([]byte, size)
	copy(data, rom.Data[offset:])
	return
}

func (rom *Rom) Write8(address uint64, value uint8) (err error) {
	_, err = rom.offset(address, 1)
	if err != nil {
		return
	}

	return ErrReadOnly
}

func (rom *Rom) WriteBytes(address uint64, data []byte) (err error) {
	_, err = rom.offset(address, uint64(len(data)))
	if err != nil {
		return
	}

	return ErrReadOnly
}
