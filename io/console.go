package io

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/x64emu/cpu"
)

const (
	CONSOLE_SIZE   = 16 // Size of the console register window.
	CONSOLE_DATA   = 0  // Offset of the data register.
	CONSOLE_STATUS = 1  // Offset of the status register.

	CONSOLE_STATUS_EOF = 1 << 0 // Input is exhausted.
)

// Console is a byte stream device. Reading the data register consumes a
// byte of Input, and writing it emits a byte to Output.
type Console struct {
	Verbose bool      // Set to enable verbose logging.
	Base    uint64    // Address of the register window.
	Input   io.Reader // Input stream, or nil for none.
	Output  io.Writer // Output stream, or nil to discard.

	eof bool
}

var _ cpu.Device = (*Console)(nil)

// Defines returns the register addresses of the console.
func (con *Console) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"CONSOLE_DATA":       fmt.Sprintf("%#v", con.Base+CONSOLE_DATA),
		"CONSOLE_STATUS":     fmt.Sprintf("%#v", con.Base+CONSOLE_STATUS),
		"CONSOLE_STATUS_EOF": fmt.Sprintf("%#v", CONSOLE_STATUS_EOF),
	})
}

// Reset clears the end of input condition.
func (con *Console) Reset() {
	con.eof = false
}

func (con *Console) Name() string {
	return "console"
}

func (con *Console) StartAddress() uint64 {
	return con.Base
}

func (con *Console) EndAddress() uint64 {
	return con.Base + CONSOLE_SIZE
}

// register returns the offset of address in the window.
func (con *Console) register(address uint64, size uint64) (offset uint64, err error) {
	if address < con.Base || address-con.Base >= CONSOLE_SIZE || size > con.EndAddress()-address {
		err = cpu.ErrOutOfBounds{Address: address, Size: size}
		return
	}

	offset = address - con.Base
	return
}

// receive reads the next input byte.
func (con *Console) receive() (value uint8) {
	if con.eof || con.Input == nil {
		con.eof = true
		return
	}

	var one [1]byte
	_, err := io.ReadFull(con.Input, one[:])
	if err != nil {
		if con.Verbose {
			log.Printf("console: input: %v", err)
		}
		con.eof = true
		return
	}

	value = one[0]
	return
}

func (con *Console) read(offset uint64) (value uint8) {
	switch offset {
	case CONSOLE_DATA:
		value = con.receive()
	case CONSOLE_STATUS:
		if con.eof {
			value |= CONSOLE_STATUS_EOF
		}
	}
	return
}

func (con *Console) write(offset uint64, value uint8) (err error) {
	if offset != CONSOLE_DATA {
		err = ErrReadOnly
		return
	}

	if con.Output == nil {
		return
	}

	_, err = con.Output.Write([]byte{value})
	return
}

// Read8 reads a console register.
func (con *Console) Read8(address uint64) (value uint8, err error) {
	offset, err := con.register(address, 1)
	if err != nil {
		return
	}

	value = con.read(offset)
	return
}

// ReadBytes reads each register of the range in turn.
func (con *Console) ReadBytes(address uint64, size uint64) (data []byte, err error) {
	offset, err := con.register(address, size)
	if err != nil {
		return
	}

	data = make([]byte, size)
	for n := range data {
		data[n] = con.read(offset + uint64(n))
	}

	return
}

// Write8 writes a console register.
func (con *Console) Write8(address uint64, value uint8) (err error) {
	offset, err := con.register(address, 1)
	if err != nil {
		return
	}

	return con.write(offset, value)
}

// WriteBytes writes each register of the range in turn.
func (con *Console) WriteBytes(address uint64, data []byte) (err error) {
	offset, err := con.register(address, uint64(len(data)))
	if err != nil {
		return
	}

	for n, value := range data {
		err = con.write(offset+uint64(n), value)
		if err != nil {
			return
		}
	}

	return
}
