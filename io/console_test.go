package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ezrec/x64emu/cpu"
	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{
		Base:   0x1000,
		Input:  strings.NewReader("hi"),
		Output: output,
	}

	assert.Equal("console", con.Name())
	assert.Equal(uint64(0x1000), con.StartAddress())
	assert.Equal(uint64(0x1010), con.EndAddress())

	for _, expected := range []byte("hi") {
		status, err := con.Read8(0x1001)
		assert.NoError(err)
		assert.Equal(uint8(0), status)

		value, err := con.Read8(0x1000)
		assert.NoError(err)
		assert.Equal(expected, value)
	}

	value, err := con.Read8(0x1000)
	assert.NoError(err)
	assert.Equal(uint8(0), value)

	status, err := con.Read8(0x1001)
	assert.NoError(err)
	assert.Equal(uint8(CONSOLE_STATUS_EOF), status)

	assert.NoError(con.Write8(0x1000, 'o'))
	assert.NoError(con.WriteBytes(0x1000, []byte("k\n")))
	assert.Equal("ok\n", output.String())

	con.Reset()
	status, err = con.Read8(0x1001)
	assert.NoError(err)
	assert.Equal(uint8(0), status)
}

func TestConsole_Registers(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Base: 0x2000, Input: strings.NewReader("A")}

	data, err := con.ReadBytes(0x2000, 4)
	assert.NoError(err)
	assert.Equal([]byte{'A', 0, 0, 0}, data)

	err = con.Write8(0x2001, 1)
	assert.ErrorIs(err, ErrReadOnly)

	err = con.WriteBytes(0x2000, []byte{'x', 'y'})
	assert.ErrorIs(err, ErrReadOnly)

	// No output discards.
	assert.NoError(con.Write8(0x2000, 'z'))

	_, err = con.Read8(0x2010)
	assert.ErrorIs(err, cpu.ErrOutOfBounds{})

	_, err = con.ReadBytes(0x200f, 2)
	assert.ErrorIs(err, cpu.ErrOutOfBounds{})

	err = con.Write8(0x1fff, 0)
	assert.ErrorIs(err, cpu.ErrOutOfBounds{})
}

func TestConsole_NoInput(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}

	value, err := con.Read8(CONSOLE_DATA)
	assert.NoError(err)
	assert.Equal(uint8(0), value)

	status, err := con.Read8(CONSOLE_STATUS)
	assert.NoError(err)
	assert.Equal(uint8(CONSOLE_STATUS_EOF), status)
}

func TestConsole_Defines(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Base: 0x100}

	defines := map[string]string{}
	for key, value := range con.Defines() {
		defines[key] = value
	}

	assert.Equal("0x100", defines["CONSOLE_DATA"])
	assert.Equal("0x101", defines["CONSOLE_STATUS"])
	assert.Equal("1", defines["CONSOLE_STATUS_EOF"])
}
