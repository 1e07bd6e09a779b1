package cpu

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {
	assert := assert.New(t)

	low := NewDRAM(0, 0x10000)
	high := NewDRAM(0x100000, 0x10000)

	bus := &Bus{}
	assert.NoError(bus.Attach(high))
	assert.NoError(bus.Attach(low))

	assert.Equal([]Device{low, high}, slices.Collect(bus.Devices()))

	dev, err := bus.Device(0xffff)
	assert.NoError(err)
	assert.Equal(low, dev)

	dev, err = bus.Device(0x100000)
	assert.NoError(err)
	assert.Equal(high, dev)

	for _, address := range []uint64{0x10000, 0xfffff, 0x110000} {
		_, err = bus.Device(address)
		assert.Equal(ErrOutOfBounds{Address: address, Size: 1}, err, "%#x", address)
	}

	// Routing.
	_, err = high.Alloc(0x100000, 1)
	assert.NoError(err)

	assert.NoError(bus.Write8(0x100010, 0x77))
	value, err := bus.Read8(0x100010)
	assert.NoError(err)
	assert.Equal(uint8(0x77), value)

	assert.NoError(bus.WriteBytes(0x100020, []byte{1, 2, 3}))
	data, err := bus.ReadBytes(0x100020, 3)
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3}, data)

	// Device errors pass through.
	_, err = bus.Read8(0x10)
	assert.ErrorIs(err, ErrAddressNotMapped)
	err = bus.Write8(0x20000, 0)
	assert.ErrorIs(err, ErrOutOfBounds{})
}

func TestBus_Overlap(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}
	assert.NoError(bus.Attach(NewDRAM(0x10000, 0x10000)))

	err := bus.Attach(NewDRAM(0x18000, 0x1000))
	assert.Equal(ErrAddressAlreadyMapped{Address: 0x10000}, err)

	err = bus.Attach(NewDRAM(0x8000, 0x10000))
	assert.Equal(ErrAddressAlreadyMapped{Address: 0x10000}, err)

	// Adjacent windows do not overlap.
	assert.NoError(bus.Attach(NewDRAM(0x20000, 0x1000)))
	assert.NoError(bus.Attach(NewDRAM(0xf000, 0x1000)))

	bus.Reset()
	assert.Empty(slices.Collect(bus.Devices()))
}
