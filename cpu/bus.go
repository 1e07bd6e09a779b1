// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
	"log"
	"slices"
)

// Bus routes accesses to the Device whose window holds the address.
type Bus struct {
	Verbose bool // Set to enable verbose logging.

	devices []Device // Sorted by start address.
}

var _ Addressable = (*Bus)(nil)

// Attach a device to the bus. The device window may not overlap the
// window of an already attached device.
func (bus *Bus) Attach(dev Device) (err error) {
	start, end := dev.StartAddress(), dev.EndAddress()

	for _, other := range bus.devices {
		if start < other.EndAddress() && other.StartAddress() < end {
			err = ErrAddressAlreadyMapped{Address: other.StartAddress()}
			return
		}
	}

	n, _ := slices.BinarySearchFunc(bus.devices, start, func(d Device, start uint64) int {
		if d.StartAddress() < start {
			return -1
		}
		return 1
	})
	bus.devices = slices.Insert(bus.devices, n, dev)

	if bus.Verbose {
		log.Printf("bus: attach %v [0x%x, 0x%x)", dev.Name(), start, end)
	}

	return
}

// Devices iterates over the attached devices in address order.
func (bus *Bus) Devices() iter.Seq[Device] {
	return slices.Values(bus.devices)
}

// Reset detaches all devices.
func (bus *Bus) Reset() {
	bus.devices = nil
}

// Device returns the device owning address.
func (bus *Bus) Device(address uint64) (dev Device, err error) {
	n, _ := slices.BinarySearchFunc(bus.devices, address, func(d Device, address uint64) int {
		if d.StartAddress() <= address {
			return -1
		}
		return 1
	})
	if n > 0 && address < bus.devices[n-1].EndAddress() {
		dev = bus.devices[n-1]
		return
	}

	err = ErrOutOfBounds{Address: address, Size: 1}
	return
}

// Read8 reads a byte from the owning device.
func (bus *Bus) Read8(address uint64) (value uint8, err error) {
	dev, err := bus.Device(address)
	if err != nil {
		return
	}

	return dev.Read8(address)
}

// ReadBytes reads from the device owning the first address.
func (bus *Bus) ReadBytes(address uint64, size uint64) (data []byte, err error) {
	dev, err := bus.Device(address)
	if err != nil {
		return
	}

	return dev.ReadBytes(address, size)
}

// Write8 writes a byte to the owning device.
func (bus *Bus) Write8(address uint64, value uint8) (err error) {
	dev, err := bus.Device(address)
	if err != nil {
		return
	}

	return dev.Write8(address, value)
}

// WriteBytes writes to the device owning the first address.
func (bus *Bus) WriteBytes(address uint64, data []byte) (err error) {
	dev, err := bus.Device(address)
	if err != nil {
		return
	}

	return dev.WriteBytes(address, data)
}
