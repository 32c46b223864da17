// Package regfile provides the eight-register file behind the AXI4-Lite
// slave, with per-register access policies and hardware-mirrored registers.
package regfile

import "fmt"

// Policy is the bus access policy of a register.
type Policy int

// Access policies.
const (
	// ReadWrite registers take every strobed byte lane from the bus.
	ReadWrite Policy = iota
	// ReadOnly registers silently discard bus writes.
	ReadOnly
	// WriteOneToClear registers clear each bit written as 1 in a strobed lane.
	WriteOneToClear
)

// String returns the short policy name used in register maps.
func (p Policy) String() string {
	switch p {
	case ReadWrite:
		return "RW"
	case ReadOnly:
		return "RO"
	case WriteOneToClear:
		return "W1C"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Index selects one of the registers.
type Index int

// Register indices. The byte offset of a register is 4 * index.
const (
	Ctrl Index = iota
	Status
	DataTX
	DataRX
	IRQEnable
	IRQStatus
	Scratch
	Version
)

// NumRegisters is the number of registers in the file.
const NumRegisters = 8

// WindowSize is the size in bytes of the decoded address window.
const WindowSize = NumRegisters * 4

// DefaultVersion is the constant the VERSION register is pinned to unless
// the file is built with another one.
const DefaultVersion uint32 = 0x00010000

// Descriptor describes one entry of the register map.
type Descriptor struct {
	// Name is the register mnemonic.
	Name string
	// Offset is the byte offset within the window.
	Offset uint32
	// Policy is the bus access policy.
	Policy Policy
	// Reset is the reset value. VERSION resets to the file's version constant
	// instead.
	Reset uint32
}

var registerMap = [NumRegisters]Descriptor{
	Ctrl:      {Name: "CTRL", Offset: 0x00, Policy: ReadWrite},
	Status:    {Name: "STATUS", Offset: 0x04, Policy: ReadOnly},
	DataTX:    {Name: "DATA_TX", Offset: 0x08, Policy: ReadWrite},
	DataRX:    {Name: "DATA_RX", Offset: 0x0C, Policy: ReadOnly},
	IRQEnable: {Name: "IRQ_EN", Offset: 0x10, Policy: ReadWrite},
	IRQStatus: {Name: "IRQ_STAT", Offset: 0x14, Policy: WriteOneToClear},
	Scratch:   {Name: "SCRATCH", Offset: 0x18, Policy: ReadWrite},
	Version:   {Name: "VERSION", Offset: 0x1C, Policy: ReadOnly, Reset: DefaultVersion},
}

// Describe returns the register map entry for index i.
func Describe(i Index) Descriptor {
	return registerMap[i]
}

// String returns the register mnemonic.
func (i Index) String() string {
	if i < 0 || i >= NumRegisters {
		return fmt.Sprintf("Index(%d)", int(i))
	}
	return registerMap[i].Name
}

// Decode maps a byte address to a register index. The low two bits select a
// byte within the word and do not take part in register selection. ok is
// false for addresses outside the window.
func Decode(addr uint32) (i Index, ok bool) {
	if addr >= WindowSize {
		return 0, false
	}
	return Index(addr >> 2), true
}
