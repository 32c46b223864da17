package axi

// Channel identifies one of the five AXI4-Lite channels.
type Channel int

// Channels in the order they appear on the interface.
const (
	ChannelWriteAddr Channel = iota
	ChannelWriteData
	ChannelWriteResp
	ChannelReadAddr
	ChannelReadData
)

// String returns the AXI short name of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelWriteAddr:
		return "AW"
	case ChannelWriteData:
		return "W"
	case ChannelWriteResp:
		return "B"
	case ChannelReadAddr:
		return "AR"
	case ChannelReadData:
		return "R"
	default:
		return "?"
	}
}

// AddrBeat is the payload of the AW and AR channels.
type AddrBeat struct {
	// Addr is the byte address of the access.
	Addr uint32
	// Prot carries the protection bits.
	Prot Prot
}

// WriteBeat is the payload of the W channel.
type WriteBeat struct {
	// Data is the 32-bit write data.
	Data uint32
	// Strobe enables byte lane i when bit i is set. Only bits 0-3 are used.
	Strobe uint8
}

// ReadBeat is the payload of the R channel.
type ReadBeat struct {
	Data uint32
	Resp Resp
}

// MasterSignals holds every line driven towards the slave for one tick.
type MasterSignals struct {
	AWValid bool
	AW      AddrBeat

	WValid bool
	W      WriteBeat

	BReady bool

	ARValid bool
	AR      AddrBeat

	RReady bool

	// Reset is the active-high reset level sampled on this tick.
	Reset bool
}

// SlaveSignals holds every line driven by the slave for one tick. The slave
// computes them from its registered state only.
type SlaveSignals struct {
	AWReady bool
	WReady  bool

	BValid bool
	BResp  Resp

	ARReady bool

	RValid bool
	R      ReadBeat

	// Interrupt is the level-sensitive interrupt output.
	Interrupt bool
}

// Handshakes records which channels complete a transfer on a tick.
type Handshakes struct {
	AW bool
	W  bool
	B  bool
	AR bool
	R  bool
}

// Sample evaluates valid && ready on every channel. Both bundles must be the
// values present before the tick's state update.
func Sample(m MasterSignals, s SlaveSignals) Handshakes {
	return Handshakes{
		AW: m.AWValid && s.AWReady,
		W:  m.WValid && s.WReady,
		B:  s.BValid && m.BReady,
		AR: m.ARValid && s.ARReady,
		R:  s.RValid && m.RReady,
	}
}

// Any reports whether at least one channel completed a transfer.
func (h Handshakes) Any() bool {
	return h.AW || h.W || h.B || h.AR || h.R
}

// Fired reports whether the given channel completed a transfer.
func (h Handshakes) Fired(c Channel) bool {
	switch c {
	case ChannelWriteAddr:
		return h.AW
	case ChannelWriteData:
		return h.W
	case ChannelWriteResp:
		return h.B
	case ChannelReadAddr:
		return h.AR
	case ChannelReadData:
		return h.R
	default:
		return false
	}
}
