package axi

import (
	"errors"
	"fmt"
)

// ErrProtocol is wrapped by every violation the Monitor reports.
var ErrProtocol = errors.New("axi protocol violation")

// Monitor checks the handshake stability rules on the slave side of the
// interface, one tick at a time:
//   - AWReady, WReady and ARReady do not drop until their valid is accepted.
//   - An asserted B or R beat stays asserted and unchanged until accepted.
type Monitor struct {
	havePrev bool
	prev     SlaveSignals
	prevHS   Handshakes
	tick     uint64
}

// NewMonitor creates a Monitor with no history.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Observe checks the signals of the current tick against the previous one
// and records them. A tick with Reset asserted clears the history.
func (m *Monitor) Observe(in MasterSignals, out SlaveSignals) error {
	tick := m.tick
	m.tick++

	if in.Reset {
		m.havePrev = false
		return nil
	}

	var err error
	if m.havePrev {
		err = m.check(tick, out)
	}

	m.prev = out
	m.prevHS = Sample(in, out)
	m.havePrev = true

	return err
}

// Reset clears the monitor history.
func (m *Monitor) Reset() {
	m.havePrev = false
	m.prev = SlaveSignals{}
	m.prevHS = Handshakes{}
}

func (m *Monitor) check(tick uint64, out SlaveSignals) error {
	p := m.prev

	if p.AWReady && !m.prevHS.AW && !out.AWReady {
		return m.violation(tick, ChannelWriteAddr, "ready retracted before handshake")
	}
	if p.WReady && !m.prevHS.W && !out.WReady {
		return m.violation(tick, ChannelWriteData, "ready retracted before handshake")
	}
	if p.ARReady && !m.prevHS.AR && !out.ARReady {
		return m.violation(tick, ChannelReadAddr, "ready retracted before handshake")
	}

	if p.BValid && !m.prevHS.B {
		if !out.BValid {
			return m.violation(tick, ChannelWriteResp, "valid dropped before handshake")
		}
		if out.BResp != p.BResp {
			return m.violation(tick, ChannelWriteResp,
				fmt.Sprintf("response changed from %s to %s", p.BResp, out.BResp))
		}
	}

	if p.RValid && !m.prevHS.R {
		if !out.RValid {
			return m.violation(tick, ChannelReadData, "valid dropped before handshake")
		}
		if out.R != p.R {
			return m.violation(tick, ChannelReadData,
				fmt.Sprintf("beat changed from 0x%08X/%s to 0x%08X/%s",
					p.R.Data, p.R.Resp, out.R.Data, out.R.Resp))
		}
	}

	return nil
}

func (m *Monitor) violation(tick uint64, c Channel, what string) error {
	return fmt.Errorf("%w: tick %d: %s channel: %s", ErrProtocol, tick, c, what)
}
