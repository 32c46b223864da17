// Package slave provides the cycle-accurate AXI4-Lite slave: a write
// transaction resolver and a read transaction resolver sharing one register
// file, advanced one clock tick at a time.
package slave

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/config"
	"github.com/sarchlab/axilite/regfile"
)

// Statistics holds slave activity counters.
type Statistics struct {
	// Cycles is the number of ticks simulated, reset ticks included.
	Cycles uint64
	// Writes is the number of write transactions resolved.
	Writes uint64
	// Reads is the number of read transactions accepted.
	Reads uint64
	// WriteErrors is the number of writes answered with SLVERR.
	WriteErrors uint64
	// ReadErrors is the number of reads answered with SLVERR.
	ReadErrors uint64
	// DiscardedWrites counts in-range writes dropped by read-only registers.
	DiscardedWrites uint64
	// Resets is the number of ticks with reset asserted.
	Resets uint64
}

// Option is a functional option for configuring the Slave.
type Option func(*Slave)

// WithConfig applies the slave-side parameters of a SlaveConfig.
func WithConfig(c *config.SlaveConfig) Option {
	return func(s *Slave) {
		s.read.poison = c.PoisonValue
	}
}

// WithPoison sets the data returned for out-of-range reads.
func WithPoison(value uint32) Option {
	return func(s *Slave) {
		s.read.poison = value
	}
}

// WithLogger sets the logger. Handshakes and commits are logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(s *Slave) {
		s.log = log
	}
}

// Slave is an AXI4-Lite slave backed by a register file.
type Slave struct {
	regs  *regfile.RegFile
	write writeResolver
	read  readResolver

	stats Statistics
	log   logr.Logger
}

// New creates a Slave that owns regs. The register file should not be
// mutated by anyone else while the slave is ticking.
func New(regs *regfile.RegFile, opts ...Option) *Slave {
	s := &Slave{
		regs:  regs,
		write: newWriteResolver(),
		read:  newReadResolver(config.DefaultPoisonValue),
		log:   logr.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Registers returns the register file backing the slave.
func (s *Slave) Registers() *regfile.RegFile {
	return s.regs
}

// WriteState returns the current write resolver state.
func (s *Slave) WriteState() WriteState {
	return s.write.phase.state()
}

// ReadState returns the current read resolver state.
func (s *Slave) ReadState() ReadState {
	return s.read.phase.state()
}

// Stats returns the activity counters.
func (s *Slave) Stats() Statistics {
	return s.stats
}

// Outputs returns the lines the slave drives during the current tick. They
// depend only on registered state.
func (s *Slave) Outputs() axi.SlaveSignals {
	var out axi.SlaveSignals
	s.write.outputs(&out)
	s.read.outputs(&out)
	out.Interrupt = s.regs.Read(regfile.IRQStatus)&s.regs.Read(regfile.IRQEnable) != 0
	return out
}

// Tick advances the slave by one clock.
//
// The tick is two-phase: every next-state value is computed from the state
// held at the start of the tick, then all of them are committed together.
// Handshakes are sampled against Outputs() as they were before the update.
// An asserted reset level overrides any concurrent handshake.
func (s *Slave) Tick(in axi.MasterSignals) {
	s.stats.Cycles++

	if in.Reset {
		s.stats.Resets++
		s.reset()
		return
	}

	hs := axi.Sample(in, s.Outputs())

	// Phase 1: compute.
	ws := s.write.advance(in, hs)
	rs := s.read.advance(in, hs, s.regs)

	// Phase 2: commit.
	applied := s.regs.Step(ws.commit)
	s.write.phase = ws.next
	s.read.phase = rs.next

	s.record(hs, ws, rs, applied)
}

// Reset returns the slave and its register file to the reset state
// immediately. Statistics are kept.
func (s *Slave) Reset() {
	s.reset()
}

func (s *Slave) reset() {
	s.regs.Reset()
	s.write = newWriteResolver()
	s.read.phase = readIdle{}
	s.log.V(1).Info("reset")
}

func (s *Slave) record(hs axi.Handshakes, ws writeStep, rs readStep, applied bool) {
	if ws.committed {
		s.stats.Writes++
		if ws.resp != axi.RespOkay {
			s.stats.WriteErrors++
		} else if !applied {
			s.stats.DiscardedWrites++
		}
		s.log.V(1).Info("write resolved",
			"cycle", s.stats.Cycles,
			"addr", hex(ws.addr),
			"resp", ws.resp.String(),
			"applied", applied)
	}

	if rs.accepted {
		s.stats.Reads++
		if rs.beat.Resp != axi.RespOkay {
			s.stats.ReadErrors++
		}
		s.log.V(1).Info("read accepted",
			"cycle", s.stats.Cycles,
			"addr", hex(rs.addr),
			"data", hex(rs.beat.Data),
			"resp", rs.beat.Resp.String())
	}

	if hs.Any() {
		s.log.V(2).Info("handshakes",
			"cycle", s.stats.Cycles,
			"aw", hs.AW, "w", hs.W, "b", hs.B, "ar", hs.AR, "r", hs.R,
			"write", s.WriteState().String(),
			"read", s.ReadState().String())
	}
}

func hex(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}
