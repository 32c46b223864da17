// Package simulation runs the slave model on an Akita event-driven engine.
// A ticking component clocks a master and its slave once per cycle until the
// master has no pending work.
package simulation

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/axilite/master"
)

// Component is an Akita ticking component that clocks a master, and through
// it the slave, once per cycle.
type Component struct {
	*sim.TickingComponent

	engine sim.Engine
	master *master.Master

	ticks uint64
	err   error
}

// Builder constructs a Component.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// MakeBuilder returns a Builder with a 100 MHz clock and no engine.
func MakeBuilder() Builder {
	return Builder{freq: 100 * sim.MHz}
}

// WithEngine sets the engine the component schedules its ticks on.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// Build creates the component. A serial engine is created if none was set.
func (b Builder) Build(name string, m *master.Master) *Component {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	c := &Component{
		engine: engine,
		master: m,
	}
	c.TickingComponent = sim.NewTickingComponent(name, engine, b.freq, c)

	return c
}

// Tick advances the master and slave by one cycle. It returns false once the
// master is idle or has failed, which stops the component from rescheduling.
func (c *Component) Tick() bool {
	if c.err != nil || !c.master.Busy() {
		return false
	}

	c.ticks++
	if err := c.master.Step(); err != nil {
		c.err = err
		return false
	}

	return c.master.Busy()
}

// Run schedules the component and runs the engine until the master has
// drained its pending work.
func (c *Component) Run() error {
	if c.err != nil {
		return c.err
	}
	if !c.master.Busy() {
		return nil
	}

	c.TickLater()
	if err := c.engine.Run(); err != nil {
		return fmt.Errorf("engine run failed: %w", err)
	}

	return c.err
}

// Ticks returns the number of cycles this component has clocked.
func (c *Component) Ticks() uint64 {
	return c.ticks
}

// Master returns the master the component clocks.
func (c *Component) Master() *master.Master {
	return c.master
}

// SubmitWrite queues a write on the master.
func (c *Component) SubmitWrite(txn master.WriteTxn) string {
	return c.master.SubmitWrite(txn)
}

// SubmitRead queues a read on the master.
func (c *Component) SubmitRead(txn master.ReadTxn) string {
	return c.master.SubmitRead(txn)
}

// ScheduleIdle queues idle ticks on the master.
func (c *Component) ScheduleIdle(n int) error {
	return c.master.ScheduleIdle(n)
}

// ScheduleReset queues reset ticks on the master.
func (c *Component) ScheduleReset(n int) error {
	return c.master.ScheduleReset(n)
}

// WriteResult returns the result of a completed write.
func (c *Component) WriteResult(id string) (master.WriteResult, bool) {
	return c.master.WriteResult(id)
}

// ReadResult returns the result of a completed read.
func (c *Component) ReadResult(id string) (master.ReadResult, bool) {
	return c.master.ReadResult(id)
}
