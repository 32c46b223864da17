// Package master provides a bus-functional AXI4-Lite master that drives a
// slave tick by tick. It is the harness the slave model is verified with.
package master

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/axilite/axi"
)

var (
	// ErrTimeout reports a transaction that did not complete within the
	// tick budget.
	ErrTimeout = errors.New("transaction timed out")

	// ErrBusy reports an idle or reset request made while transactions are
	// still pending.
	ErrBusy = errors.New("master has pending transactions")
)

// DefaultMaxTicks is the tick budget used when none is given.
const DefaultMaxTicks uint64 = 1000

// Slave is the slave-side contract the master drives.
type Slave interface {
	// Outputs returns the lines the slave drives on the current tick.
	Outputs() axi.SlaveSignals
	// Tick advances the slave by one clock with the given inputs.
	Tick(in axi.MasterSignals)
}

// Option is a functional option for configuring the Master.
type Option func(*Master)

// WithMaxTicks sets the per-transaction tick budget.
func WithMaxTicks(n uint64) Option {
	return func(m *Master) {
		m.maxTicks = n
	}
}

// WithLogger sets the logger. Transaction completion is logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(m *Master) {
		m.log = log
	}
}

// Master issues write and read transactions against a Slave. Writes are
// serviced one at a time in submit order, as are reads; the write and read
// streams run concurrently.
type Master struct {
	slave    Slave
	monitor  *axi.Monitor
	maxTicks uint64
	log      logr.Logger

	cycle uint64

	writeQueue []queuedWrite
	readQueue  []queuedRead
	write      *activeWrite
	read       *activeRead

	idleTicks  int
	resetTicks int

	writeResults map[string]WriteResult
	readResults  map[string]ReadResult
	completed    []string
}

// New creates a Master driving slave.
func New(slave Slave, opts ...Option) *Master {
	m := &Master{
		slave:        slave,
		monitor:      axi.NewMonitor(),
		maxTicks:     DefaultMaxTicks,
		log:          logr.Discard(),
		writeResults: make(map[string]WriteResult),
		readResults:  make(map[string]ReadResult),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Cycle returns the number of ticks driven so far.
func (m *Master) Cycle() uint64 {
	return m.cycle
}

// SubmitWrite queues a write and returns its ID. Negative delays are
// treated as zero.
func (m *Master) SubmitWrite(txn WriteTxn) string {
	txn.AddrDelay = nonNegative(txn.AddrDelay)
	txn.DataDelay = nonNegative(txn.DataDelay)
	txn.RespDelay = nonNegative(txn.RespDelay)

	id := sim.GetIDGenerator().Generate()
	m.writeQueue = append(m.writeQueue, queuedWrite{id: id, txn: txn})
	return id
}

// SubmitRead queues a read and returns its ID. Negative delays are
// treated as zero.
func (m *Master) SubmitRead(txn ReadTxn) string {
	txn.AddrDelay = nonNegative(txn.AddrDelay)
	txn.ReadyDelay = nonNegative(txn.ReadyDelay)

	id := sim.GetIDGenerator().Generate()
	m.readQueue = append(m.readQueue, queuedRead{id: id, txn: txn})
	return id
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ScheduleIdle queues n ticks with no request activity.
func (m *Master) ScheduleIdle(n int) error {
	if m.hasTransactions() {
		return ErrBusy
	}
	m.idleTicks += n
	return nil
}

// ScheduleReset queues n ticks with reset asserted.
func (m *Master) ScheduleReset(n int) error {
	if m.hasTransactions() {
		return ErrBusy
	}
	m.resetTicks += n
	return nil
}

// Busy reports whether any transaction, idle or reset tick is pending.
func (m *Master) Busy() bool {
	return m.hasTransactions() || m.idleTicks > 0 || m.resetTicks > 0
}

func (m *Master) hasTransactions() bool {
	return m.write != nil || m.read != nil ||
		len(m.writeQueue) > 0 || len(m.readQueue) > 0
}

// WriteResult returns the result of a completed write.
func (m *Master) WriteResult(id string) (WriteResult, bool) {
	r, ok := m.writeResults[id]
	return r, ok
}

// ReadResult returns the result of a completed read.
func (m *Master) ReadResult(id string) (ReadResult, bool) {
	r, ok := m.readResults[id]
	return r, ok
}

// Completed returns the IDs of completed transactions in completion order.
func (m *Master) Completed() []string {
	return append([]string(nil), m.completed...)
}

// Run steps until nothing is pending.
func (m *Master) Run() error {
	for m.Busy() {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Write issues one write and runs it to completion.
func (m *Master) Write(txn WriteTxn) (WriteResult, error) {
	id := m.SubmitWrite(txn)
	if err := m.Run(); err != nil {
		return WriteResult{}, err
	}
	r, _ := m.WriteResult(id)
	return r, nil
}

// Read issues one read and runs it to completion.
func (m *Master) Read(txn ReadTxn) (ReadResult, error) {
	id := m.SubmitRead(txn)
	if err := m.Run(); err != nil {
		return ReadResult{}, err
	}
	r, _ := m.ReadResult(id)
	return r, nil
}

// Idle drives n ticks with no request activity.
func (m *Master) Idle(n int) error {
	if err := m.ScheduleIdle(n); err != nil {
		return err
	}
	return m.Run()
}

// Reset drives n ticks with reset asserted.
func (m *Master) Reset(n int) error {
	if err := m.ScheduleReset(n); err != nil {
		return err
	}
	return m.Run()
}

// Step drives one tick.
func (m *Master) Step() error {
	cycle := m.cycle
	m.cycle++

	if m.resetTicks > 0 {
		m.resetTicks--
		return m.drive(axi.MasterSignals{Reset: true})
	}

	if !m.hasTransactions() {
		if m.idleTicks > 0 {
			m.idleTicks--
		}
		return m.drive(axi.MasterSignals{})
	}

	m.activate(cycle)

	in := m.signals(cycle)
	out := m.slave.Outputs()

	if err := m.monitor.Observe(in, out); err != nil {
		return err
	}

	hs := axi.Sample(in, out)
	m.slave.Tick(in)
	m.retire(cycle, hs, out)

	return m.checkBudget(cycle)
}

func (m *Master) drive(in axi.MasterSignals) error {
	out := m.slave.Outputs()
	if err := m.monitor.Observe(in, out); err != nil {
		return err
	}
	m.slave.Tick(in)
	return nil
}

func (m *Master) activate(cycle uint64) {
	if m.write == nil && len(m.writeQueue) > 0 {
		q := m.writeQueue[0]
		m.writeQueue = m.writeQueue[1:]
		m.write = &activeWrite{id: q.id, txn: q.txn, start: cycle}
	}

	if m.read == nil && len(m.readQueue) > 0 {
		q := m.readQueue[0]
		m.readQueue = m.readQueue[1:]
		m.read = &activeRead{id: q.id, txn: q.txn, start: cycle}
	}
}

func (m *Master) signals(cycle uint64) axi.MasterSignals {
	var in axi.MasterSignals

	if w := m.write; w != nil {
		elapsed := cycle - w.start
		if !w.awDone && elapsed >= uint64(w.txn.AddrDelay) {
			in.AWValid = true
			in.AW = axi.AddrBeat{Addr: w.txn.Addr, Prot: w.txn.Prot}
		}
		if !w.wDone && elapsed >= uint64(w.txn.DataDelay) {
			in.WValid = true
			in.W = axi.WriteBeat{Data: w.txn.Data, Strobe: w.txn.Strobe}
		}
		in.BReady = elapsed >= uint64(w.txn.RespDelay)
	}

	if r := m.read; r != nil {
		elapsed := cycle - r.start
		if !r.arDone && elapsed >= uint64(r.txn.AddrDelay) {
			in.ARValid = true
			in.AR = axi.AddrBeat{Addr: r.txn.Addr, Prot: r.txn.Prot}
		}
		in.RReady = elapsed >= uint64(r.txn.ReadyDelay)
	}

	return in
}

func (m *Master) retire(cycle uint64, hs axi.Handshakes, out axi.SlaveSignals) {
	if w := m.write; w != nil {
		w.awDone = w.awDone || hs.AW
		w.wDone = w.wDone || hs.W

		if hs.B {
			r := WriteResult{ID: w.id, Txn: w.txn, Resp: out.BResp, Start: w.start, End: cycle}
			m.writeResults[w.id] = r
			m.completed = append(m.completed, w.id)
			m.write = nil
			m.log.V(1).Info("write done",
				"id", w.id,
				"addr", fmt.Sprintf("0x%08X", w.txn.Addr),
				"resp", r.Resp.String(),
				"ticks", r.Latency())
		}
	}

	if rd := m.read; rd != nil {
		rd.arDone = rd.arDone || hs.AR

		if hs.R {
			r := ReadResult{
				ID: rd.id, Txn: rd.txn, Data: out.R.Data, Resp: out.R.Resp,
				Start: rd.start, End: cycle,
			}
			m.readResults[rd.id] = r
			m.completed = append(m.completed, rd.id)
			m.read = nil
			m.log.V(1).Info("read done",
				"id", rd.id,
				"addr", fmt.Sprintf("0x%08X", rd.txn.Addr),
				"data", fmt.Sprintf("0x%08X", r.Data),
				"resp", r.Resp.String(),
				"ticks", r.Latency())
		}
	}
}

func (m *Master) checkBudget(cycle uint64) error {
	if w := m.write; w != nil && cycle-w.start+1 >= m.maxTicks {
		return fmt.Errorf("%w: write %s to 0x%08X after %d ticks",
			ErrTimeout, w.id, w.txn.Addr, cycle-w.start+1)
	}
	if r := m.read; r != nil && cycle-r.start+1 >= m.maxTicks {
		return fmt.Errorf("%w: read %s from 0x%08X after %d ticks",
			ErrTimeout, r.id, r.txn.Addr, cycle-r.start+1)
	}
	return nil
}
