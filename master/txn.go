package master

import "github.com/sarchlab/axilite/axi"

// WriteTxn describes one write transaction as the master issues it.
type WriteTxn struct {
	Addr   uint32
	Prot   axi.Prot
	Data   uint32
	Strobe uint8

	// AddrDelay is the number of ticks after the transaction starts before
	// AWValid is raised.
	AddrDelay int
	// DataDelay is the number of ticks after the transaction starts before
	// WValid is raised.
	DataDelay int
	// RespDelay is the number of ticks after the transaction starts before
	// BReady is raised.
	RespDelay int
}

// ReadTxn describes one read transaction as the master issues it.
type ReadTxn struct {
	Addr uint32
	Prot axi.Prot

	// AddrDelay is the number of ticks after the transaction starts before
	// ARValid is raised.
	AddrDelay int
	// ReadyDelay is the number of ticks after the transaction starts before
	// RReady is raised.
	ReadyDelay int
}

// WriteResult is a completed write.
type WriteResult struct {
	ID   string
	Txn  WriteTxn
	Resp axi.Resp

	// Start is the tick the transaction became active; End is the tick its
	// response was accepted.
	Start uint64
	End   uint64
}

// Latency returns the number of ticks the transaction was active.
func (r WriteResult) Latency() uint64 {
	return r.End - r.Start + 1
}

// ReadResult is a completed read.
type ReadResult struct {
	ID   string
	Txn  ReadTxn
	Data uint32
	Resp axi.Resp

	Start uint64
	End   uint64
}

// Latency returns the number of ticks the transaction was active.
func (r ReadResult) Latency() uint64 {
	return r.End - r.Start + 1
}

type activeWrite struct {
	id     string
	txn    WriteTxn
	start  uint64
	awDone bool
	wDone  bool
}

type activeRead struct {
	id     string
	txn    ReadTxn
	start  uint64
	arDone bool
}

type queuedWrite struct {
	id  string
	txn WriteTxn
}

type queuedRead struct {
	id  string
	txn ReadTxn
}
