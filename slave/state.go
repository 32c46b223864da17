package slave

import (
	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/regfile"
)

// WriteState is the externally visible state of the write resolver.
type WriteState int

// Write resolver states.
const (
	WriteIdle WriteState = iota
	WriteGotAddress
	WriteGotData
	WriteCommitting
	WriteResponding
)

// String returns the state name.
func (s WriteState) String() string {
	switch s {
	case WriteIdle:
		return "Idle"
	case WriteGotAddress:
		return "GotAddress"
	case WriteGotData:
		return "GotData"
	case WriteCommitting:
		return "Committing"
	case WriteResponding:
		return "Responding"
	default:
		return "Unknown"
	}
}

// ReadState is the externally visible state of the read resolver.
type ReadState int

// Read resolver states.
const (
	ReadIdle ReadState = iota
	ReadResponding
)

// String returns the state name.
func (s ReadState) String() string {
	switch s {
	case ReadIdle:
		return "Idle"
	case ReadResponding:
		return "Responding"
	default:
		return "Unknown"
	}
}

// writePhase is the tagged state of the write resolver. Each variant carries
// exactly the payload that is valid in that state, so a latched address can
// never be paired with stale data.
type writePhase interface {
	state() WriteState
}

type writeIdle struct{}

type writeHaveAddress struct {
	addr uint32
}

type writeHaveData struct {
	data   uint32
	strobe uint8
}

type writeCommitting struct {
	addr   uint32
	data   uint32
	strobe uint8
}

type writeResponding struct {
	resp axi.Resp
}

func (writeIdle) state() WriteState        { return WriteIdle }
func (writeHaveAddress) state() WriteState { return WriteGotAddress }
func (writeHaveData) state() WriteState    { return WriteGotData }
func (writeCommitting) state() WriteState  { return WriteCommitting }
func (writeResponding) state() WriteState  { return WriteResponding }

// readPhase is the tagged state of the read resolver.
type readPhase interface {
	state() ReadState
}

type readIdle struct{}

type readResponding struct {
	beat axi.ReadBeat
}

func (readIdle) state() ReadState       { return ReadIdle }
func (readResponding) state() ReadState { return ReadResponding }

// decode resolves an address into a register index and the response code
// the transaction will carry.
func decode(addr uint32) (regfile.Index, axi.Resp) {
	i, ok := regfile.Decode(addr)
	if !ok {
		return 0, axi.RespSlaveError
	}
	return i, axi.RespOkay
}
