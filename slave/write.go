package slave

import (
	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/regfile"
)

// writeResolver reconciles the AW and W handshakes into one committed write
// and drives the B channel.
type writeResolver struct {
	phase writePhase
}

func newWriteResolver() writeResolver {
	return writeResolver{phase: writeIdle{}}
}

// outputs drives AWReady, WReady and the B channel from the current phase.
func (w *writeResolver) outputs(out *axi.SlaveSignals) {
	switch p := w.phase.(type) {
	case writeIdle:
		out.AWReady = true
		out.WReady = true
	case writeHaveAddress:
		out.WReady = true
	case writeHaveData:
		out.AWReady = true
	case writeResponding:
		out.BValid = true
		out.BResp = p.resp
	}
}

// writeStep is the outcome of one tick of the write resolver.
type writeStep struct {
	next writePhase

	// commit is the register write to apply this tick, if any.
	commit *regfile.Write

	// committed is true on the tick the transaction resolves, even when the
	// address is invalid and nothing is written.
	committed bool
	resp      axi.Resp
	addr      uint32
}

// advance computes the next phase from the current one and this tick's
// handshakes. It does not mutate the resolver.
func (w *writeResolver) advance(in axi.MasterSignals, hs axi.Handshakes) writeStep {
	switch p := w.phase.(type) {
	case writeIdle:
		switch {
		case hs.AW && hs.W:
			return writeStep{next: writeCommitting{
				addr:   in.AW.Addr,
				data:   in.W.Data,
				strobe: in.W.Strobe,
			}}
		case hs.AW:
			return writeStep{next: writeHaveAddress{addr: in.AW.Addr}}
		case hs.W:
			return writeStep{next: writeHaveData{data: in.W.Data, strobe: in.W.Strobe}}
		}

	case writeHaveAddress:
		if hs.W {
			return writeStep{next: writeCommitting{
				addr:   p.addr,
				data:   in.W.Data,
				strobe: in.W.Strobe,
			}}
		}

	case writeHaveData:
		if hs.AW {
			return writeStep{next: writeCommitting{
				addr:   in.AW.Addr,
				data:   p.data,
				strobe: p.strobe,
			}}
		}

	case writeCommitting:
		index, resp := decode(p.addr)
		step := writeStep{
			next:      writeResponding{resp: resp},
			committed: true,
			resp:      resp,
			addr:      p.addr,
		}
		if resp == axi.RespOkay {
			step.commit = &regfile.Write{Index: index, Data: p.data, Strobe: p.strobe}
		}
		return step

	case writeResponding:
		if hs.B {
			return writeStep{next: writeIdle{}}
		}
	}

	return writeStep{next: w.phase}
}
