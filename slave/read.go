package slave

import (
	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/regfile"
)

// readResolver decodes AR beats into register values and drives the R
// channel.
type readResolver struct {
	phase  readPhase
	poison uint32
}

func newReadResolver(poison uint32) readResolver {
	return readResolver{phase: readIdle{}, poison: poison}
}

func (r *readResolver) outputs(out *axi.SlaveSignals) {
	switch p := r.phase.(type) {
	case readIdle:
		out.ARReady = true
	case readResponding:
		out.RValid = true
		out.R = p.beat
	}
}

// readStep is the outcome of one tick of the read resolver.
type readStep struct {
	next readPhase

	// accepted is true on the tick an AR beat is taken.
	accepted bool
	addr     uint32
	beat     axi.ReadBeat
}

// advance computes the next phase. regs must still hold the values from
// before the tick.
func (r *readResolver) advance(
	in axi.MasterSignals,
	hs axi.Handshakes,
	regs *regfile.RegFile,
) readStep {
	switch r.phase.(type) {
	case readIdle:
		if !hs.AR {
			break
		}

		beat := axi.ReadBeat{Data: r.poison, Resp: axi.RespSlaveError}
		if index, resp := decode(in.AR.Addr); resp == axi.RespOkay {
			beat = axi.ReadBeat{Data: regs.Read(index), Resp: resp}
		}

		return readStep{
			next:     readResponding{beat: beat},
			accepted: true,
			addr:     in.AR.Addr,
			beat:     beat,
		}

	case readResponding:
		if hs.R {
			return readStep{next: readIdle{}}
		}
	}

	return readStep{next: r.phase}
}
