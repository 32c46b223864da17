package scenario

import (
	"fmt"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/master"
)

// Driver runs transactions against a slave. *master.Master implements it.
type Driver interface {
	SubmitWrite(txn master.WriteTxn) string
	SubmitRead(txn master.ReadTxn) string
	ScheduleIdle(n int) error
	ScheduleReset(n int) error
	Run() error
	WriteResult(id string) (master.WriteResult, bool)
	ReadResult(id string) (master.ReadResult, bool)
}

// Outcome is the checked result of one write or read.
type Outcome struct {
	// Step is the index of the top-level step the operation belongs to.
	Step int
	// Kind is "write" or "read".
	Kind string
	Addr uint32

	Resp       axi.Resp
	ExpectResp axi.Resp

	// Data is the written value for writes and the returned value for reads.
	Data       uint32
	ExpectData *uint32

	Latency uint64
	Pass    bool
}

// String formats the outcome as one report line.
func (o Outcome) String() string {
	status := "PASS"
	if !o.Pass {
		status = "FAIL"
	}

	line := fmt.Sprintf("[%s] step %d %-5s 0x%08X data=0x%08X resp=%s",
		status, o.Step, o.Kind, o.Addr, o.Data, o.Resp)
	if !o.Pass {
		line += fmt.Sprintf(" (want resp=%s", o.ExpectResp)
		if o.ExpectData != nil {
			line += fmt.Sprintf(" data=0x%08X", *o.ExpectData)
		}
		line += ")"
	}
	return line + fmt.Sprintf(" ticks=%d", o.Latency)
}

// Report collects the outcomes of a scenario run.
type Report struct {
	Name     string
	Outcomes []Outcome
}

// Failed returns the number of outcomes that did not match expectations.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Pass {
			n++
		}
	}
	return n
}

type pending struct {
	id    string
	write *WriteOp
	read  *ReadOp
}

// Execute runs every step of s on d. Expectation mismatches are recorded in
// the report; driver errors stop the run and are returned with the partial
// report.
func Execute(s *Scenario, d Driver) (*Report, error) {
	report := &Report{Name: s.Name}

	for i, st := range s.Steps {
		var err error
		switch {
		case st.Idle > 0:
			err = d.ScheduleIdle(st.Idle)
		case st.Reset > 0:
			err = d.ScheduleReset(st.Reset)
		}
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i, err)
		}

		group := st.Concurrent
		if len(group) == 0 {
			group = []Step{st}
		}

		var issued []pending
		for _, op := range group {
			switch {
			case op.Write != nil:
				issued = append(issued, pending{id: d.SubmitWrite(writeTxn(op.Write)), write: op.Write})
			case op.Read != nil:
				issued = append(issued, pending{id: d.SubmitRead(readTxn(op.Read)), read: op.Read})
			}
		}

		if err := d.Run(); err != nil {
			return report, fmt.Errorf("step %d: %w", i, err)
		}

		for _, p := range issued {
			report.Outcomes = append(report.Outcomes, check(i, p, d))
		}
	}

	return report, nil
}

func writeTxn(w *WriteOp) master.WriteTxn {
	return master.WriteTxn{
		Addr:      w.Addr,
		Data:      w.Data,
		Strobe:    w.StrobeOrDefault(),
		AddrDelay: w.AddrDelay,
		DataDelay: w.DataDelay,
		RespDelay: w.RespDelay,
	}
}

func readTxn(r *ReadOp) master.ReadTxn {
	return master.ReadTxn{
		Addr:       r.Addr,
		AddrDelay:  r.AddrDelay,
		ReadyDelay: r.ReadyDelay,
	}
}

func check(step int, p pending, d Driver) Outcome {
	if p.write != nil {
		res, _ := d.WriteResult(p.id)
		o := Outcome{
			Step:       step,
			Kind:       "write",
			Addr:       p.write.Addr,
			Resp:       res.Resp,
			ExpectResp: expectedResp(p.write.ExpectResp),
			Data:       p.write.Data,
			Latency:    res.Latency(),
		}
		o.Pass = o.Resp == o.ExpectResp
		return o
	}

	res, _ := d.ReadResult(p.id)
	o := Outcome{
		Step:       step,
		Kind:       "read",
		Addr:       p.read.Addr,
		Resp:       res.Resp,
		ExpectResp: expectedResp(p.read.ExpectResp),
		Data:       res.Data,
		ExpectData: p.read.ExpectData,
		Latency:    res.Latency(),
	}
	o.Pass = o.Resp == o.ExpectResp && (o.ExpectData == nil || *o.ExpectData == o.Data)
	return o
}
