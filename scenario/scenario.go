// Package scenario loads YAML stimulus files for the slave model and runs
// them against a driver, checking the expected responses.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/sarchlab/axilite/axi"
)

// ErrInvalid is wrapped by every scenario validation error.
var ErrInvalid = errors.New("invalid scenario")

// FullStrobe enables all four byte lanes.
const FullStrobe uint8 = 0xF

// Scenario is a named sequence of steps.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is exactly one of a write, a read, idle ticks, reset ticks or a group
// of writes and reads issued on the same tick.
type Step struct {
	Write      *WriteOp `yaml:"write,omitempty"`
	Read       *ReadOp  `yaml:"read,omitempty"`
	Idle       int      `yaml:"idle,omitempty"`
	Reset      int      `yaml:"reset,omitempty"`
	Concurrent []Step   `yaml:"concurrent,omitempty"`
}

// WriteOp is a write with its expected response.
type WriteOp struct {
	Addr      uint32 `yaml:"addr"`
	Data      uint32 `yaml:"data"`
	Strobe    *uint8 `yaml:"strobe,omitempty"`
	AddrDelay int    `yaml:"addr_delay,omitempty"`
	DataDelay int    `yaml:"data_delay,omitempty"`
	RespDelay int    `yaml:"resp_delay,omitempty"`

	// ExpectResp defaults to OKAY.
	ExpectResp string `yaml:"expect_resp,omitempty"`
}

// ReadOp is a read with its expected response and, optionally, data.
type ReadOp struct {
	Addr       uint32 `yaml:"addr"`
	AddrDelay  int    `yaml:"addr_delay,omitempty"`
	ReadyDelay int    `yaml:"ready_delay,omitempty"`

	ExpectResp string  `yaml:"expect_resp,omitempty"`
	ExpectData *uint32 `yaml:"expect_data,omitempty"`
}

// StrobeOrDefault returns the strobe, or FullStrobe if none was given.
func (w *WriteOp) StrobeOrDefault() uint8 {
	if w.Strobe == nil {
		return FullStrobe
	}
	return *w.Strobe
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse scenario: %v", ErrInvalid, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step is well formed.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalid)
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(false); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (st *Step) validate(nested bool) error {
	kinds := 0
	if st.Write != nil {
		kinds++
	}
	if st.Read != nil {
		kinds++
	}
	if st.Idle != 0 {
		kinds++
	}
	if st.Reset != 0 {
		kinds++
	}
	if len(st.Concurrent) > 0 {
		kinds++
	}

	switch {
	case kinds != 1:
		return fmt.Errorf("%w: step must have exactly one action, has %d", ErrInvalid, kinds)
	case st.Idle < 0 || st.Reset < 0:
		return fmt.Errorf("%w: negative tick count", ErrInvalid)
	case nested && (st.Idle != 0 || st.Reset != 0 || len(st.Concurrent) > 0):
		return fmt.Errorf("%w: concurrent groups may only hold writes and reads", ErrInvalid)
	}

	if w := st.Write; w != nil {
		if w.Strobe != nil && *w.Strobe > FullStrobe {
			return fmt.Errorf("%w: strobe 0x%X has more than four lanes", ErrInvalid, *w.Strobe)
		}
		if w.AddrDelay < 0 || w.DataDelay < 0 || w.RespDelay < 0 {
			return fmt.Errorf("%w: negative delay", ErrInvalid)
		}
		if err := validResp(w.ExpectResp); err != nil {
			return err
		}
	}

	if r := st.Read; r != nil {
		if r.AddrDelay < 0 || r.ReadyDelay < 0 {
			return fmt.Errorf("%w: negative delay", ErrInvalid)
		}
		if err := validResp(r.ExpectResp); err != nil {
			return err
		}
	}

	for i := range st.Concurrent {
		if err := st.Concurrent[i].validate(true); err != nil {
			return fmt.Errorf("concurrent %d: %w", i, err)
		}
	}

	return nil
}

func validResp(s string) error {
	if s == "" {
		return nil
	}
	if _, err := axi.ParseResp(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func expectedResp(s string) axi.Resp {
	if s == "" {
		return axi.RespOkay
	}
	r, _ := axi.ParseResp(s)
	return r
}
