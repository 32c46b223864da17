package regfile

// Snapshot is a value copy of every register.
type Snapshot [NumRegisters]uint32

// Write is one resolved bus write, ready to be committed.
type Write struct {
	Index  Index
	Data   uint32
	Strobe uint8
}

// RegFile holds the register values. The bus side mutates it through
// ApplyWrite or Step; hardware-side updates happen in Step.
type RegFile struct {
	regs    Snapshot
	version uint32

	// raised holds interrupt status bits set by hardware since the last Step.
	raised uint32
}

// New creates a register file in its reset state with the VERSION register
// pinned to version.
func New(version uint32) *RegFile {
	r := &RegFile{version: version}
	r.Reset()
	return r
}

// NewDefault creates a register file pinned to DefaultVersion.
func NewDefault() *RegFile {
	return New(DefaultVersion)
}

// VersionConstant returns the value VERSION is pinned to.
func (r *RegFile) VersionConstant() uint32 {
	return r.version
}

// Read returns the current value of register i.
func (r *RegFile) Read(i Index) uint32 {
	return r.regs[i]
}

// Snapshot returns a copy of all registers.
func (r *RegFile) Snapshot() Snapshot {
	return r.regs
}

// ApplyWrite merges data into register i on the byte lanes enabled by
// strobe, following the register's policy. It returns false if the write was
// discarded because the register is read-only.
func (r *RegFile) ApplyWrite(i Index, data uint32, strobe uint8) bool {
	policy := registerMap[i].Policy
	if policy == ReadOnly {
		return false
	}
	r.regs[i] = merge(r.regs[i], data, strobe, policy)
	return true
}

// Raise sets interrupt status bits from the hardware side. The bits land on
// the next Step, after any bus write, so a set wins over a same-tick clear.
func (r *RegFile) Raise(mask uint32) {
	r.raised |= mask
}

// Mirror applies the hardware-driven registers from prev, the register
// values at the start of the tick.
func (r *RegFile) Mirror(prev Snapshot) {
	r.regs[Status] = prev[Ctrl] & 0x1
	r.regs[DataRX] = prev[DataTX]
	r.regs[Version] = r.version
}

// Step advances the register file by one tick: it commits w (if not nil),
// folds in hardware-raised interrupt bits and then applies the mirrors from
// the values held before the tick. It reports whether w changed a register.
func (r *RegFile) Step(w *Write) bool {
	prev := r.regs

	applied := false
	if w != nil {
		applied = r.ApplyWrite(w.Index, w.Data, w.Strobe)
	}

	r.regs[IRQStatus] |= r.raised
	r.raised = 0

	r.Mirror(prev)

	return applied
}

// Reset returns every register to its reset value and drops pending
// hardware interrupt bits.
func (r *RegFile) Reset() {
	for i := range r.regs {
		r.regs[i] = registerMap[i].Reset
	}
	r.regs[Version] = r.version
	r.raised = 0
}

// merge computes the new register value for a strobed write.
func merge(old, data uint32, strobe uint8, policy Policy) uint32 {
	result := old
	for lane := 0; lane < 4; lane++ {
		if strobe&(1<<lane) == 0 {
			continue
		}

		shift := uint(lane * 8)
		mask := uint32(0xFF) << shift

		switch policy {
		case ReadWrite:
			result = (result &^ mask) | (data & mask)
		case WriteOneToClear:
			result &^= data & mask
		}
	}
	return result
}
