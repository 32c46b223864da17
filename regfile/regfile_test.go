package regfile_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/regfile"
)

var _ = Describe("Register map", func() {
	It("should place registers at word offsets", func() {
		for i := regfile.Index(0); i < regfile.NumRegisters; i++ {
			Expect(regfile.Describe(i).Offset).To(Equal(uint32(i) * 4))
		}
	})

	It("should assign the documented policies", func() {
		Expect(regfile.Describe(regfile.Ctrl).Policy).To(Equal(regfile.ReadWrite))
		Expect(regfile.Describe(regfile.Status).Policy).To(Equal(regfile.ReadOnly))
		Expect(regfile.Describe(regfile.DataTX).Policy).To(Equal(regfile.ReadWrite))
		Expect(regfile.Describe(regfile.DataRX).Policy).To(Equal(regfile.ReadOnly))
		Expect(regfile.Describe(regfile.IRQEnable).Policy).To(Equal(regfile.ReadWrite))
		Expect(regfile.Describe(regfile.IRQStatus).Policy).To(Equal(regfile.WriteOneToClear))
		Expect(regfile.Describe(regfile.Scratch).Policy).To(Equal(regfile.ReadWrite))
		Expect(regfile.Describe(regfile.Version).Policy).To(Equal(regfile.ReadOnly))
	})

	It("should name registers", func() {
		Expect(regfile.IRQStatus.String()).To(Equal("IRQ_STAT"))
		Expect(regfile.WriteOneToClear.String()).To(Equal("W1C"))
	})

	Describe("Decode", func() {
		It("should map word addresses to indices", func() {
			i, ok := regfile.Decode(0x18)
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(regfile.Scratch))
		})

		It("should ignore the byte-select bits", func() {
			i, ok := regfile.Decode(0x1F)
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(regfile.Version))
		})

		It("should reject addresses outside the window", func() {
			_, ok := regfile.Decode(0x20)
			Expect(ok).To(BeFalse())
			_, ok = regfile.Decode(0x100)
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("RegFile", func() {
	var r *regfile.RegFile

	BeforeEach(func() {
		r = regfile.NewDefault()
	})

	It("should reset to zero except VERSION", func() {
		snap := r.Snapshot()
		for i := regfile.Index(0); i < regfile.Version; i++ {
			Expect(snap[i]).To(BeZero())
		}
		Expect(snap[regfile.Version]).To(Equal(regfile.DefaultVersion))
	})

	It("should pin VERSION to a custom constant", func() {
		r = regfile.New(0x12345678)
		Expect(r.Read(regfile.Version)).To(Equal(uint32(0x12345678)))
		Expect(r.VersionConstant()).To(Equal(uint32(0x12345678)))
	})

	Describe("Byte strobes", func() {
		It("should overwrite only the enabled lanes", func() {
			r.ApplyWrite(regfile.Scratch, 0xAABBCCDD, 0xF)
			Expect(r.Read(regfile.Scratch)).To(Equal(uint32(0xAABBCCDD)))

			r.ApplyWrite(regfile.Scratch, 0x11111111, 0b0001)
			Expect(r.Read(regfile.Scratch)).To(Equal(uint32(0xAABBCC11)))

			r.ApplyWrite(regfile.Scratch, 0xFF00FF00, 0b1100)
			Expect(r.Read(regfile.Scratch)).To(Equal(uint32(0xFF00CC11)))
		})

		It("should leave the register unchanged with an empty strobe", func() {
			r.ApplyWrite(regfile.Ctrl, 0xCAFEBABE, 0xF)
			Expect(r.ApplyWrite(regfile.Ctrl, 0x0, 0x0)).To(BeTrue())
			Expect(r.Read(regfile.Ctrl)).To(Equal(uint32(0xCAFEBABE)))
		})
	})

	Describe("Read-only registers", func() {
		It("should discard writes", func() {
			Expect(r.ApplyWrite(regfile.Version, 0xFFFFFFFF, 0xF)).To(BeFalse())
			Expect(r.ApplyWrite(regfile.Status, 0xFFFFFFFF, 0xF)).To(BeFalse())
			Expect(r.ApplyWrite(regfile.DataRX, 0xFFFFFFFF, 0xF)).To(BeFalse())

			Expect(r.Read(regfile.Version)).To(Equal(regfile.DefaultVersion))
			Expect(r.Read(regfile.Status)).To(BeZero())
			Expect(r.Read(regfile.DataRX)).To(BeZero())
		})
	})

	Describe("Write-one-to-clear", func() {
		BeforeEach(func() {
			r.Raise(0xFFFF00FF)
			r.Step(nil)
			Expect(r.Read(regfile.IRQStatus)).To(Equal(uint32(0xFFFF00FF)))
		})

		It("should clear bits written as one", func() {
			r.ApplyWrite(regfile.IRQStatus, 0x00000005, 0xF)
			Expect(r.Read(regfile.IRQStatus)).To(Equal(uint32(0xFFFF00FA)))
		})

		It("should leave bits written as zero", func() {
			r.ApplyWrite(regfile.IRQStatus, 0x00000000, 0xF)
			Expect(r.Read(regfile.IRQStatus)).To(Equal(uint32(0xFFFF00FF)))
		})

		It("should only clear within enabled lanes", func() {
			r.ApplyWrite(regfile.IRQStatus, 0xFFFFFFFF, 0b0010)
			Expect(r.Read(regfile.IRQStatus)).To(Equal(uint32(0xFFFF00FF)))

			r.ApplyWrite(regfile.IRQStatus, 0xFFFFFFFF, 0b0100)
			Expect(r.Read(regfile.IRQStatus)).To(Equal(uint32(0xFF0000FF)))
		})

		It("should let a hardware set win over a same-tick clear", func() {
			r.Raise(0x1)
			r.Step(&regfile.Write{Index: regfile.IRQStatus, Data: 0x1, Strobe: 0xF})
			Expect(r.Read(regfile.IRQStatus) & 0x1).To(Equal(uint32(1)))
		})
	})

	Describe("Step", func() {
		It("should mirror CTRL bit 0 into STATUS one tick later", func() {
			r.Step(&regfile.Write{Index: regfile.Ctrl, Data: 0xFFFFFFFF, Strobe: 0xF})
			Expect(r.Read(regfile.Status)).To(BeZero())

			r.Step(nil)
			Expect(r.Read(regfile.Status)).To(Equal(uint32(1)))
		})

		It("should mask STATUS to bit 0", func() {
			r.Step(&regfile.Write{Index: regfile.Ctrl, Data: 0xCAFEBABE, Strobe: 0xF})
			r.Step(nil)
			Expect(r.Read(regfile.Status)).To(BeZero())
		})

		It("should loop DATA_TX back into DATA_RX", func() {
			r.Step(&regfile.Write{Index: regfile.DataTX, Data: 0x5A5A1234, Strobe: 0xF})
			r.Step(nil)
			Expect(r.Read(regfile.DataRX)).To(Equal(uint32(0x5A5A1234)))
		})

		It("should report whether the write was applied", func() {
			Expect(r.Step(&regfile.Write{Index: regfile.Scratch, Data: 1, Strobe: 0xF})).To(BeTrue())
			Expect(r.Step(&regfile.Write{Index: regfile.Version, Data: 1, Strobe: 0xF})).To(BeFalse())
			Expect(r.Step(nil)).To(BeFalse())
		})

		It("should keep VERSION pinned", func() {
			for i := 0; i < 4; i++ {
				r.Step(&regfile.Write{Index: regfile.Version, Data: 0, Strobe: 0xF})
			}
			Expect(r.Read(regfile.Version)).To(Equal(regfile.DefaultVersion))
		})
	})

	Describe("Reset", func() {
		It("should clear registers and pending interrupts", func() {
			r.ApplyWrite(regfile.Scratch, 0xFFFFFFFF, 0xF)
			r.Raise(0x3)
			r.Reset()
			r.Step(nil)

			Expect(r.Read(regfile.Scratch)).To(BeZero())
			Expect(r.Read(regfile.IRQStatus)).To(BeZero())
			Expect(r.Read(regfile.Version)).To(Equal(regfile.DefaultVersion))
		})
	})
})
