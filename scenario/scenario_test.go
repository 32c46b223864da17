package scenario_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/master"
	"github.com/sarchlab/axilite/regfile"
	"github.com/sarchlab/axilite/scenario"
	"github.com/sarchlab/axilite/slave"
)

const smoke = `
name: smoke
steps:
  - reset: 2
  - read: {addr: 0x1C, expect_data: 0x00010000}
  - read: {addr: 0x00, expect_data: 0x0}
  - write: {addr: 0x00, data: 0xCAFEBABE}
  - read: {addr: 0x00, expect_data: 0xCAFEBABE}
  - write: {addr: 0x18, data: 0x11111111, strobe: 0x1, data_delay: 3}
  - write: {addr: 0x100, data: 0x1, expect_resp: SLVERR}
  - idle: 2
  - concurrent:
      - write: {addr: 0x08, data: 0x12345678, addr_delay: 2}
      - read: {addr: 0x100, expect_resp: SLVERR, expect_data: 0xDEADBEEF}
  - read: {addr: 0x0C, expect_data: 0x12345678}
  - read: {addr: 0x18, expect_data: 0x00000011, ready_delay: 2}
`

var _ = Describe("Scenario", func() {
	Describe("Parse", func() {
		It("should decode steps and hex values", func() {
			s, err := scenario.Parse([]byte(smoke))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name).To(Equal("smoke"))
			Expect(s.Steps).To(HaveLen(11))

			Expect(s.Steps[0].Reset).To(Equal(2))
			Expect(s.Steps[3].Write.Data).To(Equal(uint32(0xCAFEBABE)))
			Expect(s.Steps[3].Write.StrobeOrDefault()).To(Equal(scenario.FullStrobe))
			Expect(s.Steps[5].Write.StrobeOrDefault()).To(Equal(uint8(0x1)))
			Expect(*s.Steps[1].Read.ExpectData).To(Equal(uint32(0x00010000)))
			Expect(s.Steps[8].Concurrent).To(HaveLen(2))
		})

		It("should reject an empty scenario", func() {
			_, err := scenario.Parse([]byte("name: empty\n"))
			Expect(err).To(MatchError(scenario.ErrInvalid))
		})

		It("should reject a step with two actions", func() {
			_, err := scenario.Parse([]byte(`
steps:
  - read: {addr: 0x0}
    idle: 3
`))
			Expect(err).To(MatchError(scenario.ErrInvalid))
		})

		It("should reject idle inside a concurrent group", func() {
			_, err := scenario.Parse([]byte(`
steps:
  - concurrent:
      - idle: 1
`))
			Expect(err).To(MatchError(scenario.ErrInvalid))
		})

		It("should reject wide strobes", func() {
			_, err := scenario.Parse([]byte(`
steps:
  - write: {addr: 0x0, data: 0x0, strobe: 0x1F}
`))
			Expect(err).To(MatchError(scenario.ErrInvalid))
		})

		It("should reject unknown response codes", func() {
			_, err := scenario.Parse([]byte(`
steps:
  - read: {addr: 0x0, expect_resp: MAYBE}
`))
			Expect(err).To(MatchError(scenario.ErrInvalid))
		})

		It("should report malformed YAML", func() {
			_, err := scenario.Parse([]byte("steps: [unterminated"))
			Expect(err).To(MatchError(scenario.ErrInvalid))
		})

		It("should reject misspelled expectation keys", func() {
			_, err := scenario.Parse([]byte(`
steps:
  - read: {addr: 0, expect_dat: 1}
`))
			Expect(err).To(MatchError(scenario.ErrInvalid))
			Expect(err.Error()).To(ContainSubstring("expect_dat"))
		})

		It("should reject unknown step keys", func() {
			_, err := scenario.Parse([]byte(`
steps:
  - write: {addr: 0x100, data: 0x1, expect_rsp: SLVERR}
`))
			Expect(err).To(MatchError(scenario.ErrInvalid))
		})

		It("should reject an empty document", func() {
			_, err := scenario.Parse(nil)
			Expect(err).To(MatchError(scenario.ErrInvalid))
		})
	})

	Describe("Load", func() {
		It("should read a file", func() {
			dir, err := os.MkdirTemp("", "scenario-test")
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = os.RemoveAll(dir) }()

			path := filepath.Join(dir, "smoke.yaml")
			Expect(os.WriteFile(path, []byte(smoke), 0644)).To(Succeed())

			s, err := scenario.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name).To(Equal("smoke"))
		})

		It("should return error for non-existent file", func() {
			_, err := scenario.Load("/nonexistent/smoke.yaml")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Execute", func() {
		var m *master.Master

		BeforeEach(func() {
			m = master.New(slave.New(regfile.NewDefault()))
		})

		It("should pass the smoke scenario", func() {
			s, err := scenario.Parse([]byte(smoke))
			Expect(err).NotTo(HaveOccurred())

			report, err := scenario.Execute(s, m)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Outcomes).To(HaveLen(10))
			for _, o := range report.Outcomes {
				Expect(o.Pass).To(BeTrue(), o.String())
			}
			Expect(report.Failed()).To(BeZero())
		})

		It("should record failed expectations", func() {
			s, err := scenario.Parse([]byte(`
name: wrong
steps:
  - write: {addr: 0x1C, data: 0x1}
  - read: {addr: 0x1C, expect_data: 0x1}
  - write: {addr: 0x20, data: 0x1, expect_resp: OKAY}
`))
			Expect(err).NotTo(HaveOccurred())

			report, err := scenario.Execute(s, m)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Failed()).To(Equal(2))

			Expect(report.Outcomes[0].Pass).To(BeTrue())
			Expect(report.Outcomes[1].Pass).To(BeFalse())
			Expect(report.Outcomes[1].Data).To(Equal(regfile.DefaultVersion))
			Expect(report.Outcomes[1].String()).To(ContainSubstring("FAIL"))
			Expect(report.Outcomes[2].Resp).To(Equal(axi.RespSlaveError))
		})
	})
})
