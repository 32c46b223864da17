// Package main provides the entry point for axisim.
// axisim runs YAML scenarios against the cycle-accurate AXI4-Lite slave model.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/axilite/config"
	"github.com/sarchlab/axilite/master"
	"github.com/sarchlab/axilite/regfile"
	"github.com/sarchlab/axilite/scenario"
	"github.com/sarchlab/axilite/simulation"
	"github.com/sarchlab/axilite/slave"
)

var (
	configPath = flag.String("config", "", "Path to slave configuration JSON file")
	freqMHz    = flag.Float64("freq", 0, "Override the clock frequency in MHz")
	verbose    = flag.Bool("v", false, "Verbose output")
	trace      = flag.Bool("trace", false, "Log every handshake (implies -v)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: axisim [options] <scenario.yaml>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath, *freqMHz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	sc, err := scenario.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		os.Exit(1)
	}

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	if *trace {
		verbosity = 2
	}

	failed, err := run(cfg, sc, os.Stdout, newLogger(os.Stderr, verbosity))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running scenario: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// loadConfig returns the default config or the one at path, with the
// frequency override applied.
func loadConfig(path string, freq float64) (*config.SlaveConfig, error) {
	cfg := config.DefaultSlaveConfig()
	if path != "" {
		var err error
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if freq > 0 {
		cfg.FreqMHz = freq
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	if verbosity == 0 {
		return logr.Discard()
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}

// run executes the scenario on a fresh model and prints the report to out.
// It returns the number of failed expectations.
func run(cfg *config.SlaveConfig, sc *scenario.Scenario, out io.Writer, log logr.Logger) (int, error) {
	regs := regfile.New(cfg.Version)
	s := slave.New(regs,
		slave.WithConfig(cfg),
		slave.WithLogger(log.WithName("slave")),
	)
	m := master.New(s,
		master.WithMaxTicks(cfg.MaxTicks),
		master.WithLogger(log.WithName("master")),
	)
	comp := simulation.MakeBuilder().
		WithFreq(sim.Freq(cfg.FreqMHz) * sim.MHz).
		Build("AXILite", m)

	report, err := scenario.Execute(sc, comp)
	if report != nil {
		printReport(out, report)
	}
	if err != nil {
		return 0, err
	}

	stats := s.Stats()
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Slave Statistics:\n")
	fmt.Fprintf(out, "  Cycles:           %d\n", stats.Cycles)
	fmt.Fprintf(out, "  Writes:           %d (%d SLVERR, %d discarded)\n",
		stats.Writes, stats.WriteErrors, stats.DiscardedWrites)
	fmt.Fprintf(out, "  Reads:            %d (%d SLVERR)\n", stats.Reads, stats.ReadErrors)
	fmt.Fprintf(out, "  Reset cycles:     %d\n", stats.Resets)
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Result: %d/%d passed\n",
		len(report.Outcomes)-report.Failed(), len(report.Outcomes))

	return report.Failed(), nil
}

func printReport(out io.Writer, report *scenario.Report) {
	fmt.Fprintf(out, "Scenario: %s\n", report.Name)
	for _, o := range report.Outcomes {
		fmt.Fprintf(out, "  %s\n", o)
	}
}
