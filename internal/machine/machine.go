package machine

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/psantana5/switchcase/internal/report"
	"github.com/psantana5/switchcase/pkg/metrics"
	"github.com/psantana5/switchcase/pkg/switchcase"
)

// step carries what a single activation decided
type step struct {
	label  string // matched case label, or DefaultLabel
	output string
	next   string
	halt   bool
}

// Machine drives a switch group as an externally looped state machine: each
// activation is one transition, and the activation's result becomes the next
// reference. The loop lives in Run, never inside the group.
type Machine struct {
	cfg      *Config
	group    *switchcase.Group[string, string]
	recorder *metrics.Recorder
	logger   *log.Logger

	// last is written by whichever handler ran during the current
	// activation. Runs are single-threaded; a Machine must not be shared
	// across concurrent Run calls.
	last step
}

// New builds the switch group declared by cfg. The recorder may be nil when
// no metrics are wanted; a nil logger falls back to stdout.
func New(cfg *Config, rec *metrics.Recorder, logger *log.Logger) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(os.Stdout, "[machine] ", log.LstdFlags)
	}

	m := &Machine{cfg: cfg, recorder: rec, logger: logger}

	b := switchcase.New[string, string](cfg.Name)
	for _, cs := range cfg.Cases {
		b.Case(cs.Label, func(ref string, args ...any) string {
			m.last = step{label: cs.Label, output: cs.Output, next: cs.Next, halt: cs.Halt}
			return cs.Next
		})
	}
	if cfg.Default != nil {
		d := *cfg.Default
		b.Default(func(ref string, args ...any) string {
			m.last = step{label: DefaultLabel, output: d.Output, next: d.Next, halt: d.Halt}
			return d.Next
		})
	}

	group, err := b.Build()
	if err != nil {
		return nil, err
	}
	m.group = group

	return m, nil
}

// Name returns the machine's name.
func (m *Machine) Name() string {
	return m.cfg.Name
}

// Run activates the machine from start (the declared start when empty) until
// a halting case runs, the step cap is reached, or an activation fails.
// Every step feeds its result back in as the next reference. The returned
// report is valid even when an error cut the run short.
func (m *Machine) Run(start string, maxSteps int) (*report.RunReport, error) {
	if start == "" {
		start = m.cfg.Start
	}
	if maxSteps <= 0 {
		maxSteps = m.cfg.MaxSteps
	}
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	rep := &report.RunReport{
		Machine:   m.cfg.Name,
		Start:     start,
		StartedAt: time.Now(),
	}

	ref := start
	for i := 0; i < maxSteps; i++ {
		m.last = step{}
		begin := time.Now()
		next, err := m.group.Activate(ref)
		elapsed := time.Since(begin)

		if err != nil {
			m.observe(metrics.OutcomeError, elapsed)
			rep.Stop = report.StopError
			rep.Finish()
			return rep, fmt.Errorf("step %d (ref %q): %w", i, ref, err)
		}

		outcome := metrics.OutcomeMatch
		if m.last.label == DefaultLabel {
			outcome = metrics.OutcomeDefault
		}
		m.observe(outcome, elapsed)
		if m.recorder != nil {
			m.recorder.RecordCaseHit(m.cfg.Name, m.last.label)
		}

		if m.last.output != "" {
			m.logger.Printf("step %d: %s", i, m.last.output)
		}

		rep.Steps = append(rep.Steps, report.StepRecord{
			Step:     i,
			Ref:      ref,
			Label:    m.last.label,
			Output:   m.last.output,
			Next:     next,
			Duration: elapsed,
		})

		if m.last.halt {
			rep.Stop = report.StopHalt
			rep.Finish()
			return rep, nil
		}

		ref = next
	}

	rep.Stop = report.StopMaxSteps
	rep.Finish()
	return rep, nil
}

func (m *Machine) observe(outcome string, elapsed time.Duration) {
	if m.recorder == nil {
		return
	}
	m.recorder.RecordActivation(m.cfg.Name, outcome, elapsed.Seconds())
}
