package machine

import (
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/psantana5/switchcase/internal/report"
	"github.com/psantana5/switchcase/pkg/metrics"
	"github.com/psantana5/switchcase/pkg/switchcase"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func alternatorConfig() *Config {
	return &Config{
		Name:     "alternator",
		Start:    "1",
		MaxSteps: 6,
		Cases: []CaseConfig{
			{Label: "1", Next: "2"},
			{Label: "2", Next: "1"},
		},
		Default: &CaseConfig{Output: "stop", Halt: true},
	}
}

func TestRunAlternatesUntilMaxSteps(t *testing.T) {
	m, err := New(alternatorConfig(), nil, quietLogger())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	rep, err := m.Run("", 0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if rep.Stop != report.StopMaxSteps {
		t.Errorf("expected stop reason %q, got %q", report.StopMaxSteps, rep.Stop)
	}
	if len(rep.Steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(rep.Steps))
	}

	// References alternate 1,2,1,2,... with each result feeding the next step
	for i, s := range rep.Steps {
		wantRef := "1"
		if i%2 == 1 {
			wantRef = "2"
		}
		if s.Ref != wantRef {
			t.Errorf("step %d: expected ref %q, got %q", i, wantRef, s.Ref)
		}
		if s.Label != s.Ref {
			t.Errorf("step %d: matched label %q should equal ref %q", i, s.Label, s.Ref)
		}
	}
}

func TestRunHaltsOnDefault(t *testing.T) {
	m, err := New(alternatorConfig(), nil, quietLogger())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	// A start outside the declared labels goes straight to the default,
	// which halts
	rep, err := m.Run("99", 0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if rep.Stop != report.StopHalt {
		t.Errorf("expected stop reason %q, got %q", report.StopHalt, rep.Stop)
	}
	if len(rep.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(rep.Steps))
	}
	if rep.Steps[0].Label != DefaultLabel {
		t.Errorf("expected the default to run, got label %q", rep.Steps[0].Label)
	}
	if rep.Steps[0].Output != "stop" {
		t.Errorf("expected default output %q, got %q", "stop", rep.Steps[0].Output)
	}
}

func TestRunHaltingCase(t *testing.T) {
	cfg := &Config{
		Name:  "numbers",
		Start: "1",
		Cases: []CaseConfig{
			{Label: "1", Output: "one", Next: "2"},
			{Label: "2", Output: "two", Next: "done", Halt: true},
		},
		Default: &CaseConfig{Output: "other", Halt: true},
	}
	m, err := New(cfg, nil, quietLogger())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	rep, err := m.Run("", 0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if rep.Stop != report.StopHalt {
		t.Errorf("expected halt, got %q", rep.Stop)
	}
	if len(rep.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(rep.Steps))
	}
	if rep.Steps[1].Next != "done" {
		t.Errorf("halting step should still record its result, got %q", rep.Steps[1].Next)
	}
}

func TestRunMissingDefaultSurfacesError(t *testing.T) {
	cfg := &Config{
		Name:  "nodefault",
		Start: "nowhere",
		Cases: []CaseConfig{{Label: "1", Next: "1"}},
	}
	m, err := New(cfg, nil, quietLogger())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	rep, err := m.Run("", 0)
	if err == nil {
		t.Fatal("expected a missing-default error")
	}
	if !errors.Is(err, switchcase.ErrMissingDefault) {
		t.Errorf("expected ErrMissingDefault, got %v", err)
	}
	if rep == nil || rep.Stop != report.StopError {
		t.Errorf("report should record the error stop, got %+v", rep)
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	m, err := New(alternatorConfig(), rec, quietLogger())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	// Two case matches (1 -> 2 -> 1) then feed an unmatched reference
	if _, err := m.Run("1", 2); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := m.Run("nope", 1); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	dump, err := rec.Dump()
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	expected := []string{
		`switchcase_activations_total{machine="alternator",outcome="match"} 2`,
		`switchcase_activations_total{machine="alternator",outcome="default"} 1`,
		`switchcase_case_hits_total{label="1",machine="alternator"} 1`,
		`switchcase_case_hits_total{label="__default__",machine="alternator"} 1`,
	}
	for _, want := range expected {
		if !strings.Contains(dump, want) {
			t.Errorf("metrics dump missing %q:\n%s", want, dump)
		}
	}
}

func TestRunLogsOutputs(t *testing.T) {
	var buf strings.Builder
	m, err := New(alternatorConfig(), nil, log.New(&buf, "[machine] ", 0))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if _, err := m.Run("oops", 0); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(buf.String(), "[machine] step 0: stop") {
		t.Errorf("default output should be logged, got %q", buf.String())
	}
}

func TestRunAppliesStepCapFallback(t *testing.T) {
	cfg := alternatorConfig()
	cfg.MaxSteps = 0

	m, err := New(cfg, nil, quietLogger())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	rep, err := m.Run("1", 0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(rep.Steps) != defaultMaxSteps {
		t.Errorf("unset step cap should fall back to %d, got %d steps", defaultMaxSteps, len(rep.Steps))
	}
}
