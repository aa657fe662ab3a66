package report

import "time"

// StopReason says why a machine run ended
type StopReason string

const (
	StopHalt     StopReason = "halt"      // a halting case ran
	StopMaxSteps StopReason = "max_steps" // the step cap was reached
	StopError    StopReason = "error"     // an activation returned an error
)

// StepRecord is one activation of a run
type StepRecord struct {
	Step     int           `json:"step"`
	Ref      string        `json:"ref"`
	Label    string        `json:"label"` // matched case label, or the default token
	Output   string        `json:"output,omitempty"`
	Next     string        `json:"next"`
	Duration time.Duration `json:"duration_ns"`
}

// RunReport is the full trace of one machine run
type RunReport struct {
	Machine   string        `json:"machine"`
	Start     string        `json:"start"`
	Stop      StopReason    `json:"stop"`
	Steps     []StepRecord  `json:"steps"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// Finish stamps the total wall time of the run
func (r *RunReport) Finish() {
	r.Elapsed = time.Since(r.StartedAt)
}

// Hits counts how many steps ran the handler with the given label
func (r *RunReport) Hits(label string) int {
	n := 0
	for _, s := range r.Steps {
		if s.Label == label {
			n++
		}
	}
	return n
}
