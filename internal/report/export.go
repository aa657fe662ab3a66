package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteJSON renders the report as indented JSON
func WriteJSON(w io.Writer, rep *RunReport) error {
	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

// WriteTable renders the step trace as a table with a one-line summary
func WriteTable(w io.Writer, rep *RunReport) error {
	fmt.Fprintf(w, "Machine %q: start=%s stop=%s steps=%d elapsed=%s\n",
		rep.Machine, rep.Start, rep.Stop, len(rep.Steps), rep.Elapsed)

	if len(rep.Steps) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Step", "Ref", "Case", "Output", "Next")

	for _, s := range rep.Steps {
		table.Append(
			fmt.Sprintf("%d", s.Step),
			s.Ref,
			s.Label,
			s.Output,
			s.Next,
		)
	}

	return table.Render()
}
