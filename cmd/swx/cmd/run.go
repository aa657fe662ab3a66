package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/switchcase/internal/machine"
	"github.com/psantana5/switchcase/internal/report"
	"github.com/psantana5/switchcase/pkg/metrics"
)

var (
	runStart       string
	runMaxSteps    int
	runQuiet       bool
	runShowMetrics bool
)

var runCmd = &cobra.Command{
	Use:   "run <machine.yaml>",
	Short: "Run a machine to completion and print its trace",
	Long: `Run loads a machine file, activates it from the starting reference and
keeps feeding each result back in as the next reference until a halting
case runs or the step cap is reached. The step trace is printed as a table
or as JSON.

Example:
  swx run examples/numbers.yaml
  swx run examples/loop.yaml --start 2 --max-steps 20
  swx run examples/numbers.yaml --output json --show-metrics`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runStart, "start", "", "starting reference (default from the machine file)")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 0, "step cap (default from the machine file or config)")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "suppress per-step output logging")
	runCmd.Flags().BoolVar(&runShowMetrics, "show-metrics", false, "print collected metrics after the run")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := machine.Load(args[0])
	if err != nil {
		return err
	}

	if runMaxSteps == 0 && cfg.MaxSteps == 0 {
		cfg.MaxSteps = viper.GetInt("max_steps")
	}

	rec := metrics.NewRecorder()

	// Step outputs go to stdout unless the trace itself is machine-readable
	var sink io.Writer = os.Stdout
	if runQuiet || IsJSONOutput() {
		sink = io.Discard
	}

	m, err := machine.New(cfg, rec, log.New(sink, "[machine] ", log.LstdFlags))
	if err != nil {
		return err
	}

	rep, err := m.Run(runStart, runMaxSteps)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		if err := report.WriteJSON(os.Stdout, rep); err != nil {
			return err
		}
	} else {
		if err := report.WriteTable(os.Stdout, rep); err != nil {
			return err
		}
	}

	if runShowMetrics {
		dump, err := rec.Dump()
		if err != nil {
			return fmt.Errorf("failed to dump metrics: %w", err)
		}
		fmt.Println()
		fmt.Print(dump)
	}

	return nil
}
