package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/psantana5/switchcase/internal/machine"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine.yaml>",
	Short: "Validate a machine file and list its cases",
	Long: `Validate loads a machine file and runs the same declaration checks the
runner uses (reserved or empty labels, duplicate labels, a labeled default
block) without activating anything, then lists the declared cases.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := machine.Load(args[0])
	if err != nil {
		return err
	}

	// Building the switch group exercises the declaration checks end to end
	if _, err := machine.New(cfg, nil, log.New(io.Discard, "", 0)); err != nil {
		return err
	}

	if IsJSONOutput() {
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal machine: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	hasDefault := "no"
	if cfg.Default != nil {
		hasDefault = "yes"
	}
	fmt.Printf("Machine %q: %d cases, default: %s, start: %q\n",
		cfg.Name, len(cfg.Cases), hasDefault, cfg.Start)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Label", "Output", "Next", "Halt")

	for _, cs := range cfg.Cases {
		table.Append(cs.Label, cs.Output, cs.Next, fmt.Sprintf("%t", cs.Halt))
	}
	if cfg.Default != nil {
		table.Append(machine.DefaultLabel, cfg.Default.Output, cfg.Default.Next, fmt.Sprintf("%t", cfg.Default.Halt))
	}

	if err := table.Render(); err != nil {
		return err
	}

	fmt.Println("OK")
	return nil
}
