package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-wizard/internal/tui"
	"github.com/jonathan/application-wizard/internal/wizard"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Print the wizard progress indicator",
	Long:  "Print the branch row, the visible steps and the review pill of the wizard at a step index.",
	RunE:  runSteps,
}

var (
	stepsIndex int
	stepsStep  string
	stepsJSON  bool
)

func init() {
	stepsCmd.Flags().IntVar(&stepsIndex, "index", 0, "0-based active step index (clamped to the catalogue)")
	stepsCmd.Flags().StringVar(&stepsStep, "step", "", "Active step id; overrides --index")
	stepsCmd.Flags().BoolVar(&stepsJSON, "json", false, "Print the navigator view as JSON")

	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, _ []string) error {
	nav, err := wizard.Restore(wizard.DefaultCatalogue(), wizard.State{ActiveIndex: stepsIndex})
	if err != nil {
		return err
	}
	if stepsStep != "" && !nav.GoToStep(stepsStep) {
		return fmt.Errorf("unknown step %q", stepsStep)
	}

	out := cmd.OutOrStdout()
	view := nav.Snapshot()
	if stepsJSON {
		jsonBytes, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	_, _ = fmt.Fprintln(out, tui.RenderProgress(view, isTerminal(out)))
	return nil
}
