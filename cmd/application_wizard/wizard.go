package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-wizard/internal/autofill"
	"github.com/jonathan/application-wizard/internal/config"
	"github.com/jonathan/application-wizard/internal/resume"
	"github.com/jonathan/application-wizard/internal/tui"
	"github.com/jonathan/application-wizard/internal/types"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Fill in the application in the terminal",
	Long: "Walk through every step of the employment application in the terminal and write the " +
		"resulting form state to a JSON file. With --resume, blank fields are filled from the resume first.",
	RunE: runWizard,
}

var (
	wizardOutFile    string
	wizardResumeFile string
	wizardFormFile   string
	wizardOffline    bool
)

func init() {
	wizardCmd.Flags().StringVarP(&wizardOutFile, "out", "o", "application.json", "Path to write the form state JSON")
	wizardCmd.Flags().StringVar(&wizardResumeFile, "resume", "", "Resume to autofill from")
	wizardCmd.Flags().StringVar(&wizardFormFile, "form", "", "Form state JSON to start from")
	wizardCmd.Flags().BoolVar(&wizardOffline, "offline", false, "Use the regex fallback parser only")

	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("wizard needs an interactive terminal")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	form := types.NewFormState()
	if wizardFormFile != "" {
		if form, err = readForm(wizardFormFile); err != nil {
			return err
		}
	}

	var note string
	if wizardResumeFile != "" {
		form, note, err = autofillFromFile(cfg, form)
		if err != nil {
			return err
		}
	}

	result, runErr := tui.Run(form, tui.RunOptions{Styled: true, Note: note})
	if runErr != nil && !errors.Is(runErr, tui.ErrAborted) {
		return runErr
	}

	if err := writeForm(wizardOutFile, result); err != nil {
		return err
	}
	if errors.Is(runErr, tui.ErrAborted) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wizard quit early; progress saved to %s\n", wizardOutFile)
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Application saved to %s\n", wizardOutFile)
	return nil
}

// autofillFromFile parses the --resume file and merges it into form,
// returning a note describing what was filled.
func autofillFromFile(cfg *config.Config, form types.FormState) (types.FormState, string, error) {
	info, err := os.Stat(wizardResumeFile)
	if err != nil {
		return form, "", fmt.Errorf("failed to read resume: %w", err)
	}
	filename := filepath.Base(wizardResumeFile)
	if err := resume.ValidateUpload(filename, info.Size(), cfg.MaxUploadBytes); err != nil {
		return form, "", err
	}
	data, err := os.ReadFile(wizardResumeFile)
	if err != nil {
		return form, "", fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := context.Background()
	resumes, closeLLM, err := newResumeService(ctx, cfg, wizardOffline)
	if err != nil {
		return form, "", err
	}
	defer closeLLM()

	res, err := resumes.Parse(ctx, filename, data)
	if err != nil {
		return form, "", fmt.Errorf("failed to parse resume: %w", err)
	}
	merged, filled := autofill.Report(form, &res.Parsed)
	return merged, autofillNote(filename, filled), nil
}

func autofillNote(filename string, filled []string) string {
	if len(filled) == 0 {
		return fmt.Sprintf("Nothing new to fill from %s; your answers were kept.", filename)
	}
	return fmt.Sprintf("Filled %d fields from %s:\n%s", len(filled), filename, strings.Join(filled, ", "))
}

func writeForm(path string, form types.FormState) error {
	jsonBytes, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
