package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-wizard/internal/autofill"
	"github.com/jonathan/application-wizard/internal/observability"
	"github.com/jonathan/application-wizard/internal/resume"
	"github.com/jonathan/application-wizard/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a resume into structured JSON",
	Long: "Parse a .pdf, .docx, .doc or .txt resume and print the parsed JSON. " +
		"With --form, merge the result into an existing form and print the form and the fields autofill filled.",
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var (
	parseFormFile string
	parseOffline  bool
	parseVerbose  bool
)

func init() {
	parseCmd.Flags().StringVar(&parseFormFile, "form", "", "Form state JSON to merge the parsed resume into")
	parseCmd.Flags().BoolVar(&parseOffline, "offline", false, "Use the regex fallback parser only")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	rootCmd.AddCommand(parseCmd)
}

// mergeOutput is printed by parse --form.
type mergeOutput struct {
	Form   types.FormState `json:"form"`
	Filled []string        `json:"filled"`
	Meta   types.ParseMeta `json:"meta"`
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Reject bad files before anything talks to the model.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	filename := filepath.Base(path)
	if err := resume.ValidateUpload(filename, info.Size(), cfg.MaxUploadBytes); err != nil {
		return err
	}

	var form types.FormState
	if parseFormFile != "" {
		if form, err = readForm(parseFormFile); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := context.Background()
	resumes, closeLLM, err := newResumeService(ctx, cfg, parseOffline)
	if err != nil {
		return err
	}
	defer closeLLM()

	res, err := resumes.Parse(ctx, filename, data)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	var printer *observability.Printer
	if parseVerbose {
		printer = observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintParsedResume(&res.Parsed, res.Meta)
	}

	var out any = res
	if parseFormFile != "" {
		merged, filled := autofill.Report(form, &res.Parsed)
		if filled == nil {
			filled = []string{}
		}
		if printer != nil {
			printer.PrintAutofill(filled)
		}
		out = mergeOutput{Form: merged, Filled: filled, Meta: res.Meta}
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}

// readForm loads a form state JSON file, padded like a fresh form.
func readForm(path string) (types.FormState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.FormState{}, fmt.Errorf("failed to read form file: %w", err)
	}
	form := types.NewFormState()
	var loaded types.FormState
	if err := json.Unmarshal(data, &loaded); err != nil {
		return types.FormState{}, fmt.Errorf("failed to parse form file: %w", err)
	}
	for k, v := range loaded.Fields {
		form.Fields[k] = v
	}
	copy(form.Employment, loaded.Employment)
	copy(form.References, loaded.References)
	return form, nil
}
