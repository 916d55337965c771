// Package main provides the entry point for the application wizard backend
// and its command line tools.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jonathan/application-wizard/internal/config"
	"github.com/jonathan/application-wizard/internal/llm"
	"github.com/jonathan/application-wizard/internal/resume"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "application_wizard",
	Short: "Employment application wizard backend",
	Long: "Serves the employment application wizard API: resume parsing with autofill, " +
		"the step catalogue and delivery of submitted applications as PDF attachments.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "JSON config file overlaid on the environment")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment, applies --config and validates.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if configPath != "" {
		if err := cfg.ApplyFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newResumeService builds the resume parser. Without an API key, or when
// offline is set, only the regex fallback is used. The returned func
// releases the model client.
func newResumeService(ctx context.Context, cfg *config.Config, offline bool) (*resume.Service, func(), error) {
	if offline || !cfg.AutofillReady() {
		return resume.NewService(nil, cfg.MaxUploadBytes), func() {}, nil
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(cfg.GeminiModel), cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Printf("[llm] close: %v", err)
		}
	}
	return resume.NewService(resume.NewLLMParser(client, cfg.ExcerptChars), cfg.MaxUploadBytes), closeFn, nil
}

// isTerminal reports whether w is a terminal, so output can use colour.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
