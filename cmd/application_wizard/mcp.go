package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-wizard/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP tool server on stdio",
	Long:  "Expose parse_resume_text, merge_autofill and wizard_view as MCP tools over stdin/stdout.",
	RunE:  runMCP,
}

var mcpOffline bool

func init() {
	mcpCmd.Flags().BoolVar(&mcpOffline, "offline", false, "Use the regex fallback parser only")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resumes, closeLLM, err := newResumeService(ctx, cfg, mcpOffline)
	if err != nil {
		return err
	}
	defer closeLLM()

	return mcptools.RunStdio(ctx, mcptools.NewMCPServer(mcptools.NewService(resumes)))
}
