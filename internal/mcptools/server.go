// Package mcptools exposes resume parsing, autofill merging and the wizard
// navigator as MCP tools so assistants can fill an application form.
package mcptools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewMCPServer creates an MCP server with the wizard tools registered:
// parse_resume_text, merge_autofill and wizard_view.
func NewMCPServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "application-wizard",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_resume_text",
		Description: "Parse plain resume text into structured contact, employment, education, skills and references.",
	}, svc.ParseResumeText)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_autofill",
		Description: "Fill the blank fields of an application form from a parsed resume. Values the applicant entered are never overwritten.",
		InputSchema: optionalSchema[MergeAutofillInput](),
	}, svc.MergeAutofill)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "wizard_view",
		Description: "Describe the application wizard at a step: active step, active branch, visible steps and the review step.",
	}, svc.WizardView)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// optionalSchema infers the schema of T with every property optional, so
// partial parser output is accepted.
func optionalSchema[T any]() *jsonschema.Schema {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("mcptools: schema for %T: %v", *new(T), err))
	}
	dropRequired(s)
	return s
}

func dropRequired(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	s.Required = nil
	for _, p := range s.Properties {
		dropRequired(p)
	}
	for _, d := range s.Defs {
		dropRequired(d)
	}
	dropRequired(s.Items)
}
