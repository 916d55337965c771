package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/jonathan/application-wizard/internal/llm"
	"github.com/jonathan/application-wizard/internal/prompts"
	"github.com/jonathan/application-wizard/internal/schemas"
	schemafiles "github.com/jonathan/application-wizard/schemas"
)

// DefaultExcerptChars is how much resume text is sent to the model.
const DefaultExcerptChars = 20000

// SmartResult is the raw output of a model-backed parse.
type SmartResult struct {
	Raw          map[string]any
	Model        string
	FinishReason string
	ExcerptChars int
	Truncated    bool
}

// SmartParser reads resume text with a generative model.
type SmartParser interface {
	Parse(ctx context.Context, text string) (*SmartResult, error)
	Model() string
}

// LLMParser is the SmartParser backed by an llm.Client.
type LLMParser struct {
	client       llm.Client
	excerptChars int
}

// NewLLMParser returns a parser sending at most excerptChars characters of
// resume text; excerptChars <= 0 uses DefaultExcerptChars.
func NewLLMParser(client llm.Client, excerptChars int) *LLMParser {
	if excerptChars <= 0 {
		excerptChars = DefaultExcerptChars
	}
	return &LLMParser{client: client, excerptChars: excerptChars}
}

// Model returns the model name used for parsing.
func (p *LLMParser) Model() string {
	return p.client.Model()
}

// Parse sends an excerpt of text to the model and validates the reply
// against the parsed resume schema.
func (p *LLMParser) Parse(ctx context.Context, text string) (*SmartResult, error) {
	excerpt, truncated := Excerpt(text, p.excerptChars)

	prompt, err := prompts.ResumePrompt(excerpt)
	if err != nil {
		return nil, fmt.Errorf("failed to build resume prompt: %w", err)
	}

	resp, err := p.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate parsed resume: %w", err)
	}

	if err := schemas.ValidateDocument(schemafiles.ParsedResume, []byte(resp.Text)); err != nil {
		return nil, fmt.Errorf("model output rejected (finish_reason=%s): %w", resp.FinishReason, err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(resp.Text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from model output: %w", err)
	}

	return &SmartResult{
		Raw:          raw,
		Model:        resp.Model,
		FinishReason: resp.FinishReason,
		ExcerptChars: utf8.RuneCountInString(excerpt),
		Truncated:    truncated,
	}, nil
}

// Excerpt returns at most n characters of text and whether any were cut.
func Excerpt(text string, n int) (string, bool) {
	if utf8.RuneCountInString(text) <= n {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:n]), true
}
