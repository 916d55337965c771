package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Response is the text of a model reply with the details callers report back
// to the user.
type Response struct {
	Text         string
	Model        string
	FinishReason string
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateJSON asks the model for a JSON document and returns it with any
	// markdown fences removed.
	GenerateJSON(ctx context.Context, prompt string) (*Response, error)
	// Model returns the configured model name
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// EmptyResponseError is returned when the model produced no usable text,
// usually because the reply was blocked or truncated.
type EmptyResponseError struct {
	FinishReason string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("model returned an empty response (finish_reason=%s)", e.FinishReason)
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON generates JSON content with the configured model
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (*Response, error) {
	if c.config.Model == "" {
		return nil, fmt.Errorf("no model configured")
	}

	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(c.config.Temperature)
	if c.config.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(c.config.MaxOutputTokens)
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, finish, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:         CleanJSONBlock(text),
		Model:        c.config.Model,
		FinishReason: finish,
	}, nil
}

// Model returns the configured model name
func (c *GeminiClient) Model() string {
	return c.config.Model
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	finish := candidate.FinishReason.String()
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", finish, &EmptyResponseError{FinishReason: finish}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", finish, &EmptyResponseError{FinishReason: finish}
	}

	return text, finish, nil
}
