package resume

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-wizard/internal/llm"
	"github.com/jonathan/application-wizard/internal/types"
)

type fakeSmart struct {
	result *SmartResult
	err    error
	calls  int
}

func (f *fakeSmart) Parse(_ context.Context, _ string) (*SmartResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeSmart) Model() string { return "fake-model" }

type fakeLLM struct {
	text   string
	err    error
	prompt string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string) (*llm.Response, error) {
	f.prompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Text: f.text, Model: "gemini-test", FinishReason: "FinishReasonStop"}, nil
}

func (f *fakeLLM) Model() string { return "gemini-test" }
func (f *fakeLLM) Close() error  { return nil }

func TestService_Parse_Smart(t *testing.T) {
	smart := &fakeSmart{result: &SmartResult{
		Raw:          map[string]any{"contact": map[string]any{"name": "Jane"}},
		Model:        "fake-model",
		FinishReason: "STOP",
		ExcerptChars: 11,
	}}
	svc := NewService(smart, 0)

	res, err := svc.Parse(context.Background(), "resume.txt", []byte("Jane Doe CV"))
	require.NoError(t, err)

	assert.Equal(t, "Jane", types.Deref(res.Parsed.Contact.Name))
	assert.Equal(t, ModeSmart, res.Meta.Mode)
	assert.Equal(t, "fake-model", res.Meta.Model)
	assert.Equal(t, "STOP", res.Meta.FinishReason)
	assert.Equal(t, "resume.txt", res.Meta.Filename)
	assert.Equal(t, 11, res.Meta.CharactersUsed)
	require.NotNil(t, res.Meta.ExcerptChars)
	assert.Equal(t, 11, *res.Meta.ExcerptChars)
}

func TestService_Parse_FallbackOnSmartError(t *testing.T) {
	smart := &fakeSmart{err: errors.New("quota exceeded")}
	svc := NewService(smart, 0)

	res, err := svc.Parse(context.Background(), "resume.txt", []byte(sampleResume))
	require.NoError(t, err)

	assert.Equal(t, 1, smart.calls)
	assert.Equal(t, ModeFallback, res.Meta.Mode)
	assert.Equal(t, FallbackModel, res.Meta.Model)
	assert.Equal(t, FallbackFinishReason, res.Meta.FinishReason)
	assert.Nil(t, res.Meta.ExcerptChars)
	assert.False(t, res.Meta.Truncated)
	assert.Equal(t, "jane.doe@example.com", types.Deref(res.Parsed.Contact.Email))
}

func TestService_Parse_NoSmartParser(t *testing.T) {
	svc := NewService(nil, 0)
	assert.False(t, svc.SmartReady())
	assert.Empty(t, svc.Model())

	res, err := svc.Parse(context.Background(), "resume.txt", []byte(sampleResume))
	require.NoError(t, err)
	assert.Equal(t, ModeFallback, res.Meta.Mode)
}

func TestService_Parse_RejectsBeforeParsing(t *testing.T) {
	smart := &fakeSmart{}
	svc := NewService(smart, 16)

	_, err := svc.Parse(context.Background(), "resume.exe", []byte("x"))
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)

	_, err = svc.Parse(context.Background(), "resume.txt", []byte("this is longer than sixteen bytes"))
	require.ErrorAs(t, err, &uploadErr)

	_, err = svc.Parse(context.Background(), "resume.txt", []byte("   "))
	require.ErrorIs(t, err, ErrNoText)

	assert.Zero(t, smart.calls)
}

func TestLLMParser_Parse(t *testing.T) {
	client := &fakeLLM{text: `{"contact": {"name": "Jane", "zip": 96720}, "employment": [{"company": "Acme"}]}`}
	parser := NewLLMParser(client, 5)

	res, err := parser.Parse(context.Background(), "Jane Doe resume text")
	require.NoError(t, err)

	assert.Equal(t, "gemini-test", res.Model)
	assert.Equal(t, "FinishReasonStop", res.FinishReason)
	assert.Equal(t, 5, res.ExcerptChars)
	assert.True(t, res.Truncated)
	assert.Contains(t, client.prompt, `"""Jane """`)

	p := Normalize(res.Raw)
	assert.Equal(t, "96720", types.Deref(p.Contact.Zip))
	assert.Equal(t, "Acme", types.Deref(p.Employment[0].Company))
}

func TestLLMParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeLLM
	}{
		{"client error", &fakeLLM{err: errors.New("permission denied")}},
		{"schema violation", &fakeLLM{text: `{"employment": "Acme"}`}},
		{"not json", &fakeLLM{text: `I could not read this resume`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLMParser(tt.client, 0).Parse(context.Background(), "text")
			assert.Error(t, err)
		})
	}
}

func TestExcerpt(t *testing.T) {
	s, cut := Excerpt("héllo", 10)
	assert.Equal(t, "héllo", s)
	assert.False(t, cut)

	s, cut = Excerpt("héllo", 2)
	assert.Equal(t, "hé", s)
	assert.True(t, cut)
}
