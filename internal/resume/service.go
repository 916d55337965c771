package resume

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/jonathan/application-wizard/internal/types"
)

// Parse modes reported in ParseMeta.Mode.
const (
	ModeSmart    = "smart"
	ModeFallback = "fallback"
)

// Values reported for the fallback parser.
const (
	FallbackModel        = "fallback-regex"
	FallbackFinishReason = "FALLBACK"
)

// Result is a parsed resume with details of how it was produced.
type Result struct {
	Parsed types.ParsedResume `json:"parsed"`
	Meta   types.ParseMeta    `json:"meta"`
}

// Service extracts and parses uploaded resumes.
type Service struct {
	smart    SmartParser
	maxBytes int64
}

// NewService creates a resume service. smart may be nil, in which case every
// resume goes through the fallback parser.
func NewService(smart SmartParser, maxBytes int64) *Service {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	return &Service{smart: smart, maxBytes: maxBytes}
}

// SmartReady reports whether a model-backed parser is configured.
func (s *Service) SmartReady() bool {
	return s.smart != nil
}

// Model returns the smart parser's model name, or "" without one.
func (s *Service) Model() string {
	if s.smart == nil {
		return ""
	}
	return s.smart.Model()
}

// MaxBytes returns the upload size limit.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Parse validates the upload, extracts its text and parses it.
// Upload problems are returned as *UploadError and unreadable files as
// ErrNoText; smart parser failures never surface because the fallback takes over.
func (s *Service) Parse(ctx context.Context, filename string, data []byte) (*Result, error) {
	if err := ValidateUpload(filename, int64(len(data)), s.maxBytes); err != nil {
		return nil, err
	}

	text, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}

	return s.ParseText(ctx, filename, text), nil
}

// ParseText parses text already extracted from a resume.
func (s *Service) ParseText(ctx context.Context, filename, text string) *Result {
	meta := types.ParseMeta{
		Filename:       filename,
		CharactersUsed: utf8.RuneCountInString(text),
	}

	if s.smart != nil {
		res, err := s.smart.Parse(ctx, text)
		if err == nil {
			excerpt := res.ExcerptChars
			meta.ExcerptChars = &excerpt
			meta.Truncated = res.Truncated
			meta.Model = res.Model
			meta.FinishReason = res.FinishReason
			meta.Mode = ModeSmart
			return &Result{Parsed: Normalize(res.Raw), Meta: meta}
		}
		log.Printf("[parse-resume] smart parser failed, using regex fallback: %v", err)
	}

	meta.Model = FallbackModel
	meta.FinishReason = FallbackFinishReason
	meta.Mode = ModeFallback
	return &Result{Parsed: NormalizeParsed(FallbackParse(text)), Meta: meta}
}
