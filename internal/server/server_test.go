package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-wizard/internal/application"
	"github.com/jonathan/application-wizard/internal/resume"
	"github.com/jonathan/application-wizard/internal/server/ratelimit"
	"github.com/jonathan/application-wizard/internal/types"
)

type fakeSubmitter struct {
	err      error
	payloads []*types.SubmissionPayload
	uploads  []*application.Upload
}

func (f *fakeSubmitter) Submit(_ context.Context, p *types.SubmissionPayload, u *application.Upload) (*application.Receipt, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.payloads = append(f.payloads, p)
	f.uploads = append(f.uploads, u)
	return &application.Receipt{SubmissionID: "sub-123"}, nil
}

const testOrigin = "http://localhost:5173"

func newTestServer(t *testing.T, submitter Submitter, maxBytes int64) *Server {
	t.Helper()
	s, err := New(Config{
		AllowedOrigins: []string{testOrigin},
		PDFEngine:      "html",
		MailReady:      true,
		RateLimit:      &ratelimit.Config{Enabled: false},
	}, resume.NewService(nil, maxBytes), submitter)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type part struct {
	field, filename, content string
}

func multipartRequest(t *testing.T, path string, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.filename == "" {
			require.NoError(t, mw.WriteField(p.field, p.content))
			continue
		}
		fw, err := mw.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(p.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestNew_RequiresParser(t *testing.T) {
	_, err := New(Config{}, nil, nil)
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &fakeSubmitter{}, 0)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["autofill_ready"])
	assert.Equal(t, resume.FallbackModel, resp["model"])
	assert.Equal(t, true, resp["smtp_ready"])
	assert.Equal(t, "html", resp["pdf_engine"])
}

func TestHandleParseResume(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name: "no file",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/parse-resume", part{field: "other", content: "x"})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "No file provided.",
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/parse-resume", strings.NewReader("{}"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "No file provided.",
		},
		{
			name: "unsupported type",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/parse-resume", part{"file", "setup.exe", "MZ"})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Unsupported file type: .exe. Please upload PDF, DOC, DOCX, or TXT.",
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/parse-resume", part{"file", "cv.txt", strings.Repeat("a", 3000)})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "File is too large",
		},
		{
			name: "no text",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/parse-resume", part{"file", "cv.txt", "   \n "})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Could not extract text from resume.",
		},
		{
			name: "corrupt docx",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/parse-resume", part{"file", "cv.docx", "not a zip"})
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal error while processing resume.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, 2048)

			w := serve(s, tt.req(t))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, decode(t, w)["error"], tt.wantError)
		})
	}
}

func TestHandleParseResume_Fallback(t *testing.T) {
	s := newTestServer(t, nil, 0)
	text := "Jane Doe\njane@example.com\n(808) 555-0100\nHilo, HI 96720\n"

	w := serve(s, multipartRequest(t, "/api/parse-resume", part{"file", "jane.txt", text}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result resume.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Parsed.Contact)
	assert.Equal(t, "jane@example.com", types.Deref(result.Parsed.Contact.Email))
	assert.Equal(t, resume.ModeFallback, result.Meta.Mode)
	assert.Equal(t, "jane.txt", result.Meta.Filename)
	assert.Nil(t, result.Meta.ExcerptChars)
}

func TestHandleAutofill(t *testing.T) {
	s := newTestServer(t, nil, 0)
	body := `{
		"form": {"email": "a@b.com", "employment": [{"company": "Acme"}, {}, {}]},
		"parsed": {
			"contact": {"name": "Jane", "email": "other@x.com"},
			"employment": [{"company": "Other"}, {"company": "NewCo"}]
		}
	}`

	w := serve(s, httptest.NewRequest(http.MethodPost, "/api/autofill", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Form   map[string]any `json:"form"`
		Filled []string       `json:"filled"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jane", resp.Form["name"])
	assert.Equal(t, "a@b.com", resp.Form["email"])
	employment := resp.Form["employment"].([]any)
	require.Len(t, employment, 3)
	assert.Equal(t, "Acme", employment[0].(map[string]any)["company"])
	assert.Equal(t, "NewCo", employment[1].(map[string]any)["company"])
	assert.Equal(t, []string{"name", "employment[1].company"}, resp.Filled)
}

func TestHandleAutofill_Errors(t *testing.T) {
	s := newTestServer(t, nil, 0)

	w := serve(s, httptest.NewRequest(http.MethodPost, "/api/autofill", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(s, httptest.NewRequest(http.MethodPost, "/api/autofill", strings.NewReader(`{"form": {}}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "parsed is required", decode(t, w)["error"])
}

func TestHandleAutofill_NoFormStartsBlank(t *testing.T) {
	s := newTestServer(t, nil, 0)

	w := serve(s, httptest.NewRequest(http.MethodPost, "/api/autofill", strings.NewReader(`{"parsed": {"targetRole": "Driller"}}`)))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Driller", resp["form"].(map[string]any)["position"])
	assert.Equal(t, []any{"position"}, resp["filled"])
}

func TestHandleAutofill_MalformedSectionsMergeNothing(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantExtra map[string]any
	}{
		{
			name:      "numeric typing speed",
			body:      `{"parsed":{"contact":{"name":"Jane Doe"},"skills":{"typingSpeed":60}}}`,
			wantExtra: map[string]any{"typingSpeed": "60"},
		},
		{
			name: "employment object",
			body: `{"parsed":{"contact":{"name":"Jane Doe"},"employment":{"company":"Acme"}}}`,
		},
		{
			name: "education string",
			body: `{"parsed":{"contact":{"name":"Jane Doe"},"education":"none"}}`,
		},
	}

	s := newTestServer(t, nil, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(s, httptest.NewRequest(http.MethodPost, "/api/autofill", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			resp := decode(t, w)
			form := resp["form"].(map[string]any)
			assert.Equal(t, "Jane Doe", form["name"])
			assert.Contains(t, resp["filled"], "name")
			assert.NotContains(t, resp["filled"], "employment[0].company")
			for k, v := range tt.wantExtra {
				assert.Equal(t, v, form[k])
			}
		})
	}
}

func TestHandleWizard(t *testing.T) {
	s := newTestServer(t, nil, 0)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/api/wizard", nil))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Len(t, resp["steps"], 16)
	assert.Len(t, resp["branches"], 4)
	assert.Equal(t, "review", resp["reviewId"])
	assert.NotContains(t, resp, "view")

	w = serve(s, httptest.NewRequest(http.MethodGet, "/api/wizard?index=12&direction=back", nil))
	require.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)["view"].(map[string]any)
	assert.Equal(t, float64(13), view["current"], "current is one-based")
	assert.Equal(t, "back", view["state"].(map[string]any)["direction"])
	assert.Len(t, view["steps"], 3)

	w = serve(s, httptest.NewRequest(http.MethodGet, "/api/wizard?index=99", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(16), decode(t, w)["view"].(map[string]any)["current"])

	w = serve(s, httptest.NewRequest(http.MethodGet, "/api/wizard?index=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

const submitBody = `{"form": {"name": "Jane Doe", "position": "Driller"}, "legalText": {}, "submittedAt": "2026-01-05T10:00:00Z"}`

func TestHandleSubmitApplication_JSON(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newTestServer(t, sub, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/submit-application", strings.NewReader(submitBody))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "sub-123", resp["submission_id"])
	require.Len(t, sub.payloads, 1)
	assert.Equal(t, "Jane Doe", sub.payloads[0].Form.String("name"))
	assert.Nil(t, sub.uploads[0])
}

func TestHandleSubmitApplication_Multipart(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newTestServer(t, sub, 0)

	w := serve(s, multipartRequest(t, "/api/submit-application",
		part{field: "payload", content: submitBody},
		part{"resume", "cv.txt", "Jane Doe\nDriller"},
	))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, sub.uploads, 1)
	require.NotNil(t, sub.uploads[0])
	assert.Equal(t, "cv.txt", sub.uploads[0].Filename)
	assert.Equal(t, "Jane Doe\nDriller", string(sub.uploads[0].Data))
}

func TestHandleSubmitApplication_Errors(t *testing.T) {
	tests := []struct {
		name       string
		submitter  Submitter
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name:      "invalid json",
			submitter: &fakeSubmitter{},
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/submit-application", strings.NewReader("not json"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid payload.",
		},
		{
			name:      "missing form",
			submitter: &fakeSubmitter{},
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/submit-application", strings.NewReader(`{"legalText": {}}`))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid payload.",
		},
		{
			name:      "unsupported resume",
			submitter: &fakeSubmitter{},
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/submit-application",
					part{field: "payload", content: submitBody},
					part{"resume", "cv.exe", "MZ"})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Unsupported file type: .exe",
		},
		{
			name:      "mail not configured",
			submitter: &fakeSubmitter{err: application.ErrMailNotConfigured},
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/submit-application", strings.NewReader(submitBody))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "SMTP_HOST is not configured on the server.",
		},
		{
			name:      "no submitter",
			submitter: nil,
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/submit-application", strings.NewReader(submitBody))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "SMTP_HOST is not configured on the server.",
		},
		{
			name:      "delivery failure hidden",
			submitter: &fakeSubmitter{err: &application.DeliveryError{SubmissionID: "x", Cause: errors.New("535 5.7.8 bad credentials")}},
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/submit-application", strings.NewReader(submitBody))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal error while submitting application.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.submitter, 0)

			w := serve(s, tt.req(t))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, decode(t, w)["error"], tt.wantError)
		})
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", testOrigin)
	w := serve(s, req)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(s, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/submit-application", nil)
	req.Header.Set("Origin", testOrigin)
	w = serve(s, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRateLimit(t *testing.T) {
	s, err := New(Config{
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/api/autofill", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			},
		},
	}, resume.NewService(nil, 0), nil)
	require.NoError(t, err)
	defer s.Close()

	post := func() *httptest.ResponseRecorder {
		return serve(s, httptest.NewRequest(http.MethodPost, "/api/autofill", strings.NewReader(`{"parsed": {}}`)))
	}
	assert.Equal(t, http.StatusOK, post().Code)
	assert.Equal(t, http.StatusOK, post().Code)

	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(s, httptest.NewRequest(http.MethodGet, "/api/health", nil)).Code)
	}
}
