package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/application-wizard/internal/autofill"
	"github.com/jonathan/application-wizard/internal/resume"
	"github.com/jonathan/application-wizard/internal/types"
	"github.com/jonathan/application-wizard/internal/wizard"
)

// multipartOverhead is allowed on top of the file limit for form boundaries
// and the other parts of a request.
const multipartOverhead = 1 << 20

// HealthResponse represents the response for /api/health
type HealthResponse struct {
	Status        string `json:"status"`
	AutofillReady bool   `json:"autofill_ready"`
	Model         string `json:"model"`
	SMTPReady     bool   `json:"smtp_ready"`
	PDFEngine     string `json:"pdf_engine,omitempty"`
}

// WizardResponse represents the response for /api/wizard
type WizardResponse struct {
	wizard.Catalogue
	View *wizard.View `json:"view,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	model := s.resumes.Model()
	if model == "" {
		model = resume.FallbackModel
	}
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		AutofillReady: s.resumes.SmartReady(),
		Model:         model,
		SMTPReady:     s.mailReady,
		PDFEngine:     s.pdfEngine,
	})
}

// handleParseResume extracts structured data from an uploaded resume
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.resumes.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(maxBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusBadRequest, tooLargeMessage(maxBytes))
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "No file provided.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	if err := resume.ValidateUpload(header.Filename, header.Size, maxBytes); err != nil {
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err, ""))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[parse-resume] failed to read upload %q: %v", header.Filename, err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal error while processing resume.")
		return
	}

	result, err := s.resumes.Parse(r.Context(), header.Filename, data)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[parse-resume] failed to parse %q: %v", header.Filename, err)
		}
		s.errorResponse(w, status, PublicMessage(err, "Internal error while processing resume."))
		return
	}

	log.Printf("[parse-resume] %q parsed in %s mode (%d chars, model %s)",
		header.Filename, result.Meta.Mode, result.Meta.CharactersUsed, result.Meta.Model)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAutofill merges a parsed resume into a form without overwriting
// anything already entered.
func (s *Server) handleAutofill(w http.ResponseWriter, r *http.Request) {
	var req types.AutofillRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, multipartOverhead)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.validationError(w, &ErrValidation{Field: "parsed", Message: "parsed is required"})
		return
	}

	form := types.NewFormState()
	if req.Form != nil {
		form = *req.Form
	}
	parsed := resume.Normalize(req.Parsed)
	merged, filled := autofill.Report(form, &parsed)
	if filled == nil {
		filled = []string{}
	}
	s.jsonResponse(w, http.StatusOK, types.AutofillResponse{Form: merged, Filled: filled})
}

// handleWizard returns the step catalogue and, with ?index=N, the progress
// indicator for that step. Out-of-range indexes are clamped.
func (s *Server) handleWizard(w http.ResponseWriter, r *http.Request) {
	resp := WizardResponse{Catalogue: s.catalogue}

	if raw := r.URL.Query().Get("index"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil {
			s.validationError(w, &ErrValidation{Field: "index", Message: fmt.Sprintf("index must be an integer, got %q", raw)})
			return
		}
		direction := wizard.Forward
		if r.URL.Query().Get("direction") == string(wizard.Back) {
			direction = wizard.Back
		}

		nav, err := wizard.Restore(s.catalogue, wizard.State{ActiveIndex: index, Direction: direction})
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Internal error while loading wizard.")
			return
		}
		view := nav.Snapshot()
		resp.View = &view
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) validationError(w http.ResponseWriter, err *ErrValidation) {
	s.errorResponse(w, HTTPStatus(err), PublicMessage(err, err.Error()))
}

func tooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("File is too large. Max allowed is %s MB.",
		strconv.FormatFloat(float64(maxBytes)/(1024*1024), 'f', -1, 64))
}
