package server

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/application-wizard/internal/application"
	"github.com/jonathan/application-wizard/internal/resume"
	"github.com/jonathan/application-wizard/internal/types"
)

const submitFallbackMessage = "Internal error while submitting application."

// handleSubmitApplication accepts the review step's payload, either as raw
// JSON or as multipart with a "payload" field and an optional "resume" file.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.resumes.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	payload, upload, err := s.readSubmission(r, maxBytes)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusBadRequest, tooLargeMessage(maxBytes))
			return
		}
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err, submitFallbackMessage))
		return
	}

	if s.submissions == nil {
		s.errorResponse(w, http.StatusInternalServerError, PublicMessage(application.ErrMailNotConfigured, submitFallbackMessage))
		return
	}

	receipt, err := s.submissions.Submit(r.Context(), payload, upload)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[submit] submission failed: %v", err)
		}
		s.errorResponse(w, status, PublicMessage(err, submitFallbackMessage))
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SubmissionResponse{Status: "ok", SubmissionID: receipt.SubmissionID})
}

func (s *Server) readSubmission(r *http.Request, maxBytes int64) (*types.SubmissionPayload, *application.Upload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, nil, err
		}
		payload, err := application.DecodePayload(body)
		return payload, nil, err
	}

	if err := r.ParseMultipartForm(maxBytes + multipartOverhead); err != nil {
		return nil, nil, err
	}
	payload, err := application.DecodePayload([]byte(r.FormValue("payload")))
	if err != nil {
		return nil, nil, err
	}

	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return payload, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	if err := resume.ValidateUpload(header.Filename, header.Size, maxBytes); err != nil {
		return nil, nil, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return payload, &application.Upload{Filename: header.Filename, Data: data}, nil
}
