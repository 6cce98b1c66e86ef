package server

import (
	"errors"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/extract"
	"github.com/jonathan/resume-scorer/internal/logger"
	"github.com/jonathan/resume-scorer/internal/pipeline"
	"github.com/jonathan/resume-scorer/internal/server/middleware"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Form field names of the analyze endpoints
const (
	FieldResume         = "resume"
	FieldJobDescription = "job_description"
	FieldJobURL         = "job_url"
	FieldRequiredDegree = "required_degree"
	FieldJobSkills      = "job_skills"
)

// multipartMemory is the part of a multipart body held in memory; the rest spills to disk.
const multipartMemory = 1 << 20

// handleAnalyze scores an uploaded resume against a job description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)

	in, err := s.readAnalyzeRequest(w, r)
	if err != nil {
		s.failRequest(w, log, err)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), in)
	if err != nil {
		s.failRequest(w, log, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.NewAnalyzeResponse(report))
}

// handleAnalyzeStream runs the same analysis and streams pipeline progress as
// Server-Sent Events. Request errors found before the stream starts are plain JSON.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)

	in, err := s.readAnalyzeRequest(w, r)
	if err != nil {
		s.failRequest(w, log, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	analyzer := s.analyzer.WithProgress(func(e pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventProgress, e); err != nil {
			log.Debug("failed to write progress event", zap.Error(err))
		}
	})

	report, err := analyzer.Analyze(r.Context(), in)
	if err != nil {
		status := HTTPStatus(err)
		log.Warn("analysis failed", zap.Int("status", status), zap.Error(err))
		_ = sse.WriteError(status, clientMessage(status, err))
		return
	}

	if err := sse.WriteResult(types.NewAnalyzeResponse(report)); err != nil {
		log.Warn("failed to write result event", zap.Error(err))
	}
}

// readAnalyzeRequest parses and validates the multipart form and reads the
// uploaded resume into memory. The spooled upload is removed before it returns.
func (s *Server) readAnalyzeRequest(w http.ResponseWriter, r *http.Request) (pipeline.Input, error) {
	log := s.requestLogger(r)
	if subject, err := middleware.GetSubject(r); err == nil {
		log = log.With(zap.String("subject", subject))
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Input{}, tooLarge
		}
		return pipeline.Input{}, &ValidationError{Field: "form", Message: "request must be multipart/form-data", Cause: err}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(FieldResume)
	if err != nil {
		return pipeline.Input{}, &ValidationError{Field: FieldResume, Message: "no resume file provided", Cause: err}
	}
	defer file.Close()
	if header.Filename == "" {
		return pipeline.Input{}, &ValidationError{Field: FieldResume, Message: "no resume file selected"}
	}

	req := types.AnalyzeRequest{
		JobDescription: r.FormValue(FieldJobDescription),
		JobURL:         r.FormValue(FieldJobURL),
		RequiredDegree: r.FormValue(FieldRequiredDegree),
		JobSkills:      r.FormValue(FieldJobSkills),
	}
	if err := req.Validate(); err != nil {
		return pipeline.Input{}, validationError(err)
	}

	if _, err := extract.DetectFormat(header.Filename); err != nil {
		return pipeline.Input{}, err
	}

	doc, err := s.spoolDocument(log, header.Filename, file)
	if err != nil {
		return pipeline.Input{}, err
	}

	log.Debug("resume received",
		zap.String(logger.FieldFile, doc.Name),
		zap.Int("bytes", len(doc.Data)),
		zap.Bool("job_url", req.JobURL != ""),
	)

	return pipeline.Input{
		Document:       doc,
		JobDescription: req.JobDescription,
		JobURL:         req.JobURL,
		RequiredDegree: req.RequiredDegree,
		JobSkills:      req.SkillList(),
	}, nil
}

// spoolDocument writes the upload into its own temporary directory and reads it
// back. The directory is removed on every path.
func (s *Server) spoolDocument(log *zap.Logger, name string, file multipart.File) (*extract.Document, error) {
	upload, err := extract.Spool(s.cfg.Server.UploadDir, name, file, s.cfg.Extraction.MaxBytes)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := upload.Cleanup(); err != nil {
			log.Warn("failed to remove upload", zap.String(logger.FieldFile, name), zap.Error(err))
		}
	}()
	return upload.Document()
}

// failRequest logs err and writes the mapped status with a JSON error body.
func (s *Server) failRequest(w http.ResponseWriter, log *zap.Logger, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Info("request rejected", zap.Int("status", status), zap.Error(err))
	}
	s.errorResponse(w, status, clientMessage(status, err))
}

// clientMessage hides unexpected internal errors from the client.
func clientMessage(status int, err error) string {
	var readErr *extract.DocumentReadError
	if status == http.StatusInternalServerError && !errors.As(err, &readErr) {
		return "internal server error"
	}
	return err.Error()
}
