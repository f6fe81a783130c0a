package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/nao1215/slareport/internal/ingest"
	"github.com/nao1215/slareport/internal/model"
	"github.com/nao1215/slareport/internal/report"
	"github.com/nao1215/slareport/internal/sla"
)

// Form field names of the upload form.
const (
	fieldFile  = "file"
	fieldDate  = "filter_date"
	fieldSheet = "sheet"
)

//go:embed templates/upload.html.tmpl
var templateFS embed.FS

var uploadTemplate = template.Must(template.ParseFS(templateFS, "templates/upload.html.tmpl"))

// uploadView is the data of the upload form.
type uploadView struct {
	Error       string
	Date        string
	Sheet       string
	MaxUploadMB int64
}

// handleIndex renders the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderForm(w, http.StatusOK, uploadView{})
}

// handleReport reads the uploaded export and renders the report.
//
// The date is checked before the file is parsed so that a typo in the
// date is reported as such even when the file is also broken.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadSize {
		s.fail(w, http.StatusRequestEntityTooLarge, outcomeTooLarge, uploadView{Error: "file is too large"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, http.StatusRequestEntityTooLarge, outcomeTooLarge, uploadView{
				Error: "file is too large",
			})
			return
		}
		s.fail(w, http.StatusBadRequest, outcomeBadRequest, uploadView{Error: "invalid upload"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	view := uploadView{
		Date:  r.FormValue(fieldDate),
		Sheet: r.FormValue(fieldSheet),
	}

	if _, err := sla.ParseTargetDate(view.Date); err != nil {
		view.Error = sla.ErrInvalidDate.Error()
		s.fail(w, http.StatusBadRequest, outcomeBadRequest, view)
		return
	}

	file, header, err := r.FormFile(fieldFile)
	if err != nil {
		view.Error = "no file uploaded"
		s.fail(w, http.StatusBadRequest, outcomeBadRequest, view)
		return
	}
	defer file.Close()

	table, err := ingest.Read(file, header.Filename, view.Sheet)
	if err != nil {
		s.logger.Warn("failed to read upload", "file", header.Filename, "error", err)
		view.Error = err.Error()
		s.fail(w, http.StatusUnprocessableEntity, outcomeUnprocessable, view)
		return
	}

	result, err := s.engine.GenerateReportFromTable(r.Context(), table, view.Date)
	switch {
	case err == nil:
	case errors.Is(err, ingest.ErrMissingColumn):
		view.Error = err.Error()
		s.fail(w, http.StatusUnprocessableEntity, outcomeUnprocessable, view)
		return
	case errors.Is(err, sla.ErrInvalidDate):
		view.Error = sla.ErrInvalidDate.Error()
		s.fail(w, http.StatusBadRequest, outcomeBadRequest, view)
		return
	default:
		s.logger.Error("failed to generate report", "file", header.Filename, "error", err)
		view.Error = "failed to generate report"
		s.fail(w, http.StatusInternalServerError, outcomeError, view)
		return
	}

	s.metrics.observeReport(outcomeOK, result)
	s.writeResult(w, r, result)
}

// writeResult renders result in the format asked for by the "format"
// query parameter: html (default), json or markdown.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, result *model.ReportResult) {
	var (
		buf         bytes.Buffer
		writer      report.Writer
		contentType string
	)

	switch r.URL.Query().Get("format") {
	case "json":
		writer = report.NewJSONWriter(&buf, report.WithPrettyPrint())
		contentType = "application/json"
	case "markdown":
		writer = report.NewMarkdownWriter(&buf)
		contentType = "text/markdown; charset=utf-8"
	default:
		writer = report.NewHTMLWriter(&buf, report.WithBackLink("/"))
		contentType = "text/html; charset=utf-8"
	}

	if _, err := writer.Write(result); err != nil {
		s.logger.Error("failed to render report", "error", err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// fail counts a failed report request and renders the form with an error.
func (s *Server) fail(w http.ResponseWriter, status int, outcome string, view uploadView) {
	s.metrics.observeReport(outcome, nil)
	s.renderForm(w, status, view)
}

// renderForm renders the upload form with status.
func (s *Server) renderForm(w http.ResponseWriter, status int, view uploadView) {
	view.MaxUploadMB = s.maxUploadSize >> 20

	var buf bytes.Buffer
	if err := uploadTemplate.Execute(&buf, view); err != nil {
		s.logger.Error("failed to render form", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
