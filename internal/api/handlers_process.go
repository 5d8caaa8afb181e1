package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nmodha/docvani/internal/extractor"
	"github.com/nmodha/docvani/internal/pipeline"
)

// handleProcessDocument runs the full pipeline and blocks until the
// annotated tree is ready.
func (s *Server) handleProcessDocument(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	saveStages, _ := strconv.ParseBool(r.FormValue("save_intermediate"))
	topics := parseTopics(r.FormValue("topics"))

	res, err := s.runner.Process(r.Context(), pipeline.Input{
		Filename:   filename,
		Data:       data,
		Topics:     topics,
		SaveStages: saveStages,
	})
	if err != nil {
		s.log.Error("document processing failed", "filename", filename, "error", err)
		switch {
		case errors.Is(err, extractor.ErrInvalidFormat):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, pipeline.ErrNoContent):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			jsonError(w, "error processing document: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "success",
		"message":         "Document processed successfully",
		"data":            res.Tree,
		"processing_time": res.Duration.Seconds(),
		"timestamp":       time.Now().UTC(),
	})
}

// handleProcessDocumentAsync queues the document and returns a poll URL.
func (s *Server) handleProcessDocumentAsync(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	saveStages, _ := strconv.ParseBool(r.FormValue("save_intermediate"))
	topics := parseTopics(r.FormValue("topics"))

	job := pipeline.NewJob(filename, data, topics, saveStages)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/process-document/%s/status", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleAnalyzeDocument reports the heading structure a document would
// produce, without running the pipeline.
func (s *Server) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	analysis, err := extractor.Analyze(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Error("document analysis failed", "filename", filename, "error", err)
		if errors.Is(err, extractor.ErrInvalidFormat) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "error analyzing document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"filename":  filename,
		"analysis":  analysis,
		"timestamp": time.Now().UTC(),
	})
}

// readUpload pulls the uploaded document out of a multipart request,
// enforcing the extension allow-list and the size limit.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	// Limit total request size, with headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extractor.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}

func parseTopics(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
