package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nmodha/docvani/internal/store"
)

// handleListFiles lists all stored speech artifacts.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.files.List(r.Context())
	if err != nil {
		s.log.Error("file listing failed", "error", err)
		jsonError(w, "failed to list files: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if files == nil {
		files = []store.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"count":     len(files),
		"files":     files,
		"timestamp": time.Now().UTC(),
	})
}

// handleDeleteFile removes an artifact's blob and its catalog record.
func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if err := s.files.Delete(r.Context(), fileID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "file not found", http.StatusNotFound)
			return
		}
		s.log.Error("file deletion failed", "file_id", fileID, "error", err)
		jsonError(w, "failed to delete file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"message":   "File deleted successfully",
		"file_id":   fileID,
		"timestamp": time.Now().UTC(),
	})
}
