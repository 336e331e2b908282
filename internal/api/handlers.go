package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/catalogkit/lcsh-assistant/internal/pipeline"
)

// handleRecommend runs the pipeline and returns the full result as JSON.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRecommendRequest(w, r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" && len(req.Uploads) == 0 {
		jsonError(w, "text or at least one file is required", http.StatusBadRequest)
		return
	}

	resp := s.pipeline.Run(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil || s.generator.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": s.generator.Model(),
		"stats": s.generator.Stats.Snapshot(),
	})
}

// parseRecommendRequest reads the shared form fields (api_key, text, files)
// from a multipart or urlencoded body.
func (s *Server) parseRecommendRequest(w http.ResponseWriter, r *http.Request) (pipeline.Request, error) {
	// Generous cap: per-file limit times a small batch, plus form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+1024*1024)

	var req pipeline.Request

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return req, fmt.Errorf("invalid multipart form: %w", err)
		}
		defer r.MultipartForm.RemoveAll()
	} else {
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form: %w", err)
		}
	}

	req.APIKey = r.FormValue("api_key")
	req.Text = r.FormValue("text")

	if r.MultipartForm == nil {
		return req, nil
	}

	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return req, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			return req, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			return req, fmt.Errorf("%s exceeds max size (%d bytes)", fh.Filename, s.cfg.MaxUploadBytes)
		}

		req.Uploads = append(req.Uploads, pipeline.Upload{
			Filename:  sanitizeFilename(fh.Filename),
			MediaType: fh.Header.Get("Content-Type"),
			Data:      data,
		})
	}

	return req, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
