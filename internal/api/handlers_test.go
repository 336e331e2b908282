package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/catalogkit/lcsh-assistant/internal/config"
	"github.com/catalogkit/lcsh-assistant/internal/gemini"
	"github.com/catalogkit/lcsh-assistant/internal/lcsh"
	"github.com/catalogkit/lcsh-assistant/internal/pipeline"
)

type stubGenerator struct {
	response string
}

func (s *stubGenerator) Generate(ctx context.Context, apiKey string, in gemini.Input) (string, error) {
	return s.response, nil
}

type stubValidator struct{}

func (s *stubValidator) Validate(ctx context.Context, candidates []string) lcsh.Result {
	recs := make([]lcsh.Record, 0, len(candidates))
	for _, t := range candidates {
		recs = append(recs, lcsh.Record{Term: t, SimilarityScore: 0.9, ID: "sh00000000", URL: "http://id.loc.gov/x"})
	}
	return lcsh.Result{Recommendations: recs}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Load()
	gen := &stubGenerator{response: "Analysis.\nRecommended LCSH terms:\nKorea--History (verified)\n"}
	p := pipeline.New(gen, &stubValidator{}, log, "test-key", false)
	return NewServer(p, gemini.NewGenerator(""), log, cfg)
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleRecommend_TextOnly(t *testing.T) {
	srv := testServer(t)

	form := url.Values{"text": {"A history of Korean film"}, "api_key": {"user-key"}}
	req := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp pipeline.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Terms) != 1 || resp.Terms[0] != "Korea--History" {
		t.Errorf("expected extracted terms, got %v", resp.Terms)
	}
	if !strings.Contains(resp.Report, "# LCSH Recommendations") {
		t.Errorf("expected report heading, got %q", resp.Report)
	}
	if len(resp.Validation.Recommendations) != 1 {
		t.Errorf("expected one validation record, got %v", resp.Validation)
	}
}

func TestHandleRecommend_MultipartWithFile(t *testing.T) {
	srv := testServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("api_key", "user-key")

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="files"; filename="notes.txt"`)
	hdr.Set("Content-Type", "text/plain")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write([]byte("Title: Korean cinema after 1990"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/recommend", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp pipeline.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", resp.Warnings)
	}
	if resp.Narrative == "" {
		t.Error("expected narrative in response")
	}
}

func TestHandleRecommend_NoInput(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "required") {
		t.Errorf("expected validation message, got %s", rec.Body.String())
	}
}

func TestHandleLLMStats(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/llm", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Model string          `json:"model"`
		Stats gemini.Snapshot `json:"stats"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Model != gemini.DefaultModel {
		t.Errorf("expected model %q, got %q", gemini.DefaultModel, body.Model)
	}
}

func TestHandleIndex_RendersForm(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"LCSH Assistant", `name="api_key"`, `name="text"`, `name="files"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestHandleForm_RendersReportHTML(t *testing.T) {
	srv := testServer(t)

	form := url.Values{"text": {"A history of Korean film"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "LCSH Recommendations") {
		t.Errorf("expected rendered report heading, got %s", body)
	}
}
