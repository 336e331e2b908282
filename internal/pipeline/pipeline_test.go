package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/catalogkit/lcsh-assistant/internal/gemini"
	"github.com/catalogkit/lcsh-assistant/internal/lcsh"
)

type fakeGenerator struct {
	response string
	err      error
	lastIn   gemini.Input
	lastKey  string
}

func (f *fakeGenerator) Generate(ctx context.Context, apiKey string, in gemini.Input) (string, error) {
	f.lastKey = apiKey
	f.lastIn = in
	return f.response, f.err
}

type fakeValidator struct {
	result    lcsh.Result
	lastTerms []string
}

func (f *fakeValidator) Validate(ctx context.Context, candidates []string) lcsh.Result {
	f.lastTerms = candidates
	return f.result
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okValidator() *fakeValidator {
	return &fakeValidator{result: lcsh.Result{
		Recommendations: []lcsh.Record{
			{Term: "Korea--History", SimilarityScore: 0.95, ID: "sh85073030", URL: "http://id.loc.gov/authorities/subjects/sh85073030"},
		},
	}}
}

func TestRun_TextOnlyHappyPath(t *testing.T) {
	gen := &fakeGenerator{response: "Analysis.\nRecommended LCSH terms:\nKorea--History (verified)\n"}
	val := okValidator()
	p := New(gen, val, discardLogger(), "default-key", false)

	resp := p.Run(context.Background(), Request{APIKey: "user-key", Text: "A history of Korea"})

	if gen.lastKey != "user-key" {
		t.Errorf("expected per-request key to win, got %q", gen.lastKey)
	}
	if gen.lastIn.Text != "A history of Korea" {
		t.Errorf("expected text forwarded, got %q", gen.lastIn.Text)
	}
	if len(val.lastTerms) != 1 || val.lastTerms[0] != "Korea--History" {
		t.Errorf("expected extracted term submitted for validation, got %v", val.lastTerms)
	}
	if !strings.Contains(resp.Report, "# LCSH Recommendations") {
		t.Errorf("expected report heading, got %q", resp.Report)
	}
	if !strings.Contains(resp.Report, "✓ Verified") {
		t.Errorf("expected verified badge in report, got %q", resp.Report)
	}
	if resp.Narrative == "" {
		t.Error("expected narrative in response")
	}
}

func TestRun_DefaultKeyUsedWhenRequestKeyEmpty(t *testing.T) {
	gen := &fakeGenerator{response: "Recommended LCSH terms:\nKorea--History\n"}
	p := New(gen, okValidator(), discardLogger(), "default-key", false)

	p.Run(context.Background(), Request{Text: "anything"})
	if gen.lastKey != "default-key" {
		t.Errorf("expected default key fallback, got %q", gen.lastKey)
	}
}

func TestRun_NoInput(t *testing.T) {
	gen := &fakeGenerator{response: "unused"}
	p := New(gen, okValidator(), discardLogger(), "", false)

	resp := p.Run(context.Background(), Request{})
	if resp.Report != NoInputMessage {
		t.Errorf("expected no-input message, got %q", resp.Report)
	}
	if gen.lastIn.Text != "" || gen.lastIn.Image != nil {
		t.Error("expected generator not to be called")
	}
}

func TestRun_GenerationFailureIsDisplayable(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	p := New(gen, okValidator(), discardLogger(), "key", false)

	resp := p.Run(context.Background(), Request{Text: "some input"})
	if !strings.HasPrefix(resp.Report, "Error generating recommendations:") {
		t.Errorf("expected displayable error string, got %q", resp.Report)
	}
	if !strings.Contains(resp.Report, "quota exceeded") {
		t.Errorf("expected cause in report, got %q", resp.Report)
	}
}

func TestRun_UnsupportedUploadWarnsAndContinues(t *testing.T) {
	gen := &fakeGenerator{response: "Recommended LCSH terms:\nKorea--History\n"}
	p := New(gen, okValidator(), discardLogger(), "key", false)

	resp := p.Run(context.Background(), Request{
		Uploads: []Upload{
			{Filename: "archive.zip", MediaType: "application/zip", Data: []byte("zip")},
			{Filename: "notes.txt", MediaType: "text/plain", Data: []byte("A history of Korea")},
		},
	})

	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "unsupported file type") {
		t.Errorf("expected one unsupported-type warning, got %v", resp.Warnings)
	}
	if !strings.Contains(gen.lastIn.Text, "--- File: notes.txt ---") {
		t.Errorf("expected supported sibling still processed, got %q", gen.lastIn.Text)
	}
}

func TestRun_TextAndFilesCombined(t *testing.T) {
	gen := &fakeGenerator{response: "Recommended LCSH terms:\nKorea--History\n"}
	p := New(gen, okValidator(), discardLogger(), "key", false)

	p.Run(context.Background(), Request{
		Text: "pasted notes",
		Uploads: []Upload{
			{Filename: "a.txt", MediaType: "text/plain", Data: []byte("file text")},
		},
	})

	if !strings.Contains(gen.lastIn.Text, "pasted notes") {
		t.Errorf("expected pasted text included, got %q", gen.lastIn.Text)
	}
	if !strings.Contains(gen.lastIn.Text, "--- File: a.txt ---\nfile text") {
		t.Errorf("expected file section included, got %q", gen.lastIn.Text)
	}
}

func TestRun_ValidationErrorRendersAPIError(t *testing.T) {
	gen := &fakeGenerator{response: "Recommended LCSH terms:\nKorea--History\n"}
	val := &fakeValidator{result: lcsh.Result{Error: "connection refused", Recommendations: []lcsh.Record{}}}
	p := New(gen, val, discardLogger(), "key", false)

	resp := p.Run(context.Background(), Request{Text: "some input"})
	if !strings.Contains(resp.Report, "API Error: connection refused") {
		t.Errorf("expected API Error line in report, got %q", resp.Report)
	}
}
