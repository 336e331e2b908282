// Package pipeline runs the single-shot recommendation flow: load uploads,
// aggregate, generate, extract candidate terms, validate against the LCSH
// service, and assemble the displayable report.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/catalogkit/lcsh-assistant/internal/gemini"
	"github.com/catalogkit/lcsh-assistant/internal/lcsh"
	"github.com/catalogkit/lcsh-assistant/internal/loader"
	"github.com/catalogkit/lcsh-assistant/internal/report"
	"github.com/catalogkit/lcsh-assistant/internal/terms"
)

// NoInputMessage is the displayable error when a request carries neither
// text nor a usable file.
const NoInputMessage = "Error: No input provided. Please provide text or an image."

// Upload is one file submitted with a request.
type Upload struct {
	Filename  string
	MediaType string
	Data      []byte
}

// Request is the per-invocation input. The API key is used for this request
// only and never stored.
type Request struct {
	APIKey  string
	Text    string
	Uploads []Upload
}

// Response carries everything the presentation layer needs. Report is always
// a displayable string, even when generation failed.
type Response struct {
	Report     string      `json:"report"`
	Narrative  string      `json:"narrative,omitempty"`
	Terms      []string    `json:"terms,omitempty"`
	Validation lcsh.Result `json:"validation"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// Generator produces the model narrative for combined input.
type Generator interface {
	Generate(ctx context.Context, apiKey string, in gemini.Input) (string, error)
}

// Validator scores candidate terms against the authority service.
type Validator interface {
	Validate(ctx context.Context, candidates []string) lcsh.Result
}

// Pipeline is stateless across invocations; every Run builds its own
// request-scoped inputs.
type Pipeline struct {
	defaultAPIKey string
	pdfFallback   bool
	generator     Generator
	validator     Validator
	log           *slog.Logger
}

func New(generator Generator, validator Validator, log *slog.Logger, defaultAPIKey string, pdfFallback bool) *Pipeline {
	return &Pipeline{
		defaultAPIKey: defaultAPIKey,
		pdfFallback:   pdfFallback,
		generator:     generator,
		validator:     validator,
		log:           log,
	}
}

// Run executes the full flow for one request.
func (p *Pipeline) Run(ctx context.Context, req Request) Response {
	docs, warnings := p.loadUploads(req.Uploads)
	combined, image := loader.Combine(docs)

	text := req.Text
	if combined != "" {
		if text != "" {
			text += "\n\n" + combined
		} else {
			text = combined
		}
	}

	if text == "" && image == nil {
		return Response{
			Report:     NoInputMessage,
			Validation: lcsh.Result{Error: "no terms to validate", Recommendations: []lcsh.Record{}},
			Warnings:   warnings,
		}
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = p.defaultAPIKey
	}

	narrative, err := p.generator.Generate(ctx, apiKey, gemini.Input{Text: text, Image: image})
	if err != nil {
		p.log.Warn("generation failed", "error", err)
		return Response{
			Report:     fmt.Sprintf("Error generating recommendations: %v", err),
			Validation: lcsh.Result{Error: "no terms to validate", Recommendations: []lcsh.Record{}},
			Warnings:   warnings,
		}
	}

	candidates := terms.Extract(narrative)
	p.log.Info("candidate terms extracted", "count", len(candidates))

	validation := p.validator.Validate(ctx, candidates)
	if validation.Error != "" {
		p.log.Warn("term validation failed", "error", validation.Error)
	}

	return Response{
		Report:     report.BuildReport(narrative, report.FormatValidation(validation)),
		Narrative:  narrative,
		Terms:      candidates,
		Validation: validation,
		Warnings:   warnings,
	}
}

// loadUploads extracts every upload, collecting a warning per file that
// cannot be processed so siblings still go through.
func (p *Pipeline) loadUploads(uploads []Upload) ([]loader.Document, []string) {
	var docs []loader.Document
	var warnings []string

	for _, up := range uploads {
		ex, err := loader.ForType(up.MediaType, up.Filename)
		if err != nil {
			if errors.Is(err, loader.ErrUnsupportedType) {
				warnings = append(warnings, fmt.Sprintf("%s: unsupported file type: %s", up.Filename, up.MediaType))
			} else {
				warnings = append(warnings, fmt.Sprintf("%s: %v", up.Filename, err))
			}
			continue
		}
		if pdfEx, ok := ex.(*loader.PDFExtractor); ok {
			pdfEx.FallbackPdftotext = p.pdfFallback
		}

		content, err := ex.Extract(bytes.NewReader(up.Data), up.Filename)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", up.Filename, err))
			continue
		}

		docs = append(docs, loader.Document{
			Filename:  up.Filename,
			MediaType: up.MediaType,
			Size:      int64(len(up.Data)),
			Content:   content,
		})
	}

	return docs, warnings
}
