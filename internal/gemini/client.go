// Package gemini generates LCSH recommendation narratives with the Google
// Gemini API.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	genai "google.golang.org/genai"

	"github.com/catalogkit/lcsh-assistant/internal/loader"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrNoInput is returned when neither text nor an image was provided.
var ErrNoInput = errors.New("no input provided")

// Input is the combined material for one generation call.
type Input struct {
	Text  string
	Image *loader.ImagePayload
}

// Generator produces recommendation narratives. It holds no credential: the
// genai client is constructed per call from the caller-supplied key, so no
// key outlives a request.
type Generator struct {
	model string
	Stats *CallStats
}

func NewGenerator(model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		model: model,
		Stats: NewCallStats(time.Hour),
	}
}

// Model returns the configured model identifier.
func (g *Generator) Model() string {
	return g.model
}

// Generate asks Gemini for a subject analysis and heading suggestions,
// returning the raw narrative text. Upstream failures come back as errors;
// the pipeline converts them into displayable strings.
func (g *Generator) Generate(ctx context.Context, apiKey string, in Input) (string, error) {
	if in.Text == "" && in.Image == nil {
		return "", ErrNoInput
	}
	if apiKey == "" {
		return "", errors.New("missing API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	parts := []*genai.Part{{Text: buildPrompt(in.Text)}}
	if in.Image != nil {
		raw, err := base64.StdEncoding.DecodeString(in.Image.Data)
		if err != nil {
			return "", fmt.Errorf("decode image payload: %w", err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: in.Image.MIMEType, Data: raw},
		})
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       f32(0.2),
		TopP:              f32(0.8),
		TopK:              f32(40),
		MaxOutputTokens:   4096,
	}

	start := time.Now()
	res, err := client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{Role: genai.RoleUser, Parts: parts},
	}, config)
	if g.Stats != nil {
		g.Stats.Record(time.Since(start).Milliseconds())
	}
	if err != nil {
		return "", fmt.Errorf("gemini api: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

func f32(v float32) *float32 {
	return &v
}
