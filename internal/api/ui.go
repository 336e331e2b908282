package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>LCSH Assistant</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; color: #1f2937; }
h1 { color: #1e3a8a; border-bottom: 2px solid #e5e7eb; padding-bottom: .5rem; }
.info { background: #eff6ff; border-left: 5px solid #3b82f6; padding: 1rem; border-radius: .5rem; margin-bottom: 1.5rem; }
label { display: block; font-weight: 600; margin: 1rem 0 .25rem; }
textarea, input[type=password] { width: 100%; padding: .5rem; border: 1px solid #d1d5db; border-radius: .375rem; }
button { background: #2563eb; color: #fff; border: none; padding: .5rem 1.25rem; border-radius: .375rem; margin-top: 1rem; cursor: pointer; }
.warning { background: #fef3c7; border-left: 5px solid #f59e0b; padding: .5rem 1rem; border-radius: .375rem; margin: .5rem 0; }
.result { border-top: 1px solid #e5e7eb; margin-top: 2rem; padding-top: 1rem; }
.privacy { font-size: .85rem; color: #6b7280; margin-top: 2rem; }
</style>
</head>
<body>
<h1>LCSH Assistant</h1>
<div class="info">A tool for suggesting Library of Congress Subject Headings for East Asian language materials.</div>
<form method="post" action="/" enctype="multipart/form-data">
<label for="api_key">Google Gemini API key</label>
<input type="password" id="api_key" name="api_key" autocomplete="off">
<label for="text">Bibliographic information</label>
<textarea id="text" name="text" rows="8" placeholder="Title, author, publication information, table of contents, abstract..."></textarea>
<label for="files">Files (TXT, MD, HTML, DOCX, PDF, JPG, PNG)</label>
<input type="file" id="files" name="files" multiple>
<button type="submit">Generate LCSH Recommendations</button>
</form>
{{range .Warnings}}<div class="warning">{{.}}</div>{{end}}
{{if .Result}}<div class="result">{{.Result}}</div>{{end}}
<p class="privacy">Your API key and uploads are processed in memory for this request only and are never stored.</p>
</body>
</html>
`))

type pageData struct {
	Warnings []string
	Result   template.HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, pageData{})
}

// handleForm runs the pipeline for a browser form post and renders the
// Markdown report as HTML.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRecommendRequest(w, r)
	if err != nil {
		s.renderPage(w, pageData{Warnings: []string{err.Error()}})
		return
	}
	if req.Text == "" && len(req.Uploads) == 0 {
		s.renderPage(w, pageData{Warnings: []string{"Please enter bibliographic information or upload at least one file."}})
		return
	}

	resp := s.pipeline.Run(r.Context(), req)

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(resp.Report), &html); err != nil {
		s.log.Error("render report", "error", err)
		s.renderPage(w, pageData{Warnings: []string{"Failed to render the report."}})
		return
	}

	s.renderPage(w, pageData{
		Warnings: resp.Warnings,
		Result:   template.HTML(html.String()),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.log.Error("render page", "error", err)
	}
}
