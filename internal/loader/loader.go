// Package loader converts uploaded files into extracted plain text or a
// base64-encoded image payload, and aggregates multiple upload results into
// one combined input for the recommendation generator.
package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType marks media types the loader cannot handle. The caller
// reports the file and continues with its siblings.
var ErrUnsupportedType = errors.New("unsupported file type")

// ImagePayload is a base64-serialized raster image ready for the upstream
// generation call.
type ImagePayload struct {
	MIMEType string
	Data     string // base64-encoded image bytes
}

// Content is the extraction result for a single file. Exactly one of Text
// and Image is set for supported types.
type Content struct {
	Text  string
	Image *ImagePayload
}

// Document is a processed upload tagged with its originating file info.
type Document struct {
	Filename  string
	MediaType string
	Size      int64
	Content   Content
}

// Extractor converts raw file bytes into Content.
type Extractor interface {
	Extract(r io.Reader, filename string) (Content, error)
}

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ForType returns the extractor for a declared media type, falling back to
// the file extension when the type is missing or generic.
func ForType(mediaType, filename string) (Extractor, error) {
	// Strip any media type parameters (e.g. "; charset=utf-8").
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	switch mediaType {
	case "text/plain":
		return &TextExtractor{}, nil
	case "text/markdown":
		return &MarkdownExtractor{}, nil
	case "text/html":
		return &HTMLExtractor{}, nil
	case docxMediaType:
		return &DOCXExtractor{}, nil
	case "application/pdf":
		return &PDFExtractor{}, nil
	case "image/jpeg", "image/png":
		return &ImageExtractor{}, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".jpg", ".jpeg", ".png":
		return &ImageExtractor{}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
}

// IsSupported checks whether a media type / filename pair can be processed.
func IsSupported(mediaType, filename string) bool {
	_, err := ForType(mediaType, filename)
	return err == nil
}
