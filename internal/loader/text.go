package loader

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TextExtractor handles plain text files.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) (Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Content{}, fmt.Errorf("read text file: %w", err)
	}
	return Content{Text: sanitizeUTF8(string(data))}, nil
}

// sanitizeUTF8 replaces invalid byte sequences so downstream JSON encoding
// never chokes on a mislabeled upload.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}
