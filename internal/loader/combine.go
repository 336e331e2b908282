package loader

import (
	"fmt"
	"strings"
)

// Combine merges processed documents into one combined text block and at
// most one image. Text sections keep input order, each prefixed with a
// file-name delimiter. The first present image wins; later images are
// dropped — multi-image requests are not supported.
func Combine(docs []Document) (string, *ImagePayload) {
	var sections []string
	var firstImage *ImagePayload

	for _, d := range docs {
		if d.Content.Text != "" {
			sections = append(sections, fmt.Sprintf("--- File: %s ---\n%s\n", d.Filename, d.Content.Text))
		}
		if d.Content.Image != nil && firstImage == nil {
			firstImage = d.Content.Image
		}
	}

	return strings.Join(sections, "\n"), firstImage
}
