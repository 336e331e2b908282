package loader

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
)

// ImageExtractor handles JPEG and PNG uploads. The image is decoded to
// verify it is well formed, re-encoded in its original format, and
// base64-serialized for the upstream generation call.
type ImageExtractor struct{}

func (e *ImageExtractor) Extract(r io.Reader, filename string) (Content, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Content{}, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	var mimeType string
	switch format {
	case "jpeg":
		mimeType = "image/jpeg"
		err = jpeg.Encode(&buf, img, nil)
	case "png":
		mimeType = "image/png"
		err = png.Encode(&buf, img)
	default:
		return Content{}, fmt.Errorf("%w: image/%s", ErrUnsupportedType, format)
	}
	if err != nil {
		return Content{}, fmt.Errorf("encode %s: %w", format, err)
	}

	return Content{Image: &ImagePayload{
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}}, nil
}
