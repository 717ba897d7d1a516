package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/chai2010/webp"
)

// Encoder writes a raster in a lossy format at the given quality (1-100)
type Encoder interface {
	Encode(w io.Writer, img image.Image, quality int) error
	ContentType() string
}

// WebPEncoder encodes lossy WebP
type WebPEncoder struct{}

func (WebPEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return webp.Encode(w, img, &webp.Options{
		Lossless: false,
		Quality:  float32(quality),
	})
}

func (WebPEncoder) ContentType() string { return "image/webp" }

// JPEGEncoder encodes baseline JPEG
type JPEGEncoder struct{}

func (JPEGEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

func (JPEGEncoder) ContentType() string { return "image/jpeg" }

// NewEncoder returns the encoder for a configured format name
func NewEncoder(format string) (Encoder, error) {
	switch format {
	case FormatWebP, "":
		return WebPEncoder{}, nil
	case FormatJPEG, "jpg":
		return JPEGEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
