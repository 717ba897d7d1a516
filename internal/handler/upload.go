package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/artconnect/artconnect-api/internal/imaging"

	"github.com/gin-gonic/gin"
)

// UploadLimits bounds what upload endpoints read into memory
type UploadLimits struct {
	MaxFiles    int
	MaxFileSize int64
}

// readUploads reads every file of a multipart field into memory. Content is
// not inspected here; the compressor rejects what it cannot decode.
func readUploads(c *gin.Context, field string, limits UploadLimits) ([]imaging.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadForm, err)
	}

	headers := form.File[field]
	if len(headers) == 0 {
		return nil, imaging.ErrNoImages
	}
	if limits.MaxFiles > 0 && len(headers) > limits.MaxFiles {
		return nil, fmt.Errorf("%w: got %d, max %d", imaging.ErrTooManyImages, len(headers), limits.MaxFiles)
	}

	uploads := make([]imaging.Upload, 0, len(headers))
	for _, header := range headers {
		if limits.MaxFileSize > 0 && header.Size > limits.MaxFileSize {
			return nil, fmt.Errorf("%w: %s is %d bytes", errFileTooLarge, header.Filename, header.Size)
		}
		data, err := readFile(header)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadForm, err)
		}
		uploads = append(uploads, imaging.Upload{Filename: header.Filename, Data: data})
	}

	return uploads, nil
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
