package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyImage           = errors.New("image is empty")
	ErrDecode               = errors.New("failed to decode image")
	ErrEncode               = errors.New("failed to encode image")
	ErrUnsupportedExtension = errors.New("please upload an image")
	ErrTooManyImages        = errors.New("too many images")
	ErrNoImages             = errors.New("no images uploaded")
)

// DefaultMaxPixels caps the declared dimensions of a source image
const DefaultMaxPixels = 40_000_000

// DefaultAllowedExtensions mirrors the upload filter: the name is checked, not the content.
var DefaultAllowedExtensions = []string{".jpg", ".jpeg", ".png"}

// Upload is one raw uploaded file
type Upload struct {
	Filename string
	Data     []byte
}

// Result is a compressed image. BudgetExceeded is set when even the floor
// quality did not fit into the profile's byte budget; that is not an error.
type Result struct {
	Data           []byte
	ContentType    string
	SizeBytes      int
	QualityUsed    int
	Attempts       int
	BudgetExceeded bool
}

// Base64 returns the payload as it is stored in records
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Data)
}

// EncodeAll returns the base64 payloads of results in order
func EncodeAll(results []*Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Base64()
	}
	return out
}

// ValidateFilename checks the file extension against the allowed list
func ValidateFilename(name string, allowed []string) error {
	if len(allowed) == 0 {
		allowed = DefaultAllowedExtensions
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedExtension, name)
}

// Compressor resizes images and searches encoder qualities until the output
// fits a byte budget.
type Compressor struct {
	encoders          map[string]Encoder
	workers           int
	maxFiles          int
	maxPixels         int
	allowedExtensions []string
	logger            *zap.Logger
}

// Option configures a Compressor
type Option func(*Compressor)

// WithEncoder overrides the encoder used for a format
func WithEncoder(format string, enc Encoder) Option {
	return func(c *Compressor) { c.encoders[format] = enc }
}

// WithWorkers bounds how many images of one batch are compressed at once
func WithWorkers(n int) Option {
	return func(c *Compressor) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithMaxFiles sets the largest accepted batch
func WithMaxFiles(n int) Option {
	return func(c *Compressor) {
		if n > 0 {
			c.maxFiles = n
		}
	}
}

// WithMaxPixels sets the largest source raster, width times height, that is decoded
func WithMaxPixels(n int) Option {
	return func(c *Compressor) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

// WithAllowedExtensions replaces the filename filter
func WithAllowedExtensions(exts []string) Option {
	return func(c *Compressor) {
		if len(exts) > 0 {
			c.allowedExtensions = exts
		}
	}
}

// NewCompressor creates a compressor with WebP and JPEG encoders registered
func NewCompressor(logger *zap.Logger, opts ...Option) *Compressor {
	c := &Compressor{
		encoders: map[string]Encoder{
			FormatWebP: WebPEncoder{},
			FormatJPEG: JPEGEncoder{},
		},
		workers:           3,
		maxFiles:          3,
		maxPixels:         DefaultMaxPixels,
		allowedExtensions: DefaultAllowedExtensions,
		logger:            logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxFiles returns the largest batch CompressBatch accepts
func (c *Compressor) MaxFiles() int {
	return c.maxFiles
}

// ValidateFilename checks name against the configured extensions
func (c *Compressor) ValidateFilename(name string) error {
	return ValidateFilename(name, c.allowedExtensions)
}

// checkDimensions reads only the image header so oversized rasters are
// rejected before any pixel memory is allocated.
func (c *Compressor) checkDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(c.maxPixels) {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, c.maxPixels)
	}
	return nil
}

func (c *Compressor) encoderFor(format string) (Encoder, error) {
	if format == "" {
		format = FormatWebP
	}
	if enc, ok := c.encoders[format]; ok {
		return enc, nil
	}
	return NewEncoder(format)
}

// Compress resizes data to the profile's exact target size and encodes it.
// The first encode uses the initial quality; if it is over budget the search
// walks p.Qualities() and stops at the first fit. Every attempt starts from
// the raster derived from the original buffer, never from a previous output.
func (c *Compressor) Compress(ctx context.Context, data []byte, p Profile) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %q: %w", p.Name, err)
	}
	enc, err := c.encoderFor(p.Format)
	if err != nil {
		return nil, err
	}

	if err := c.checkDimensions(data); err != nil {
		return nil, err
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	resized := resize(src, p.TargetWidth, p.TargetHeight)

	res, err := c.encode(ctx, enc, resized, p.InitialQuality)
	if err != nil {
		return nil, err
	}
	res.Attempts = 1

	if res.SizeBytes > p.MaxOutputBytes {
		for _, q := range p.Qualities() {
			attempt, err := c.encode(ctx, enc, resized, q)
			if err != nil {
				return nil, err
			}
			attempt.Attempts = res.Attempts + 1
			res = attempt

			c.logger.Debug("Quality attempt",
				zap.String("profile", p.Name),
				zap.Int("quality", q),
				zap.Int("size", res.SizeBytes),
				zap.Int("budget", p.MaxOutputBytes))

			if res.SizeBytes <= p.MaxOutputBytes {
				break
			}
		}
	}

	res.BudgetExceeded = res.SizeBytes > p.MaxOutputBytes
	if res.BudgetExceeded {
		c.logger.Warn("Image still over budget at quality floor",
			zap.String("profile", p.Name),
			zap.Int("size", res.SizeBytes),
			zap.Int("budget", p.MaxOutputBytes),
			zap.Int("quality", res.QualityUsed))
	}

	c.logger.Info("Image compressed",
		zap.String("profile", p.Name),
		zap.String("source_format", format),
		zap.Int("source_width", src.Bounds().Dx()),
		zap.Int("source_height", src.Bounds().Dy()),
		zap.Int("quality", res.QualityUsed),
		zap.Int("size", res.SizeBytes),
		zap.Int("attempts", res.Attempts))

	return res, nil
}

func (c *Compressor) encode(ctx context.Context, enc Encoder, img image.Image, quality int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img, quality); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return &Result{
		Data:        buf.Bytes(),
		ContentType: enc.ContentType(),
		SizeBytes:   buf.Len(),
		QualityUsed: quality,
	}, nil
}

// CompressBatch compresses all uploads concurrently and returns the results
// in input order. The batch fails as a whole on the first error.
func (c *Compressor) CompressBatch(ctx context.Context, uploads []Upload, p Profile) ([]*Result, error) {
	if len(uploads) == 0 {
		return nil, ErrNoImages
	}
	if len(uploads) > c.maxFiles {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyImages, len(uploads), c.maxFiles)
	}
	for _, u := range uploads {
		if err := c.ValidateFilename(u.Filename); err != nil {
			return nil, err
		}
	}

	results := make([]*Result, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, u := range uploads {
		i, u := i, u
		g.Go(func() error {
			res, err := c.Compress(gctx, u.Data, p)
			if err != nil {
				return fmt.Errorf("image %d (%s): %w", i+1, u.Filename, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Error("Image batch failed",
			zap.String("profile", p.Name),
			zap.Int("count", len(uploads)),
			zap.Error(err))
		return nil, err
	}

	return results, nil
}

// resize stretches img to exactly width x height
func resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
