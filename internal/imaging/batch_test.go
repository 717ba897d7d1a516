package imaging

import (
	"context"
	"errors"
	"image"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"photo.jpg", false},
		{"photo.jpeg", false},
		{"poster.png", false},
		{"SCAN.JPG", false},
		{"archive.tar.png", false},
		{"drawing.gif", true},
		{"notes.txt", true},
		{"jpg", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.name, nil)
			if tt.wantErr && !errors.Is(err, ErrUnsupportedExtension) {
				t.Errorf("err = %v, want ErrUnsupportedExtension", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCompressBatchPreservesOrder(t *testing.T) {
	enc := encoderFunc(func(w io.Writer, img image.Image, q int) error {
		_, err := w.Write([]byte{byte(q)})
		return err
	})
	c := NewCompressor(zap.NewNop(), WithEncoder("probe", enc))

	uploads := []Upload{
		{Filename: "a.png", Data: gradientPNG(t, 10, 10)},
		{Filename: "b.png", Data: gradientPNG(t, 20, 10)},
		{Filename: "c.png", Data: gradientPNG(t, 30, 10)},
	}
	p := testProfile(100)
	p.Format = "probe"

	results, err := c.CompressBatch(context.Background(), uploads, p)
	if err != nil {
		t.Fatalf("CompressBatch: %v", err)
	}
	if len(results) != len(uploads) {
		t.Fatalf("got %d results, want %d", len(results), len(uploads))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
		if r.QualityUsed != p.InitialQuality {
			t.Errorf("result %d quality = %d", i, r.QualityUsed)
		}
	}

	encoded := EncodeAll(results)
	if len(encoded) != 3 || encoded[0] == "" {
		t.Errorf("EncodeAll = %v", encoded)
	}
}

func TestCompressBatchFailsAsAWhole(t *testing.T) {
	c := NewCompressor(zap.NewNop(), WithEncoder("sized", &sizedEncoder{perQuality: 1}))
	p := testProfile(1000)

	uploads := []Upload{
		{Filename: "one.png", Data: gradientPNG(t, 16, 16)},
		{Filename: "two.png", Data: []byte("corrupt bytes")},
		{Filename: "three.png", Data: gradientPNG(t, 16, 16)},
	}

	results, err := c.CompressBatch(context.Background(), uploads, p)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
	if !strings.Contains(err.Error(), "image 2") {
		t.Errorf("error %q does not name the failing image", err)
	}
}

func TestCompressBatchRejectsInput(t *testing.T) {
	c := NewCompressor(zap.NewNop(), WithEncoder("sized", &sizedEncoder{perQuality: 1}))
	p := testProfile(1000)
	img := gradientPNG(t, 8, 8)

	tests := []struct {
		name    string
		uploads []Upload
		wantErr error
	}{
		{name: "no files", uploads: nil, wantErr: ErrNoImages},
		{
			name: "too many files",
			uploads: []Upload{
				{Filename: "1.png", Data: img},
				{Filename: "2.png", Data: img},
				{Filename: "3.png", Data: img},
				{Filename: "4.png", Data: img},
			},
			wantErr: ErrTooManyImages,
		},
		{
			name: "bad extension",
			uploads: []Upload{
				{Filename: "ok.png", Data: img},
				{Filename: "bad.bmp", Data: img},
			},
			wantErr: ErrUnsupportedExtension,
		},
		{
			name:    "empty file",
			uploads: []Upload{{Filename: "empty.jpg"}},
			wantErr: ErrEmptyImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CompressBatch(context.Background(), tt.uploads, p)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompressBatchMaxFilesOption(t *testing.T) {
	c := NewCompressor(zap.NewNop(),
		WithEncoder("sized", &sizedEncoder{perQuality: 1}),
		WithMaxFiles(1),
		WithWorkers(1))
	img := gradientPNG(t, 8, 8)

	_, err := c.CompressBatch(context.Background(),
		[]Upload{{Filename: "a.png", Data: img}, {Filename: "b.png", Data: img}},
		testProfile(1000))
	if !errors.Is(err, ErrTooManyImages) {
		t.Errorf("err = %v, want ErrTooManyImages", err)
	}
	if c.MaxFiles() != 1 {
		t.Errorf("MaxFiles = %d", c.MaxFiles())
	}
}

func TestCompressorValidateFilenameUsesConfiguredList(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		file    string
		wantErr bool
	}{
		{"default list accepts jpg", nil, "me.jpg", false},
		{"default list rejects webp", nil, "me.webp", true},
		{"configured list accepts webp", []Option{WithAllowedExtensions([]string{".webp"})}, "me.WEBP", false},
		{"configured list rejects jpg", []Option{WithAllowedExtensions([]string{".png"})}, "me.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompressor(zap.NewNop(), tt.opts...)
			err := c.ValidateFilename(tt.file)
			if tt.wantErr != errors.Is(err, ErrUnsupportedExtension) {
				t.Errorf("ValidateFilename(%q) = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
