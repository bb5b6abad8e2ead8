// Package media turns raw uploaded image bytes into the two artifacts the
// service stores: the original file and a proportionally scaled thumbnail.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrDecode is returned when the payload is not a decodable image.
var ErrDecode = errors.New("undecodable image payload")

// ErrInvalidImage is returned when the decoded image has a zero dimension.
var ErrInvalidImage = errors.New("image has degenerate dimensions")

// ThumbnailPrefix marks thumbnail object names derived from an original.
const ThumbnailPrefix = "thumbnail_"

// DefaultThumbWidth is the fixed thumbnail width in pixels.
const DefaultThumbWidth = 300

// Processor stages uploaded images in TmpDir and derives thumbnails of
// ThumbWidth pixels. The zero value is not usable; use NewProcessor.
type Processor struct {
	tmpDir     string
	thumbWidth int
}

// NewProcessor returns a Processor staging files under tmpDir. An empty
// tmpDir falls back to the OS temp directory.
func NewProcessor(tmpDir string) *Processor {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Processor{tmpDir: tmpDir, thumbWidth: DefaultThumbWidth}
}

// Artifacts describes the two staged files produced from one upload.
// Name and ThumbName are the final object-store names; the paths point at
// the temporary files holding their content.
type Artifacts struct {
	Name         string
	ThumbName    string
	OriginalPath string
	ThumbPath    string
}

// Cleanup removes both temporary files. It is safe to call regardless of
// whether the upload that follows succeeded.
func (a *Artifacts) Cleanup() {
	_ = os.Remove(a.OriginalPath)
	_ = os.Remove(a.ThumbPath)
}

// Process stages the raw upload under a fresh unique name, decodes it with
// EXIF orientation applied, and writes a thumbnail next to it. The caller
// owns the returned temp files and must Cleanup after uploading them.
func (p *Processor) Process(data []byte, ext string) (*Artifacts, error) {
	name := uuid.NewString() + normalizeExt(ext)
	originalPath := filepath.Join(p.tmpDir, name)

	if err := os.WriteFile(originalPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("stage original: %w", err)
	}

	// Decode with orientation correction so the thumbnail reflects the
	// intended visual orientation, not the raw sensor orientation.
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		_ = os.Remove(originalPath)
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		_ = os.Remove(originalPath)
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImage, w, h)
	}

	thumbHeight := int(math.Round(float64(p.thumbWidth) * float64(h) / float64(w)))
	thumb := imaging.Resize(img, p.thumbWidth, thumbHeight, imaging.Lanczos)

	thumbName := ThumbnailPrefix + name
	thumbPath := filepath.Join(p.tmpDir, thumbName)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		_ = os.Remove(originalPath)
		return nil, fmt.Errorf("stage thumbnail: %w", err)
	}

	return &Artifacts{
		Name:         name,
		ThumbName:    thumbName,
		OriginalPath: originalPath,
		ThumbPath:    thumbPath,
	}, nil
}

// normalizeExt lowercases ext and guarantees a leading dot so staged file
// names always carry a usable extension.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ".jpg"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
