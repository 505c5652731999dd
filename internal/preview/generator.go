// Package preview builds lightweight previews of listed entries.
package preview

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"browsed/internal/config"
	"browsed/internal/errors"
	"browsed/pkg/types"

	"github.com/gabriel-vasile/mimetype"
)

// Generator classifies files by extension and renders previews. Images are
// read whole and base64 encoded; other files get a placeholder without being
// opened. There is no size cap.
type Generator struct {
	images      map[string]struct{}
	placeholder string
}

// New creates a Generator for the given image extensions (without the dot,
// matched case-sensitively).
func New(imageExtensions []string, placeholder string) *Generator {
	g := &Generator{
		images:      make(map[string]struct{}, len(imageExtensions)),
		placeholder: placeholder,
	}
	for _, ext := range imageExtensions {
		g.images[ext] = struct{}{}
	}
	if g.placeholder == "" {
		g.placeholder = config.DefaultPlaceholder
	}
	return g
}

// FromConfig creates a Generator from the preview section of the configuration.
func FromConfig(cfg config.PreviewConfig) *Generator {
	return New(cfg.ImageExtensions, cfg.Placeholder)
}

// IsImage reports whether path has an extension in the image table.
func (g *Generator) IsImage(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	_, ok := g.images[ext]
	return ok
}

// Preview renders e. Only image reads can fail.
func (g *Generator) Preview(e types.FileEntry) (types.Preview, error) {
	if e.IsDir() {
		return types.DirectoryPreview(e.Path), nil
	}
	if !g.IsImage(e.Path) {
		return types.PlaceholderPreview(g.placeholder), nil
	}

	data, err := os.ReadFile(e.Path)
	if err != nil {
		return types.NoPreview(), errors.NewIoError("cannot read image", e.Path, err)
	}

	return types.ImagePreview(
		base64.StdEncoding.EncodeToString(data),
		mimeFor(e.Path, data),
		int64(len(data)),
	), nil
}

// mimeFor sniffs the content and falls back to the extension when the bytes
// are not recognizably an image.
func mimeFor(path string, data []byte) string {
	if m := mimetype.Detect(data); strings.HasPrefix(m.String(), "image/") {
		return m.String()
	}
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "svg":
		return "image/svg+xml"
	default:
		return "image/" + ext
	}
}
