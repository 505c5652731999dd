package types

import "encoding/json"

// PreviewType tags the variant held by a Preview.
type PreviewType int

const (
	// PreviewNone means nothing to show, e.g. an index beyond the listing.
	PreviewNone PreviewType = iota
	// PreviewFile carries image content or a placeholder.
	PreviewFile
	// PreviewDirectory carries the directory path.
	PreviewDirectory
)

// FileKind is the classification of a previewed file.
type FileKind int

const (
	FileKindOther FileKind = iota
	FileKindImage
)

// String returns "Image" or "Other".
func (k FileKind) String() string {
	if k == FileKindImage {
		return "Image"
	}
	return "Other"
}

// Preview is a lightweight representation of an entry for display.
type Preview struct {
	Type PreviewType
	// File variant
	Kind     FileKind
	Content  string // base64 image bytes, or the placeholder
	MimeType string // images only
	Size     int64  // images only, raw byte count
	// Directory variant
	Path string
}

// NoPreview is the None variant.
func NoPreview() Preview {
	return Preview{Type: PreviewNone}
}

// DirectoryPreview is the Directory variant.
func DirectoryPreview(path string) Preview {
	return Preview{Type: PreviewDirectory, Path: path}
}

// ImagePreview is the File variant for an image.
func ImagePreview(encoded, mimeType string, size int64) Preview {
	return Preview{Type: PreviewFile, Kind: FileKindImage, Content: encoded, MimeType: mimeType, Size: size}
}

// PlaceholderPreview is the File variant for a non-image file.
func PlaceholderPreview(placeholder string) Preview {
	return Preview{Type: PreviewFile, Kind: FileKindOther, Content: placeholder}
}

// IsNone reports whether p is the None variant.
func (p Preview) IsNone() bool {
	return p.Type == PreviewNone
}

type filePreviewJSON struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
	Mime    string `json:"mime,omitempty"`
	Size    int64  `json:"size,omitempty"`
}

// MarshalJSON renders the externally tagged form the UI consumes:
// {"File":{...}}, {"Directory":"/path"} or null.
func (p Preview) MarshalJSON() ([]byte, error) {
	switch p.Type {
	case PreviewFile:
		return json.Marshal(map[string]filePreviewJSON{
			"File": {Kind: p.Kind.String(), Content: p.Content, Mime: p.MimeType, Size: p.Size},
		})
	case PreviewDirectory:
		return json.Marshal(map[string]string{"Directory": p.Path})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the form produced by MarshalJSON.
func (p *Preview) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = NoPreview()
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if dir, ok := raw["Directory"]; ok {
		var path string
		if err := json.Unmarshal(dir, &path); err != nil {
			return err
		}
		*p = DirectoryPreview(path)
		return nil
	}
	if file, ok := raw["File"]; ok {
		var fp filePreviewJSON
		if err := json.Unmarshal(file, &fp); err != nil {
			return err
		}
		if fp.Kind == FileKindImage.String() {
			*p = ImagePreview(fp.Content, fp.Mime, fp.Size)
		} else {
			*p = PlaceholderPreview(fp.Content)
		}
		return nil
	}
	*p = NoPreview()
	return nil
}
