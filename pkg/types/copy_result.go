package types

import "encoding/json"

// CopyResult holds the outcome of copying a single marked file
type CopyResult struct {
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	Bytes           int64  `json:"bytes"`
	Copied          bool   `json:"copied"`
	Error           error  `json:"-"`
}

// ErrorMessage returns the failure text, or "" on success.
func (r CopyResult) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Error()
}

// CopySummary counts successful and failed copies.
func CopySummary(results []CopyResult) (copied, failed int) {
	for _, r := range results {
		if r.Copied {
			copied++
		} else {
			failed++
		}
	}
	return copied, failed
}

// MarshalJSON renders Error as its message.
func (r CopyResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		SourcePath      string `json:"source_path"`
		DestinationPath string `json:"destination_path"`
		Bytes           int64  `json:"bytes"`
		Copied          bool   `json:"copied"`
		Error           string `json:"error,omitempty"`
	}
	return json.Marshal(wire{
		SourcePath:      r.SourcePath,
		DestinationPath: r.DestinationPath,
		Bytes:           r.Bytes,
		Copied:          r.Copied,
		Error:           r.ErrorMessage(),
	})
}
