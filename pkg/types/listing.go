package types

// ListItem is one row of a listing as the UI sees it.
type ListItem struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	IsDir  bool   `json:"is_dir"`
	Marked bool   `json:"marked"`
}

// Listing is a snapshot of a displayed listing. Generation identifies the
// snapshot; index-based requests may echo it back to detect stale indices.
type Listing struct {
	Generation uint64     `json:"generation"`
	Items      []ListItem `json:"files"`
}

// Len returns the number of rows.
func (l Listing) Len() int {
	return len(l.Items)
}
