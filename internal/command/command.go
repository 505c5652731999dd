// Package command maps named UI commands onto session operations.
package command

import (
	"fmt"

	"browsed/internal/errors"
	"browsed/internal/session"
	"browsed/pkg/types"
)

// Command names accepted by Execute.
const (
	ListFiles        = "list_files"
	ListMarkedFiles  = "list_marked_files"
	GetPreview       = "get_preview"
	GetMarkedPreview = "get_marked_preview"
	MarkFile         = "mark_file"
	ClearMarks       = "clear_marks"
	NavigateInto     = "navigate_into"
	NavigateParent   = "navigate_parent"
	GoToParent       = "go_to_parent" // alias of navigate_parent
	NavigateToPath   = "navigate_to_path"
	GetCurrentPath   = "get_current_path"
	GetStartingPath  = "get_starting_path"
	FilterByPattern  = "filter_by_pattern"
	CopyMarkedTo     = "copy_marked_to"
	Refresh          = "refresh"
)

// Names lists every accepted command.
var Names = []string{
	ListFiles, ListMarkedFiles, GetPreview, GetMarkedPreview, MarkFile,
	ClearMarks, NavigateInto, NavigateParent, GoToParent, NavigateToPath,
	GetCurrentPath, GetStartingPath, FilterByPattern, CopyMarkedTo, Refresh,
}

// Request is one command from a UI. Index commands resolve against the
// displayed listing; when Generation is set they fail on a stale listing
// instead of acting on whatever now sits at Index.
type Request struct {
	ID         string  `json:"id,omitempty"`
	Command    string  `json:"command"`
	Index      *int    `json:"index,omitempty"`
	Generation *uint64 `json:"generation,omitempty"`
	Path       string  `json:"path,omitempty"`
	Pattern    string  `json:"pattern,omitempty"`
}

// Response is the result of one Request.
type Response struct {
	ID         string             `json:"id,omitempty"`
	Command    string             `json:"command"`
	OK         bool               `json:"ok"`
	Error      string             `json:"error,omitempty"`
	ErrorKind  string             `json:"error_kind,omitempty"`
	Files      []types.ListItem   `json:"files,omitempty"`
	Generation *uint64            `json:"generation,omitempty"`
	Preview    *types.Preview     `json:"preview,omitempty"`
	Path       string             `json:"path,omitempty"`
	Copied     []types.CopyResult `json:"copied,omitempty"`
}

func (r *Response) fail(err error) {
	r.OK = false
	r.Error = err.Error()
	r.ErrorKind = errors.KindOf(err).String()
}

func (r *Response) listing(l types.Listing) {
	gen := l.Generation
	r.Generation = &gen
	r.Files = l.Items
}

func (r *Response) preview(p types.Preview) {
	r.Preview = &p
}

var errMissingIndex = errors.New("index is required")

// Execute runs req against s. It never panics on request contents; every
// failure is reported in the response.
func Execute(s *session.Session, req Request) Response {
	resp := Response{ID: req.ID, Command: req.Command, OK: true}

	switch req.Command {
	case ListFiles:
		resp.listing(s.ListCurrent(true))

	case ListMarkedFiles:
		resp.listing(s.ListMarked())

	case GetPreview:
		if req.Index == nil {
			resp.fail(errMissingIndex)
			break
		}
		if req.Generation == nil {
			resp.preview(s.PreviewAt(*req.Index))
			break
		}
		p, err := s.PreviewAtGeneration(*req.Generation, *req.Index)
		if err != nil {
			resp.fail(err)
			break
		}
		resp.preview(p)

	case GetMarkedPreview:
		if req.Index == nil {
			resp.fail(errMissingIndex)
			break
		}
		if req.Generation == nil {
			resp.preview(s.PreviewMarkedAt(*req.Index))
			break
		}
		p, err := s.PreviewMarkedAtGeneration(*req.Generation, *req.Index)
		if err != nil {
			resp.fail(err)
			break
		}
		resp.preview(p)

	case MarkFile:
		if req.Index == nil {
			resp.fail(errMissingIndex)
			break
		}
		if req.Generation == nil {
			s.ToggleMark(*req.Index)
			break
		}
		if _, err := s.ToggleMarkAt(*req.Generation, *req.Index); err != nil {
			resp.fail(err)
		}

	case ClearMarks:
		s.ClearMarks()
		resp.listing(s.ListMarked())

	case NavigateInto:
		if req.Index == nil {
			resp.fail(errMissingIndex)
			break
		}
		if req.Generation == nil {
			s.NavigateInto(*req.Index)
		} else if _, err := s.NavigateIntoAt(*req.Generation, *req.Index); err != nil {
			resp.fail(err)
		}
		resp.Path = s.CurrentPath()

	case NavigateParent, GoToParent:
		if err := s.NavigateParent(); err != nil {
			resp.fail(err)
		}
		resp.Path = s.CurrentPath()

	case NavigateToPath:
		if err := s.NavigateTo(req.Path); err != nil {
			resp.fail(err)
		}
		resp.Path = s.CurrentPath()

	case GetCurrentPath:
		resp.Path = s.CurrentPath()

	case GetStartingPath:
		resp.Path = s.CurrentName()

	case FilterByPattern:
		if err := s.SetFilter(req.Pattern); err != nil {
			resp.fail(err)
			break
		}
		resp.listing(s.ListCurrent(true))

	case CopyMarkedTo:
		resp.Copied = s.CopyMarkedTo(req.Path)
		if _, failed := types.CopySummary(resp.Copied); failed > 0 {
			resp.OK = false
			resp.Error = fmt.Sprintf("%d of %d files failed to copy", failed, len(resp.Copied))
			resp.ErrorKind = errors.CopyFailure.String()
		}

	case Refresh:
		if err := s.Refresh(); err != nil {
			resp.fail(err)
		}
		resp.listing(s.ListCurrent(true))

	default:
		resp.fail(errors.Newf("unknown command %q", req.Command))
	}

	return resp
}
