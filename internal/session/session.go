// Package session holds the state of one browsing session: the current
// location, its cached listing, the active name filter and the marked files.
//
// Each field has its own lock. Operations that need several take them in the
// order location, filter, listing. Marks are guarded by their own set and
// never held together with the others.
package session

import (
	"os"
	"path/filepath"
	"sync"

	"browsed/internal/config"
	"browsed/internal/errors"
	"browsed/internal/filter"
	"browsed/internal/listing"
	"browsed/internal/log"
	"browsed/internal/marks"
	"browsed/internal/preview"
	"browsed/internal/transfer"
	"browsed/pkg/types"

	"github.com/google/uuid"
)

// Session is a single browsing session. All methods are safe for concurrent
// use, but a sequence of calls is not atomic; use command.Dispatcher to
// serialize whole commands.
type Session struct {
	id     string
	logger *log.Logger

	lister   *listing.Lister
	previews *preview.Generator
	copier   *transfer.Copier
	mode     filter.Mode

	locMu    sync.RWMutex
	location string

	filterMu sync.RWMutex
	filter   *filter.Filter

	listMu    sync.RWMutex
	cached    []types.FileEntry
	displayed []types.FileEntry
	gen       uint64

	marked *marks.Set
}

// Option configures a Session.
type Option func(*options)

type options struct {
	homeDir    func() (string, error)
	workingDir func() (string, error)
	startDir   string
	logger     *log.Logger
}

// WithHomeDir replaces the home directory resolver used when the working
// directory is unavailable.
func WithHomeDir(fn func() (string, error)) Option {
	return func(o *options) {
		o.homeDir = fn
	}
}

// WithWorkingDir replaces the working directory lookup.
func WithWorkingDir(fn func() (string, error)) Option {
	return func(o *options) {
		o.workingDir = fn
	}
}

// WithStartDir starts the session at dir, overriding the configuration.
func WithStartDir(dir string) Option {
	return func(o *options) {
		o.startDir = dir
	}
}

// WithLogger sets the logger session events are written to.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a session and lists its starting location. The start is the
// configured directory, else the working directory, else the home directory.
// Only a failure to find any start location is an error; an unreadable start
// location leaves an empty listing.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.New()
	}
	o := options{
		homeDir:    os.UserHomeDir,
		workingDir: os.Getwd,
		startDir:   cfg.Session.StartDir,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	mode, err := filter.ParseMode(cfg.Filter.Mode)
	if err != nil {
		return nil, errors.NewConfigError("invalid filter mode", "filter.mode", errors.InvalidConfig, err)
	}

	start, err := startLocation(o)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := o.logger.With(log.F("session", id))

	s := &Session{
		id:       id,
		logger:   logger,
		lister:   listing.FromConfig(cfg.Listing),
		previews: preview.FromConfig(cfg.Preview),
		copier:   transfer.New(logger),
		mode:     mode,
		location: start,
		marked:   marks.New(),
	}

	if err := s.Refresh(); err != nil {
		logger.WithError(err).Warn("starting location unreadable")
	}
	logger.With(log.F("location", start)).Debug("session started")

	return s, nil
}

func startLocation(o options) (string, error) {
	if o.startDir != "" {
		return filepath.Abs(o.startDir)
	}
	if wd, err := o.workingDir(); err == nil && wd != "" {
		return wd, nil
	}
	home, err := o.homeDir()
	if err != nil {
		return "", errors.NewIoError("cannot determine starting directory", "", err)
	}
	if home == "" {
		return "", errors.NewIoError("cannot determine starting directory", "", errors.New("empty home directory"))
	}
	return filepath.Abs(home)
}

// ID returns the session identifier carried in log events.
func (s *Session) ID() string {
	return s.id
}

// CurrentPath returns the absolute current location. A filesystem root is
// rendered as "/".
func (s *Session) CurrentPath() string {
	s.locMu.RLock()
	defer s.locMu.RUnlock()
	if isRoot(s.location) {
		return "/"
	}
	return s.location
}

// CurrentName returns the final component of the current location, or "/" at
// a filesystem root.
func (s *Session) CurrentName() string {
	s.locMu.RLock()
	defer s.locMu.RUnlock()
	if isRoot(s.location) {
		return "/"
	}
	return filepath.Base(s.location)
}

// FilterPattern returns the active pattern, or "" when unfiltered.
func (s *Session) FilterPattern() string {
	s.filterMu.RLock()
	defer s.filterMu.RUnlock()
	return s.filter.Pattern()
}

// FilterMode returns the syntax patterns are compiled with.
func (s *Session) FilterMode() filter.Mode {
	return s.mode
}

// Generation identifies the displayed listing. It changes whenever the
// displayed listing does.
func (s *Session) Generation() uint64 {
	s.listMu.RLock()
	defer s.listMu.RUnlock()
	return s.gen
}

// MarkedGeneration identifies the marked listing.
func (s *Session) MarkedGeneration() uint64 {
	return s.marked.Generation()
}

// MarkedCount returns the number of marked files.
func (s *Session) MarkedCount() int {
	return s.marked.Len()
}

func isRoot(path string) bool {
	return filepath.Dir(path) == path
}

// resolve makes path absolute relative to base.
func resolve(base, path string) string {
	if path == "" {
		return base
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return filepath.Clean(path)
}
