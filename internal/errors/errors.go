// Package errors provides standardized error handling for browsed.
// It defines the error taxonomy of the browsing session (filesystem failures,
// bad filter patterns, root navigation, lock failures, index resolution and
// copy failures) plus helpers for consistent creation, wrapping and inspection.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
	// Join joins multiple errors into one
	Join = errors.Join
)

// Common error constants for frequently occurring errors
var (
	ErrAtRoot        = NewAtRootError("")
	ErrStaleListing  = NewStaleListingError(0, 0)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrQueueClosed   = NewLockError("command queue closed", "session", nil)
	ErrNameCollision = New("destination already exists")
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Filesystem error kinds
	IoFailure
	CopyFailure
	// Session error kinds
	InvalidPattern
	AtRoot
	LockFailure
	IndexOutOfRange
	StaleListing
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

var kindNames = map[ErrorKind]string{
	Unknown:         "unknown",
	IoFailure:       "io_error",
	CopyFailure:     "copy_error",
	InvalidPattern:  "invalid_pattern",
	AtRoot:          "at_root",
	LockFailure:     "lock_error",
	IndexOutOfRange: "index_out_of_range",
	StaleListing:    "stale_listing",
	InvalidConfig:   "invalid_config",
	ConfigNotFound:  "config_not_found",
}

// String returns the wire name of the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// kinded is implemented by every error type in this package.
type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return Unknown
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// IoError represents a filesystem read failure for a path.
type IoError struct {
	ApplicationError
	path string
}

// NewIoError creates a new filesystem error
func NewIoError(msg string, path string, err error) *IoError {
	return &IoError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: IoFailure,
		},
		path: path,
	}
}

// Error returns the filesystem error message
func (e *IoError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *IoError) Path() string {
	return e.path
}

// CopyError represents a failure to copy one file.
type CopyError struct {
	ApplicationError
	source      string
	destination string
}

// NewCopyError creates a new copy error
func NewCopyError(msg string, source, destination string, err error) *CopyError {
	return &CopyError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: CopyFailure,
		},
		source:      source,
		destination: destination,
	}
}

// Error returns the copy error message
func (e *CopyError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s -> %s: %v", e.msg, e.source, e.destination, e.err)
	}
	return fmt.Sprintf("%s: %s -> %s", e.msg, e.source, e.destination)
}

// Source returns the path that was being copied
func (e *CopyError) Source() string {
	return e.source
}

// Destination returns the path that was being written
func (e *CopyError) Destination() string {
	return e.destination
}

// PatternError represents a filter pattern that failed to compile.
type PatternError struct {
	ApplicationError
	pattern string
}

// NewPatternError creates a new invalid pattern error
func NewPatternError(pattern string, err error) *PatternError {
	return &PatternError{
		ApplicationError: ApplicationError{
			msg:  "invalid filter pattern",
			err:  err,
			kind: InvalidPattern,
		},
		pattern: pattern,
	}
}

// Error returns the pattern error message
func (e *PatternError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s %q: %v", e.msg, e.pattern, e.err)
	}
	return fmt.Sprintf("%s %q", e.msg, e.pattern)
}

// Pattern returns the rejected pattern
func (e *PatternError) Pattern() string {
	return e.pattern
}

// AtRootError reports parent navigation attempted from a filesystem root.
type AtRootError struct {
	ApplicationError
	path string
}

// NewAtRootError creates a new root navigation error
func NewAtRootError(path string) *AtRootError {
	return &AtRootError{
		ApplicationError: ApplicationError{
			msg:  "already at filesystem root",
			kind: AtRoot,
		},
		path: path,
	}
}

// Error returns the root navigation error message
func (e *AtRootError) Error() string {
	if e.path != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.msg
}

// Is matches any other AtRootError so ErrAtRoot works with errors.Is.
func (e *AtRootError) Is(target error) bool {
	_, ok := target.(*AtRootError)
	return ok
}

// Path returns the root location
func (e *AtRootError) Path() string {
	return e.path
}

// LockError reports that session state could not be acquired.
type LockError struct {
	ApplicationError
	resource string
}

// NewLockError creates a new lock error
func NewLockError(msg string, resource string, err error) *LockError {
	return &LockError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: LockFailure,
		},
		resource: resource,
	}
}

// Resource returns the name of the guarded resource
func (e *LockError) Resource() string {
	return e.resource
}

// IndexError reports an index beyond the bounds of a listing.
type IndexError struct {
	ApplicationError
	index  int
	length int
}

// NewIndexError creates a new index out of range error
func NewIndexError(index, length int) *IndexError {
	return &IndexError{
		ApplicationError: ApplicationError{
			msg:  "index out of range",
			kind: IndexOutOfRange,
		},
		index:  index,
		length: length,
	}
}

// Error returns the index error message
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %d (listing has %d entries)", e.msg, e.index, e.length)
}

// Index returns the requested index
func (e *IndexError) Index() int {
	return e.index
}

// Length returns the listing length at the time of the request
func (e *IndexError) Length() int {
	return e.length
}

// StaleListingError reports an index issued against an older listing.
type StaleListingError struct {
	ApplicationError
	expected uint64
	current  uint64
}

// NewStaleListingError creates a new stale listing error
func NewStaleListingError(expected, current uint64) *StaleListingError {
	return &StaleListingError{
		ApplicationError: ApplicationError{
			msg:  "listing changed since it was displayed",
			kind: StaleListing,
		},
		expected: expected,
		current:  current,
	}
}

// Error returns the stale listing error message
func (e *StaleListingError) Error() string {
	return fmt.Sprintf("%s: generation %d, current %d", e.msg, e.expected, e.current)
}

// Is matches any other StaleListingError so ErrStaleListing works with errors.Is.
func (e *StaleListingError) Is(target error) bool {
	_, ok := target.(*StaleListingError)
	return ok
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: KindOf(err),
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: KindOf(err),
	}
}

// IsIoError checks if the error is a filesystem read error
func IsIoError(err error) bool {
	var ioErr *IoError
	return errors.As(err, &ioErr)
}

// IsCopyError checks if the error is a copy error
func IsCopyError(err error) bool {
	var copyErr *CopyError
	return errors.As(err, &copyErr)
}

// IsInvalidPattern checks if the error is an invalid filter pattern error
func IsInvalidPattern(err error) bool {
	var patternErr *PatternError
	return errors.As(err, &patternErr)
}

// IsAtRoot checks if the error is a root navigation error
func IsAtRoot(err error) bool {
	var rootErr *AtRootError
	return errors.As(err, &rootErr)
}

// IsLockError checks if the error is a lock error
func IsLockError(err error) bool {
	var lockErr *LockError
	return errors.As(err, &lockErr)
}

// IsIndexOutOfRange checks if the error is an index out of range error
func IsIndexOutOfRange(err error) bool {
	var indexErr *IndexError
	return errors.As(err, &indexErr)
}

// IsStaleListing checks if the error is a stale listing error
func IsStaleListing(err error) bool {
	var staleErr *StaleListingError
	return errors.As(err, &staleErr)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
