// Package filter narrows listings by matching entry names against a pattern.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"browsed/internal/errors"
	"browsed/pkg/types"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Mode selects the pattern syntax.
type Mode string

const (
	// Regex is an unanchored RE2 search over the name.
	Regex Mode = "regex"
	// Glob is a shell glob over the whole name.
	Glob Mode = "glob"
	// Fuzzy is a subsequence match.
	Fuzzy Mode = "fuzzy"
)

// ParseMode converts a configured mode name. Empty selects Regex.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Regex:
		return Regex, nil
	case Glob:
		return Glob, nil
	case Fuzzy:
		return Fuzzy, nil
	}
	return "", fmt.Errorf("unknown filter mode %q", s)
}

// Filter is a compiled name pattern. A nil *Filter matches everything.
type Filter struct {
	pattern string
	mode    Mode
	match   func(name string) bool
}

// Compile compiles pattern in the given mode. An empty pattern disables
// filtering and yields a nil Filter. Patterns and names are compared in NFC,
// the form listings display.
func Compile(pattern string, mode Mode) (*Filter, error) {
	if pattern == "" {
		return nil, nil
	}

	f := &Filter{pattern: pattern, mode: mode}
	normalized := norm.NFC.String(pattern)
	switch mode {
	case Regex, "":
		re, err := regexp.Compile(normalized)
		if err != nil {
			return nil, errors.NewPatternError(pattern, err)
		}
		f.mode = Regex
		f.match = re.MatchString
	case Glob:
		g, err := glob.Compile(normalized)
		if err != nil {
			return nil, errors.NewPatternError(pattern, err)
		}
		f.match = g.Match
	case Fuzzy:
		f.match = func(name string) bool {
			return len(fuzzy.Find(normalized, []string{name})) > 0
		}
	default:
		return nil, errors.NewPatternError(pattern, fmt.Errorf("unknown filter mode %q", mode))
	}
	return f, nil
}

// Pattern returns the source pattern, or "" for a nil Filter.
func (f *Filter) Pattern() string {
	if f == nil {
		return ""
	}
	return f.pattern
}

// Mode returns the syntax the pattern was compiled with.
func (f *Filter) Mode() Mode {
	if f == nil {
		return ""
	}
	return f.mode
}

// Matches tests the entry's name, not its full path.
func (f *Filter) Matches(e types.FileEntry) bool {
	if f == nil {
		return true
	}
	return f.match(norm.NFC.String(e.Name()))
}

// Apply returns the entries f matches, in their original order. The input is
// not modified.
func Apply(f *Filter, entries []types.FileEntry) []types.FileEntry {
	if f == nil {
		out := make([]types.FileEntry, len(entries))
		copy(out, entries)
		return out
	}
	out := make([]types.FileEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
