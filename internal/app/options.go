package app

import (
	"errors"
	"path/filepath"

	"vtt-release/internal/model"
)

// Options collect validated inputs for the notes command.
type Options struct {
	OutputPath string

	FromTag    string
	ToTag      string
	FromCommit string
	ToCommit   string
}

// FlagValues mirrors the command-line flags so we can keep parsing/validation in one place.
type FlagValues struct {
	FromTag    string
	ToTag      string
	FromCommit string
	ToCommit   string
	OutputPath string
}

// OptionsFromFlags validates user input and resolves default values. With no
// refs at all the range starts at the latest tag, resolved at run time.
func OptionsFromFlags(f FlagValues) (Options, error) {
	hasTags := f.FromTag != "" || f.ToTag != ""
	hasCommits := f.FromCommit != "" || f.ToCommit != ""

	if hasTags && hasCommits {
		return Options{}, errors.New("use either tag range flags OR commit range flags, not both")
	}

	if f.FromTag != "" && f.ToTag == "" {
		f.ToTag = "HEAD"
	}
	if f.FromCommit != "" && f.ToCommit == "" {
		f.ToCommit = "HEAD"
	}

	if f.FromTag == "" && f.ToTag != "" {
		return Options{}, errors.New("when using tags, --from-tag is required")
	}
	if f.FromCommit == "" && f.ToCommit != "" {
		return Options{}, errors.New("when using commit hashes, --from-commit is required")
	}

	return Options{
		OutputPath: cleanPath(f.OutputPath),
		FromTag:    f.FromTag,
		ToTag:      f.ToTag,
		FromCommit: f.FromCommit,
		ToCommit:   f.ToCommit,
	}, nil
}

// Explicit reports whether the user picked the range.
func (o Options) Explicit() bool {
	return o.FromTag != "" || o.FromCommit != ""
}

// Range returns the selected ref range.
func (o Options) Range() model.Range {
	if o.FromTag != "" {
		return model.Range{From: o.FromTag, To: o.ToTag}
	}
	return model.Range{From: o.FromCommit, To: o.ToCommit}
}

func cleanPath(p string) string {
	if p == "" || p == "-" {
		return p
	}
	return filepath.Clean(p)
}
