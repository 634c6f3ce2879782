package model

import "fmt"

// Range selects commits reachable from To but not from From. An empty From
// means "the most recent commits on To", capped by the caller's limit.
type Range struct {
	From string
	To   string
}

// Head returns To, defaulting to HEAD.
func (r Range) Head() string {
	if r.To == "" {
		return "HEAD"
	}
	return r.To
}

func (r Range) String() string {
	if r.From == "" {
		return r.Head()
	}
	return fmt.Sprintf("%s..%s", r.From, r.Head())
}

// Release bundles what is needed to publish one version.
type Release struct {
	Version     string
	Tag         string
	Title       string
	PreviousTag string
	NotesPath   string
}

// TagFor returns the git tag name for a version.
func TagFor(version string) string {
	return "v" + version
}
