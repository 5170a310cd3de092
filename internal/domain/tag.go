package domain

import (
	"github.com/Masterminds/semver/v3"
)

// Tag is an immutable named pointer to a commit in the base repository.
// Tags are discovered from the hosting API, never created by this tool.

type Tag struct {
	Name string
	SHA  string
}

// BranchName returns the head branch name this tag materializes as.
// The mapping is deterministic and 1:1: the branch carries the tag name
// verbatim.
func (t Tag) BranchName() string {
	return t.Name
}

// Semver parses the tag name as a semantic version. A leading "v" prefix
// is accepted.
func (t Tag) Semver() (*semver.Version, error) {
	return semver.NewVersion(t.Name)
}

// TagNames returns the names of the given tags in order.
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}
