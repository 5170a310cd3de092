package domain

import "strings"

// RepositoryRef identifies a hosted repository by owner and name.

type RepositoryRef struct {
	Owner string
	Name  string
}

// ParseRepositoryRef parses an "owner/name" slug into a RepositoryRef.
func ParseRepositoryRef(slug string) (RepositoryRef, error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryRef{}, NewConfigError("repository", "must be in 'owner/name' format: "+slug)
	}
	return RepositoryRef{Owner: parts[0], Name: parts[1]}, nil
}

// String returns the "owner/name" slug.
func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether the reference is unset.
func (r RepositoryRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}
