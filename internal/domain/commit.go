package domain

// Signature identifies the author or committer of a commit.

type Signature struct {
	Name  string
	Email string
}

// CommitInfo carries the metadata for the commit created after patch
// application.

type CommitInfo struct {
	Message   string
	Author    Signature
	Committer Signature
}

// Patch is a resolved patch document ready to be applied to a working copy.

type Patch struct {
	URL  string
	Data []byte
}
