package core

import "errors"

var (
	// ErrRepoNotAccessible covers both "repository does not exist" and
	// "repository exists but the caller may not see it". The upstream returns
	// the same answer for both to avoid leaking the existence of private
	// repos, and we preserve that ambiguity.
	ErrRepoNotAccessible = errors.New("repository not found or not accessible")

	// ErrDocumentNotFound means the path did not resolve at the requested ref.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNotAFile means the path resolved to a directory or another non-file
	// entry.
	ErrNotAFile = errors.New("path is not a file")

	// ErrUpstream marks upstream outages (network failure, 5xx, timeout) on
	// the repository/document fetch path. It is distinct from a security
	// denial: callers must not present an outage as "access denied".
	ErrUpstream = errors.New("upstream request failed")
)
