// Package domain contains the core data structures and domain logic for the application.
package domain

import "strings"

// DateUnknown is reported when a release page carries no publish timestamp.
const DateUnknown = "N/A"

// RepoReference is a GitHub repository mentioned in the project's documentation
// or CI configuration. URL is canonical (no trailing slash, query or fragment)
// and is the uniqueness key.
type RepoReference struct {
	Name string
	URL  string
}

// RepoSegment returns the final path segment of the reference URL.
func (r RepoReference) RepoSegment() string {
	trimmed := strings.TrimRight(r.URL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// ReleaseStatus tags which variant a ReleaseInfo holds.
type ReleaseStatus int

const (
	// StatusNotFound means the repository has no published releases.
	StatusNotFound ReleaseStatus = iota
	// StatusFound means a latest release was resolved.
	StatusFound
	// StatusError means the lookup failed after all attempts.
	StatusError
)

func (s ReleaseStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusError:
		return "error"
	default:
		return "not found"
	}
}

// ReleaseInfo is the outcome of a latest-release lookup for one repository.
// Only the fields relevant to Status are populated.
type ReleaseInfo struct {
	Status        ReleaseStatus
	TagVersion    string
	PublishedDate string
	PageURL       string
	Message       string
}

// Found builds a ReleaseInfo for a resolved release.
func Found(tag, published, pageURL string) ReleaseInfo {
	if published == "" {
		published = DateUnknown
	}
	return ReleaseInfo{Status: StatusFound, TagVersion: tag, PublishedDate: published, PageURL: pageURL}
}

// NotFound builds a ReleaseInfo for a repository without releases.
func NotFound() ReleaseInfo {
	return ReleaseInfo{Status: StatusNotFound}
}

// Failed builds a ReleaseInfo carrying an error message.
func Failed(message string) ReleaseInfo {
	return ReleaseInfo{Status: StatusError, Message: message}
}

// RepoResult pairs a repository with the release information fetched for it.
type RepoResult struct {
	Repo    RepoReference
	Release ReleaseInfo
}
