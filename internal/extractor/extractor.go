// Package extractor finds GitHub repository references in the project's
// documentation and CI workflow files.
package extractor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/naka-gawa/check-versions/internal/domain"
)

// ErrReadme is returned when the documentation file cannot be read.
var ErrReadme = errors.New("failed to read documentation file")

var (
	// [name](https://github.com/owner/repo) with no further path segment.
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https://github\.com/[^/]+/[^/)]+)\)`)
	bareRepoRe     = regexp.MustCompile(`https://github\.com/([^/]+)/([^/"\s]+)`)
	releasesTailRe = regexp.MustCompile(`/releases/.*$`)

	// Substrings marking badges and asset links rather than repositories.
	skipMarkers = []string{"/releases", "/actions", "/badge.svg", ".png", ".jpg"}
)

// Extractor parses documentation and workflow text for repository links.
type Extractor struct {
	selfRepo string
	logger   *log.Logger
}

// New creates an Extractor. selfRepo is the hosting project's own repository
// name; links to it are dropped from documentation results.
func New(selfRepo string, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Extractor{selfRepo: selfRepo, logger: logger}
}

// FromReadme returns markdown-linked repositories in first-occurrence order.
// Duplicates are kept.
func (e *Extractor) FromReadme(content string) []domain.RepoReference {
	var repos []domain.RepoReference
	for _, m := range markdownLinkRe.FindAllStringSubmatch(content, -1) {
		name, url := m[1], stripSuffixes(m[2])
		if containsAny(url, skipMarkers) {
			continue
		}
		if e.isSelf(url) {
			continue
		}
		repos = append(repos, domain.RepoReference{Name: name, URL: url})
	}
	e.logger.Printf("Extractor: found %d repository links in documentation.\n", len(repos))
	return repos
}

// FromWorkflow returns bare repository URLs found in workflow text,
// deduplicated by URL. The display name is the repository segment.
func (e *Extractor) FromWorkflow(content string) []domain.RepoReference {
	var repos []domain.RepoReference
	seen := make(map[string]bool)
	for _, m := range bareRepoRe.FindAllStringSubmatch(content, -1) {
		owner, repo := m[1], m[2]
		url := releasesTailRe.ReplaceAllString(fmt.Sprintf("https://github.com/%s/%s", owner, repo), "")
		if seen[url] {
			continue
		}
		seen[url] = true
		repos = append(repos, domain.RepoReference{Name: repo, URL: url})
	}
	e.logger.Printf("Extractor: found %d repository URLs in workflow.\n", len(repos))
	return repos
}

// LoadReadme reads the documentation file at path and extracts its links.
// A read failure wraps ErrReadme.
func (e *Extractor) LoadReadme(path string) ([]domain.RepoReference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadme, err)
	}
	return e.FromReadme(string(data)), nil
}

// LoadWorkflow reads the workflow file at path and extracts its URLs.
// Workflow scanning is optional: a read failure is reported to diag and an
// empty result is returned.
func (e *Extractor) LoadWorkflow(path string, diag io.Writer) []domain.RepoReference {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(diag, "Error reading workflow: %v\n", err)
		return nil
	}
	return e.FromWorkflow(string(data))
}

func (e *Extractor) isSelf(url string) bool {
	if e.selfRepo == "" {
		return false
	}
	return strings.HasSuffix(url, e.selfRepo) || strings.HasSuffix(url, e.selfRepo+"/")
}

// stripSuffixes drops any #fragment and then any ?query.
func stripSuffixes(url string) string {
	if i := strings.Index(url, "#"); i >= 0 {
		url = url[:i]
	}
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	return url
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
