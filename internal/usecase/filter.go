package usecase

import (
	"strings"

	"github.com/naka-gawa/check-versions/internal/domain"
)

// ToolFilter decides which references belong to the toolkit's own ecosystem
// of companion tools.
type ToolFilter struct {
	ToolMarker string
	OrgMarker  string
	SelfRepo   string
}

// Matches reports whether url names a companion tool repository: it contains
// the tool marker, or it contains the organization marker without being the
// hosting project itself.
func (f ToolFilter) Matches(url string) bool {
	if f.ToolMarker != "" && strings.Contains(url, f.ToolMarker) {
		return true
	}
	return f.OrgMarker != "" && strings.Contains(url, f.OrgMarker) &&
		(f.SelfRepo == "" || !strings.Contains(url, f.SelfRepo))
}

// Apply keeps only matching references, preserving order.
func (f ToolFilter) Apply(repos []domain.RepoReference) []domain.RepoReference {
	var kept []domain.RepoReference
	for _, r := range repos {
		if f.Matches(r.URL) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Merge appends extra references whose URL is not already present in base.
// Base order comes first.
func Merge(base, extra []domain.RepoReference) []domain.RepoReference {
	merged := make([]domain.RepoReference, 0, len(base)+len(extra))
	merged = append(merged, base...)
	seen := make(map[string]bool, len(base))
	for _, r := range base {
		seen[r.URL] = true
	}
	for _, r := range extra {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		merged = append(merged, r)
	}
	return merged
}

// Dedupe drops repeated URLs, keeping the first occurrence.
func Dedupe(repos []domain.RepoReference) []domain.RepoReference {
	var unique []domain.RepoReference
	seen := make(map[string]bool, len(repos))
	for _, r := range repos {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		unique = append(unique, r)
	}
	return unique
}

// SelectTools applies the tool filter and then deduplicates by URL.
func (f ToolFilter) SelectTools(repos []domain.RepoReference) []domain.RepoReference {
	return Dedupe(f.Apply(repos))
}
