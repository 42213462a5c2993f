// Package report renders release check results as a fixed-width text table.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/naka-gawa/check-versions/internal/domain"
)

const (
	repoWidth      = 40
	versionWidth   = 20
	publishedWidth = 25
	separatorWidth = 90
)

// Banner is printed before any repository is checked.
const Banner = "Checking latest versions of included programs..."

// WriteTable writes the header, one row per result in order, and the summary.
func WriteTable(w io.Writer, results []domain.RepoResult) error {
	if err := writeRow(w, "Repository", "Latest Version", "Published"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("=", separatorWidth)); err != nil {
		return err
	}
	for _, r := range results {
		version, published := cells(r.Release)
		if err := writeRow(w, r.Repo.RepoSegment(), version, published); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n✓ Version check complete! Found %d repositories.\n", len(results))
	return err
}

func cells(info domain.ReleaseInfo) (version, published string) {
	switch info.Status {
	case domain.StatusFound:
		published = info.PublishedDate
		if published == "" {
			published = domain.DateUnknown
		}
		return info.TagVersion, published
	case domain.StatusError:
		return "ERROR", info.Message
	default:
		return "N/A", "N/A"
	}
}

func writeRow(w io.Writer, repo, version, published string) error {
	_, err := fmt.Fprintf(w, "%-*s %-*s %-*s\n",
		repoWidth, repo, versionWidth, version, publishedWidth, published)
	return err
}
