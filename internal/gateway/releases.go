// Package gateway resolves the latest release of a GitHub repository by
// following the public releases/latest redirect, without using the API.
package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/naka-gawa/check-versions/internal/domain"
)

var (
	tagRe      = regexp.MustCompile(`/releases/tag/([^"']+)`)
	datetimeRe = regexp.MustCompile(`datetime="([^"]+)"`)
)

// ReleaseFetcher defines the behavior of a gateway for looking up releases.
// Implementations never fail: every outcome is encoded in the ReleaseInfo.
type ReleaseFetcher interface {
	FetchLatest(ctx context.Context, repoURL string) domain.ReleaseInfo
}

// Settings configures a ReleaseGateway.
type Settings struct {
	// BaseURL is the GitHub web origin, e.g. "https://github.com".
	BaseURL   string
	UserAgent string
	// Timeout applies to each HTTP attempt separately.
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// ReleaseGateway is the concrete implementation of the ReleaseFetcher interface.
type ReleaseGateway struct {
	client     *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	backoff    time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	logger     *log.Logger
}

// NewReleaseGateway is a constructor that creates a new instance of ReleaseGateway.
func NewReleaseGateway(s Settings, logger *log.Logger) *ReleaseGateway {
	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: s.Timeout}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ReleaseGateway{
		client:     client,
		baseURL:    strings.TrimRight(s.BaseURL, "/"),
		userAgent:  s.UserAgent,
		maxRetries: s.MaxRetries,
		backoff:    s.Backoff,
		sleep:      sleepContext,
		logger:     logger,
	}
}

// FetchLatest looks up the latest release of the repository at repoURL.
// A 404 yields NotFound immediately. Other HTTP and network failures are
// retried up to maxRetries times with a fixed pause in between.
func (g *ReleaseGateway) FetchLatest(ctx context.Context, repoURL string) domain.ReleaseInfo {
	owner, repo, ok := splitRepoURL(repoURL)
	if !ok {
		return domain.NotFound()
	}
	latestURL := fmt.Sprintf("%s/%s/%s/releases/latest", g.baseURL, owner, repo)

	var info domain.ReleaseInfo
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Printf("  Retrying %s/%s (attempt %d/%d)...\n", owner, repo, attempt+1, g.maxRetries+1)
			if err := g.sleep(ctx, g.backoff); err != nil {
				return domain.Failed(err.Error())
			}
		}
		var retry bool
		info, retry = g.attempt(ctx, latestURL)
		if !retry {
			break
		}
	}
	g.logger.Printf("Fetched %s/%s: %s\n", owner, repo, info.Status)
	return info
}

// attempt performs one GET and reports whether the failure is worth retrying.
func (g *ReleaseGateway) attempt(ctx context.Context, latestURL string) (domain.ReleaseInfo, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, latestURL, nil)
	if err != nil {
		return domain.Failed(err.Error()), false
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Failed(ctxErr.Error()), false
		}
		g.logger.Printf("  GET %s failed: %v\n", latestURL, err)
		return domain.Failed("Network error"), true
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NotFound(), false
	}
	if resp.StatusCode >= http.StatusBadRequest {
		g.logger.Printf("  GET %s returned status %d\n", latestURL, resp.StatusCode)
		return domain.Failed(fmt.Sprintf("HTTP error %d", resp.StatusCode)), true
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Failed(ctxErr.Error()), false
		}
		return domain.Failed("Network error"), true
	}

	// The final URL after redirects is .../releases/tag/<version>.
	finalURL := resp.Request.URL.String()
	m := tagRe.FindStringSubmatch(finalURL)
	if m == nil {
		return domain.NotFound(), false
	}
	return domain.Found(m[1], publishedDate(string(body)), finalURL), false
}

// publishedDate returns the date part of the first datetime attribute in html.
func publishedDate(html string) string {
	m := datetimeRe.FindStringSubmatch(html)
	if m == nil {
		return domain.DateUnknown
	}
	date, _, _ := strings.Cut(m[1], "T")
	return date
}

// splitRepoURL returns the last two path segments of a repository URL.
func splitRepoURL(repoURL string) (owner, repo string, ok bool) {
	parts := strings.Split(strings.TrimRight(repoURL, "/"), "/")
	if len(parts) < 2 {
		return "", "", false
	}
	owner, repo = parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
