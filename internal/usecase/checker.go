// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"io"
	"log"

	"github.com/naka-gawa/check-versions/internal/domain"
	"github.com/naka-gawa/check-versions/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// Checker is the use case for looking up the latest release of each
// repository. Lookups are independent; results keep the input order.
type Checker struct {
	fetcher     gateway.ReleaseFetcher
	concurrency int
	logger      *log.Logger
}

// NewChecker creates a new Checker instance. A concurrency below 1 is
// treated as 1, which runs lookups one after another.
func NewChecker(fetcher gateway.ReleaseFetcher, concurrency int, logger *log.Logger) *Checker {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Checker{
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Check fetches release information for every repository.
func (c *Checker) Check(ctx context.Context, repos []domain.RepoReference) []domain.RepoResult {
	c.logger.Printf("Usecase: Checking %d repositories...\n", len(repos))

	results := make([]domain.RepoResult, len(repos))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)

	for i, repo := range repos {
		i, repo := i, repo
		eg.Go(func() error {
			results[i] = domain.RepoResult{
				Repo:    repo,
				Release: c.fetcher.FetchLatest(egCtx, repo.URL),
			}
			return nil
		})
	}
	// Fetchers encode failures in ReleaseInfo, so Wait never reports an error.
	_ = eg.Wait()

	c.logger.Println("Usecase: Check complete.")
	return results
}
