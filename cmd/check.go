package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/naka-gawa/check-versions/internal/config"
	"github.com/naka-gawa/check-versions/internal/extractor"
	"github.com/naka-gawa/check-versions/internal/gateway"
	"github.com/naka-gawa/check-versions/internal/report"
	"github.com/naka-gawa/check-versions/internal/usecase"
	"github.com/spf13/cobra"
)

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	includeWorkflow, _ := cmd.Flags().GetBool("include-workflow")

	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if cfg.Verbose {
		logger.SetOutput(os.Stderr)
	}

	return run(cmd.Context(), cfg, includeWorkflow, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// run executes the whole pipeline: extract, filter, fetch, report.
func run(ctx context.Context, cfg *config.Config, includeWorkflow bool, stdout, stderr io.Writer, logger *log.Logger) error {
	fmt.Fprintf(stdout, "%s\n\n", report.Banner)

	ext := extractor.New(cfg.SelfRepo, logger)
	repos, err := ext.LoadReadme(cfg.ReadmePath)
	if err != nil {
		return err
	}
	if includeWorkflow {
		repos = usecase.Merge(repos, ext.LoadWorkflow(cfg.WorkflowPath, stderr))
	}
	if len(repos) == 0 {
		fmt.Fprintln(stdout, "No GitHub repositories found")
		return nil
	}

	filter := usecase.ToolFilter{ToolMarker: cfg.ToolMarker, OrgMarker: cfg.OrgMarker, SelfRepo: cfg.SelfRepo}
	tools := filter.SelectTools(repos)
	if len(tools) == 0 {
		fmt.Fprintln(stdout, "No tool repositories found")
		return nil
	}

	// Inject dependencies and run the main business logic.
	releaseGateway := gateway.NewReleaseGateway(gateway.Settings{
		BaseURL:    cfg.BaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.Backoff,
	}, logger)
	checker := usecase.NewChecker(releaseGateway, cfg.Concurrency, logger)
	results := checker.Check(ctx, tools)

	if err := report.WriteTable(stdout, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
