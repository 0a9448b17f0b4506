package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ghkeep/ghkeep/config"
	"github.com/ghkeep/ghkeep/internal/ghclient"
	"github.com/ghkeep/ghkeep/internal/log"
	"github.com/ghkeep/ghkeep/internal/report"
	"github.com/ghkeep/ghkeep/internal/store"
	"github.com/ghkeep/ghkeep/internal/tracker"
)

// NewCmdUpdate creates the update command.
func NewCmdUpdate(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check configured repositories for changes and refresh the store",
		Long: `Re-fetch every configured repository with its stored filters, classify
each issue as new, updated or unchanged, persist the new and updated ones
and write a change report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "number of repositories to process concurrently")
	return cmd
}

func runUpdate(ctx context.Context, opts *Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if len(cfg.Repositories) == 0 {
		return fmt.Errorf("no repositories configured in %s", opts.ConfigPath)
	}

	client, err := ghclient.NewClient(ctx, "")
	if err != nil {
		return err
	}
	st, err := store.NewStore(opts.storageDir(cfg))
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		results = make(map[string]report.Changes, len(cfg.Repositories))
		errs    []error
	)
	record := func(repo string, changes report.Changes, err error) {
		mu.Lock()
		defer mu.Unlock()
		results[repo] = changes
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", repo, err))
		}
	}

	// Repositories are independent stores, so they may run in parallel;
	// all loads and writes for one repository stay on one goroutine.
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for _, repo := range cfg.Repositories {
		repo := repo
		g.Go(func() error {
			changes, err := updateRepo(ctx, client, st, repo)
			if err != nil {
				log.Error("update failed", "repo", repo, "error", err)
			}
			record(repo, changes, err)
			return nil
		})
	}
	_ = g.Wait()

	path, err := report.WriteFile(cfg.ReportsDir, results)
	if err != nil {
		errs = append(errs, err)
	} else {
		fmt.Printf("Report saved to: %s\n", path)
	}

	report.PrintSummary(results, os.Stdout)
	return errors.Join(errs...)
}

// updateRepo runs one repository's sync pass: load stored filters and
// metadata, fetch the current issue set, classify, persist new and updated
// issues. A failure leaves an empty classification so downstream reporting
// stays total over the configured repositories.
func updateRepo(ctx context.Context, client *ghclient.Client, st *store.Store, repo string) (report.Changes, error) {
	meta, err := st.LoadMetadata(repo)
	if err != nil {
		return report.Changes{}, err
	}

	current, err := client.FetchIssues(ctx, repo, meta.Filters)
	if err != nil {
		return report.Changes{}, err
	}

	cl := tracker.Classify(meta, current)
	deleted := tracker.Deleted(meta, current)

	for i := range cl.New {
		if _, err := st.SaveIssue(repo, &cl.New[i]); err != nil {
			return report.Changes{}, err
		}
	}
	for i := range cl.Updated {
		if _, err := st.SaveIssue(repo, &cl.Updated[i].Issue); err != nil {
			return report.Changes{}, err
		}
	}

	log.Info("checked repository",
		"repo", repo,
		"new", len(cl.New),
		"updated", len(cl.Updated),
		"unchanged", len(cl.Unchanged),
		"missing", len(deleted))

	return report.Changes{Classification: cl, Deleted: deleted}, nil
}
