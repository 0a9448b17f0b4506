package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghkeep/ghkeep/config"
	"github.com/ghkeep/ghkeep/internal/ghclient"
	"github.com/ghkeep/ghkeep/internal/log"
	"github.com/ghkeep/ghkeep/internal/store"
)

// NewCmdSync creates the sync command.
func NewCmdSync(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [owner/repo...]",
		Short: "Fetch and store issues for repositories",
		Long: `Fetch issues for the given repositories (or the configured ones when
none are given), write each issue as a markdown document and record its
fingerprint for later change detection. Filter flags are persisted per
repository and reapplied by update.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), opts, args)
		},
	}
	addFilterFlags(cmd, opts)
	return cmd
}

func runSync(ctx context.Context, opts *Options, args []string) error {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return err
	}

	repos := args
	if len(repos) == 0 {
		repos = cfg.Repositories
	}
	if len(repos) == 0 {
		return fmt.Errorf("no repositories given and none configured in %s", opts.ConfigPath)
	}

	filters, err := opts.Filters()
	if err != nil {
		return err
	}

	client, err := ghclient.NewClient(ctx, "")
	if err != nil {
		return err
	}
	st, err := store.NewStore(opts.storageDir(cfg))
	if err != nil {
		return err
	}

	var errs []error
	total := 0
	for _, repo := range repos {
		log.Progress("fetching %s...", repo)
		issues, err := client.FetchIssues(ctx, repo, filters)
		if err != nil {
			log.Error("fetch failed", "repo", repo, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", repo, err))
			continue
		}
		log.ProgressDone()

		if !filters.IsZero() {
			if err := st.SaveFilters(repo, filters); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", repo, err))
				continue
			}
		}

		saved := 0
		for i := range issues {
			if _, err := st.SaveIssue(repo, &issues[i]); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", repo, err))
				break
			}
			saved++
		}
		total += saved
		fmt.Printf("%s: saved %d issues\n", repo, saved)
	}

	cfg.AddRepositories(repos...)
	if err := config.Save(opts.ConfigPath, cfg); err != nil {
		errs = append(errs, err)
	}

	fmt.Printf("\nTotal issues saved: %d (storage: %s)\n", total, st.BaseDir())
	return errors.Join(errs...)
}
