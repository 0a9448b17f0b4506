package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ghkeep/ghkeep/config"
	"github.com/ghkeep/ghkeep/internal/model"
)

// Options holds the shared command-line options for the ghkeep CLI.
type Options struct {
	ConfigPath string
	StorageDir string // overrides the configured storage directory
	Verbosity  int
	Workers    int

	// Issue filter flags (sync)
	Author    string
	Assignee  string
	State     string
	Labels    []string
	Milestone string
	Since     string
	Until     string
}

// Filters builds and validates the filter configuration from the flags.
func (o *Options) Filters() (model.Filters, error) {
	f := model.Filters{
		Author:    o.Author,
		Assignee:  o.Assignee,
		State:     o.State,
		Labels:    o.Labels,
		Milestone: o.Milestone,
		Since:     o.Since,
		Until:     o.Until,
	}
	if err := f.Validate(); err != nil {
		return model.Filters{}, err
	}
	return f, nil
}

// storageDir returns the effective storage directory, preferring the flag
// over the configuration.
func (o *Options) storageDir(cfg *config.Config) string {
	if o.StorageDir != "" {
		return o.StorageDir
	}
	return cfg.StorageDir
}

// addFilterFlags registers the issue filter flags on a command.
func addFilterFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVar(&opts.Author, "author", "", "only issues created by this user")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "only issues assigned to this user")
	cmd.Flags().StringVar(&opts.State, "state", "", "issue state: open, closed or all (default all)")
	cmd.Flags().StringSliceVar(&opts.Labels, "labels", nil, "only issues carrying all of these labels")
	cmd.Flags().StringVar(&opts.Milestone, "milestone", "", "only issues in this milestone")
	cmd.Flags().StringVar(&opts.Since, "since", "", "only issues created on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "only issues created on or before this date (YYYY-MM-DD)")
}
