package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ghkeep/ghkeep/config"
	"github.com/ghkeep/ghkeep/internal/format"
	"github.com/ghkeep/ghkeep/internal/ghclient"
)

// NewCmdDiscover creates the discover command.
func NewCmdDiscover(opts *Options) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List repositories your account has access to",
		Long: `List all repositories the authenticated user can access, with their
open issue counts. With --save, the listed repositories are added to the
configuration file for tracking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd.Context(), opts, save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "add the discovered repositories to the configuration")
	return cmd
}

func runDiscover(ctx context.Context, opts *Options, save bool) error {
	client, err := ghclient.NewClient(ctx, "")
	if err != nil {
		return err
	}

	user, err := client.AuthenticatedUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Authenticated as %s\n\n", user)

	repos, err := client.ListRepositories(ctx)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		fmt.Println("No repositories found.")
		return nil
	}

	fmt.Printf("%s %8s  %s\n", format.PadRight("Repository", 50), "Issues", "Access")
	for _, repo := range repos {
		access := "Public"
		if repo.Private {
			access = "Private"
		}
		fmt.Printf("%s %8d  %s\n", format.PadRight(format.Truncate(repo.FullName, 50), 50), repo.OpenIssues, access)
	}

	if !save {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Printf("\nRun 'ghkeep discover --save' to add these to %s\n", opts.ConfigPath)
		}
		return nil
	}

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.FullName)
	}
	cfg.AddRepositories(names...)
	if err := config.Save(opts.ConfigPath, cfg); err != nil {
		return err
	}

	fmt.Printf("\nSaved %d repositories to %s\n", len(names), opts.ConfigPath)
	return nil
}
