package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ghkeep/ghkeep/config"
	"github.com/ghkeep/ghkeep/internal/format"
	"github.com/ghkeep/ghkeep/internal/model"
	"github.com/ghkeep/ghkeep/internal/store"
)

// NewCmdStatus creates the status command.
func NewCmdStatus(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tracked repositories and stored issue counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts)
		},
	}
}

func runStatus(opts *Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	st, err := store.NewStore(opts.storageDir(cfg))
	if err != nil {
		return err
	}

	if len(cfg.Repositories) == 0 {
		fmt.Println("No repositories configured.")
		return nil
	}

	fmt.Printf("Tracking %d repositories:\n\n", len(cfg.Repositories))

	total := 0
	for _, repo := range cfg.Repositories {
		numbers, err := st.IssueNumbers(repo)
		if err != nil {
			return fmt.Errorf("%s: %w", repo, err)
		}
		total += len(numbers)

		fmt.Printf("  %s %d issues\n", format.PadRight(format.Truncate(repo, 40), 42), len(numbers))
		if len(numbers) == 0 {
			continue
		}

		meta, err := st.LoadMetadata(repo)
		if err != nil {
			return err
		}

		open, closed := 0, 0
		for _, entry := range meta.Issues {
			switch entry.State {
			case model.StateOpen:
				open++
			case model.StateClosed:
				closed++
			}
		}
		fmt.Printf("    - Open: %d, Closed: %d\n", open, closed)

		if parts := meta.Filters.Describe(); len(parts) > 0 {
			fmt.Printf("    - Filters: %s\n", strings.Join(parts, ", "))
		}
	}

	fmt.Printf("\nTotal issues tracked: %d\n", total)
	fmt.Printf("Storage location: %s\n", st.BaseDir())
	return nil
}
