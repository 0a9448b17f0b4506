package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ghkeep/ghkeep/config"
	"github.com/ghkeep/ghkeep/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "ghkeep",
		Short: "Mirror GitHub issues into a local markdown store",
		Long: `ghkeep keeps a local copy of GitHub issues as markdown files and
tracks what changed between syncs: new issues, updated issues and issues
that disappeared from the remote.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Initialize(opts.Verbosity, os.Stderr)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.StorageDir, "storage", "", "override the storage directory")
	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "increase verbosity (-v, -vv)")

	rootCmd.AddCommand(NewCmdSync(opts))
	rootCmd.AddCommand(NewCmdUpdate(opts))
	rootCmd.AddCommand(NewCmdStatus(opts))
	rootCmd.AddCommand(NewCmdDiscover(opts))
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
