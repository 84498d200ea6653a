package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ffscope.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ffscope",
		Short: "Explore the object surface of ESPN fantasy football leagues",
		Long: `ffscope loads ESPN fantasy football leagues and reports what each object
of the league exposes: callable members, data members with their types,
values, lengths and key previews.

Private leagues need the espn_s2 and SWID cookies of a signed-in user.
Set them in the configuration file (ffscope init) or with the ESPN_S2 and
ESPN_SWID environment variables.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	// Add subcommands
	cmd.AddCommand(NewExploreCmd())
	cmd.AddCommand(NewStandingsCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}
