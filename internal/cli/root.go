// Package cli implements scorecheck, the command line front end to the scoring
// rules. It is meant for operators and for checking imported results in bulk.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/fjvbn2003/fingerscore/internal/logging"
)

// RootOptions holds the global flags shared by every subcommand.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand builds the scorecheck command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "scorecheck",
		Short: "Check set and match scores against the sport rules",
		Long: `scorecheck validates finished set and match scores for table tennis,
tennis and badminton, replays point sequences through the live scoreboard, and
checks YAML batches of recorded matches.

Exit status is 0 when everything is valid, 1 when a score is invalid and 2 when
the command itself could not run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log each step to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewFileCommand(opts))

	return cmd
}

// logger returns a stderr logger that is quiet unless --verbose was given.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := "warn"
	if o.Verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.Config{Level: level, Format: "text", Output: cmd.ErrOrStderr()})
}
