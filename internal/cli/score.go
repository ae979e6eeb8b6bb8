package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

// ScoreReport is the output of the set and match commands.
type ScoreReport struct {
	Sport scoring.Sport `json:"sport"`
	A     int           `json:"a"`
	B     int           `json:"b"`
	scoring.Result
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <sport> <a> <b>",
		Short: "Check that a finished set score is legal",
		Example: `  scorecheck set table-tennis 12 10
  scorecheck set badminton 30 29 --format json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(rootOpts, cmd, args, scoring.ValidateSet)
		},
	}
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "match <sport> <sets-won-a> <sets-won-b>",
		Short:   "Check that a match score (sets won by each side) is legal",
		Example: `  scorecheck match tennis 2 1`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(rootOpts, cmd, args, scoring.ValidateMatch)
		},
	}
}

func runScore(opts *RootOptions, cmd *cobra.Command, args []string, validate func(scoring.Profile, int, int) scoring.Result) error {
	p, err := profileArg(args[0])
	if err != nil {
		return err
	}
	a, err := intArg("a", args[1])
	if err != nil {
		return err
	}
	b, err := intArg("b", args[2])
	if err != nil {
		return err
	}

	report := ScoreReport{Sport: p.Sport(), A: a, B: b, Result: validate(p, a, b)}
	out := printer{format: opts.Format, w: cmd.OutOrStdout()}
	if err := out.print(report, func(w io.Writer) {
		fmt.Fprintf(w, "%s %d-%d: %s\n", report.Sport, a, b, describe(report.Result))
	}); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	if !report.Valid {
		return NewExitError(ExitInvalid, report.Error)
	}
	return nil
}

func describe(r scoring.Result) string {
	if r.Valid {
		return "valid"
	}
	return fmt.Sprintf("invalid (%s) %s", r.Kind, r.Error)
}

func profileArg(raw string) (scoring.Profile, error) {
	sport, err := scoring.ParseSport(raw)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("sport %q", raw), err)
	}
	p, err := scoring.ProfileFor(sport)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("sport %q", raw), err)
	}
	return p, nil
}

func intArg(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	return n, nil
}
