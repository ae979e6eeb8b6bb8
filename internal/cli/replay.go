package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fjvbn2003/fingerscore/internal/logging"
	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <sport> <points>",
		Short: "Feed a point sequence through the live scoreboard",
		Long: `Replay feeds a sequence of events through the live scoreboard and prints
the final state.

Events: A or B awards a point (a game in tennis) to that side, u undoes the last
set boundary, r resets the match. Spaces, commas and dots are ignored, so
"AAAA BBB, u" is the same as "AAAABBBu".

Scoring a point after the match is complete is an error.`,
		Example: `  scorecheck replay table-tennis AAAAAAAAAAA
  scorecheck replay tennis "AAAAAA AAAAAA" --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, cmd, args[0], args[1])
		},
	}
}

func runReplay(opts *RootOptions, cmd *cobra.Command, sportArg, events string) error {
	p, err := profileArg(sportArg)
	if err != nil {
		return err
	}
	log := opts.logger(cmd)

	state, err := scoring.NewLiveState(p.Sport())
	if err != nil {
		return WrapExitError(ExitCommandError, "start", err)
	}

	step := 0
	for _, ev := range events {
		if strings.ContainsRune(" \t,.", ev) {
			continue
		}
		step++
		switch ev {
		case 'A', 'a', 'B', 'b':
			side := scoring.SideA
			if ev == 'B' || ev == 'b' {
				side = scoring.SideB
			}
			next, outcome, err := state.AwardPoint(side)
			if err != nil {
				return WrapExitError(ExitInvalid, fmt.Sprintf("event %d (%c)", step, ev), err)
			}
			state = next
			log.Debug("point", "step", step, "side", side, "outcome", outcome,
				"set", state.SetNumber(), "current", fmt.Sprintf("%d-%d", state.Current.A, state.Current.B))
		case 'u', 'U':
			state = state.Undo()
			log.Debug("undo", "step", step, "set", state.SetNumber())
		case 'r', 'R':
			state = state.Reset()
			log.Debug("reset", "step", step)
		default:
			return NewExitError(ExitCommandError, fmt.Sprintf("event %d: unknown event %q (want A, B, u or r)", step, ev))
		}
	}
	logging.Info(log, "replay finished", logging.FieldSport, state.Sport, "events", step)

	out := printer{format: opts.Format, w: cmd.OutOrStdout()}
	if err := out.print(state, func(w io.Writer) { writeState(w, state) }); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return nil
}

func writeState(w io.Writer, s scoring.LiveState) {
	fmt.Fprintf(w, "%s %s\n", s.Sport, s.Status)
	for i, set := range s.Sets {
		fmt.Fprintf(w, "  set %d: %d-%d\n", i+1, set.A, set.B)
	}
	if s.Status == scoring.StatusInProgress {
		fmt.Fprintf(w, "  set %d: %d-%d (in play)\n", s.SetNumber(), s.Current.A, s.Current.B)
	}
	fmt.Fprintf(w, "sets %d-%d", s.SetsWonA, s.SetsWonB)
	if s.Winner != scoring.SideNone {
		fmt.Fprintf(w, ", winner %s", s.Winner)
	}
	fmt.Fprintln(w)
}
