package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

// MatchEntry is one recorded match in a batch file:
//
//	- name: club night, board 3
//	  sport: table-tennis
//	  sets: [[11, 9], [9, 11], [11, 7], [11, 5]]
type MatchEntry struct {
	Name  string  `yaml:"name"`
	Sport string  `yaml:"sport"`
	Sets  [][]int `yaml:"sets"`
}

// EntryReport is the verdict for one MatchEntry.
type EntryReport struct {
	Name     string        `json:"name"`
	Sport    scoring.Sport `json:"sport,omitempty"`
	SetsWonA int           `json:"sets_won_a"`
	SetsWonB int           `json:"sets_won_b"`
	Winner   scoring.Side  `json:"winner,omitempty"`
	scoring.Result
}

// NewFileCommand creates the file command.
func NewFileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "file <matches.yaml>",
		Short: "Validate every match in a YAML batch file",
		Long: `Validate every match in a YAML list of {name, sport, sets} entries, where
sets is a list of [a, b] pairs. Unplayed 0-0 sets are ignored. All entries are
checked even when an earlier one fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(rootOpts, cmd, args[0])
		},
	}
}

func runFile(opts *RootOptions, cmd *cobra.Command, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read batch file", err)
	}
	var entries []MatchEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return WrapExitError(ExitCommandError, "parse batch file", err)
	}
	if len(entries) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s contains no matches", path))
	}

	log := opts.logger(cmd)
	reports := make([]EntryReport, 0, len(entries))
	invalid := 0
	for i, e := range entries {
		r := checkEntry(e)
		if r.Name == "" {
			r.Name = fmt.Sprintf("#%d", i+1)
		}
		if !r.Valid {
			invalid++
		}
		log.Debug("checked", "entry", r.Name, "valid", r.Valid)
		reports = append(reports, r)
	}

	out := printer{format: opts.Format, w: cmd.OutOrStdout()}
	if err := out.print(reports, func(w io.Writer) {
		for _, r := range reports {
			fmt.Fprintf(w, "%s: %s", r.Name, describe(r.Result))
			if r.Valid {
				fmt.Fprintf(w, ", sets %d-%d, winner %s", r.SetsWonA, r.SetsWonB, r.Winner)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%d of %d matches valid\n", len(reports)-invalid, len(reports))
	}); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	if invalid > 0 {
		return NewExitError(ExitInvalid, fmt.Sprintf("%d of %d matches invalid", invalid, len(reports)))
	}
	return nil
}

func checkEntry(e MatchEntry) EntryReport {
	r := EntryReport{Name: e.Name}
	p, err := profileArg(e.Sport)
	if err != nil {
		r.Result = scoring.Result{Kind: scoring.KindMatchScoreInvalid, Error: fmt.Sprintf("unknown sport %q", e.Sport)}
		return r
	}
	r.Sport = p.Sport()

	sets := make([]scoring.SetResult, 0, len(e.Sets))
	for i, pair := range e.Sets {
		if len(pair) != 2 {
			r.Result = scoring.Result{Kind: scoring.KindSetScoreInvalid, Error: fmt.Sprintf("set %d: want [a, b], got %v", i+1, pair)}
			return r
		}
		sets = append(sets, scoring.SetResult{A: pair[0], B: pair[1]})
	}

	res := scoring.MatchResult{Sets: sets}
	r.SetsWonA, r.SetsWonB = res.SetsWon()
	r.Result = scoring.ValidateSets(p, sets)
	if r.Valid {
		r.Winner = res.Winner(p)
	}
	return r
}
