package scoring

import (
	"errors"
	"fmt"
)

// Side is one of the two players (or pairs) in a match.
type Side string

const (
	SideNone Side = ""
	SideA    Side = "A"
	SideB    Side = "B"
)

// Status of a live match.
type Status string

const (
	StatusInProgress    Status = "IN_PROGRESS"
	StatusMatchComplete Status = "MATCH_COMPLETE"
)

// Outcome describes what a single AwardPoint did. OutcomeSetComplete is the
// transient set-complete step: the returned state is already in the next set.
type Outcome string

const (
	OutcomePoint         Outcome = "POINT"
	OutcomeSetComplete   Outcome = "SET_COMPLETE"
	OutcomeMatchComplete Outcome = "MATCH_COMPLETE"
)

var (
	ErrMatchComplete = errors.New("match is already complete")
	ErrInvalidSide   = errors.New("side must be A or B")
	ErrInvalidState  = errors.New("invalid live state")
)

// LiveState is the scoreboard of one match being played. It is a value: every
// transition returns a new state and leaves the receiver untouched, so a caller can
// keep the previous value around or hand the state to a client and get it back.
type LiveState struct {
	Sport    Sport       `json:"sport"`
	Status   Status      `json:"status"`
	Sets     []SetResult `json:"sets"`
	Current  SetResult   `json:"current"`
	SetsWonA int         `json:"sets_won_a"`
	SetsWonB int         `json:"sets_won_b"`
	Winner   Side        `json:"winner,omitempty"`
}

// NewLiveState returns the initial scoreboard for sport.
func NewLiveState(sport Sport) (LiveState, error) {
	if _, err := ProfileFor(sport); err != nil {
		return LiveState{}, err
	}
	return LiveState{Sport: sport, Status: StatusInProgress, Sets: []SetResult{}}, nil
}

// SetNumber is the 1-based number of the set currently being played. After the
// match is over it is the number of the deciding set.
func (s LiveState) SetNumber() int {
	if s.Status == StatusMatchComplete {
		return len(s.Sets)
	}
	return len(s.Sets) + 1
}

// AwardPoint gives one unit (point, or game in tennis) to side. Once the match is
// complete every call returns ErrMatchComplete and the same state.
func (s LiveState) AwardPoint(side Side) (LiveState, Outcome, error) {
	if side != SideA && side != SideB {
		return s, "", ErrInvalidSide
	}
	if s.Status == StatusMatchComplete {
		return s, "", ErrMatchComplete
	}
	p, err := ProfileFor(s.Sport)
	if err != nil {
		return s, "", err
	}

	next := s.clone()
	if side == SideA {
		next.Current.A++
	} else {
		next.Current.B++
	}

	setWinner := liveSetWinner(p, next.Current)
	if setWinner == SideNone {
		return next, OutcomePoint, nil
	}

	next.Sets = append(next.Sets, next.Current)
	next.Current = SetResult{}
	if setWinner == SideA {
		next.SetsWonA++
	} else {
		next.SetsWonB++
	}

	switch {
	case next.SetsWonA >= p.SetsToWinMatch():
		next.Winner = SideA
	case next.SetsWonB >= p.SetsToWinMatch():
		next.Winner = SideB
	default:
		return next, OutcomeSetComplete, nil
	}
	next.Status = StatusMatchComplete
	return next, OutcomeMatchComplete, nil
}

// Undo only steps back across a set boundary: when nothing has been scored in the
// current set, the previous set is reopened one unit before it ended (the set
// winner's last point or game comes off) and its win is taken off the tally. Play
// then continues from a score that was actually on the board. Point-level undo is
// not supported, and a finished match is left as it is.
func (s LiveState) Undo() LiveState {
	if s.Status == StatusMatchComplete || !s.Current.Empty() || len(s.Sets) == 0 {
		return s
	}
	next := s.clone()
	last := next.Sets[len(next.Sets)-1]
	next.Sets = next.Sets[:len(next.Sets)-1]
	w := last.Winner()
	if w == SideA {
		next.SetsWonA--
	} else {
		next.SetsWonB--
	}
	next.Current = last.without(w)
	return next
}

// Reset returns the initial state for the same sport.
func (s LiveState) Reset() LiveState {
	return LiveState{Sport: s.Sport, Status: StatusInProgress, Sets: []SetResult{}}
}

// Check verifies that a state received from outside (for example from a client
// that carries the scoreboard between requests) is one this machine could have
// produced: every recorded set stopped at its first finishing score, and the
// current set holds a score reachable point by point from 0-0.
func (s LiveState) Check() error {
	p, err := ProfileFor(s.Sport)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	var wonA, wonB int
	for i, set := range s.Sets {
		w := liveSetWinner(p, set)
		if w == SideNone {
			return fmt.Errorf("%w: set %d is not finished", ErrInvalidState, i+1)
		}
		if !inPlay(p, set.without(w)) {
			return fmt.Errorf("%w: set %d runs past its finishing score", ErrInvalidState, i+1)
		}
		if wonA >= p.SetsToWinMatch() || wonB >= p.SetsToWinMatch() {
			return fmt.Errorf("%w: set %d follows the deciding set", ErrInvalidState, i+1)
		}
		if w == SideA {
			wonA++
		} else {
			wonB++
		}
	}
	if wonA != s.SetsWonA || wonB != s.SetsWonB {
		return fmt.Errorf("%w: set tally does not match the recorded sets", ErrInvalidState)
	}

	decided := wonA >= p.SetsToWinMatch() || wonB >= p.SetsToWinMatch()
	switch s.Status {
	case StatusInProgress:
		if decided || s.Winner != SideNone {
			return fmt.Errorf("%w: match is decided but still in progress", ErrInvalidState)
		}
		if !inPlay(p, s.Current) {
			return fmt.Errorf("%w: current set score %d-%d cannot occur in play",
				ErrInvalidState, s.Current.A, s.Current.B)
		}
	case StatusMatchComplete:
		if !decided || !s.Current.Empty() {
			return fmt.Errorf("%w: completed match has no decided result", ErrInvalidState)
		}
		if want := (MatchResult{Sets: s.Sets}).Winner(p); s.Winner != want {
			return fmt.Errorf("%w: winner does not match the sets", ErrInvalidState)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidState, s.Status)
	}
	return nil
}

func (s LiveState) clone() LiveState {
	next := s
	next.Sets = make([]SetResult, len(s.Sets), len(s.Sets)+1)
	copy(next.Sets, s.Sets)
	return next
}

// inPlay reports whether set is a mid-set score: not finished, and reachable from
// 0-0 without passing a finishing score. Walking back from the leader keeps the
// scores as close as possible, so if that path crosses a finished score every
// other path does too.
func inPlay(p Profile, set SetResult) bool {
	limit := liveCap(p)
	if set.A < 0 || set.B < 0 || set.A > limit || set.B > limit {
		return false
	}
	for !set.Empty() {
		if liveSetWinner(p, set) != SideNone {
			return false
		}
		if set.A >= set.B {
			set.A--
		} else {
			set.B--
		}
	}
	return true
}

// without takes the last unit off side's score.
func (s SetResult) without(side Side) SetResult {
	if side == SideA {
		s.A--
	} else {
		s.B--
	}
	return s
}

// liveCap is the highest unit count one side can hold on the live scoreboard.
func liveCap(p Profile) int {
	switch p := p.(type) {
	case RallyProfile:
		return p.HardCap
	case TennisProfile:
		return p.GamesPerSet + 1
	}
	return 0
}

// liveSetWinner is the incremental form of ValidateSet used while points are being
// scored.
//
// Tennis here is an approximation carried over from the scoreboard: each unit is a
// whole game, a set ends at 6 games with a 2-game lead, and 7-6 ends it as if a
// tiebreak had been played. There is no deuce/advantage inside a game and no
// tiebreak point counting. Submitted results are still checked with the exact rules
// in ValidateSet.
func liveSetWinner(p Profile, s SetResult) Side {
	diff := s.A - s.B
	switch p := p.(type) {
	case RallyProfile:
		if s.A >= p.PointsToWinSet && diff >= p.MinWinMargin {
			return SideA
		}
		if s.B >= p.PointsToWinSet && -diff >= p.MinWinMargin {
			return SideB
		}
		if s.A == p.HardCap && diff > 0 {
			return SideA
		}
		if s.B == p.HardCap && diff < 0 {
			return SideB
		}
	case TennisProfile:
		if s.A >= p.GamesPerSet && diff >= p.MinWinMargin {
			return SideA
		}
		if s.B >= p.GamesPerSet && -diff >= p.MinWinMargin {
			return SideB
		}
		if s.A == p.GamesPerSet+1 && s.B == p.GamesPerSet {
			return SideA
		}
		if s.B == p.GamesPerSet+1 && s.A == p.GamesPerSet {
			return SideB
		}
	}
	return SideNone
}
