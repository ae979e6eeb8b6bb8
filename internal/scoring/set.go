package scoring

// SetResult is a pair of unit counts for one set: points in table tennis and
// badminton, games in tennis.
type SetResult struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Empty reports a set that has not been played yet. Forms submit these as
// placeholders and callers skip them.
func (s SetResult) Empty() bool { return s.A == 0 && s.B == 0 }

// Winner returns the side with more units, or SideNone for a tie.
func (s SetResult) Winner() Side {
	switch {
	case s.A > s.B:
		return SideA
	case s.B > s.A:
		return SideB
	}
	return SideNone
}

// ValidateSet checks that (a, b) is a legal completed set for the profile.
func ValidateSet(p Profile, a, b int) Result {
	if a < 0 || b < 0 {
		return setInvalid("scores cannot be negative")
	}
	win, lose := max(a, b), min(a, b)

	switch p := p.(type) {
	case RallyProfile:
		if win < p.PointsToWinSet {
			return setInvalid("winning score must reach at least %d points", p.PointsToWinSet)
		}
		if win == lose {
			return setInvalid("a set cannot end in a tie")
		}
		if win-lose < p.MinWinMargin && win != p.HardCap {
			return setInvalid("must win by at least %d points", p.MinWinMargin)
		}
		return ok()
	case TennisProfile:
		// 6-0 through 6-4, then 7-5, or 7-6 after a tiebreak.
		if win == p.GamesPerSet && lose <= p.GamesPerSet-p.MinWinMargin {
			return ok()
		}
		if win == p.GamesPerSet+1 && (lose == p.GamesPerSet-1 || lose == p.GamesPerSet) {
			return ok()
		}
		return setInvalid("invalid tennis set score %d-%d", a, b)
	}
	return setInvalid("unsupported sport profile")
}
