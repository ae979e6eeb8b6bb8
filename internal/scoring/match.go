package scoring

import "fmt"

// MatchResult is the ordered list of sets of one match.
type MatchResult struct {
	Sets []SetResult `json:"sets"`
}

// SetsWon counts the sets each side took. Tied or empty sets count for nobody.
func (m MatchResult) SetsWon() (a, b int) {
	for _, s := range m.Sets {
		switch s.Winner() {
		case SideA:
			a++
		case SideB:
			b++
		}
	}
	return a, b
}

// Winner returns the side that reached the profile's set target, if any.
func (m MatchResult) Winner(p Profile) Side {
	a, b := m.SetsWon()
	switch {
	case a >= p.SetsToWinMatch() && a > b:
		return SideA
	case b >= p.SetsToWinMatch() && b > a:
		return SideB
	}
	return SideNone
}

// ValidateMatch checks that the set totals describe a finished match: one side has
// reached the target and no more than MaxSets were played.
//
// Both sides reaching the target always exceeds MaxSets, so the second check also
// rules out two winners.
func ValidateMatch(p Profile, setsWonA, setsWonB int) Result {
	if setsWonA < 0 || setsWonB < 0 {
		return matchInvalid("set counts cannot be negative")
	}
	if max(setsWonA, setsWonB) < p.SetsToWinMatch() {
		return matchInvalid("the winner must take at least %d sets", p.SetsToWinMatch())
	}
	if setsWonA+setsWonB > p.MaxSets() {
		return matchInvalid("too many sets: at most %d sets can be played", p.MaxSets())
	}
	return ok()
}

// ValidateSets runs the full check a match submission goes through. Sets that were
// never played (0-0) are skipped, every other set must be a legal finished set, no
// set may follow the one that decided the match, and the totals must pass
// ValidateMatch.
func ValidateSets(p Profile, sets []SetResult) Result {
	var played, wonA, wonB int
	for i, s := range sets {
		if s.Empty() {
			continue
		}
		if r := ValidateSet(p, s.A, s.B); !r.Valid {
			r.Error = fmt.Sprintf("set %d: %s", i+1, r.Error)
			return r
		}
		if wonA >= p.SetsToWinMatch() || wonB >= p.SetsToWinMatch() {
			return matchInvalid("set %d was played after the match was decided", i+1)
		}
		if s.Winner() == SideA {
			wonA++
		} else {
			wonB++
		}
		played++
	}
	if played == 0 {
		return matchInvalid("no sets were played")
	}
	return ValidateMatch(p, wonA, wonB)
}
