// Package scoring holds the sport rules used by the club app: whether a set score
// is a legal finished set, whether a match score is a legal finished match, and the
// point-by-point state machine behind the live scoreboard.
//
// Everything in this package is pure. Nothing here touches the database, the network
// or the clock, so the same rules back the HTTP API, the CLI and the tests.
package scoring

import (
	"errors"
	"strings"
)

// Sport identifies which rule table applies to a set or match.
type Sport string

const (
	SportTableTennis Sport = "TABLE_TENNIS"
	SportTennis      Sport = "TENNIS"
	SportBadminton   Sport = "BADMINTON"
)

// ErrUnknownSport is returned when a sport identifier does not name one of the
// supported sports.
var ErrUnknownSport = errors.New("unknown sport")

// ParseSport accepts the canonical identifiers plus friendlier spellings such as
// "table tennis", "table-tennis" or "badminton".
func ParseSport(s string) (Sport, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch Sport(norm) {
	case SportTableTennis, SportTennis, SportBadminton:
		return Sport(norm), nil
	}
	return "", ErrUnknownSport
}

// Valid reports whether s is one of the supported sports.
func (s Sport) Valid() bool {
	_, err := ProfileFor(s)
	return err == nil
}

// Profile is the immutable rule table for one sport. The set of implementations is
// closed: RallyProfile and TennisProfile.
type Profile interface {
	Sport() Sport
	// SetsToWinMatch is the number of sets a side needs to take the match.
	SetsToWinMatch() int
	// MaxSets is always 2*SetsToWinMatch()-1.
	MaxSets() int
	// Unit is the word used in messages: "points" or "games".
	Unit() string

	profile()
}

// RallyProfile covers point-based sports (table tennis, badminton) where a set is
// won by reaching PointsToWinSet with a MinWinMargin lead, or by reaching HardCap
// with any lead.
type RallyProfile struct {
	Kind           Sport `json:"sport"`
	PointsToWinSet int   `json:"points_to_win_set"`
	MinWinMargin   int   `json:"min_win_margin"`
	HardCap        int   `json:"hard_cap"`
	SetsToWin      int   `json:"sets_to_win_match"`
}

func (p RallyProfile) Sport() Sport        { return p.Kind }
func (p RallyProfile) SetsToWinMatch() int { return p.SetsToWin }
func (p RallyProfile) MaxSets() int        { return 2*p.SetsToWin - 1 }
func (p RallyProfile) Unit() string        { return "points" }
func (RallyProfile) profile()              {}

// TennisProfile counts games rather than points. Sets end at GamesPerSet with a
// MinWinMargin lead, or one game later (7-5 or a 7-6 tiebreak). There is no hard cap.
type TennisProfile struct {
	GamesPerSet  int `json:"games_per_set"`
	MinWinMargin int `json:"min_win_margin"`
	SetsToWin    int `json:"sets_to_win_match"`
}

func (TennisProfile) Sport() Sport          { return SportTennis }
func (p TennisProfile) SetsToWinMatch() int { return p.SetsToWin }
func (p TennisProfile) MaxSets() int        { return 2*p.SetsToWin - 1 }
func (TennisProfile) Unit() string          { return "games" }
func (TennisProfile) profile()              {}

var (
	tableTennis = RallyProfile{Kind: SportTableTennis, PointsToWinSet: 11, MinWinMargin: 2, HardCap: 30, SetsToWin: 3}
	badminton   = RallyProfile{Kind: SportBadminton, PointsToWinSet: 21, MinWinMargin: 2, HardCap: 30, SetsToWin: 2}
	tennis      = TennisProfile{GamesPerSet: 6, MinWinMargin: 2, SetsToWin: 2}
)

// ProfileFor returns the rule table for sport.
func ProfileFor(sport Sport) (Profile, error) {
	switch sport {
	case SportTableTennis:
		return tableTennis, nil
	case SportBadminton:
		return badminton, nil
	case SportTennis:
		return tennis, nil
	}
	return nil, ErrUnknownSport
}

// Profiles lists every supported sport in display order.
func Profiles() []Profile {
	return []Profile{tableTennis, tennis, badminton}
}
