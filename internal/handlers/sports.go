package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

// SportResponse describes one sport's rule table. Rally sports fill the point
// fields, tennis fills GamesPerSet.
type SportResponse struct {
	Sport          scoring.Sport `json:"sport"`
	Unit           string        `json:"unit"`
	SetsToWinMatch int           `json:"sets_to_win_match"`
	MaxSets        int           `json:"max_sets"`
	PointsToWinSet int           `json:"points_to_win_set,omitempty"`
	GamesPerSet    int           `json:"games_per_set,omitempty"`
	MinWinMargin   int           `json:"min_win_margin"`
	HardCap        int           `json:"hard_cap,omitempty"`
}

func sportResponse(p scoring.Profile) SportResponse {
	r := SportResponse{
		Sport:          p.Sport(),
		Unit:           p.Unit(),
		SetsToWinMatch: p.SetsToWinMatch(),
		MaxSets:        p.MaxSets(),
	}
	switch p := p.(type) {
	case scoring.RallyProfile:
		r.PointsToWinSet = p.PointsToWinSet
		r.MinWinMargin = p.MinWinMargin
		r.HardCap = p.HardCap
	case scoring.TennisProfile:
		r.GamesPerSet = p.GamesPerSet
		r.MinWinMargin = p.MinWinMargin
	}
	return r
}

// GetSports handles GET /api/v1/sports.
func GetSports(c *fiber.Ctx) error {
	profiles := scoring.Profiles()
	out := make([]SportResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, sportResponse(p))
	}
	return c.JSON(out)
}

var errUnknownSport = errors.New("sport must be one of TABLE_TENNIS, TENNIS, BADMINTON")

// parseProfile resolves a sport name from a request body or query string.
func parseProfile(raw string) (scoring.Profile, error) {
	sport, err := scoring.ParseSport(raw)
	if err != nil {
		return nil, errUnknownSport
	}
	return scoring.ProfileFor(sport)
}
