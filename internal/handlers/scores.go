package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

// SetScoreRequest is the body of POST /api/v1/scores/set.
type SetScoreRequest struct {
	Sport string `json:"sport"`
	A     int    `json:"a"`
	B     int    `json:"b"`
}

// MatchScoreRequest is the body of POST /api/v1/scores/match.
type MatchScoreRequest struct {
	Sport    string `json:"sport"`
	SetsWonA int    `json:"sets_won_a"`
	SetsWonB int    `json:"sets_won_b"`
}

// SetsRequest carries a full list of set scores, as entered on the result form.
type SetsRequest struct {
	Sport string              `json:"sport"`
	Sets  []scoring.SetResult `json:"sets"`
}

// SetsResponse is the validation result plus the totals derived from the sets.
type SetsResponse struct {
	scoring.Result
	SetsWonA int          `json:"sets_won_a"`
	SetsWonB int          `json:"sets_won_b"`
	Winner   scoring.Side `json:"winner,omitempty"`
}

// ValidateSetScore handles POST /api/v1/scores/set. An invalid score is a normal
// answer (200 with valid=false); only malformed requests get 400.
func ValidateSetScore(c *fiber.Ctx) error {
	var req SetScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	p, err := parseProfile(req.Sport)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	// The Result carries valid, the error kind and a human-readable message.
	return c.JSON(scoring.ValidateSet(p, req.A, req.B))
}

// ValidateMatchScore handles POST /api/v1/scores/match.
func ValidateMatchScore(c *fiber.Ctx) error {
	var req MatchScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	p, err := parseProfile(req.Sport)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(scoring.ValidateMatch(p, req.SetsWonA, req.SetsWonB))
}

// ValidateSets handles POST /api/v1/scores/validate: the same check a match
// submission goes through, without storing anything.
func ValidateSets(c *fiber.Ctx) error {
	var req SetsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	p, err := parseProfile(req.Sport)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(validateSets(p, req.Sets))
}

func validateSets(p scoring.Profile, sets []scoring.SetResult) SetsResponse {
	res := scoring.MatchResult{Sets: sets}
	a, b := res.SetsWon()
	out := SetsResponse{Result: scoring.ValidateSets(p, sets), SetsWonA: a, SetsWonB: b}
	if out.Valid {
		out.Winner = res.Winner(p)
	}
	return out
}
