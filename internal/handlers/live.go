package handlers

// live.go: the point-by-point scoreboard.
//
// The server keeps no live state. The single scorekeeping client sends the
// current scoreboard with every request and gets the next one back, so these
// handlers are pure functions over scoring.LiveState. Incoming states go through
// LiveState.Check first so a tampered or stale scoreboard is refused instead of
// being advanced.

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

// LiveStartRequest is the body of POST /api/v1/live/start.
type LiveStartRequest struct {
	Sport string `json:"sport"`
}

// LiveRequest is the body of the point, undo and reset endpoints. Side is only
// read by /live/point.
type LiveRequest struct {
	State scoring.LiveState `json:"state"`
	Side  scoring.Side      `json:"side"`
}

// LiveResponse is returned by every live endpoint. Outcome is set by
// /live/point only.
type LiveResponse struct {
	State   scoring.LiveState `json:"state"`
	Outcome scoring.Outcome   `json:"outcome,omitempty"`
}

// StartLive handles POST /api/v1/live/start.
func StartLive(c *fiber.Ctx) error {
	var req LiveStartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	// parseProfile accepts the same friendly spellings as the rest of the API
	// ("table tennis", "badminton"), then NewLiveState works on the canonical name.
	p, err := parseProfile(req.Sport)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	state, err := scoring.NewLiveState(p.Sport())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(LiveResponse{State: state})
}

// AwardPoint handles POST /api/v1/live/point.
func AwardPoint(c *fiber.Ctx) error {
	req, err := parseLiveRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// AwardPoint returns a new state; req.State itself is never modified.
	next, outcome, err := req.State.AwardPoint(req.Side)
	switch {
	case errors.Is(err, scoring.ErrInvalidSide):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, scoring.ErrMatchComplete):
		// The state is still returned so the client can redraw the final score.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "state": next})
	case err != nil:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(LiveResponse{State: next, Outcome: outcome})
}

// UndoLive handles POST /api/v1/live/undo.
func UndoLive(c *fiber.Ctx) error {
	req, err := parseLiveRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	// Undo is a no-op mid-set, so the client always gets a state back.
	return c.JSON(LiveResponse{State: req.State.Undo()})
}

// ResetLive handles POST /api/v1/live/reset.
func ResetLive(c *fiber.Ctx) error {
	req, err := parseLiveRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(LiveResponse{State: req.State.Reset()})
}

var errInvalidBody = errors.New("invalid request body")

// parseLiveRequest decodes the body and checks the carried scoreboard before any
// handler acts on it.
func parseLiveRequest(c *fiber.Ctx) (LiveRequest, error) {
	var req LiveRequest
	if err := c.BodyParser(&req); err != nil {
		return req, errInvalidBody
	}
	if err := req.State.Check(); err != nil {
		return req, err
	}
	// A client may send "sets": null for a fresh board; answer with [] instead.
	if req.State.Sets == nil {
		req.State.Sets = []scoring.SetResult{}
	}
	return req, nil
}
