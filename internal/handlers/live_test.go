package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

func TestLiveRoundTrip(t *testing.T) {
	s := newTestServer(t)
	tok := token(t, "scorer", "user")

	var resp LiveResponse
	status := s.doJSON(t, "POST", "/api/v1/live/start", tok, LiveStartRequest{Sport: "badminton"}, &resp)
	require.Equal(t, fiber.StatusOK, status)
	state := resp.State
	assert.Equal(t, scoring.SportBadminton, state.Sport)
	assert.Equal(t, scoring.StatusInProgress, state.Status)
	assert.NotNil(t, state.Sets)

	point := func(side scoring.Side) scoring.Outcome {
		t.Helper()
		var r LiveResponse
		status := s.doJSON(t, "POST", "/api/v1/live/point", tok, LiveRequest{State: state, Side: side}, &r)
		require.Equal(t, fiber.StatusOK, status)
		state = r.State
		return r.Outcome
	}

	// Set 1 to A 21-0.
	for i := 0; i < 20; i++ {
		assert.Equal(t, scoring.OutcomePoint, point(scoring.SideA))
	}
	assert.Equal(t, scoring.OutcomeSetComplete, point(scoring.SideA))
	assert.Equal(t, []scoring.SetResult{{A: 21, B: 0}}, state.Sets)
	assert.Equal(t, 1, state.SetsWonA)

	// Undo reopens it one point before the end.
	status = s.doJSON(t, "POST", "/api/v1/live/undo", tok, LiveRequest{State: state}, &resp)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, resp.Outcome)
	assert.Equal(t, scoring.SetResult{A: 20, B: 0}, resp.State.Current)
	assert.Equal(t, 0, resp.State.SetsWonA)
	state = resp.State

	// The next point closes it again, then set 2 decides the match.
	assert.Equal(t, scoring.OutcomeSetComplete, point(scoring.SideA))
	for i := 0; i < 20; i++ {
		point(scoring.SideA)
	}
	assert.Equal(t, scoring.OutcomeMatchComplete, point(scoring.SideA))
	assert.Equal(t, scoring.StatusMatchComplete, state.Status)
	assert.Equal(t, scoring.SideA, state.Winner)

	// Terminal: further points are refused with the final state attached.
	var conflict map[string]any
	status = s.doJSON(t, "POST", "/api/v1/live/point", tok, LiveRequest{State: state, Side: scoring.SideB}, &conflict)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, scoring.ErrMatchComplete.Error(), conflict["error"])
	assert.NotNil(t, conflict["state"])

	// Reset starts over.
	status = s.doJSON(t, "POST", "/api/v1/live/reset", tok, LiveRequest{State: state}, &resp)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, scoring.StatusInProgress, resp.State.Status)
	assert.Empty(t, resp.State.Sets)
	assert.Equal(t, scoring.SetResult{}, resp.State.Current)
}

func TestLiveRejectsBadInput(t *testing.T) {
	s := newTestServer(t)
	tok := token(t, "scorer", "user")

	fresh, err := scoring.NewLiveState(scoring.SportTableTennis)
	require.NoError(t, err)

	var body map[string]any
	status := s.doJSON(t, "POST", "/api/v1/live/start", tok, LiveStartRequest{Sport: "curling"}, &body)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = s.doJSON(t, "POST", "/api/v1/live/point", tok, LiveRequest{State: fresh, Side: "C"}, &body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, scoring.ErrInvalidSide.Error(), body["error"])

	// A state whose tally disagrees with its sets was not produced by the machine.
	tampered := fresh
	tampered.Sets = []scoring.SetResult{{A: 11, B: 3}}
	tampered.SetsWonB = 1
	status = s.doJSON(t, "POST", "/api/v1/live/point", tok, LiveRequest{State: tampered, Side: scoring.SideA}, &body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "set tally does not match")

	unfinished := fresh
	unfinished.Sets = []scoring.SetResult{{A: 5, B: 3}}
	unfinished.SetsWonA = 1
	status = s.doJSON(t, "POST", "/api/v1/live/undo", tok, LiveRequest{State: unfinished}, &body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "set 1 is not finished")

	// A score the scoreboard could never show.
	overrun := fresh
	overrun.Current = scoring.SetResult{A: 99, B: 0}
	status = s.doJSON(t, "POST", "/api/v1/live/point", tok, LiveRequest{State: overrun, Side: scoring.SideA}, &body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "cannot occur in play")
}
