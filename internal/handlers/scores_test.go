package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

func TestHealthCheckIsPublic(t *testing.T) {
	s := newTestServer(t)
	var body map[string]string
	status := s.doJSON(t, "GET", "/health", "", nil, &body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAPIRequiresToken(t *testing.T) {
	s := newTestServer(t)
	status, _ := s.do(t, "GET", "/api/v1/sports", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGetSports(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, "GET", "/api/v1/sports", token(t, "alice", "user"), nil)
	require.Equal(t, fiber.StatusOK, status)

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "sports", body)
}

func TestValidateSetScore(t *testing.T) {
	s := newTestServer(t)
	tok := token(t, "alice", "user")

	cases := []struct {
		name string
		body SetScoreRequest
		want scoring.Result
	}{
		{"table tennis 11-9", SetScoreRequest{Sport: "TABLE_TENNIS", A: 11, B: 9}, scoring.Result{Valid: true}},
		{"friendly sport name", SetScoreRequest{Sport: "table tennis", A: 13, B: 11}, scoring.Result{Valid: true}},
		{"short", SetScoreRequest{Sport: "TABLE_TENNIS", A: 10, B: 8}, scoring.Result{
			Kind: scoring.KindSetScoreInvalid, Error: "winning score must reach at least 11 points",
		}},
		{"margin", SetScoreRequest{Sport: "BADMINTON", A: 22, B: 21}, scoring.Result{
			Kind: scoring.KindSetScoreInvalid, Error: "must win by at least 2 points",
		}},
		{"badminton cap", SetScoreRequest{Sport: "BADMINTON", A: 30, B: 29}, scoring.Result{Valid: true}},
		{"tennis 7-6", SetScoreRequest{Sport: "TENNIS", A: 6, B: 7}, scoring.Result{Valid: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got scoring.Result
			status := s.doJSON(t, "POST", "/api/v1/scores/set", tok, tc.body, &got)
			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateSetScoreBadRequests(t *testing.T) {
	s := newTestServer(t)
	tok := token(t, "alice", "user")

	var body map[string]string
	status := s.doJSON(t, "POST", "/api/v1/scores/set", tok, SetScoreRequest{Sport: "squash", A: 11, B: 2}, &body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, errUnknownSport.Error(), body["error"])

	status, _ = s.do(t, "POST", "/api/v1/scores/set", tok, "not an object")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestValidateMatchScore(t *testing.T) {
	s := newTestServer(t)
	tok := token(t, "alice", "user")

	var got scoring.Result
	status := s.doJSON(t, "POST", "/api/v1/scores/match", tok, MatchScoreRequest{Sport: "TABLE_TENNIS", SetsWonA: 3, SetsWonB: 2}, &got)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, got.Valid)

	got = scoring.Result{}
	s.doJSON(t, "POST", "/api/v1/scores/match", tok, MatchScoreRequest{Sport: "TENNIS", SetsWonA: 1, SetsWonB: 1}, &got)
	assert.False(t, got.Valid)
	assert.Equal(t, scoring.KindMatchScoreInvalid, got.Kind)
	assert.Equal(t, "the winner must take at least 2 sets", got.Error)
}

func TestValidateSets(t *testing.T) {
	s := newTestServer(t)
	tok := token(t, "alice", "user")

	var got SetsResponse
	status := s.doJSON(t, "POST", "/api/v1/scores/validate", tok, SetsRequest{
		Sport: "BADMINTON",
		Sets:  []scoring.SetResult{{A: 21, B: 15}, {A: 18, B: 21}, {A: 22, B: 20}, {A: 0, B: 0}},
	}, &got)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, got.Valid)
	assert.Equal(t, 2, got.SetsWonA)
	assert.Equal(t, 1, got.SetsWonB)
	assert.Equal(t, scoring.SideA, got.Winner)

	got = SetsResponse{}
	s.doJSON(t, "POST", "/api/v1/scores/validate", tok, SetsRequest{
		Sport: "BADMINTON",
		Sets:  []scoring.SetResult{{A: 21, B: 15}, {A: 21, B: 20}},
	}, &got)
	assert.False(t, got.Valid)
	assert.Equal(t, scoring.KindSetScoreInvalid, got.Kind)
	assert.Equal(t, "set 2: must win by at least 2 points", got.Error)
	assert.Equal(t, scoring.SideNone, got.Winner)
}
