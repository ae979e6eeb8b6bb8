package handlers

// matches.go: the /api/v1/matches routes, the friendly match record lifecycle.
//
// The submitter records a finished match against an opponent; scores are stored
// from the submitter's side (side A). The record starts "pending" and the
// opponent either confirms or rejects it. Only confirmed records count towards
// the player statistics.
//
// Visibility:
//   - "public" records can be read by any signed-in user
//   - "club_only" and "private" records can be read by the two players only
//     (there are no clubs in this service yet, so club_only behaves like private)
//   - admins can read and delete everything

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fjvbn2003/fingerscore/internal/logging"
	"github.com/fjvbn2003/fingerscore/internal/middleware"
	"github.com/fjvbn2003/fingerscore/internal/models"
	"github.com/fjvbn2003/fingerscore/internal/scoring"
	"github.com/fjvbn2003/fingerscore/internal/store"
)

// MatchResponse is what clients get back for a match record. A dedicated struct
// keeps the GORM model (and its preloaded users) out of the JSON.
type MatchResponse struct {
	ID            string              `json:"id"`
	Sport         scoring.Sport       `json:"sport"`
	SubmitterID   string              `json:"submitter_id"`
	SubmitterName string              `json:"submitter_name"`
	OpponentID    string              `json:"opponent_id"`
	OpponentName  string              `json:"opponent_name"`
	Sets          []scoring.SetResult `json:"sets"`
	SetsWonA      int                 `json:"sets_won_a"`
	SetsWonB      int                 `json:"sets_won_b"`
	WinnerID      *string             `json:"winner_id"`
	Status        models.MatchStatus  `json:"status"`
	Visibility    models.Visibility   `json:"visibility"`
	Venue         *string             `json:"venue"`
	PlayedAt      string              `json:"played_at"`   // RFC 3339
	ResolvedAt    *string             `json:"resolved_at"` // RFC 3339 or null
	CreatedAt     string              `json:"created_at"`
}

// CreateMatchRequest is the body of POST /api/v1/matches. The opponent is named
// either by user ID or by email.
type CreateMatchRequest struct {
	Sport         string              `json:"sport"`
	OpponentID    string              `json:"opponent_id"`
	OpponentEmail string              `json:"opponent_email"`
	Sets          []scoring.SetResult `json:"sets"`
	Visibility    string              `json:"visibility"` // defaults to "public"
	Venue         *string             `json:"venue"`
	PlayedAt      *string             `json:"played_at"` // RFC 3339, defaults to now
}

func toMatchResponse(m *models.FriendlyMatch) MatchResponse {
	r := MatchResponse{
		ID:            m.ID.String(),
		Sport:         m.Sport,
		SubmitterID:   m.SubmitterID.String(),
		SubmitterName: m.Submitter.DisplayName,
		OpponentID:    m.OpponentID.String(),
		OpponentName:  m.Opponent.DisplayName,
		Sets:          m.Result().Sets,
		SetsWonA:      m.SetsWonA,
		SetsWonB:      m.SetsWonB,
		Status:        m.Status,
		Visibility:    m.Visibility,
		Venue:         m.Venue,
		PlayedAt:      m.PlayedAt.UTC().Format(time.RFC3339),
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.WinnerID != nil {
		s := m.WinnerID.String()
		r.WinnerID = &s
	}
	if m.ResolvedAt != nil {
		s := m.ResolvedAt.UTC().Format(time.RFC3339)
		r.ResolvedAt = &s
	}
	return r
}

// canView applies the visibility rules described at the top of this file.
func canView(m *models.FriendlyMatch, userID uuid.UUID, role models.UserRole) bool {
	return role == models.UserRoleAdmin || m.Visibility == models.VisibilityPublic || m.Involves(userID)
}

// CreateMatch returns a handler for POST /api/v1/matches.
func CreateMatch(db *gorm.DB, s store.MatchStore, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The Auth middleware stored the caller's internal UUID in c.Locals; the
		// submitter is always the caller, never a field in the body.
		userID, ok := middleware.UserID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}

		var req CreateMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		p, err := parseProfile(req.Sport)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		// Visibility is optional; an omitted value means everyone can see the record.
		visibility := models.VisibilityPublic
		if req.Visibility != "" {
			visibility = models.Visibility(req.Visibility)
			if !visibility.Valid() {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "visibility must be one of: public, club_only, private",
				})
			}
		}

		// played_at defaults to "now". Everything is stored in UTC so list ordering
		// does not depend on the offset the client happened to send.
		playedAt := time.Now().UTC()
		if req.PlayedAt != nil && *req.PlayedAt != "" {
			playedAt, err = time.Parse(time.RFC3339, *req.PlayedAt)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "played_at must be an RFC 3339 timestamp",
				})
			}
			playedAt = playedAt.UTC()
		}

		// The scoring rules decide whether the result is acceptable.
		if res := scoring.ValidateSets(p, req.Sets); !res.Valid {
			return c.Status(fiber.StatusBadRequest).JSON(res)
		}

		opponent, err := findOpponent(db.WithContext(c.UserContext()), req)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "opponent not found"})
			}
			if errors.Is(err, errNoOpponent) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			logging.Error(logger, "opponent lookup failed", err, logging.FieldUserID, userID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
		}
		// Both ends of a record must be different people, otherwise a player could
		// confirm their own result.
		if opponent.ID == userID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "you cannot record a match against yourself"})
		}

		// Unplayed 0-0 sets are dropped before storing.
		var sets []models.MatchSet
		for _, set := range req.Sets {
			if !set.Empty() {
				sets = append(sets, models.MatchSet{ScoreA: set.A, ScoreB: set.B})
			}
		}

		match := &models.FriendlyMatch{
			Sport:       p.Sport(),
			SubmitterID: userID,
			OpponentID:  opponent.ID,
			Visibility:  visibility,
			Venue:       req.Venue,
			PlayedAt:    playedAt,
			Sets:        sets,
		}
		// The set tally and winner are derived here once and stored with the record,
		// so list and stats queries never re-run the scoring rules.
		result := match.Result()
		match.SetsWonA, match.SetsWonB = result.SetsWon()
		switch result.Winner(p) {
		case scoring.SideA:
			match.WinnerID = &match.SubmitterID
		case scoring.SideB:
			match.WinnerID = &match.OpponentID
		}

		if err := s.Create(c.UserContext(), match); err != nil {
			logging.Error(logger, "create match failed", err, logging.FieldUserID, userID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create match"})
		}

		// Reload to pick up the preloaded player names for the response.
		stored, err := s.Get(c.UserContext(), match.ID)
		if err != nil {
			logging.Error(logger, "reload match failed", err, logging.FieldMatchID, match.ID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load match"})
		}
		logging.Info(logger, "match recorded",
			logging.FieldMatchID, stored.ID, logging.FieldSport, stored.Sport, logging.FieldUserID, userID)
		return c.Status(fiber.StatusCreated).JSON(toMatchResponse(stored))
	}
}

var errNoOpponent = errors.New("opponent_id or opponent_email is required")

// findOpponent looks up the other player by ID first, then by email. A malformed
// ID is reported as "not found" rather than a separate error.
func findOpponent(db *gorm.DB, req CreateMatchRequest) (*models.User, error) {
	var user models.User
	switch {
	case req.OpponentID != "":
		id, err := uuid.Parse(req.OpponentID)
		if err != nil {
			return nil, gorm.ErrRecordNotFound
		}
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			return nil, err
		}
	case req.OpponentEmail != "":
		// Emails are compared case-insensitively; identity providers are not
		// consistent about casing.
		email := strings.TrimSpace(req.OpponentEmail)
		if err := db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
			return nil, err
		}
	default:
		return nil, errNoOpponent
	}
	return &user, nil
}

// GetMatches returns a handler for GET /api/v1/matches.
// Optional filters: ?sport=TENNIS and ?status=pending|confirmed|rejected.
func GetMatches(s store.MatchStore, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}

		// Both query parameters are optional; an empty filter returns every record
		// the caller played in.
		var filter store.ListFilter
		if raw := c.Query("sport"); raw != "" {
			p, err := parseProfile(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			filter.Sport = p.Sport()
		}
		if raw := c.Query("status"); raw != "" {
			filter.Status = models.MatchStatus(strings.ToLower(raw))
			if !filter.Status.Valid() {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "status must be one of: pending, confirmed, rejected",
				})
			}
		}

		matches, err := s.ListForPlayer(c.UserContext(), userID, filter)
		if err != nil {
			logging.Error(logger, "list matches failed", err, logging.FieldUserID, userID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch matches"})
		}

		// A zero-length slice is encoded as [] rather than null.
		out := make([]MatchResponse, 0, len(matches))
		for i := range matches {
			out = append(out, toMatchResponse(&matches[i]))
		}
		return c.JSON(out)
	}
}

// GetMatch returns a handler for GET /api/v1/matches/:id. Records the caller may
// not see are reported as missing.
func GetMatch(s store.MatchStore, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}

		// A record the caller is not allowed to see gets the same 404 as a missing
		// one, so the IDs of private matches are not revealed.
		m, err := s.Get(c.UserContext(), id)
		if errors.Is(err, store.ErrNotFound) || (err == nil && !canView(m, userID, middleware.UserRole(c))) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": store.ErrNotFound.Error()})
		}
		if err != nil {
			logging.Error(logger, "get match failed", err, logging.FieldMatchID, id)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}
		return c.JSON(toMatchResponse(m))
	}
}

// ConfirmMatch returns a handler for POST /api/v1/matches/:id/confirm.
func ConfirmMatch(s store.MatchStore, logger *slog.Logger) fiber.Handler {
	return resolveMatch(s.Confirm, "confirmed", logger)
}

// RejectMatch returns a handler for POST /api/v1/matches/:id/reject.
func RejectMatch(s store.MatchStore, logger *slog.Logger) fiber.Handler {
	return resolveMatch(s.Reject, "rejected", logger)
}

// resolveFunc is MatchStore.Confirm or MatchStore.Reject.
type resolveFunc func(ctx context.Context, id, userID uuid.UUID) (*models.FriendlyMatch, error)

func resolveMatch(resolve resolveFunc, verb string, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}

		// The store decides who may resolve the record and when; the handler only
		// maps its sentinel errors onto status codes.
		m, err := resolve(c.UserContext(), id, userID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, store.ErrNotOpponent):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, store.ErrNotPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case err != nil:
			logging.Error(logger, "resolve match failed", err, logging.FieldMatchID, id)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update match"})
		}

		logging.Info(logger, "match "+verb, logging.FieldMatchID, id, logging.FieldUserID, userID)
		return c.JSON(toMatchResponse(m))
	}
}

// DeleteMatch returns a handler for DELETE /api/v1/matches/:id. The route is
// guarded by RequireRole(admin).
func DeleteMatch(s store.MatchStore, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}

		err = s.Delete(c.UserContext(), id)
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			logging.Error(logger, "delete match failed", err, logging.FieldMatchID, id)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete match"})
		}
		// Deletes are logged at warn level: they are rare and cannot be undone.
		logging.Warn(logger, "match deleted", logging.FieldMatchID, id)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetMyStats returns a handler for GET /api/v1/me/stats: per-sport totals over the
// caller's confirmed matches.
func GetMyStats(s store.MatchStore, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		stats, err := s.Stats(c.UserContext(), userID)
		if err != nil {
			logging.Error(logger, "stats failed", err, logging.FieldUserID, userID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute stats"})
		}
		return c.JSON(fiber.Map{"user_id": userID.String(), "stats": stats})
	}
}
