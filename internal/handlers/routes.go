package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fjvbn2003/fingerscore/internal/middleware"
	"github.com/fjvbn2003/fingerscore/internal/models"
	"github.com/fjvbn2003/fingerscore/internal/store"
)

// RegisterAPI mounts the authenticated routes on api, which is expected to be
// the /api/v1 group with middleware.Auth already applied.
func RegisterAPI(api fiber.Router, db *gorm.DB, s store.MatchStore, logger *slog.Logger) {
	// Sport rule tables
	api.Get("/sports", GetSports)

	// One-off score checks, nothing is stored
	api.Post("/scores/set", ValidateSetScore)
	api.Post("/scores/match", ValidateMatchScore)
	api.Post("/scores/validate", ValidateSets)

	// Live scoreboard; the client carries the state
	api.Post("/live/start", StartLive)
	api.Post("/live/point", AwardPoint)
	api.Post("/live/undo", UndoLive)
	api.Post("/live/reset", ResetLive)

	// Friendly match records
	api.Post("/matches", CreateMatch(db, s, logger))
	api.Get("/matches", GetMatches(s, logger))
	api.Get("/matches/:id", GetMatch(s, logger))
	api.Post("/matches/:id/confirm", ConfirmMatch(s, logger))
	api.Post("/matches/:id/reject", RejectMatch(s, logger))
	api.Delete("/matches/:id", middleware.RequireRole(models.UserRoleAdmin), DeleteMatch(s, logger))

	api.Get("/me/stats", GetMyStats(s, logger))
}
