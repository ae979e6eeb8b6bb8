// Package handlers contains the HTTP route handlers of the scoring API.
// Each exported function either is a fiber.Handler (stateless endpoints) or
// returns one after capturing its dependencies, so nothing is kept in globals.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health. It does no database or auth work so load
// balancers and container probes can call it freely.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
