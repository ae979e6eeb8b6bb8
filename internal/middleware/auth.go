// Package middleware contains the HTTP middleware for the scoring API.
// Middleware runs before the route handlers, which makes it the place for
// cross-cutting concerns such as authentication and role checks.
package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fjvbn2003/fingerscore/internal/config"
	"github.com/fjvbn2003/fingerscore/internal/models"
)

// Request-scoped keys written by Auth and read by handlers via c.Locals.
const (
	LocalUserID   = "userID"
	LocalUserRole = "userRole"
)

// Claims is the payload we expect from the identity provider's access token.
// Besides the registered claims (Subject is the provider's user ID) the token
// template adds:
//
//	"role":  "admin", "organizer" or "user"
//	"email": the primary email address
//	"name":  the display name
//
// Missing custom claims fall back to a least-privileged user with placeholder
// contact details.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Auth returns a middleware that:
//  1. reads the "Authorization: Bearer <token>" header
//  2. verifies the HS256 signature against cfg.JWTSecret (and exp/nbf if present)
//  3. finds the matching user row, creating it on the first visit
//  4. syncs the role from the token
//  5. stores the user's UUID and role in c.Locals for the handlers
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return []byte(cfg.JWTSecret), nil }

	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		if cfg.JWTSecret == "" {
			// Refuse everything rather than accept tokens signed with an empty key.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication is not configured",
			})
		}

		claims := &Claims{}
		if _, err := parser.ParseWithClaims(tokenStr, claims, keyFunc); err != nil {
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
		}

		subject := claims.Subject
		if subject == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token missing subject",
			})
		}

		user, err := syncUser(db.WithContext(c.UserContext()), subject, claims)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load user record",
			})
		}

		c.Locals(LocalUserID, user.ID.String())
		c.Locals(LocalUserRole, string(user.Role))
		return c.Next()
	}
}

// syncUser is the lazy user sync: the first authenticated request creates the
// row, later requests only update the role when the token carries one.
func syncUser(db *gorm.DB, subject string, claims *Claims) (*models.User, error) {
	role := roleFromClaim(claims.Role)

	var user models.User
	err := db.Where("auth_subject = ?", subject).First(&user).Error
	switch {
	case err == nil:
		if claims.Role != "" && user.Role != role {
			if err := db.Model(&user).Update("role", role).Error; err != nil {
				return nil, err
			}
			user.Role = role
		}
		return &user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	email := claims.Email
	if email == "" {
		email = fmt.Sprintf("%s@users.invalid", subject)
	}
	name := claims.Name
	if name == "" {
		name = "Player"
	}

	user = models.User{
		AuthSubject: &subject,
		DisplayName: name,
		Email:       email,
		Role:        role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// roleFromClaim maps the raw claim to a UserRole. Unknown or empty values get
// the least privileged role.
func roleFromClaim(s string) models.UserRole {
	switch models.UserRole(strings.ToLower(s)) {
	case models.UserRoleAdmin:
		return models.UserRoleAdmin
	case models.UserRoleOrganizer:
		return models.UserRoleOrganizer
	default:
		return models.UserRoleUser
	}
}

// UserID reads the authenticated user's UUID stored by Auth.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals(LocalUserID).(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// UserRole reads the authenticated user's role stored by Auth.
func UserRole(c *fiber.Ctx) models.UserRole {
	r, _ := c.Locals(LocalUserRole).(string)
	return models.UserRole(r)
}
