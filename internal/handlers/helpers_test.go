package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fjvbn2003/fingerscore/internal/config"
	"github.com/fjvbn2003/fingerscore/internal/database"
	"github.com/fjvbn2003/fingerscore/internal/middleware"
	"github.com/fjvbn2003/fingerscore/internal/models"
	"github.com/fjvbn2003/fingerscore/internal/store"
)

const testSecret = "handlers-test-secret"

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.Connect("sqlite://" + t.TempDir() + "/api.db")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	app := fiber.New()
	app.Get("/health", HealthCheck)
	api := app.Group("/api/v1", middleware.Auth(&config.Config{JWTSecret: testSecret}, db))
	RegisterAPI(api, db, store.NewMatchStore(db), nil)
	return &testServer{app: app, db: db}
}

// token signs an access token for sub; the user row is created on first use.
func token(t *testing.T, sub, role string) string {
	t.Helper()
	claims := middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role:  role,
		Email: sub + "@example.com",
		Name:  sub,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, tok string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if tok != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// doJSON is do plus decoding the response into out.
func (s *testServer) doJSON(t *testing.T, method, path, tok string, body, out any) int {
	t.Helper()
	status, raw := s.do(t, method, path, tok, body)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return status
}

// login makes one authenticated call so the user row exists, then returns its ID.
func (s *testServer) login(t *testing.T, sub, role string) (string, uuid.UUID) {
	t.Helper()
	tok := token(t, sub, role)
	status, _ := s.do(t, "GET", "/api/v1/sports", tok, nil)
	require.Equal(t, fiber.StatusOK, status)

	var user models.User
	require.NoError(t, s.db.Where("auth_subject = ?", sub).First(&user).Error)
	return tok, user.ID
}
