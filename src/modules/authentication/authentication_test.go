package authentication

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/middleware"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"
	"github.com/NicolasBonnefont/15-da-piettra/src/modules/users"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	database.DB = db

	app := fiber.New()
	app.Post("/auth/signup", SignUp)
	app.Post("/auth/signin", SignIn)
	app.Get("/me", middleware.Protected(), users.GetMe)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func tokenFrom(t *testing.T, resp *http.Response) string {
	t.Helper()
	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data.Token == "" {
		t.Fatal("no token in response")
	}
	return envelope.Data.Token
}

func TestSignUpSignInRoundTrip(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Piettra",
		"email":    "piettra@example.com",
		"password": "segredo15",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup status %d, want %d", resp.StatusCode, fiber.StatusCreated)
	}
	tokenFrom(t, resp)

	resp = postJSON(t, app, "/auth/signin", map[string]string{
		"email":    "piettra@example.com",
		"password": "segredo15",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("signin status %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	token := tokenFrom(t, resp)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	meResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("me request: %v", err)
	}
	if meResp.StatusCode != fiber.StatusOK {
		t.Fatalf("me status %d, want %d", meResp.StatusCode, fiber.StatusOK)
	}
	var envelope struct {
		Data models.User `json:"data"`
	}
	if err := json.NewDecoder(meResp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding me response: %v", err)
	}
	if envelope.Data.Name != "Piettra" {
		t.Fatalf("me name %q, want Piettra", envelope.Data.Name)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Piettra",
		"email":    "piettra@example.com",
		"password": "segredo15",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup status %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/auth/signin", map[string]string{
		"email":    "piettra@example.com",
		"password": "errada",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("signin status %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	app := setupTestApp(t)

	payload := map[string]string{
		"name":     "Piettra",
		"email":    "piettra@example.com",
		"password": "segredo15",
	}
	if resp := postJSON(t, app, "/auth/signup", payload); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first signup status %d", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/auth/signup", payload); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("second signup status %d, want %d", resp.StatusCode, fiber.StatusConflict)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("me request: %v", err)
	}
	if resp.StatusCode == fiber.StatusOK {
		t.Fatal("unauthenticated request reached a protected route")
	}
}
