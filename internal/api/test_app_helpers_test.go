package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tripplanner/internal/ai"
	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/models"
	"github.com/terraincognita07/tripplanner/internal/services"
	"github.com/terraincognita07/tripplanner/internal/weather"
)

const testSecretKey = "test-secret-key-0123456789abcdef"

type scriptedCompleter struct {
	response string
}

func (completer scriptedCompleter) Complete(context.Context, string) (string, error) {
	return completer.response, nil
}

func newTestApp(t *testing.T) (*fiber.App, *db.Repositories) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "tripplanner-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	content, err := json.Marshal(ai.FallbackContent("Test destination"))
	if err != nil {
		t.Fatalf("encode generated content: %v", err)
	}

	repositories := db.NewRepositories(database)
	credits := services.NewCreditService(repositories.Users)
	generator := ai.NewGenerator(scriptedCompleter{response: string(content)}, time.Second)
	weatherService := weather.NewService(nil, time.Second)

	handler, err := NewHandler(testSecretKey, Dependencies{
		Auth:    services.NewAuthService(repositories.Users, models.DefaultSignupFreeCredits),
		Credits: credits,
		Plans:   services.NewPlanService(repositories.Plans, repositories.Accesses, credits, generator, weatherService, services.CreditPolicy{}),
		Invites: services.NewInviteService(repositories.Plans, repositories.Accesses, repositories.Invites, models.DefaultInviteTTL),
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, repositories
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})

	payload := map[string]any{}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decode response body %q: %v", string(raw), err)
		}
	}
	return response, payload
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, payload := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "StrongPass1",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%v)", email, response.StatusCode, payload)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("register %s: expected token in response", email)
	}
	return token
}

func assertStatus(t *testing.T, response *http.Response, payload map[string]any, want int) {
	t.Helper()
	if response.StatusCode != want {
		t.Fatalf("expected status %d, got %d (%v)", want, response.StatusCode, payload)
	}
}

func nestedMap(t *testing.T, payload map[string]any, key string) map[string]any {
	t.Helper()
	value, ok := payload[key].(map[string]any)
	if !ok {
		t.Fatalf("expected %q object in %v", key, payload)
	}
	return value
}
